package main

import (
	"strings"

	"github.com/aretw0/fsmsketch/internal/cli"
	"github.com/spf13/cobra"
)

var checkExpressionCmd = &cobra.Command{
	Use:     "check-expression <expression>",
	Aliases: []string{"re"},
	Short:   "Check bracket balance and symbols of an expression",
	Long:    `Validates the expression exactly as given. Several arguments are joined with single spaces, which the validator rejects; quote the expression instead.`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := runOptions(cmd)
		if err != nil {
			return err
		}
		return cli.CheckExpression(cmd.Context(), strings.Join(args, " "), opts, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(checkExpressionCmd)
}
