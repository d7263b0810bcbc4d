package main

import (
	"github.com/aretw0/fsmsketch/internal/cli"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <scenario.yaml>",
	Short: "Replay a scenario and report its checks",
	Long:  `Replays the editor steps of a YAML scenario on a fresh session. Exits non-zero when an edit fails or an expectation does not hold.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := runOptions(cmd)
		if err != nil {
			return err
		}
		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		_, err = cli.RunScenario(ctx, args[0], opts, cmd.OutOrStdout())
		return err
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
