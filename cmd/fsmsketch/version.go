package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/fsmsketch"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of fsmsketch",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "fsmsketch version %s\n", strings.TrimSpace(fsmsketch.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
