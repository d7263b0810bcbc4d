package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/fsmsketch/internal/cli"
	"github.com/aretw0/fsmsketch/internal/config"
	"github.com/aretw0/fsmsketch/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fsmsketch",
	Short: "fsmsketch edits and tests finite automata",
	Long: `fsmsketch builds nondeterministic finite automata over a small alphabet,
decides words by subset simulation and checks bracket balance in expressions.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Invalid expressions were already reported on stdout.
		if !errors.Is(err, cli.ErrInvalidExpression) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "YAML config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().IntP("alphabet", "a", 0, "Alphabet size (1-26), overrides config")
}

// runOptions loads the config file and environment, then applies flags.
func runOptions(cmd *cobra.Command) (cli.RunOptions, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cli.RunOptions{}, err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
	}
	if cmd.Flags().Changed("alphabet") {
		cfg.AlphabetSize, _ = cmd.Flags().GetInt("alphabet")
	}
	if err := cfg.Validate(); err != nil {
		return cli.RunOptions{}, err
	}

	level, _ := logging.ParseLevel(cfg.LogLevel)
	format, _ := logging.ParseFormat(cfg.LogFormat)
	return cli.RunOptions{
		Config: cfg,
		Logger: logging.New(level, format),
	}, nil
}
