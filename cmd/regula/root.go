package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/regula/internal/cli"
	"github.com/aretw0/regula/internal/config"
	"github.com/aretw0/regula/internal/logging"
	"github.com/spf13/cobra"
)

var (
	appConfig config.Config
	logger    *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "regula",
	Short: "Regula converts between regular expressions, NFAs and DFAs",
	Long: `Regula builds DFAs from regular expressions (followpos construction),
determinizes NFAs (subset construction) and derives regular expressions
from automata (state elimination), recording every step of the derivation.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
		}
		if cmd.Flags().Changed("catalog") {
			cfg.Catalog, _ = cmd.Flags().GetString("catalog")
		}
		appConfig = cfg
		logger = logging.New(logging.ParseLevel(cfg.LogLevel))
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, cli.ErrFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "regula.yaml", "Configuration file (YAML or JSON)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("catalog", "", "Directory of catalog documents")
}
