package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/DjordjeVuckovic/semsim/pkg/config/env"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "semsim",
	Short:         "Evaluate a document-similarity provider against labelled cases",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := env.LoadDotEnv(os.Getenv("ENV"), ".env"); err != nil {
			slog.Warn("Failed to load .env", "error", err)
		}
		level, _ := cmd.Flags().GetString("log-level")
		if level == "" {
			level = os.Getenv("LOG_LEVEL")
		}
		lvl, err := parseLevel(level)
		if err != nil {
			return err
		}
		slog.SetLogLoggerLevel(lvl)
		return nil
	},
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		slog.Error("Command failed", "error", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides LOG_LEVEL)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(serveCmd)
}

func parseLevel(s string) (slog.Level, error) {
	if s == "" {
		return slog.LevelInfo, nil
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return lvl, nil
}
