// Package cmd содержит команды f1tool: обслуживание CSV данных и изображений дашборда.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/akozadaev/go_f1_dnf_analytics/internal/config"
	"github.com/akozadaev/go_f1_dnf_analytics/internal/logger"
)

// Version information (set via ldflags at build time)
var Version = "0.0.1-dev"

var (
	cfgFile  string
	logLevel string

	appConfig *config.Config
	appLogger *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "f1tool",
	Short: "Maintenance utilities for the F1 DNF dataset",
	Long: `f1tool prepares data and static assets for the F1 DNF analytics API.

Commands:
  - patch-tyres      rewrite a CSV column for one season
  - placeholders     create default team and driver images
  - download-images  download team logos and driver headshots`,
	Version:           Version,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"Path to YAML configuration file (overrides CONFIG_FILE)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	v := config.NewViper()
	if cfgFile != "" {
		v.Set("CONFIG_FILE", cfgFile)
	}
	if logLevel != "" {
		v.Set("LOG_LEVEL", logLevel)
	}

	cfg, err := config.LoadFromViper(v)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	appConfig = cfg
	appLogger = logger.New(cfg.Logging).WithComponent("f1tool")
	return nil
}
