// Package main provides btctl, the non-interactive CLI for the backtest
// platform. It shares the client, validation and submission pipeline with the
// interactive console.
package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/backtest-console/internal/api"
	"github.com/yourusername/backtest-console/internal/config"
	"github.com/yourusername/backtest-console/internal/logger"
	"github.com/yourusername/backtest-console/internal/prefs"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	appLog     *logrus.Logger
	cfg        *config.Config
	client     *api.CachedClient
	prefStore  *prefs.Store
)

var rootCmd = &cobra.Command{
	Use:   "btctl",
	Short: "Backtest platform control CLI",
	Long:  `btctl launches, lists and inspects backtests on the platform backend from the command line.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := config.Validate(cfg); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		appLog = logger.NewLogger(cfg.App.LogLevel)
		prefStore = prefs.NewStore(prefs.NewFileAdapter(cfg.Prefs.Path), appLog)
		client = api.NewCachedClient(cfg, appLog)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if client != nil {
			client.Close()
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("btctl %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
	},
	// version needs no backend
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(strategiesCmd)
	rootCmd.AddCommand(datasetsCmd)
	rootCmd.AddCommand(backtestCmd)
	rootCmd.AddCommand(jobsCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(importCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}
