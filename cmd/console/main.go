// Package main provides the entry point for the interactive backtest console.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/backtest-console/internal/api"
	"github.com/yourusername/backtest-console/internal/config"
	"github.com/yourusername/backtest-console/internal/logger"
	"github.com/yourusername/backtest-console/internal/prefs"
	"github.com/yourusername/backtest-console/internal/tui"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "Path to config file")
	flag.Parse()

	// Optional .env for local development; missing file is fine
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	appLog := logger.NewLogger(cfg.App.LogLevel)
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"api":         cfg.API.BaseURL,
	}).Info("Starting backtest console")

	prefStore := prefs.NewStore(prefs.NewFileAdapter(cfg.Prefs.Path), appLog)

	client := api.NewCachedClient(cfg, appLog)
	defer client.Close()

	if cfg.Metrics.Enabled {
		go serveMetrics(cfg, appLog)
	}

	model := tui.NewModel(client, prefStore, cfg.PollInterval(), appLog)
	program := tea.NewProgram(model, tea.WithAltScreen())

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		program.Quit()
	}()

	if _, err := program.Run(); err != nil {
		appLog.WithError(err).Error("Console exited with error")
		os.Exit(1)
	}
}

func serveMetrics(cfg *config.Config, appLog *logrus.Logger) {
	mux := http.NewServeMux()
	mux.Handle(cfg.Metrics.Path, promhttp.Handler())

	addr := fmt.Sprintf(":%d", cfg.Metrics.Port)
	appLog.WithField("addr", addr).Info("Metrics server listening")
	if err := http.ListenAndServe(addr, mux); err != nil {
		appLog.WithError(err).Warn("Metrics server stopped")
	}
}
