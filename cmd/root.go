// Package cmd implements the command line interface of the scheduler.
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gridops/switchsched/config"
	"github.com/gridops/switchsched/core/metrics"
	infralogger "github.com/gridops/switchsched/infra/logger"
	inframetrics "github.com/gridops/switchsched/infra/metrics"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "switchsched",
	Short: "Maneuver scheduling for power distribution network restoration",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file (json or yaml)")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

// loadConfig reads the configuration file when one is given and falls back
// to the defaults otherwise.
func loadConfig() (*config.Config, error) {
	if cfgPath == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// setupMetrics builds the metrics sink and, when enabled, starts the
// Prometheus exposition server in the background.
func setupMetrics(ctx context.Context, cfg *config.Config, log infralogger.Logger) (metrics.Sink, error) {
	if !cfg.Metrics.Enabled {
		return metrics.NopSink{}, nil
	}
	sink, err := inframetrics.NewPromSink()
	if err != nil {
		return nil, fmt.Errorf("prom sink: %w", err)
	}
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Metrics.PrometheusPort)
		if err := inframetrics.StartPromServer(ctx, addr, log); err != nil {
			log.Errorf("prom server: %v", err)
		}
	}()
	return sink, nil
}
