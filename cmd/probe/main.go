// DevTrack desktop probe: reports foreground application usage pulses.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ashureev/devtrack/internal/probe"
	"github.com/spf13/cobra"
)

var (
	serverURL string
	interval  time.Duration
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "devtrack-probe",
	Short: "Reports foreground application usage to a DevTrack server",
	Long: `devtrack-probe polls the active foreground window at a fixed interval
and reports one app usage pulse per tick to the DevTrack server.

Pulses that cannot be delivered are dropped; the probe never queues or
retries, so a transiently unreachable server costs at most one interval
of tracked time.`,
	RunE: run,
}

func run(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	sampler, err := probe.NewSampler()
	if err != nil {
		return fmt.Errorf("initialize sampler: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Probe started", "server", serverURL, "interval", interval)

	poller := probe.NewPoller(sampler, serverURL, interval, logger)
	if err := poller.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("poller stopped: %w", err)
	}

	logger.Info("Probe stopped")
	return nil
}

func init() {
	rootCmd.Flags().StringVar(&serverURL, "server", "http://localhost:8080", "DevTrack server base URL")
	rootCmd.Flags().DurationVar(&interval, "interval", probe.DefaultInterval, "poll interval")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log each sampled application")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
