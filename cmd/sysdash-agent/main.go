package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sysdash/sysdash/internal/agent"
	"github.com/sysdash/sysdash/internal/logging"
)

var (
	dbPath   string
	table    string
	diskPath string
	interval time.Duration
	once     bool
)

var rootCmd = &cobra.Command{
	Use:   "sysdash-agent",
	Short: "Sysdash agent - records host cpu/memory/disk usage into the system log",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func init() {
	rootCmd.Flags().StringVar(&dbPath, "db", "log.db", "path to the sqlite log database")
	rootCmd.Flags().StringVar(&table, "table", "system_log", "log table name")
	rootCmd.Flags().StringVar(&diskPath, "disk-path", "/", "mount point to sample disk usage from")
	rootCmd.Flags().DurationVar(&interval, "interval", time.Minute, "sampling interval")
	rootCmd.Flags().BoolVar(&once, "once", false, "record a single sample and exit")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logging.Init(logging.Config{
		Format:    "auto",
		Level:     os.Getenv("LOG_LEVEL"),
		Component: "sysdash-agent",
	})

	writer, err := agent.NewWriter(dbPath, table)
	if err != nil {
		return err
	}
	defer writer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info().Msg("Stopping agent")
		cancel()
	}()

	if once {
		return sampleOnce(ctx, writer)
	}

	log.Info().
		Str("db", dbPath).
		Str("table", table).
		Dur("interval", interval).
		Msg("Agent started")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// First sample immediately rather than waiting a full interval
	if err := sampleOnce(ctx, writer); err != nil {
		log.Warn().Err(err).Msg("Sample failed")
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := sampleOnce(ctx, writer); err != nil {
				log.Warn().Err(err).Msg("Sample failed")
			}
		}
	}
}

func sampleOnce(ctx context.Context, writer *agent.Writer) error {
	sample, err := agent.Collect(ctx, diskPath)
	if err != nil {
		return err
	}
	return writer.Append(ctx, sample)
}
