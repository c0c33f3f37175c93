package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"TxReplay/internal/core"
	"TxReplay/internal/ingestion"
	"TxReplay/internal/observability"
	"TxReplay/internal/report"

	"github.com/spf13/cobra"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "txreplay <transactions.csv>",
	Short: "Replay a payment event stream into a final per-client ledger",
	Long: `txreplay reads a chronological CSV stream of payment events
(deposit, withdrawal, dispute, resolve, chargeback), settles them into
per-client accounts and writes the final ledger as CSV on stdout.

Invalid records are skipped, never fatal; diagnostics go to stderr.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVar(&logLevel, "log-level", "",
		"log level: debug, info, warn, error (default from TXREPLAY_LOG_LEVEL, else warn)")
}

func run(cmd *cobra.Command, args []string) error {
	logger := observability.NewLogger("txreplay")
	if logLevel != "" {
		logger = observability.NewLoggerWithLevel("txreplay", observability.ParseLogLevel(logLevel))
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open transactions file: %w", err)
	}
	defer f.Close()

	metrics := observability.NewMetrics()
	engine := core.NewEngine(logger, metrics)
	reader := ingestion.NewReader(f, logger, metrics)

	start := time.Now()
	for {
		rec, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read transactions file: %w", err)
		}
		engine.Process(rec)
	}

	stats := engine.Stats()
	logger.Info().
		Uint64("applied", stats.Applied).
		Uint64("skipped", stats.Skipped).
		Uint64("malformed_rows", reader.Malformed()).
		Int("accounts", stats.Accounts).
		Int("transactions", stats.Transactions).
		Dur("elapsed", time.Since(start)).
		Msg("replay complete")

	if err := report.Write(os.Stdout, engine.Snapshot()); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "txreplay: %v\n", err)
		os.Exit(1)
	}
}
