package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/bilicorpus/refinery/internal/app"
	"github.com/bilicorpus/refinery/internal/platform/config"
)

func main() {
	input := flag.String("input", "-", "Batch JSON file, or - for stdin")
	output := flag.String("output", "-", "Result JSON file, or - for stdout")
	dedupMethod := flag.String("dedup", "", "Dedup method override (exact, fuzzy, embedding, all)")
	forAnalysis := flag.Bool("for-analysis", false, "Keep sentiment-bearing punctuation during cleaning")
	minQuality := flag.Float64("min-quality", 0, "Quality cutoff override; negative disables the quality stage")
	metricsAddr := flag.String("metrics-addr", "", "Serve /healthz and /metrics on this address while the batch runs")
	printStats := flag.Bool("stats", false, "Print the rejection report to stderr")

	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	applyFlags(cfg, dedupMethod, forAnalysis, minQuality)

	logger := newLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(cfg, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize")
	}

	if *metricsAddr != "" {
		cfg.MetricsAddr = *metricsAddr

		go func() {
			if err := application.StartMetricsServer(ctx); err != nil {
				logger.Error().Err(err).Msg("metrics server error")
			}
		}()
	}

	if err := runBatch(ctx, application, &logger, *input, *output, *printStats); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info().Msg("interrupted")
			return
		}

		logger.Fatal().Err(err).Msg("batch failed")
	}
}

func applyFlags(cfg *config.Config, dedupMethod *string, forAnalysis *bool, minQuality *float64) {
	if *dedupMethod != "" {
		cfg.DedupMethod = *dedupMethod
	}

	if *forAnalysis {
		cfg.CleanForAnalysis = true
	}

	flag.Visit(func(f *flag.Flag) {
		if f.Name == "min-quality" {
			cfg.MinQualityScore = *minQuality
		}
	})
}

func runBatch(ctx context.Context, application *app.App, logger *zerolog.Logger, input, output string, printStats bool) error {
	in, err := openInput(input)
	if err != nil {
		return err
	}
	defer in.Close()

	items, err := app.DecodeBatch(in)
	if err != nil {
		return err
	}

	outcome, err := application.Run(ctx, items)
	if err != nil {
		return err
	}

	if printStats {
		if _, err := io.WriteString(os.Stderr, outcome.Stats.Report()); err != nil {
			logger.Warn().Err(err).Msg("stats report write failed")
		}
	}

	out, err := openOutput(output)
	if err != nil {
		return err
	}
	defer out.Close()

	return app.EncodeOutcome(out, outcome)
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}

	return os.Open(path)
}

func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}

	return os.Create(path)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

func newLogger(appEnv string) zerolog.Logger {
	if appEnv == "local" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	}

	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
