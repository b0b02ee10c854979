package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"

	"generank/adapters/postgres"
	"generank/app"
	"generank/internal/config"
	"generank/internal/report"
	"generank/internal/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := newLogger(cfg.AppEnv)

	weights, err := cfg.Weights()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid weight configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlx.ConnectContext(ctx, "postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	sensitivity := validation.NewSensitivityAnalyzer(logger)
	if cfg.SensitivityTopN > 0 {
		sensitivity.TopN = cfg.SensitivityTopN
	}
	if cfg.SensitivityParallelism > 0 {
		sensitivity.Parallelism = cfg.SensitivityParallelism
	}

	pipeline := app.New(
		postgres.NewEvidenceStore(db, postgres.DefaultLayerSpecs(), logger),
		postgres.NewReferenceRepository(db, logger),
		postgres.NewScoreWriter(db, logger),
		sensitivity,
		logger,
	)

	result, err := pipeline.Run(ctx, weights)
	if err != nil {
		logger.Fatal().Err(err).Msg("scoring run failed")
	}

	if err := os.WriteFile(cfg.ReportMarkdownPath, []byte(result.Report.Markdown), 0o644); err != nil {
		logger.Fatal().Err(err).Msg("failed to write markdown report")
	}
	if cfg.ReportHTMLPath != "" {
		if err := os.WriteFile(cfg.ReportHTMLPath, report.RenderHTML(result.Report.Markdown), 0o644); err != nil {
			logger.Fatal().Err(err).Msg("failed to write html report")
		}
	}

	logger.Info().
		Str("verdict", string(result.Report.Verdict)).
		Str("report", cfg.ReportMarkdownPath).
		Msg("done")
}

func newLogger(appEnv string) zerolog.Logger {
	if appEnv == "local" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
