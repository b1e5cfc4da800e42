package main

import (
	"context"
	"database/sql"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"review_analyzer/internal/adapters/csvseed"
	"review_analyzer/internal/adapters/observability"
	"review_analyzer/internal/app"
	"review_analyzer/internal/shared"
	mysqlrepo "review_analyzer/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()
	in := flag.String("in", cfg.SeedCSVPath, "input CSV path")
	flag.Parse()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().
		Str("in", *in).
		Int("workers", cfg.IngestWorkers).
		Int("batch", cfg.IngestBatchSize).
		Msg("ingestor starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("schema setup failed")
	}

	ing := app.NewIngestionService(csvseed.New(*in), repo, cfg.IngestBatchSize, cfg.IngestWorkers)
	start := time.Now()
	st, err := ing.Ingest(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("ingestion aborted")
	}

	ev := log.Info()
	if st.Failed > 0 {
		ev = log.Warn()
	}
	ev.Int("read", st.Read).
		Int("written", st.Written).
		Int("failed", st.Failed).
		Int("batches", st.Batches).
		Dur("took", time.Since(start)).
		Msg("ingestion completed")
	if st.Failed > 0 {
		os.Exit(1)
	}
}
