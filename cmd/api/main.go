package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"review_analyzer/internal/adapters/csvseed"
	server "review_analyzer/internal/adapters/http_server"
	"review_analyzer/internal/adapters/observability"
	redisad "review_analyzer/internal/adapters/redis"
	"review_analyzer/internal/app"
	"review_analyzer/internal/domain"
	"review_analyzer/internal/sentiment"
	"review_analyzer/internal/shared"
	"review_analyzer/internal/storage/memory"
	mysqlrepo "review_analyzer/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scorer := buildScorer(cfg)

	// seed
	seeds, err := loadSeed(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("source", cfg.SeedSource).Msg("seed load failed")
	}
	store := memory.New()
	store.Seed(seeds)
	observability.StoreSize.Set(float64(store.Len()))
	log.Info().Int("reviews", store.Len()).Str("source", cfg.SeedSource).Msg("seed loaded")

	// deps
	var pub domain.ReviewPublisher
	if cfg.RedisAddr != "" {
		p := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, cfg.ReviewsChannel)
		defer p.Close()
		if err := p.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis ping failed, events may be dropped")
		}
		pub = p
	}
	q := app.NewQueryService(store, scorer, cfg.ScoreWorkers)
	cmds := app.NewReviewService(store, scorer, pub, clockwork.NewRealClock())

	// http
	srv := server.New(server.Options{
		Timeout:          cfg.RequestTimeout,
		CreateRatePerSec: cfg.CreateRatePerS,
		CreateRateBurst:  cfg.CreateRateBurst,
	})
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Q: q, R: cmds, Store: store})

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("http shutdown failed")
		}
	}()

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("API stopped")
}

func buildScorer(cfg shared.Config) *sentiment.Analyzer {
	if cfg.LexiconPath == "" {
		return sentiment.New()
	}
	f, err := os.Open(cfg.LexiconPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.LexiconPath).Msg("open lexicon failed")
	}
	defer f.Close()
	lex, err := sentiment.LoadLexicon(f)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.LexiconPath).Msg("parse lexicon failed")
	}
	log.Info().Int("entries", len(lex)).Str("path", cfg.LexiconPath).Msg("custom lexicon loaded")
	return sentiment.NewWithLexicon(lex)
}

func loadSeed(ctx context.Context, cfg shared.Config) ([]domain.Review, error) {
	if cfg.SeedSource != shared.SeedFromMySQL {
		return csvseed.New(cfg.SeedCSVPath).LoadReviews(ctx)
	}

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	log.Info().Msg("database connection ok")
	return mysqlrepo.New(db).LoadReviews(ctx)
}
