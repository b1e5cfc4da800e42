package shared

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	SeedFromCSV   = "csv"
	SeedFromMySQL = "mysql"
)

type Config struct {
	AppEnv   string
	LogLevel string
	HTTPAddr string

	SeedSource  string
	SeedCSVPath string
	MySQLDSN    string

	RedisAddr      string
	RedisPass      string
	RedisDB        int
	ReviewsChannel string

	LexiconPath     string
	ScoreWorkers    int
	CreateRatePerS  float64
	CreateRateBurst int
	RequestTimeout  time.Duration

	IngestWorkers   int
	IngestBatchSize int
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over .env entries.
func Load() Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg("could not read .env")
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
		}
		return def
	}
	atof := func(k string, def float64) float64 {
		if v := os.Getenv(k); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f
			}
			log.Warn().Str("key", k).Str("value", v).Msg("not a number, using default")
		}
		return def
	}

	c := Config{
		AppEnv:          env("APP_ENV", "prod"),
		LogLevel:        env("LOG_LEVEL", "info"),
		HTTPAddr:        env("HTTP_ADDR", ":"+env("PORT", "8000")),
		SeedSource:      env("SEED_SOURCE", SeedFromCSV),
		SeedCSVPath:     env("SEED_CSV_PATH", "data/reviews.csv"),
		MySQLDSN:        env("MYSQL_DSN", "root:root@tcp(localhost:3306)/reviews?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:       env("REDIS_ADDR", ""),
		RedisPass:       env("REDIS_PASSWORD", ""),
		RedisDB:         atoi("REDIS_DB", 0),
		ReviewsChannel:  env("REVIEWS_CHANNEL", "reviews:created"),
		LexiconPath:     env("SENTIMENT_LEXICON_PATH", ""),
		ScoreWorkers:    atoi("SCORE_WORKERS", 8),
		CreateRatePerS:  atof("CREATE_RATE_PER_SEC", 5),
		CreateRateBurst: atoi("CREATE_RATE_BURST", 10),
		RequestTimeout:  time.Duration(atoi("REQUEST_TIMEOUT_SECONDS", 15)) * time.Second,
		IngestWorkers:   atoi("INGEST_WORKERS", 4),
		IngestBatchSize: atoi("INGEST_BATCH_SIZE", 500),
	}
	if c.SeedSource != SeedFromCSV && c.SeedSource != SeedFromMySQL {
		log.Warn().Str("seed_source", c.SeedSource).Msg("unknown SEED_SOURCE, falling back to csv")
		c.SeedSource = SeedFromCSV
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
