package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Leaderboard backends.
const (
	BackendFile      = "file"
	BackendSQLite    = "sqlite"
	BackendRedis     = "redis"
	BackendPostgres  = "postgres"
	BackendHighScore = "highscore"
)

type Config struct {
	Trivia struct {
		BaseURL     string `yaml:"base_url"`
		Timeout     string `yaml:"timeout"`
		RateLimit   string `yaml:"rate_limit"`
		UseToken    bool   `yaml:"use_token"`
		CategoryTTL string `yaml:"category_ttl"`
	} `yaml:"trivia"`
	Quiz struct {
		Hints    int `yaml:"hints"`
		HintKeep int `yaml:"hint_keep"`
	} `yaml:"quiz"`
	Leaderboard struct {
		Backend       string `yaml:"backend"`
		Path          string `yaml:"path"`
		HighScorePath string `yaml:"highscore_path"`
		MaxEntries    int    `yaml:"max_entries"`
		Top           int    `yaml:"top"`
	} `yaml:"leaderboard"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	SQLite struct {
		Path string `yaml:"path"`
	} `yaml:"sqlite"`
	Log Log `yaml:"log"`
}

type Log struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	var cfg Config
	cfg.Trivia.BaseURL = "https://opentdb.com"
	cfg.Trivia.Timeout = "10s"
	cfg.Trivia.RateLimit = "5s"
	cfg.Trivia.UseToken = true
	cfg.Trivia.CategoryTTL = "1h"
	cfg.Quiz.Hints = 2
	cfg.Quiz.HintKeep = 2
	cfg.Leaderboard.Backend = BackendFile
	cfg.Leaderboard.Path = "leaderboard.json"
	cfg.Leaderboard.HighScorePath = "highscore.txt"
	cfg.Leaderboard.MaxEntries = 10
	cfg.Leaderboard.Top = 10
	cfg.Redis.Addr = "localhost:6379"
	cfg.Redis.TTL = "1h"
	cfg.SQLite.Path = "trivia.db"
	cfg.Log.Level = "info"
	cfg.Log.File = "logs/trivia.log"
	return cfg
}

// Load reads YAML config from path on top of the defaults. A missing file is
// not an error. Values from .env and TRIVIA_* variables win over the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, err
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func applyEnv(cfg *Config) error {
	str := map[string]*string{
		"TRIVIA_BASE_URL":         &cfg.Trivia.BaseURL,
		"TRIVIA_TIMEOUT":          &cfg.Trivia.Timeout,
		"TRIVIA_RATE_LIMIT":       &cfg.Trivia.RateLimit,
		"TRIVIA_CATEGORY_TTL":     &cfg.Trivia.CategoryTTL,
		"TRIVIA_LEADERBOARD":      &cfg.Leaderboard.Backend,
		"TRIVIA_LEADERBOARD_PATH": &cfg.Leaderboard.Path,
		"TRIVIA_HIGHSCORE_PATH":   &cfg.Leaderboard.HighScorePath,
		"TRIVIA_REDIS_ADDR":       &cfg.Redis.Addr,
		"TRIVIA_REDIS_PASSWORD":   &cfg.Redis.Password,
		"TRIVIA_REDIS_TTL":        &cfg.Redis.TTL,
		"TRIVIA_POSTGRES_URL":     &cfg.Postgres.URL,
		"TRIVIA_SQLITE_PATH":      &cfg.SQLite.Path,
		"TRIVIA_LOG_LEVEL":        &cfg.Log.Level,
		"TRIVIA_LOG_FILE":         &cfg.Log.File,
	}
	for key, dst := range str {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}

	ints := map[string]*int{
		"TRIVIA_HINTS":       &cfg.Quiz.Hints,
		"TRIVIA_HINT_KEEP":   &cfg.Quiz.HintKeep,
		"TRIVIA_MAX_ENTRIES": &cfg.Leaderboard.MaxEntries,
		"TRIVIA_TOP":         &cfg.Leaderboard.Top,
		"TRIVIA_REDIS_DB":    &cfg.Redis.DB,
	}
	for key, dst := range ints {
		v, ok := os.LookupEnv(key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = n
	}

	if v, ok := os.LookupEnv("TRIVIA_USE_TOKEN"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TRIVIA_USE_TOKEN: %w", err)
		}
		cfg.Trivia.UseToken = b
	}
	return nil
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	switch c.Leaderboard.Backend {
	case BackendFile, BackendHighScore:
		if c.Leaderboard.Backend == BackendFile && c.Leaderboard.Path == "" {
			return errors.New("leaderboard.path is required for the file backend")
		}
		if c.Leaderboard.Backend == BackendHighScore && c.Leaderboard.HighScorePath == "" {
			return errors.New("leaderboard.highscore_path is required for the highscore backend")
		}
	case BackendSQLite:
		if c.SQLite.Path == "" {
			return errors.New("sqlite.path is required for the sqlite backend")
		}
	case BackendRedis:
		if c.Redis.Addr == "" {
			return errors.New("redis.addr is required for the redis backend")
		}
	case BackendPostgres:
		if c.Postgres.URL == "" {
			return errors.New("postgres.url is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown leaderboard backend %q", c.Leaderboard.Backend)
	}
	if c.Leaderboard.MaxEntries <= 0 {
		return errors.New("leaderboard.max_entries must be positive")
	}
	if c.Quiz.Hints < 0 {
		return errors.New("quiz.hints must not be negative")
	}
	if c.Quiz.HintKeep < 2 {
		return errors.New("quiz.hint_keep must be at least 2")
	}
	return nil
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
