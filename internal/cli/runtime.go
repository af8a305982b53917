package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"trivia-challenge/internal/app"
	"trivia-challenge/internal/config"
	"trivia-challenge/internal/infra/file"
	"trivia-challenge/internal/infra/memory"
	"trivia-challenge/internal/infra/postgres"
	infraredis "trivia-challenge/internal/infra/redis"
	"trivia-challenge/internal/infra/sqlite"
	"trivia-challenge/internal/logger"
	"trivia-challenge/internal/trivia"
)

// runtime holds what every command builds from the config file.
type runtime struct {
	cfg     config.Config
	log     *zap.Logger
	closers []func()

	redisClient *redis.Client
	client      *trivia.Client
}

func newRuntime(configPath string) (*runtime, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	log.Debug("config loaded", zap.String("path", configPath), zap.String("leaderboard", cfg.Leaderboard.Backend))
	return &runtime{cfg: cfg, log: log}, nil
}

func (r *runtime) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		r.closers[i]()
	}
	_ = r.log.Sync()
}

func (r *runtime) redisConn() *redis.Client {
	if r.redisClient == nil {
		r.redisClient = redis.NewClient(&redis.Options{
			Addr:     r.cfg.Redis.Addr,
			Password: r.cfg.Redis.Password,
			DB:       r.cfg.Redis.DB,
		})
		client := r.redisClient
		r.closers = append(r.closers, func() { _ = client.Close() })
	}
	return r.redisClient
}

func (r *runtime) triviaClient() *trivia.Client {
	if r.client == nil {
		r.client = trivia.NewClient(trivia.Options{
			BaseURL:   r.cfg.Trivia.BaseURL,
			Timeout:   config.TTLDuration(r.cfg.Trivia.Timeout, 10*time.Second),
			RateLimit: config.TTLDuration(r.cfg.Trivia.RateLimit, 5*time.Second),
			UseToken:  r.cfg.Trivia.UseToken,
		}, r.log)
	}
	return r.client
}

// questions returns the remote source, or the built-in bank when offline.
func (r *runtime) questions(offline bool) (app.QuestionSource, app.CategoryProvider) {
	if offline {
		bank := memory.NewQuestionBank(memory.SampleQuestions())
		return bank, bank
	}

	client := r.triviaClient()
	ttl := config.TTLDuration(r.cfg.Trivia.CategoryTTL, time.Hour)
	if r.cfg.Leaderboard.Backend == config.BackendRedis {
		// shared cache keys expire on the redis ttl
		return client, infraredis.NewCategoryRepository(r.redisConn(), client, config.TTLDuration(r.cfg.Redis.TTL, ttl))
	}
	return client, memory.NewCategoryRepository(client, ttl)
}

// scoreKeeper opens the configured leaderboard backend.
func (r *runtime) scoreKeeper(ctx context.Context) (app.ScoreKeeper, error) {
	lb := r.cfg.Leaderboard
	switch lb.Backend {
	case config.BackendHighScore:
		return app.NewHighScore(file.NewHighScoreStore(lb.HighScorePath), r.log), nil
	case config.BackendFile:
		return app.NewLeaderboard(file.NewLeaderboardStore(lb.Path), lb.MaxEntries, r.log), nil
	case config.BackendSQLite:
		db, err := sqlite.Open(ctx, r.cfg.SQLite.Path, r.log)
		if err != nil {
			return nil, err
		}
		r.closers = append(r.closers, func() { _ = db.Close() })
		return app.NewLeaderboard(sqlite.NewLeaderboardStore(db), lb.MaxEntries, r.log), nil
	case config.BackendRedis:
		return app.NewLeaderboard(infraredis.NewLeaderboardStore(r.redisConn(), ""), lb.MaxEntries, r.log), nil
	case config.BackendPostgres:
		if err := postgres.Migrate(ctx, r.cfg.Postgres.URL, r.log); err != nil {
			return nil, err
		}
		pool, err := pgxpool.Connect(ctx, r.cfg.Postgres.URL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		r.closers = append(r.closers, pool.Close)
		return app.NewLeaderboard(postgres.NewLeaderboardStore(pool), lb.MaxEntries, r.log), nil
	default:
		return nil, fmt.Errorf("unknown leaderboard backend %q", lb.Backend)
	}
}
