package integration

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"trivia-challenge/internal/app"
	"trivia-challenge/internal/domain"
	"trivia-challenge/internal/infra/memory"
	"trivia-challenge/internal/infra/postgres"
	infraredis "trivia-challenge/internal/infra/redis"
)

func TestGameEndToEnd(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	pgURL, pgCleanup := startPostgres(t, ctx)
	defer pgCleanup()
	redisURL, redisCleanup := startRedis(t, ctx)
	defer redisCleanup()

	if err := postgres.Migrate(ctx, pgURL, nil); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	// second run is a no-op
	if err := postgres.Migrate(ctx, pgURL, nil); err != nil {
		t.Fatalf("migrate again: %v", err)
	}

	pool, err := pgxpool.Connect(ctx, pgURL)
	if err != nil {
		t.Fatalf("connect pg: %v", err)
	}
	defer pool.Close()

	redisClient, err := redisClientFromURL(redisURL)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}
	defer redisClient.Close()

	bank := memory.NewQuestionBank(memory.SampleQuestions())
	categories := infraredis.NewCategoryRepository(redisClient, categoryLoader{bank}, 5*time.Minute)
	board := app.NewLeaderboard(postgres.NewLeaderboardStore(pool), app.DefaultLeaderboardSize, nil)
	if _, err := board.RecordScore(ctx, "Bob", 0); err != nil {
		t.Fatalf("seed: %v", err)
	}

	question := domain.Question{Text: "Light travels faster than sound.", Type: domain.Boolean, CorrectAnswer: domain.True}
	console := &script{lines: []string{
		"1", "Science & Nature", "easy",
		"true",
		"Alice", "no",
	}}
	engine := app.NewQuizEngine(console, app.NewOptionShufflerWithSource(rand.NewSource(1)), app.DefaultHintKeep, nil)
	source := fixedSource{question}
	controller := app.NewSessionController(console, app.NewPromptSettings(console, categories, nil), source, engine, board, app.SessionOptions{Hints: app.DefaultHints}, nil)

	if err := controller.Play(ctx); err != nil {
		t.Fatalf("play: %v", err)
	}

	stored, err := postgres.NewLeaderboardStore(pool).Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(stored) != 2 || stored[0].Name != "Alice" || stored[0].Score != 1 {
		t.Fatalf("expected Alice leading with 1, got %+v", stored)
	}
	if n, err := redisClient.HLen(ctx, "trivia:categories").Result(); err != nil || n == 0 {
		t.Fatalf("expected categories cached in redis, got %d (%v)", n, err)
	}
}

type categoryLoader struct {
	bank *memory.QuestionBank
}

func (l categoryLoader) LoadCategories(ctx context.Context) ([]domain.Category, error) {
	return l.bank.Categories(ctx)
}

type fixedSource []domain.Question

func (s fixedSource) FetchQuestions(context.Context, domain.Settings) ([]domain.Question, error) {
	return s, nil
}

type script struct {
	lines []string
	out   strings.Builder
}

func (s *script) ReadLine(prompt string) (string, error) {
	s.out.WriteString(prompt)
	if len(s.lines) == 0 {
		return "", fmt.Errorf("script exhausted after %q", prompt)
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func (s *script) Printf(format string, args ...interface{}) {
	fmt.Fprintf(&s.out, format, args...)
}

func startPostgres(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_USER": "trivia", "POSTGRES_PASSWORD": "triviapass", "POSTGRES_DB": "trivia"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start postgres: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://trivia:triviapass@%s:%s/trivia?sslmode=disable", host, port.Port())
	return dsn, func() {
		_ = container.Terminate(ctx)
	}
}

func startRedis(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start redis: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("redis host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("redis port: %v", err)
	}
	url := fmt.Sprintf("redis://%s:%s", host, port.Port())
	return url, func() {
		_ = container.Terminate(ctx)
	}
}

func redisClientFromURL(url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return goredis.NewClient(opts), nil
}

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}
