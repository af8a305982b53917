package redis

import (
	"context"
	"math/rand"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"trivia-challenge/internal/domain"
	"trivia-challenge/internal/infra/memory"
)

const categoriesKey = "trivia:categories"

// CategoryRepository caches the category list in Redis and falls back to a
// loader on cache miss.
// Categories are stored as: HSET trivia:categories {id} {name}
type CategoryRepository struct {
	client *redis.Client
	loader memory.CategoryLoader
	ttl    time.Duration
	sf     singleflight.Group

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewCategoryRepository(client *redis.Client, loader memory.CategoryLoader, ttl time.Duration) *CategoryRepository {
	return &CategoryRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *CategoryRepository) Categories(ctx context.Context) ([]domain.Category, error) {
	if categories, ok := r.cached(ctx); ok {
		return categories, nil
	}

	result, err, _ := r.sf.Do(categoriesKey, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if categories, ok := r.cached(ctx); ok {
			return categories, nil
		}

		categories, err := r.loader.LoadCategories(ctx)
		if err != nil {
			return nil, err
		}

		pipe := r.client.TxPipeline()
		pipe.Del(ctx, categoriesKey)
		for _, c := range categories {
			pipe.HSet(ctx, categoriesKey, strconv.Itoa(c.ID), c.Name)
		}
		if ttl := r.ttlWithJitter(); ttl > 0 {
			pipe.Expire(ctx, categoriesKey, ttl)
		}
		// cache write is best-effort; the loader result is still good
		_, _ = pipe.Exec(ctx)

		return categories, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Category), nil
}

func (r *CategoryRepository) cached(ctx context.Context) ([]domain.Category, bool) {
	fields, err := r.client.HGetAll(ctx, categoriesKey).Result()
	if err != nil || len(fields) == 0 {
		return nil, false
	}
	return buildCategoriesFromCache(fields), true
}

func buildCategoriesFromCache(fields map[string]string) []domain.Category {
	categories := make([]domain.Category, 0, len(fields))
	for idStr, name := range fields {
		id, err := strconv.Atoi(idStr)
		if err != nil {
			continue
		}
		categories = append(categories, domain.Category{ID: id, Name: name})
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
	return categories
}

func (r *CategoryRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
