package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"trivia-challenge/internal/domain"
)

// CategoryLoader fetches the category list from the question source.
type CategoryLoader interface {
	LoadCategories(ctx context.Context) ([]domain.Category, error)
}

// CategoryRepository caches the category list with a TTL to avoid a remote
// round-trip on every round.
type CategoryRepository struct {
	loader CategoryLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu        sync.RWMutex
	cached    []domain.Category
	expiresAt time.Time
}

func NewCategoryRepository(loader CategoryLoader, ttl time.Duration) *CategoryRepository {
	return &CategoryRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *CategoryRepository) Categories(ctx context.Context) ([]domain.Category, error) {
	if cached, ok := r.fresh(r.clock()); ok {
		return cached, nil
	}

	result, err, _ := r.sf.Do("categories", func() (interface{}, error) {
		now := r.clock()
		if cached, ok := r.fresh(now); ok {
			return cached, nil
		}

		categories, err := r.loader.LoadCategories(ctx)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.cached = categories
		r.expiresAt = now.Add(r.ttlWithJitter())
		r.mu.Unlock()
		return categories, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Category), nil
}

func (r *CategoryRepository) fresh(now time.Time) ([]domain.Category, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.cached != nil && r.expiresAt.After(now) {
		return r.cached, true
	}
	return nil, false
}

func (r *CategoryRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

// StaticCategoryLoader serves a fixed list (tests, offline play).
type StaticCategoryLoader struct {
	categories []domain.Category
}

func NewStaticCategoryLoader(categories []domain.Category) *StaticCategoryLoader {
	return &StaticCategoryLoader{categories: categories}
}

func (l *StaticCategoryLoader) LoadCategories(_ context.Context) ([]domain.Category, error) {
	return append([]domain.Category(nil), l.categories...), nil
}
