package memory

import (
	"context"
	"sync"

	"trivia-challenge/internal/domain"
)

// LeaderboardStore is an in-memory implementation of app.LeaderboardStore.
// Nothing survives the process; it backs tests and --offline dry runs.
type LeaderboardStore struct {
	mu      sync.RWMutex
	entries []domain.LeaderboardEntry
	saves   int
}

func NewLeaderboardStore(seed ...domain.LeaderboardEntry) *LeaderboardStore {
	return &LeaderboardStore{entries: append([]domain.LeaderboardEntry(nil), seed...)}
}

func (s *LeaderboardStore) Load(_ context.Context) ([]domain.LeaderboardEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.LeaderboardEntry(nil), s.entries...), nil
}

func (s *LeaderboardStore) Save(_ context.Context, entries []domain.LeaderboardEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append([]domain.LeaderboardEntry(nil), entries...)
	s.saves++
	return nil
}

// Saves reports how many times Save was called.
func (s *LeaderboardStore) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}

// HighScoreStore is an in-memory implementation of app.HighScoreStore.
type HighScoreStore struct {
	mu    sync.Mutex
	score int
}

func NewHighScoreStore(score int) *HighScoreStore {
	return &HighScoreStore{score: score}
}

func (s *HighScoreStore) Load(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score, nil
}

func (s *HighScoreStore) Save(_ context.Context, score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.score = score
	return nil
}
