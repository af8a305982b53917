package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"trivia-challenge/internal/domain"
)

// LeaderboardStore keeps the ranking as an indented JSON array on disk.
type LeaderboardStore struct {
	path string
}

func NewLeaderboardStore(path string) *LeaderboardStore {
	return &LeaderboardStore{path: path}
}

// Load returns no entries when the file does not exist yet.
func (s *LeaderboardStore) Load(_ context.Context) ([]domain.LeaderboardEntry, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read leaderboard: %w", err)
	}

	var entries []domain.LeaderboardEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode leaderboard %s: %w", s.path, err)
	}
	return entries, nil
}

func (s *LeaderboardStore) Save(_ context.Context, entries []domain.LeaderboardEntry) error {
	if entries == nil {
		entries = []domain.LeaderboardEntry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode leaderboard: %w", err)
	}
	data = append(data, '\n')
	if err := writeAtomic(s.path, data); err != nil {
		return fmt.Errorf("save leaderboard %s: %w", s.path, err)
	}
	return nil
}
