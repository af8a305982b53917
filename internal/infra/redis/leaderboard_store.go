package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"trivia-challenge/internal/domain"
)

const defaultLeaderboardKey = "trivia:leaderboard"

// LeaderboardStore keeps the ranked entries as a Redis list of JSON
// documents, head first. Ranking itself happens in app.Leaderboard.
type LeaderboardStore struct {
	client *redis.Client
	key    string
}

func NewLeaderboardStore(client *redis.Client, key string) *LeaderboardStore {
	if key == "" {
		key = defaultLeaderboardKey
	}
	return &LeaderboardStore{client: client, key: key}
}

func (s *LeaderboardStore) Load(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	raw, err := s.client.LRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("lrange %s: %w", s.key, err)
	}
	entries := make([]domain.LeaderboardEntry, 0, len(raw))
	for i, item := range raw {
		var e domain.LeaderboardEntry
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			return nil, fmt.Errorf("decode %s[%d]: %w", s.key, i, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Save replaces the whole list in one MULTI/EXEC.
func (s *LeaderboardStore) Save(ctx context.Context, entries []domain.LeaderboardEntry) error {
	values := make([]interface{}, 0, len(entries))
	for _, e := range entries {
		data, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("encode entry: %w", err)
		}
		values = append(values, string(data))
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.key)
		if len(values) > 0 {
			pipe.RPush(ctx, s.key, values...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save %s: %w", s.key, err)
	}
	return nil
}
