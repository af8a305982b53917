package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"trivia-challenge/internal/domain"
)

// LeaderboardStore keeps ranked entries in the leaderboard table.
type LeaderboardStore struct {
	pool *pgxpool.Pool
}

func NewLeaderboardStore(pool *pgxpool.Pool) *LeaderboardStore {
	return &LeaderboardStore{pool: pool}
}

func (s *LeaderboardStore) Load(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	rows, err := s.pool.Query(ctx, `SELECT name, score FROM leaderboard ORDER BY rank`)
	if err != nil {
		return nil, fmt.Errorf("load leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []domain.LeaderboardEntry
	for rows.Next() {
		var e domain.LeaderboardEntry
		if err := rows.Scan(&e.Name, &e.Score); err != nil {
			return nil, fmt.Errorf("scan leaderboard: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Save rewrites the table in a single transaction.
func (s *LeaderboardStore) Save(ctx context.Context, entries []domain.LeaderboardEntry) error {
	return s.pool.BeginFunc(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM leaderboard`); err != nil {
			return fmt.Errorf("clear leaderboard: %w", err)
		}
		batch := &pgx.Batch{}
		for i, e := range entries {
			batch.Queue(`INSERT INTO leaderboard (rank, name, score) VALUES ($1, $2, $3)`, i+1, e.Name, e.Score)
		}
		if batch.Len() == 0 {
			return nil
		}
		results := tx.SendBatch(ctx, batch)
		for range entries {
			if _, err := results.Exec(); err != nil {
				_ = results.Close()
				return fmt.Errorf("insert leaderboard: %w", err)
			}
		}
		return results.Close()
	})
}
