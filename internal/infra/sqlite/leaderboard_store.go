package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"trivia-challenge/internal/domain"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

// LeaderboardStore persists ranked entries in the leaderboard table; the
// rank column preserves the order app.Leaderboard produced.
type LeaderboardStore struct {
	db *sql.DB
}

func NewLeaderboardStore(db *sql.DB) *LeaderboardStore {
	return &LeaderboardStore{db: db}
}

func (s *LeaderboardStore) Load(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	query, args, err := sqlBuilder.Select("name", "score").From("leaderboard").OrderBy("rank").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
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

// Save replaces the table contents in one transaction.
func (s *LeaderboardStore) Save(ctx context.Context, entries []domain.LeaderboardEntry) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	del, args, err := sqlBuilder.Delete("leaderboard").ToSql()
	if err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, del, args...); err != nil {
		return fmt.Errorf("clear leaderboard: %w", err)
	}

	if len(entries) > 0 {
		insert := sqlBuilder.Insert("leaderboard").Columns("rank", "name", "score")
		for i, e := range entries {
			insert = insert.Values(i+1, e.Name, e.Score)
		}
		var query string
		query, args, err = insert.ToSql()
		if err != nil {
			return err
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert leaderboard: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
