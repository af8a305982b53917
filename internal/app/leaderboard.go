package app

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"trivia-challenge/internal/domain"
)

// DefaultLeaderboardSize caps the number of retained entries.
const DefaultLeaderboardSize = 10

// LeaderboardStore persists the ranked entries (JSON file, SQLite, Redis, Postgres).
// Save must replace the previous contents atomically.
type LeaderboardStore interface {
	Load(ctx context.Context) ([]domain.LeaderboardEntry, error)
	Save(ctx context.Context, entries []domain.LeaderboardEntry) error
}

// HighScoreStore persists the single best score of the legacy mode.
type HighScoreStore interface {
	Load(ctx context.Context) (int, error)
	Save(ctx context.Context, score int) error
}

// ScoreKeeper is what the session controller needs from score persistence.
// Load is called once per round; Record works on that snapshot and returns
// the board to display.
type ScoreKeeper interface {
	Load(ctx context.Context) []domain.LeaderboardEntry
	Record(ctx context.Context, board []domain.LeaderboardEntry, name string, score int) ([]domain.LeaderboardEntry, error)
	RequiresName() bool
}

// BestOf is the top score of a ranked board, 0 when empty.
func BestOf(board []domain.LeaderboardEntry) int {
	if len(board) == 0 {
		return 0
	}
	return board[0].Score
}

// TopOf returns at most n leading entries; n <= 0 means all.
func TopOf(board []domain.LeaderboardEntry, n int) []domain.LeaderboardEntry {
	if n > 0 && n < len(board) {
		return board[:n]
	}
	return board
}

// Leaderboard keeps the best score per player, ranked and size-capped.
type Leaderboard struct {
	store LeaderboardStore
	max   int
	log   *zap.Logger
}

func NewLeaderboard(store LeaderboardStore, max int, log *zap.Logger) *Leaderboard {
	if max <= 0 {
		max = DefaultLeaderboardSize
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Leaderboard{store: store, max: max, log: log}
}

// Load returns the ranked entries. Missing or unreadable storage is the empty board.
func (l *Leaderboard) Load(ctx context.Context) []domain.LeaderboardEntry {
	entries, err := l.store.Load(ctx)
	if err != nil {
		l.log.Warn("leaderboard unreadable, starting empty", zap.Error(err))
		return []domain.LeaderboardEntry{}
	}
	return l.normalize(entries)
}

// RecordScore raises name's score if the new one is strictly higher (or adds
// the player), re-ranks, truncates and persists. The updated board is returned
// even when saving fails.
func (l *Leaderboard) RecordScore(ctx context.Context, name string, score int) ([]domain.LeaderboardEntry, error) {
	return l.Record(ctx, l.Load(ctx), name, score)
}

// Record is RecordScore applied to an already loaded board.
func (l *Leaderboard) Record(ctx context.Context, board []domain.LeaderboardEntry, name string, score int) ([]domain.LeaderboardEntry, error) {
	name = domain.PlayerName(name)
	if score < 0 {
		score = 0
	}
	entries := append([]domain.LeaderboardEntry(nil), board...)

	found := false
	for i := range entries {
		if entries[i].Name == name {
			found = true
			if score > entries[i].Score {
				entries[i].Score = score
			}
			break
		}
	}
	if !found {
		entries = append(entries, domain.LeaderboardEntry{Name: name, Score: score})
	}
	entries = l.rank(entries)

	if err := l.store.Save(ctx, entries); err != nil {
		l.log.Error("leaderboard save failed", zap.String("player", name), zap.Error(err))
		return entries, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	l.log.Info("leaderboard updated", zap.String("player", name), zap.Int("score", score))
	return entries, nil
}

// normalize restores the invariants on data read back from storage: one entry
// per name (highest wins), descending order, size cap.
func (l *Leaderboard) normalize(entries []domain.LeaderboardEntry) []domain.LeaderboardEntry {
	seen := make(map[string]int, len(entries))
	out := make([]domain.LeaderboardEntry, 0, len(entries))
	for _, e := range entries {
		e.Name = domain.PlayerName(e.Name)
		if e.Score < 0 {
			e.Score = 0
		}
		if i, ok := seen[e.Name]; ok {
			if e.Score > out[i].Score {
				out[i].Score = e.Score
			}
			continue
		}
		seen[e.Name] = len(out)
		out = append(out, e)
	}
	return l.rank(out)
}

// rank sorts by score descending; ties keep their existing order.
func (l *Leaderboard) rank(entries []domain.LeaderboardEntry) []domain.LeaderboardEntry {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	if len(entries) > l.max {
		entries = entries[:l.max]
	}
	return entries
}

func (l *Leaderboard) Best(ctx context.Context) int {
	return BestOf(l.Load(ctx))
}

func (l *Leaderboard) Top(ctx context.Context, n int) []domain.LeaderboardEntry {
	return TopOf(l.Load(ctx), n)
}

func (l *Leaderboard) RequiresName() bool { return true }

// HighScore is the single-value record used when no leaderboard is configured.
type HighScore struct {
	store HighScoreStore
	log   *zap.Logger
}

func NewHighScore(store HighScoreStore, log *zap.Logger) *HighScore {
	if log == nil {
		log = zap.NewNop()
	}
	return &HighScore{store: store, log: log}
}

// Best returns the stored high score, or 0 when it cannot be read.
func (h *HighScore) Best(ctx context.Context) int {
	score, err := h.store.Load(ctx)
	if err != nil {
		h.log.Warn("high score unreadable, using 0", zap.Error(err))
		return 0
	}
	if score < 0 {
		return 0
	}
	return score
}

// Load presents the high score as a one-entry board.
func (h *HighScore) Load(ctx context.Context) []domain.LeaderboardEntry {
	return highScoreBoard(h.Best(ctx))
}

// Record stores score if it beats the board's high score. name is ignored.
func (h *HighScore) Record(ctx context.Context, board []domain.LeaderboardEntry, _ string, score int) ([]domain.LeaderboardEntry, error) {
	if score <= BestOf(board) {
		return board, nil
	}
	if err := h.store.Save(ctx, score); err != nil {
		h.log.Error("high score save failed", zap.Error(err))
		return highScoreBoard(score), fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return highScoreBoard(score), nil
}

func (h *HighScore) RequiresName() bool { return false }

func highScoreBoard(score int) []domain.LeaderboardEntry {
	return []domain.LeaderboardEntry{{Name: "High score", Score: score}}
}
