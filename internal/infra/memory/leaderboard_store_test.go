package memory

import (
	"context"
	"testing"

	"trivia-challenge/internal/domain"
)

func TestLeaderboardStoreCopiesEntries(t *testing.T) {
	store := NewLeaderboardStore(domain.LeaderboardEntry{Name: "Ann", Score: 5})

	loaded, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	loaded[0].Score = 99

	again, _ := store.Load(context.Background())
	if again[0].Score != 5 {
		t.Fatalf("store leaked its slice, got %d", again[0].Score)
	}

	if err := store.Save(context.Background(), []domain.LeaderboardEntry{{Name: "Bob", Score: 3}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	again, _ = store.Load(context.Background())
	if len(again) != 1 || again[0].Name != "Bob" || store.Saves() != 1 {
		t.Fatalf("unexpected state after save: %+v saves=%d", again, store.Saves())
	}
}
