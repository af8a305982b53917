package migrations

import (
	"strings"
	"testing"
)

func TestMigrationsRegistered(t *testing.T) {
	sorted := Migrations.Sorted()
	if len(sorted) != 1 {
		t.Fatalf("expected 1 migration, got %d", len(sorted))
	}
	if sorted[0].Name != "20241120000001" || sorted[0].Comment != "create_leaderboard" {
		t.Fatalf("unexpected migration %q (%q)", sorted[0].Name, sorted[0].Comment)
	}
	if !strings.Contains(createLeaderboardSQL, "CREATE TABLE IF NOT EXISTS leaderboard") {
		t.Fatalf("embedded sql missing table definition")
	}
}
