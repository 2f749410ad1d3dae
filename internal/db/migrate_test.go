package db_test

import (
	"testing"

	"github.com/joestump/cuecard/internal/testutil"
)

func TestMigrate_CreatesTables(t *testing.T) {
	conn := testutil.NewTestDB(t)

	for _, table := range []string{"sessions", "generation_events"} {
		var n int
		err := conn.Get(&n, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table)
		if err != nil {
			t.Fatalf("query %s: %v", table, err)
		}
		if n != 1 {
			t.Errorf("table %s missing", table)
		}
	}
}
