package store

import (
	"path/filepath"
	"testing"

	"github.com/ThreeTen/threetenbp-sub007/internal/testutil"
)

// createTestStore creates a store in a temp dir with predictable ids.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, WithIDGenerator(testutil.NewSequenceIDGenerator("")))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestEntry creates an entry for a plain year-month-day merge.
func createTestEntry(day int64) Entry {
	return Entry{
		Input: map[string]int64{
			"ISO.Year":        2011,
			"ISO.MonthOfYear": 6,
			"ISO.DayOfMonth":  day,
		},
		Strict:      true,
		CheckUnused: true,
		Outcome: Outcome{
			Status: StatusOK,
			Result: "2011-06-" + twoDigits(day),
			Passes: 2,
		},
		EngineVersion: "0.1.0",
	}
}

func twoDigits(n int64) string {
	return string([]byte{byte('0' + n/10), byte('0' + n%10)})
}
