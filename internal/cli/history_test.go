package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThreeTen/threetenbp-sub007/internal/engine"
	"github.com/ThreeTen/threetenbp-sub007/internal/store"
	"github.com/ThreeTen/threetenbp-sub007/internal/testutil"
)

// seedJournal creates a journal holding entries, with ids merge-0001,
// merge-0002, ... in order.
func seedJournal(t *testing.T, entries ...store.Entry) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "merges.db")
	st, err := store.Open(path, store.WithIDGenerator(testutil.NewSequenceIDGenerator("")))
	require.NoError(t, err)
	defer st.Close()

	for _, e := range entries {
		_, err := st.Record(context.Background(), e)
		require.NoError(t, err)
	}
	return path
}

func okEntry(input map[string]int64, result string, passes int) store.Entry {
	return store.Entry{
		Input:         input,
		Strict:        true,
		CheckUnused:   true,
		Outcome:       store.Outcome{Status: store.StatusOK, Result: result, Passes: passes},
		EngineVersion: engine.Version,
	}
}

func TestHistory_Text(t *testing.T) {
	db := seedJournal(t,
		okEntry(map[string]int64{"ISO.Year": 2011, "ISO.DayOfYear": 166}, "2011-06-15", 2),
		store.Entry{
			Input:         map[string]int64{"ISO.HourOfDay": 25},
			Strict:        true,
			Outcome:       store.Outcome{Status: "RANGE_VIOLATION", Result: "value 25 for HourOfDay is outside the valid range 0 - 23"},
			EngineVersion: engine.Version,
		},
	)

	out, _, err := executeCommand(t, "--db", db, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "   1  merge-0001  ok  {ISO.DayOfYear=166, ISO.Year=2011} -> 2011-06-15\n")
	assert.Contains(t, out, "   2  merge-0002  RANGE_VIOLATION  {ISO.HourOfDay=25} -> value 25")
}

func TestHistory_Filters(t *testing.T) {
	db := seedJournal(t,
		okEntry(map[string]int64{"ISO.EpochDay": 15140}, "2011-06-15", 2),
		store.Entry{
			Input:         map[string]int64{"ISO.HourOfDay": 25},
			Strict:        true,
			Outcome:       store.Outcome{Status: "RANGE_VIOLATION", Result: "out of range"},
			EngineVersion: engine.Version,
		},
		okEntry(map[string]int64{"ISO.EpochDay": 15141}, "2011-06-16", 2),
	)

	out, _, err := executeCommand(t, "--db", db, "--format", "json", "history", "--status", "ok")
	require.NoError(t, err)
	var history []HistoryEntry
	decodeResponse(t, out, &history)
	require.Len(t, history, 2)
	assert.Equal(t, "merge-0001", history[0].ID)
	assert.Equal(t, "merge-0003", history[1].ID)
	assert.Equal(t, engine.Version, history[0].EngineVersion)
	assert.NotEmpty(t, history[0].InputHash)

	out, _, err = executeCommand(t, "--db", db, "--format", "json", "history", "--limit", "1")
	require.NoError(t, err)
	history = nil
	decodeResponse(t, out, &history)
	require.Len(t, history, 1)
	assert.Equal(t, int64(1), history[0].Seq)
}

func TestHistory_ByID(t *testing.T) {
	db := seedJournal(t, okEntry(map[string]int64{"ISO.EpochDay": 15140}, "2011-06-15", 2))

	out, _, err := executeCommand(t, "--db", db, "--format", "json", "history", "merge-0001")
	require.NoError(t, err)
	var history []HistoryEntry
	decodeResponse(t, out, &history)
	require.Len(t, history, 1)
	assert.Equal(t, map[string]int64{"ISO.EpochDay": 15140}, history[0].Input)
	assert.True(t, history[0].Strict)

	out, _, err = executeCommand(t, "--db", db, "history", "merge-9999")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "no merge with id merge-9999")
}

func TestHistory_Empty(t *testing.T) {
	db := seedJournal(t)

	out, _, err := executeCommand(t, "--db", db, "history")
	require.NoError(t, err)
	assert.Equal(t, "No merges recorded.\n", out)

	out, _, err = executeCommand(t, "--db", db, "--format", "json", "history")
	require.NoError(t, err)
	resp := decodeResponse(t, out, nil)
	assert.Equal(t, "ok", resp.Status)
	assert.JSONEq(t, "[]", string(resp.Data))
}

func TestHistory_DatabaseErrors(t *testing.T) {
	out, _, err := executeCommand(t, "history")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "--db is required")

	out, _, err = executeCommand(t, "--db", filepath.Join(t.TempDir(), "missing.db"), "history")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "database not found")
}

func TestFormatInput(t *testing.T) {
	assert.Equal(t, "{}", formatInput(nil))
	assert.Equal(t, "{ISO.DayOfMonth=15, ISO.Year=2011}", formatInput(map[string]int64{"ISO.Year": 2011, "ISO.DayOfMonth": 15}))
}
