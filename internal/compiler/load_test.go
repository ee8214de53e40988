package compiler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCUE(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))
	return path
}

func TestLoadFiles(t *testing.T) {
	path := writeCUE(t, t.TempDir(), "mock.cue", mockChronologyCUE)

	cat, err := LoadFiles(path)
	require.NoError(t, err)
	require.Len(t, cat.Chronologies(), 1)

	r, ok := cat.Lookup("Mock.Century")
	require.True(t, ok)
	assert.Equal(t, "Mock.Century", r.ID())
}

func TestLoadFiles_None(t *testing.T) {
	cat, err := LoadFiles()
	require.NoError(t, err)
	assert.Empty(t, cat.Chronologies())

	_, ok := cat.Lookup("Year")
	assert.True(t, ok, "ISO rules are always available")
}

func TestLoadFiles_DuplicateChronology(t *testing.T) {
	dir := t.TempDir()
	a := writeCUE(t, dir, "a.cue", mockChronologyCUE)
	b := writeCUE(t, dir, "b.cue", mockChronologyCUE)

	_, err := LoadFiles(a, b)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already declared")
}

func TestLoadFiles_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFiles(filepath.Join(dir, "missing.cue"))
	assert.Error(t, err)

	syntax := writeCUE(t, dir, "syntax.cue", "chronology: {")
	_, err = LoadFiles(syntax)
	assert.Error(t, err)

	invalid := writeCUE(t, dir, "invalid.cue", `
chronology: Bad: {
	rule: Tick: {unit: "Years", range: "Days", min: 0, max: 9}
}
`)
	_, err = LoadFiles(invalid)
	require.Error(t, err)
	var verrs ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}
