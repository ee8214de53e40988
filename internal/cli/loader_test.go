package cli

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindCUEFiles(t *testing.T) {
	dir := t.TempDir()
	b := writeFile(t, dir, "b.cue", mockChronologyCUE)
	a := writeFile(t, dir, "nested/a.cue", mockChronologyCUE)
	writeFile(t, dir, "notes.txt", "not cue")

	files, err := FindCUEFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{b, a}, files, "sorted by path")

	files, err = FindCUEFiles(b)
	require.NoError(t, err)
	assert.Equal(t, []string{b}, files)

	_, err = FindCUEFiles(filepath.Join(dir, "missing"))
	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, ErrCodeNotFound, le.Code)
}

func TestLoadChronologies(t *testing.T) {
	result, errs := LoadChronologies([]string{chronologyDir}, LoadModeCollectAll)
	require.Empty(t, errs)
	require.NotNil(t, result)
	assert.Equal(t, 1, result.FileCount)
	require.Len(t, result.Specs, 1)
	assert.Equal(t, "Mock", result.Specs[0].Name)
	assert.Len(t, result.Specs[0].Rules, 4)
	assert.Len(t, result.Specs[0].Relations, 2)
	assert.Equal(t, filepath.Join(chronologyDir, "mock.cue"), result.SpecFiles[0])
}

func TestLoadChronologies_Modes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a_syntax.cue", "chronology: {")
	writeFile(t, dir, "b_shape.cue", `chronology: Bad: {relation: [{parent: "Year", large: "A", small: "B"}]}`)
	writeFile(t, dir, "c_ok.cue", mockChronologyCUE)

	result, errs := LoadChronologies([]string{dir}, LoadModeFailFast)
	require.NotNil(t, result)
	require.Len(t, errs, 1)
	assert.Empty(t, result.Specs)

	result, errs = LoadChronologies([]string{dir}, LoadModeCollectAll)
	require.NotNil(t, result)
	require.Len(t, errs, 2)
	require.Len(t, result.Specs, 1)
	assert.Equal(t, "Mock", result.Specs[0].Name)

	var syntax, shape *LoadError
	require.True(t, errors.As(errs[0], &syntax))
	assert.Equal(t, ErrCodeBuildFailed, syntax.Code)
	assert.True(t, syntax.Pos.IsValid(), "CUE errors carry a position")
	require.True(t, errors.As(errs[1], &shape))
	assert.Equal(t, ErrCodeRelationShape, shape.Code)
}

func TestLoadChronologies_NothingDeclared(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "empty.cue", "other: 1")

	result, errs := LoadChronologies([]string{dir}, LoadModeCollectAll)
	require.NotNil(t, result)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "no chronologies found")
}

func TestLoadCatalog(t *testing.T) {
	cat, err := LoadCatalog(nil)
	require.NoError(t, err)
	assert.Empty(t, cat.Chronologies())

	cat, err = LoadCatalog([]string{chronologyDir})
	require.NoError(t, err)
	_, ok := cat.Lookup("Mock.DecadeOfCentury")
	assert.True(t, ok)

	dir := t.TempDir()
	writeFile(t, dir, "a.cue", mockChronologyCUE)
	writeFile(t, dir, "b.cue", mockChronologyCUE)
	_, err = LoadCatalog([]string{dir})
	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, ErrCodeBuildFailed, le.Code)
	assert.Contains(t, le.Message, "already declared")
}

func TestMapFieldToErrorCode(t *testing.T) {
	tests := map[string]string{
		"cue":              ErrCodeBuildFailed,
		"chronology.Bad":   ErrCodeChronologyShape,
		"rule.Tick.max":    ErrCodeRuleShape,
		"relation[0]":      ErrCodeRelationShape,
		"relation[1].bits": ErrCodeRelationShape,
		"something":        ErrCodeGeneric,
	}
	for field, want := range tests {
		assert.Equal(t, want, MapFieldToErrorCode(field), field)
	}
}

func TestLoadError(t *testing.T) {
	err := &LoadError{Code: ErrCodeNotFound, Message: "chronology path not found: x"}
	assert.Equal(t, "E005: chronology path not found: x", err.Error())
}
