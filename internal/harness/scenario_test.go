package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadScenario_Valid(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/mock_chronology.yaml")
	require.NoError(t, err)

	assert.Equal(t, "mock_chronology", s.Name)
	require.Len(t, s.Chronologies, 1)
	assert.Equal(t, filepath.Join("testdata", "chronologies", "mock.cue"), s.Chronologies[0])
	require.Len(t, s.Cases, 3)
	assert.Equal(t, int64(19), s.Cases[0].Fields["Century"])
	assert.Equal(t, 3, s.Cases[0].Expect.Passes)
}

func TestLoadScenario_Defaults(t *testing.T) {
	path := writeScenario(t, `
name: defaults
description: "mode and check_unused defaults"
cases:
  - name: a
    fields: {Year: 2011}
    expect: {result: "{Year=2011}"}
  - name: b
    mode: lenient
    check_unused: false
    fields: {}
    expect: {result: "{}"}
`)
	s, err := LoadScenario(path)
	require.NoError(t, err)

	a := s.Cases[0].Request()
	assert.True(t, a.Strict)
	assert.True(t, a.CheckUnused)

	b := s.Cases[1].Request()
	assert.False(t, b.Strict)
	assert.False(t, b.CheckUnused)
	assert.Empty(t, b.Fields)
}

func TestLoadScenario_RejectsUnknownFields(t *testing.T) {
	path := writeScenario(t, `
name: typo
description: "misspelled key"
case:
  - name: a
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "missing name",
			content: "description: d\ncases: [{name: a, fields: {}, expect: {result: x}}]\n",
			want:    "name is required",
		},
		{
			name:    "no cases",
			content: "name: n\ndescription: d\ncases: []\n",
			want:    "cases list is required",
		},
		{
			name:    "missing fields",
			content: "name: n\ndescription: d\ncases: [{name: a, expect: {result: x}}]\n",
			want:    "fields is required",
		},
		{
			name:    "no expectation",
			content: "name: n\ndescription: d\ncases: [{name: a, fields: {}, expect: {}}]\n",
			want:    "result or error is required",
		},
		{
			name:    "both result and error",
			content: "name: n\ndescription: d\ncases: [{name: a, fields: {}, expect: {result: x, error: y}}]\n",
			want:    "mutually exclusive",
		},
		{
			name:    "message without error",
			content: "name: n\ndescription: d\ncases: [{name: a, fields: {}, expect: {result: x, message: m}}]\n",
			want:    "message requires error",
		},
		{
			name:    "bad mode",
			content: "name: n\ndescription: d\ncases: [{name: a, mode: loose, fields: {}, expect: {result: x}}]\n",
			want:    `unknown mode "loose"`,
		},
		{
			name:    "duplicate case",
			content: "name: n\ndescription: d\ncases: [{name: a, fields: {}, expect: {result: x}}, {name: a, fields: {}, expect: {result: x}}]\n",
			want:    `duplicate name "a"`,
		},
		{
			name:    "missing chronology",
			content: "name: n\ndescription: d\nchronologies: [nope.cue]\ncases: [{name: a, fields: {}, expect: {result: x}}]\n",
			want:    "chronology file not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScenario(writeScenario(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadScenario_FileNotFound(t *testing.T) {
	_, err := LoadScenario("testdata/scenarios/nope.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenarios_SortedByFile(t *testing.T) {
	scenarios, err := LoadScenarios("testdata/scenarios")
	require.NoError(t, err)

	var names []string
	for _, s := range scenarios {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"iso_dates", "iso_times", "mock_chronology", "zones"}, names)
}
