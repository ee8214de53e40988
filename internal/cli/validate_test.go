package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Valid(t *testing.T) {
	out, _, err := executeCommand(t, "validate", chronologyDir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ All chronologies valid (1)")
}

func TestValidate_ValidJSON(t *testing.T) {
	out, _, err := executeCommand(t, "--format", "json", "validate", chronologyDir)
	require.NoError(t, err)

	var result ValidationResult
	resp := decodeResponse(t, out, &result)
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, result.Valid)
	assert.Equal(t, []string{"Mock"}, result.Chronologies)
}

func TestValidate_DefaultsToChronologyFlag(t *testing.T) {
	out, _, err := executeCommand(t, "--chronology", chronologyDir, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ All chronologies valid")
}

func TestValidate_CommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no_paths", []string{"validate"}, "Error [E003]"},
		{"missing_path", []string{"validate", "/nonexistent/chronologies"}, "Error [E005]"},
		{"empty_dir", []string{"validate", t.TempDir()}, "Error [E003]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := executeCommand(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestValidate_Invalid(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code string
	}{
		{
			"syntax_error",
			"chronology: {",
			ErrCodeBuildFailed,
		},
		{
			"unit_not_shorter",
			`chronology: Bad: {rule: Tick: {unit: "Years", range: "Days", min: 0, max: 9}}`,
			"E106",
		},
		{
			"unknown_rule",
			`chronology: Bad: {
	rule: Tick: {unit: "Days", range: "Weeks", min: 0, max: 6}
	relation: [{parent: "Year", large: "Tock", small: "Tick", divisor: 7}]
}`,
			"E107",
		},
		{
			"missing_rule_field",
			`chronology: Bad: {rule: Tick: {unit: "Days", range: "Weeks", min: 0}}`,
			ErrCodeRuleShape,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "bad.cue", tt.src)

			out, _, err := executeCommand(t, "validate", path)
			require.Error(t, err)
			assert.Equal(t, ExitFailure, GetExitCode(err))
			assert.Contains(t, out, "✗ Validation failed")
			assert.Contains(t, out, tt.code)
		})
	}
}

func TestValidate_InvalidJSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.cue", `chronology: Bad: {rule: Tick: {unit: "Years", range: "Days", min: 9, max: 0}}`)

	out, _, err := executeCommand(t, "--format", "json", "validate", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var result ValidationResult
	resp := decodeResponse(t, out, &result)
	assert.Equal(t, "error", resp.Status)
	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, "E106", result.Errors[0].Code)
	assert.Equal(t, "E105", result.Errors[1].Code)
}

func TestValidate_DuplicateChronology(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.cue", mockChronologyCUE)
	writeFile(t, dir, "b.cue", mockChronologyCUE)

	out, _, err := executeCommand(t, "validate", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, ErrCodeDuplicate)
	assert.Contains(t, out, "already declared")
}

func TestValidateSpecs_Empty(t *testing.T) {
	formatter := &OutputFormatter{Format: "text"}
	assert.Empty(t, ValidateSpecs(nil, formatter))
}
