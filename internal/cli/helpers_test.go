package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Scenario and chronology fixtures shared with the harness tests.
const (
	scenariosDir  = "../harness/testdata/scenarios"
	goldenDir     = "../harness/testdata/golden"
	chronologyDir = "../harness/testdata/chronologies"
)

const mockChronologyCUE = `
chronology: Mock: {
	rule: Century: {unit: "Centuries", range: "Forever", min: -1000, max: 1000}
	rule: YearOfCentury: {unit: "Years", range: "Centuries", min: 0, max: 99}

	relation: [
		{parent: "Year", large: "Century", small: "YearOfCentury", divisor: 100},
	]
}
`

// executeCommand runs the root command with args and returns what it wrote
// to stdout and stderr.
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

// jsonResponse is CLIResponse with the payload left undecoded.
type jsonResponse struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  *CLIError       `json:"error"`
}

// decodeResponse parses a JSON response and decodes its payload into data,
// when data is not nil.
func decodeResponse(t *testing.T, out string, data any) jsonResponse {
	t.Helper()
	var resp jsonResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp), "output: %s", out)
	if data != nil {
		require.NotEmpty(t, resp.Data, "response has no data")
		require.NoError(t, json.Unmarshal(resp.Data, data))
	}
	return resp
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
