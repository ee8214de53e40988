package harness

import "github.com/ThreeTen/threetenbp-sub007/internal/store"

// CaseResult is the outcome of one case.
type CaseResult struct {
	Name string `json:"name"`

	// Input is the resolved field map keyed by rule ID.
	Input map[string]int64 `json:"input"`

	Outcome store.Outcome `json:"outcome"`

	// JournalID is set when the case was recorded.
	JournalID string `json:"journal_id,omitempty"`

	Pass   bool     `json:"pass"`
	Errors []string `json:"errors,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	Scenario string `json:"scenario"`

	// Pass is true when every case met its expectation.
	Pass bool `json:"pass"`

	Cases []CaseResult `json:"cases"`

	// Errors collects every case error prefixed with the case name.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult(scenario string) *Result {
	return &Result{
		Scenario: scenario,
		Pass:     true,
		Cases:    []CaseResult{},
		Errors:   []string{},
	}
}

// AddCase appends a case result and folds its errors into the scenario.
func (r *Result) AddCase(c CaseResult) {
	r.Cases = append(r.Cases, c)
	for _, e := range c.Errors {
		r.AddError(c.Name + ": " + e)
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
