package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Scenario is a named list of merge cases sharing a set of chronologies.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Chronologies lists CUE files with custom chronology declarations.
	// Paths are relative to the scenario file location.
	Chronologies []string `yaml:"chronologies,omitempty"`

	// MaxPasses overrides the engine pass limit. Zero means the default.
	MaxPasses int `yaml:"max_passes,omitempty"`

	// Cases run in order against one engine.
	Cases []Case `yaml:"cases"`
}

// Case is one merge and its expected outcome.
type Case struct {
	Name   string           `yaml:"name"`
	Fields map[string]int64 `yaml:"fields"`

	// Mode is strict or lenient. Empty means strict.
	Mode string `yaml:"mode,omitempty"`

	// CheckUnused defaults to true.
	CheckUnused *bool `yaml:"check_unused,omitempty"`

	Zone     string `yaml:"zone,omitempty"`
	Resolver string `yaml:"resolver,omitempty"`

	Expect Expect `yaml:"expect"`
}

// Expect describes the outcome a case must produce. Exactly one of Result
// and Error is set.
type Expect struct {
	Result  string           `yaml:"result,omitempty"`
	Error   string           `yaml:"error,omitempty"`
	Message string           `yaml:"message,omitempty"`
	Passes  int              `yaml:"passes,omitempty"`
	Values  map[string]int64 `yaml:"values,omitempty"`
}

// Mode names.
const (
	ModeStrict  = "strict"
	ModeLenient = "lenient"
)

// Request converts the case into a merge request.
func (c Case) Request() Request {
	checkUnused := true
	if c.CheckUnused != nil {
		checkUnused = *c.CheckUnused
	}
	return Request{
		Fields:      c.Fields,
		Strict:      c.Mode != ModeLenient,
		CheckUnused: checkUnused,
		Zone:        c.Zone,
		Resolver:    c.Resolver,
	}
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
// Chronology paths are resolved relative to the file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	base := filepath.Dir(path)
	for i, p := range scenario.Chronologies {
		if !filepath.IsAbs(p) {
			scenario.Chronologies[i] = filepath.Join(base, p)
		}
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}
	return &scenario, nil
}

// LoadScenarios loads every .yaml file in dir, sorted by file name.
func LoadScenarios(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("scan scenarios: %w", err)
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	names := map[string]string{}
	for _, p := range paths {
		s, err := LoadScenario(p)
		if err != nil {
			return nil, err
		}
		if prev, dup := names[s.Name]; dup {
			return nil, fmt.Errorf("scenario name %q used by %s and %s", s.Name, prev, p)
		}
		names[s.Name] = p
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.MaxPasses < 0 {
		return fmt.Errorf("max_passes must be non-negative")
	}
	if len(s.Cases) == 0 {
		return fmt.Errorf("cases list is required and must be non-empty")
	}

	for _, p := range s.Chronologies {
		if _, err := os.Stat(p); os.IsNotExist(err) {
			return fmt.Errorf("chronology file not found: %s", p)
		}
	}

	seen := map[string]bool{}
	for i, c := range s.Cases {
		if err := validateCase(i, &c); err != nil {
			return err
		}
		if seen[c.Name] {
			return fmt.Errorf("cases[%d]: duplicate name %q", i, c.Name)
		}
		seen[c.Name] = true
	}
	return nil
}

func validateCase(i int, c *Case) error {
	if c.Name == "" {
		return fmt.Errorf("cases[%d]: name is required", i)
	}
	if c.Fields == nil {
		return fmt.Errorf("cases[%d]: fields is required (use {} for an empty map)", i)
	}
	switch c.Mode {
	case "", ModeStrict, ModeLenient:
	default:
		return fmt.Errorf("cases[%d]: unknown mode %q", i, c.Mode)
	}

	e := c.Expect
	switch {
	case e.Result == "" && e.Error == "":
		return fmt.Errorf("cases[%d].expect: result or error is required", i)
	case e.Result != "" && e.Error != "":
		return fmt.Errorf("cases[%d].expect: result and error are mutually exclusive", i)
	case e.Message != "" && e.Error == "":
		return fmt.Errorf("cases[%d].expect: message requires error", i)
	case len(e.Values) > 0 && e.Error != "":
		return fmt.Errorf("cases[%d].expect: values require a result", i)
	case e.Passes < 0:
		return fmt.Errorf("cases[%d].expect: passes must be non-negative", i)
	}
	return nil
}
