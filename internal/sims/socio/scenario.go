package socio

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// ErrInvalidScenario reports a scenario file that fails validation.
var ErrInvalidScenario = errors.New("socio: invalid scenario")

//go:embed scenario.schema.json
var scenarioSchemaSource string

var scenarioSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	return jsonschema.CompileString("scenario.schema.json", scenarioSchemaSource)
})

// Scenario describes a grid and an ordered rule program.
type Scenario struct {
	Name    string       `yaml:"name" json:"name,omitempty"`
	Rows    int          `yaml:"rows" json:"rows"`
	Cols    int          `yaml:"cols" json:"cols"`
	Seed    int64        `yaml:"seed" json:"seed"`
	Workers int          `yaml:"workers" json:"workers,omitempty"`
	Program []RuleRepeat `yaml:"program" json:"program"`
}

// RuleRepeat applies Rule Repeat times; Repeat 0 means once.
type RuleRepeat struct {
	Rule   string `yaml:"rule" json:"rule"`
	Repeat int    `yaml:"repeat" json:"repeat,omitempty"`
}

// LoadScenario reads and validates a YAML scenario file.
func LoadScenario(path string) (Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, err
	}
	sc, err := ParseScenario(raw)
	if err != nil {
		return Scenario{}, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// ParseScenario validates raw YAML against the scenario schema and decodes
// it.
func ParseScenario(raw []byte) (Scenario, error) {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return Scenario{}, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	// Round-trip through JSON so the validator sees JSON-typed values.
	js, err := json.Marshal(doc)
	if err != nil {
		return Scenario{}, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	var inst any
	if err := json.Unmarshal(js, &inst); err != nil {
		return Scenario{}, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	schema, err := scenarioSchema()
	if err != nil {
		return Scenario{}, fmt.Errorf("compile scenario schema: %w", err)
	}
	if err := schema.Validate(inst); err != nil {
		return Scenario{}, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	var sc Scenario
	if err := yaml.Unmarshal(raw, &sc); err != nil {
		return Scenario{}, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	if err := validateDimensions(sc.Rows, sc.Cols); err != nil {
		return Scenario{}, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	// Rule names go through ParseRule so scenarios accept the same
	// labels and aliases as the command line.
	for i, p := range sc.Program {
		if _, err := ParseRule(p.Rule); err != nil {
			return Scenario{}, fmt.Errorf("%w: program[%d]: %w", ErrInvalidScenario, i, err)
		}
	}
	return sc, nil
}

// Config converts the scenario into an automaton configuration. The first
// program entry, if any, becomes the selected rule.
func (s Scenario) Config(logger *slog.Logger) (Config, error) {
	cfg := DefaultConfig()
	cfg.Rows = s.Rows
	cfg.Cols = s.Cols
	cfg.Seed = s.Seed
	if s.Workers > 0 {
		cfg.Workers = s.Workers
	}
	cfg.Logger = logger
	if len(s.Program) > 0 {
		r, err := ParseRule(s.Program[0].Rule)
		if err != nil {
			return Config{}, err
		}
		cfg.Rule = r
	}
	return cfg, nil
}

// Steps returns the total number of steps the program applies.
func (s Scenario) Steps() int {
	n := 0
	for _, p := range s.Program {
		n += max(p.Repeat, 1)
	}
	return n
}

// Run applies the program to a, calling after (if non-nil) once per
// committed step. It stops at the first failing step.
func (s Scenario) Run(a *Automaton, after func(Stats)) error {
	for _, p := range s.Program {
		r, err := ParseRule(p.Rule)
		if err != nil {
			return err
		}
		if err := a.SetRule(r); err != nil {
			return err
		}
		for i := 0; i < max(p.Repeat, 1); i++ {
			if err := a.Step(); err != nil {
				return err
			}
			if after != nil {
				after(a.Stats())
			}
		}
	}
	return nil
}
