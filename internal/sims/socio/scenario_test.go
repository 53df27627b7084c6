package socio

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const sampleScenario = `
name: three-phase
rows: 6
cols: 8
seed: 11
workers: 2
program:
  - rule: infrastructure
    repeat: 2
  - rule: education
  - rule: redistribution
    repeat: 3
`

func TestParseScenario(t *testing.T) {
	sc, err := ParseScenario([]byte(sampleScenario))
	if err != nil {
		t.Fatal(err)
	}
	if sc.Name != "three-phase" || sc.Rows != 6 || sc.Cols != 8 || sc.Seed != 11 || sc.Workers != 2 {
		t.Fatalf("unexpected scenario %+v", sc)
	}
	if sc.Steps() != 6 {
		t.Fatalf("Steps()=%d, want 6", sc.Steps())
	}
	cfg, err := sc.Config(nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Rows != 6 || cfg.Cols != 8 || cfg.Workers != 2 || cfg.Rule != RuleInfrastructure {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestParseScenarioRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"unknown rule":      "rows: 3\ncols: 3\nprogram:\n  - rule: gentrification\n",
		"zero rows":         "rows: 0\ncols: 3\n",
		"missing cols":      "rows: 3\n",
		"unknown field":     "rows: 3\ncols: 3\ncolour: red\n",
		"negative repeat":   "rows: 3\ncols: 3\nprogram:\n  - rule: education\n    repeat: -1\n",
		"single cell":       "rows: 1\ncols: 1\n",
		"not a mapping":     "- rows\n",
		"malformed yaml":    "rows: [3\n",
		"string dimensions": "rows: three\ncols: 3\n",
		"empty rule":        "rows: 3\ncols: 3\nprogram:\n  - rule: \"\"\n",
	}
	for name, doc := range cases {
		if _, err := ParseScenario([]byte(doc)); !errors.Is(err, ErrInvalidScenario) {
			t.Fatalf("%s: err=%v, want ErrInvalidScenario", name, err)
		}
	}
}

func TestParseScenarioAcceptsRuleAliases(t *testing.T) {
	doc := "rows: 3\ncols: 3\nprogram:\n  - rule: Education & Youth\n  - rule: redistribución\n  - rule: \" Infrastructure \"\n"
	sc, err := ParseScenario([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	want := []Rule{RuleEducation, RuleRedistribution, RuleInfrastructure}
	for i, p := range sc.Program {
		r, err := ParseRule(p.Rule)
		if err != nil || r != want[i] {
			t.Fatalf("program[%d] %q parsed as %v, %v", i, p.Rule, r, err)
		}
	}
	if _, err := ParseScenario([]byte("rows: 3\ncols: 3\nprogram:\n  - rule: gentrification\n")); !errors.Is(err, ErrUnknownRule) {
		t.Fatalf("err=%v, want ErrUnknownRule", err)
	}
}

func TestScenarioRun(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	if err := os.WriteFile(path, []byte(sampleScenario), 0o644); err != nil {
		t.Fatal(err)
	}
	sc, err := LoadScenario(path)
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := sc.Config(nil)
	if err != nil {
		t.Fatal(err)
	}
	a, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	var rules []string
	if err := sc.Run(a, func(s Stats) { rules = append(rules, s.Rule) }); err != nil {
		t.Fatal(err)
	}
	want := []string{"infrastructure", "infrastructure", "education", "redistribution", "redistribution", "redistribution"}
	if len(rules) != len(want) {
		t.Fatalf("ran %d steps, want %d", len(rules), len(want))
	}
	for i := range want {
		if rules[i] != want[i] {
			t.Fatalf("step %d used %s, want %s", i, rules[i], want[i])
		}
	}
	if a.Generation() != 6 || a.Rule() != RuleRedistribution {
		t.Fatalf("generation=%d rule=%s", a.Generation(), a.Rule())
	}
}

func TestLoadScenarioMissingFile(t *testing.T) {
	if _, err := LoadScenario(filepath.Join(t.TempDir(), "absent.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err=%v, want not-exist", err)
	}
}
