package socio

import (
	"errors"
	"math"
	"strconv"
	"testing"
)

func TestSummarize(t *testing.T) {
	cells := []Cell{
		MustCell(10000, 10, nil, 20, Primary),                         // 10+1+0+4+10 = 25 low
		MustCell(30000, 50, []Service{School}, 40, Secondary),         // 30+5+5+8+20 = 68 medium
		MustCell(60000, 90, []Service{School, Store}, 60, University), // 60+9+10+12+30 high
		MustCell(20000, 30, nil, 30, Primary),                         // 20+3+0+6+10 = 39 low
	}
	s := Summarize(cells, 4, RuleEducation)
	if s.Counts != [3]int{2, 1, 1} {
		t.Fatalf("counts=%v", s.Counts)
	}
	if s.ByStatus["low"] != 2 || s.ByStatus["high"] != 1 {
		t.Fatalf("by status=%v", s.ByStatus)
	}
	if s.MeanIncome != 30000 || s.MeanDensity != 45 || s.MeanAge != 37.5 || s.MeanEducation != 1.75 || s.MeanServices != 0.75 {
		t.Fatalf("unexpected means %+v", s)
	}
	if s.Generation != 4 || s.Rule != "education" {
		t.Fatalf("generation/rule not carried: %+v", s)
	}
	if math.Abs(s.Share(Low)-0.5) > 1e-12 {
		t.Fatalf("share(low)=%v", s.Share(Low))
	}
	if empty := Summarize(nil, 0, RuleInfrastructure); empty.Share(High) != 0 {
		t.Fatal("empty summary must report zero shares")
	}
}

func TestParametersSnapshot(t *testing.T) {
	cfg := gridConfig(6, 9)
	cfg.Seed = 77
	a, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := a.Apply(RuleInfrastructure); err != nil {
		t.Fatal(err)
	}
	snap := a.Parameters()
	checks := map[string]string{"rows": "6", "cols": "9", "seed": "77", "rule": "infrastructure", "rule_index": "0", "generation": "1"}
	for key, want := range checks {
		p, ok := snap.Lookup(key)
		if !ok || p.Value != want {
			t.Fatalf("param %s = %+v (found %v), want %s", key, p, ok, want)
		}
	}
	total := 0
	for _, key := range []string{"low", "medium", "high"} {
		p, _ := snap.Lookup(key)
		n, err := strconv.Atoi(p.Value)
		if err != nil {
			t.Fatal(err)
		}
		total += n
	}
	if total != 54 {
		t.Fatalf("status counts sum to %d, want 54", total)
	}
}

func TestSetIntParameterSelectsRule(t *testing.T) {
	a, err := New(gridConfig(3, 3))
	if err != nil {
		t.Fatal(err)
	}
	if !a.SetIntParameter("rule_index", int(RuleRedistribution)) || a.Rule() != RuleRedistribution {
		t.Fatalf("rule not updated: %s", a.Rule())
	}
	if a.SetIntParameter("rule_index", 3) || a.SetIntParameter("seed", 1) {
		t.Fatal("invalid parameter updates must be refused")
	}
	if ctrls := a.ParameterControls(); len(ctrls) != 1 || ctrls[0].Max != int(RuleRedistribution) {
		t.Fatalf("unexpected controls %+v", ctrls)
	}
}

func TestAttributeFieldNormalised(t *testing.T) {
	a := incomeGrid(t)
	f := a.AttributeField(AttrIncome)
	if f[0] != 0 || f[8] != 1 || f[4] != 0.5 {
		t.Fatalf("unexpected income field %v", f)
	}
	for _, v := range a.AttributeField(AttrDensity) {
		if v != 0 {
			t.Fatalf("uniform density should map to zero, got %v", v)
		}
	}
}

func TestFromMap(t *testing.T) {
	c, err := FromMap(map[string]string{"rows": "12", "seed": "-4", "rule": "Redistribution", "workers": "3"})
	if err != nil {
		t.Fatal(err)
	}
	if c.Rows != 12 || c.Cols != 40 || c.Seed != -4 || c.Rule != RuleRedistribution || c.Workers != 3 {
		t.Fatalf("unexpected config %+v", c)
	}
	if d, err := FromMap(nil); err != nil || d != DefaultConfig() {
		t.Fatalf("FromMap(nil)=%+v, %v", d, err)
	}
}

func TestFromMapRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		in   map[string]string
		want error
	}{
		{"zero rows", map[string]string{"rows": "0"}, ErrInvalidDimensions},
		{"negative cols", map[string]string{"cols": "-3"}, ErrInvalidDimensions},
		{"unparseable cols", map[string]string{"cols": "x"}, ErrInvalidDimensions},
		{"unknown rule", map[string]string{"rule": "gentrification"}, ErrUnknownRule},
		{"unparseable seed", map[string]string{"seed": "abc"}, nil},
		{"zero workers", map[string]string{"workers": "0"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromMap(tt.in)
			if err == nil {
				t.Fatalf("FromMap(%v) accepted invalid input", tt.in)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Fatalf("err=%v, want %v", err, tt.want)
			}
		})
	}
}
