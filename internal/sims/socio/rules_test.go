package socio

import (
	"errors"
	"math"
	"testing"
)

func approx(a, b float64) bool { return math.Abs(a-b) <= 1e-9*math.Max(1, math.Abs(b)) }

func repeatCell(c Cell, n int) []Cell {
	out := make([]Cell, n)
	for i := range out {
		out[i] = c
	}
	return out
}

func TestInfrastructureThresholds(t *testing.T) {
	income, density := 50000.0, 50.0
	cur := MustCell(income, density, []Service{Store}, 40, Secondary)
	school := MustCell(20000, 10, []Service{School}, 40, Primary)

	cases := []struct {
		name        string
		schools     int
		wantIncome  float64
		wantDensity float64
	}{
		{"impact 21 boosts", 7, income * 1.10, density * 1.05},
		{"impact 9 decays", 3, income * 0.90, density * 0.95},
		{"impact 15 holds", 5, income, density},
	}
	for _, tc := range cases {
		neighbors := repeatCell(school, tc.schools)
		if got := ServiceImpact(neighbors); got != tc.schools*3 {
			t.Fatalf("%s: impact=%d, want %d", tc.name, got, tc.schools*3)
		}
		next, err := Infrastructure(cur, neighbors)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if next.Income() != tc.wantIncome || next.Density() != tc.wantDensity {
			t.Fatalf("%s: income=%v density=%v, want %v %v", tc.name, next.Income(), next.Density(), tc.wantIncome, tc.wantDensity)
		}
		if next.Education() != cur.Education() || next.AverageAge() != cur.AverageAge() || next.ServiceCount() != 1 {
			t.Fatalf("%s: infrastructure changed pass-through attributes: %s", tc.name, next)
		}
	}
}

func TestInfrastructureEdgesAreUnchanged(t *testing.T) {
	cur := MustCell(30000, 30, nil, 40, Primary)
	// 2 hospitals + 6 stores = 10; 4 schools + 4 hospitals = 20
	mixed10 := append(repeatCell(MustCell(1, 1, []Service{Hospital}, 1, Primary), 2), repeatCell(MustCell(1, 1, []Service{Store}, 1, Primary), 6)...)
	mixed20 := append(repeatCell(MustCell(1, 1, []Service{School}, 1, Primary), 4), repeatCell(MustCell(1, 1, []Service{Hospital}, 1, Primary), 4)...)
	for _, n := range [][]Cell{mixed10, mixed20} {
		next, err := Infrastructure(cur, n)
		if err != nil {
			t.Fatal(err)
		}
		if next.Income() != 30000 || next.Density() != 30 {
			t.Fatalf("impact %d should leave the cell unchanged, got %s", ServiceImpact(n), next)
		}
	}
}

func TestEducationYouthRounding(t *testing.T) {
	income, age := 40000.0, 50.0
	cur := MustCell(income, 20, []Service{Hospital}, age, Primary)
	p := MustCell(1, 1, nil, 1, Primary)
	s := MustCell(1, 1, nil, 1, Secondary)
	u := MustCell(1, 1, nil, 1, University)

	cases := []struct {
		name      string
		neighbors []Cell
		mean      float64
		edu       Education
		income    float64
		age       float64
	}{
		// round half to even: RoundToEven(1.5) = 2
		{"mean 2.5 rounds to university", []Cell{s, s, u, u}, 2.5, University, income * 1.05, age * 0.95},
		// RoundToEven(0.5) = 0
		{"mean 1.5 rounds to primary", []Cell{p, s}, 1.5, Primary, income, age},
		{"mean 2 holds", []Cell{p, s, u}, 2, Secondary, income, age},
		{"mean 1.25 ages", []Cell{p, p, p, s}, 1.25, Primary, income * 0.95, age * 1.05},
		{"mean 3 all university", []Cell{u, u, u}, 3, University, income * 1.05, age * 0.95},
	}
	for _, tc := range cases {
		if got := MeanEducationRank(tc.neighbors); got != tc.mean {
			t.Fatalf("%s: mean=%v, want %v", tc.name, got, tc.mean)
		}
		next, err := EducationYouth(cur, tc.neighbors)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if next.Education() != tc.edu {
			t.Fatalf("%s: education=%s, want %s", tc.name, next.Education(), tc.edu)
		}
		if next.Income() != tc.income || next.AverageAge() != tc.age {
			t.Fatalf("%s: income=%v age=%v, want %v %v", tc.name, next.Income(), next.AverageAge(), tc.income, tc.age)
		}
		if next.Density() != cur.Density() || !next.Has(Hospital) {
			t.Fatalf("%s: density or services changed: %s", tc.name, next)
		}
	}
}

func TestRedistribution(t *testing.T) {
	cases := []struct {
		name                 string
		income, density      float64
		meanIncome, meanDens float64
		wantIncome, wantDens float64
	}{
		{"far below cuts", 10000, 10, 40000, 50, 9000, 9},
		{"close converges", 30000, 40, 40000, 50, 32000, 42},
		{"exact 20000 gap converges", 20000, 30, 40000, 50, 24000, 34},
		{"far above cuts", 65000, 90, 20000, 20, 58500, 81},
	}
	for _, tc := range cases {
		cur := MustCell(tc.income, tc.density, nil, 40, Secondary)
		n := MustCell(tc.meanIncome, tc.meanDens, nil, 40, Primary)
		next, err := Redistribution(cur, repeatCell(n, 5))
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if !approx(next.Income(), tc.wantIncome) || !approx(next.Density(), tc.wantDens) {
			t.Fatalf("%s: income=%v density=%v, want %v %v", tc.name, next.Income(), next.Density(), tc.wantIncome, tc.wantDens)
		}
		if next.Education() != Secondary || next.AverageAge() != 40 {
			t.Fatalf("%s: redistribution changed pass-through attributes: %s", tc.name, next)
		}
	}
}

func TestRulesRejectEmptyNeighborhood(t *testing.T) {
	cur := MustCell(1, 1, nil, 1, Primary)
	for _, r := range Rules() {
		fn, err := r.Transition()
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fn(cur, nil); !errors.Is(err, ErrNoNeighbors) {
			t.Fatalf("%s: err=%v, want ErrNoNeighbors", r, err)
		}
	}
}

func TestRuleLookup(t *testing.T) {
	if _, err := Rule(9).Transition(); !errors.Is(err, ErrUnknownRule) {
		t.Fatalf("expected ErrUnknownRule, got %v", err)
	}
	names := map[string]Rule{
		"infrastructure":             RuleInfrastructure,
		"Education & Youth":          RuleEducation,
		"REDISTRIBUTION":             RuleRedistribution,
		"Mejora de Infraestructura":  RuleInfrastructure,
		"educación y juventud":       RuleEducation,
		"Política de Redistribución": RuleRedistribution,
	}
	for in, want := range names {
		got, err := ParseRule(in)
		if err != nil || got != want {
			t.Fatalf("ParseRule(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseRule("gentrification"); !errors.Is(err, ErrUnknownRule) {
		t.Fatalf("expected ErrUnknownRule, got %v", err)
	}
	if len(Rules()) != 3 {
		t.Fatalf("expected 3 rules, got %d", len(Rules()))
	}
}
