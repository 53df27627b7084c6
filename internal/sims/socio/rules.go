package socio

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	// ErrUnknownRule reports a rule identifier outside the rule set.
	ErrUnknownRule = errors.New("socio: unknown rule")
	// ErrNoNeighbors reports a transition evaluated without neighbours.
	ErrNoNeighbors = errors.New("socio: cell has no neighbors")
)

// Rule identifies one of the transition rules. The set is closed; use
// Transition to resolve the function.
type Rule uint8

const (
	// RuleInfrastructure scales income and density by the services nearby.
	RuleInfrastructure Rule = iota
	// RuleEducation moves income, age and education toward the
	// neighbourhood's education level.
	RuleEducation
	// RuleRedistribution pulls income and density toward the neighbour mean.
	RuleRedistribution
)

// Rules lists every rule in display order.
func Rules() []Rule {
	return []Rule{RuleInfrastructure, RuleEducation, RuleRedistribution}
}

func (r Rule) String() string {
	switch r {
	case RuleInfrastructure:
		return "infrastructure"
	case RuleEducation:
		return "education"
	case RuleRedistribution:
		return "redistribution"
	default:
		return fmt.Sprintf("rule(%d)", uint8(r))
	}
}

// Label is the human-readable rule name shown by the GUI.
func (r Rule) Label() string {
	switch r {
	case RuleInfrastructure:
		return "Infrastructure Improvement"
	case RuleEducation:
		return "Education & Youth"
	case RuleRedistribution:
		return "Redistribution Policy"
	default:
		return r.String()
	}
}

// ParseRule resolves a rule identifier. Besides the canonical names it
// accepts the GUI labels and the short Spanish names.
func ParseRule(s string) (Rule, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for _, r := range Rules() {
		if key == r.String() || key == strings.ToLower(r.Label()) {
			return r, nil
		}
	}
	switch key {
	case "infraestructura", "mejora de infraestructura":
		return RuleInfrastructure, nil
	case "educacion", "educación", "educación y juventud":
		return RuleEducation, nil
	case "redistribucion", "redistribución", "política de redistribución":
		return RuleRedistribution, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRule, s)
}

// TransitionFunc computes a cell's successor from its current value and
// its neighbours in the pre-step grid. It must not retain neighbors.
type TransitionFunc func(cur Cell, neighbors []Cell) (Cell, error)

// Transition resolves the rule's transition function.
func (r Rule) Transition() (TransitionFunc, error) {
	switch r {
	case RuleInfrastructure:
		return Infrastructure, nil
	case RuleEducation:
		return EducationYouth, nil
	case RuleRedistribution:
		return Redistribution, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownRule, uint8(r))
	}
}

// Infrastructure thresholds on the weighted neighbour service count.
const (
	infraBoostImpact = 20
	infraDecayImpact = 10
)

// ServiceImpact sums the neighbours' services weighted school 3,
// hospital 2, store 1.
func ServiceImpact(neighbors []Cell) int {
	impact := 0
	for _, n := range neighbors {
		for _, s := range n.services {
			impact += s.Weight()
		}
	}
	return impact
}

// Infrastructure raises income by 10% and density by 5% when the
// neighbourhood's service impact exceeds 20, lowers them by 10% and 5%
// below 10, and keeps them otherwise.
func Infrastructure(cur Cell, neighbors []Cell) (Cell, error) {
	if len(neighbors) == 0 {
		return Cell{}, ErrNoNeighbors
	}
	income, density := cur.income, cur.density
	switch impact := ServiceImpact(neighbors); {
	case impact > infraBoostImpact:
		income = scale(income, 1.10)
		density = scale(density, 1.05)
	case impact < infraDecayImpact:
		income = scale(income, 0.90)
		density = scale(density, 0.95)
	}
	return cur.with(income, density, cur.averageAge, cur.education)
}

// MeanEducationRank averages the neighbours' education ranks.
func MeanEducationRank(neighbors []Cell) float64 {
	if len(neighbors) == 0 {
		return 0
	}
	sum := 0
	for _, n := range neighbors {
		sum += n.education.Rank()
	}
	return float64(sum) / float64(len(neighbors))
}

// EducationYouth rewards educated neighbourhoods with higher income and a
// younger population, penalises poorly educated ones, and moves the cell's
// education level to the neighbourhood mean. The mean is rounded half to
// even, so a mean rank of 1.5 maps to primary and 2.5 to university.
func EducationYouth(cur Cell, neighbors []Cell) (Cell, error) {
	if len(neighbors) == 0 {
		return Cell{}, ErrNoNeighbors
	}
	mean := MeanEducationRank(neighbors)
	income, age := cur.income, cur.averageAge
	switch {
	case mean > 2:
		income = scale(income, 1.05)
		age = scale(age, 0.95)
	case mean < 1.5:
		income = scale(income, 0.95)
		age = scale(age, 1.05)
	}
	edu := educationAt(int(math.RoundToEven(mean - 1)))
	return cur.with(income, cur.density, age, edu)
}

// Redistribution thresholds on the gap between a cell and its neighbours.
const (
	incomeGapLimit  = 20000.0
	densityGapLimit = 20.0
	convergeRate    = 0.2
)

// Redistribution cuts income (density) by 10% when it is more than 20000
// (20) away from the neighbour mean, and otherwise moves it 20% of the way
// toward the mean.
func Redistribution(cur Cell, neighbors []Cell) (Cell, error) {
	if len(neighbors) == 0 {
		return Cell{}, ErrNoNeighbors
	}
	income := redistribute(cur.income, average(neighbors, Cell.Income), incomeGapLimit)
	density := redistribute(cur.density, average(neighbors, Cell.Density), densityGapLimit)
	return cur.with(income, density, cur.averageAge, cur.education)
}

func redistribute(v, mean, limit float64) float64 {
	if math.Abs(mean-v) > limit {
		return v * 0.90
	}
	return v + (mean-v)*convergeRate
}

// scale multiplies v by f, saturating at the largest finite float64 so
// sustained growth never leaves the valid attribute range.
func scale(v, f float64) float64 {
	return math.Min(v*f, math.MaxFloat64)
}

// average is the mean of attr over cells. Sums that overflow are redone
// term by term so saturated attributes still average to a finite value.
func average(cells []Cell, attr func(Cell) float64) float64 {
	if len(cells) == 0 {
		return 0
	}
	n := float64(len(cells))
	sum := 0.0
	for _, c := range cells {
		sum += attr(c)
	}
	if !math.IsInf(sum, 0) {
		return sum / n
	}
	mean := 0.0
	for _, c := range cells {
		mean += attr(c) / n
	}
	return mean
}
