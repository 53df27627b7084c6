package socio

import (
	"strconv"

	"socio-ca/internal/core"
)

// Parameters reports the automaton's configuration and progress.
func (a *Automaton) Parameters() core.ParameterSnapshot {
	stats := a.Stats()
	groups := []core.ParameterGroup{
		{
			Name: "Grid",
			Params: []core.Parameter{
				intParam("rows", "Rows", a.cur.H),
				intParam("cols", "Columns", a.cur.W),
				int64Param("seed", "Seed", a.cfg.Seed),
				intParam("workers", "Workers", a.cfg.Workers),
			},
		},
		{
			Name: "Run",
			Params: []core.Parameter{
				stringParam("rule", "Rule", a.rule.String()),
				intParam("rule_index", "Rule index", int(a.rule)),
				intParam("generation", "Generation", a.gen),
			},
		},
		{
			Name: "Status",
			Params: []core.Parameter{
				intParam("low", "Low", stats.Counts[Low]),
				intParam("medium", "Medium", stats.Counts[Medium]),
				intParam("high", "High", stats.Counts[High]),
				floatParam("mean_income", "Mean income", stats.MeanIncome),
				floatParam("mean_density", "Mean density", stats.MeanDensity),
				floatParam("mean_age", "Mean age", stats.MeanAge),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls exposes the rule selector to the HUD.
func (a *Automaton) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "rule_index", Label: "Rule", Step: 1, Min: int(RuleInfrastructure), Max: int(RuleRedistribution)},
	}
}

// SetIntParameter updates an adjustable parameter. Only "rule_index" is
// adjustable; the value is the rule's ordinal.
func (a *Automaton) SetIntParameter(key string, value int) bool {
	if key != "rule_index" || value < 0 || value > int(RuleRedistribution) {
		return false
	}
	return a.SetRule(Rule(value)) == nil
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', 2, 64),
	}
}

func stringParam(key, label, value string) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeString,
		Value: value,
	}
}
