package socio

// Stats summarises a generation.
type Stats struct {
	Generation int            `json:"generation"`
	Rule       string         `json:"rule"`
	Counts     [3]int         `json:"-"`
	ByStatus   map[string]int `json:"by_status"`

	MeanIncome    float64 `json:"mean_income"`
	MeanDensity   float64 `json:"mean_density"`
	MeanAge       float64 `json:"mean_age"`
	MeanEducation float64 `json:"mean_education_rank"`
	MeanServices  float64 `json:"mean_services"`
}

// Share returns the fraction of cells classified s.
func (s Stats) Share(st Status) float64 {
	total := s.Counts[Low] + s.Counts[Medium] + s.Counts[High]
	if total == 0 || int(st) >= len(s.Counts) {
		return 0
	}
	return float64(s.Counts[st]) / float64(total)
}

// Stats aggregates the current generation.
func (a *Automaton) Stats() Stats {
	return Summarize(a.cur.Cells(), a.gen, a.rule)
}

// Summarize aggregates an arbitrary set of cells.
func Summarize(cells []Cell, generation int, rule Rule) Stats {
	s := Stats{Generation: generation, Rule: rule.String(), ByStatus: make(map[string]int, len(Statuses))}
	if len(cells) == 0 {
		return s
	}
	for _, c := range cells {
		s.Counts[c.status]++
		s.MeanEducation += float64(c.education.Rank())
		s.MeanServices += float64(len(c.services))
	}
	n := float64(len(cells))
	s.MeanIncome = average(cells, Cell.Income)
	s.MeanDensity = average(cells, Cell.Density)
	s.MeanAge = average(cells, Cell.AverageAge)
	s.MeanEducation /= n
	s.MeanServices /= n
	for _, st := range Statuses {
		s.ByStatus[st.String()] = s.Counts[st]
	}
	return s
}
