package socio

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	// ErrInvalidEducation reports an education level outside the enum.
	ErrInvalidEducation = errors.New("socio: invalid education level")
	// ErrInvalidService reports an unknown or repeated service.
	ErrInvalidService = errors.New("socio: invalid service")
	// ErrInvalidAttribute reports a negative or NaN numeric attribute.
	ErrInvalidAttribute = errors.New("socio: invalid attribute")
)

// Education is the predominant education level of a cell. Levels are
// ordered; Rank maps them to 1..3.
type Education uint8

const (
	Primary Education = iota
	Secondary
	University
)

// Educations lists every level in ascending order.
var Educations = [...]Education{Primary, Secondary, University}

func (e Education) valid() bool { return e <= University }

// Rank returns the numeric weight of the level (primary=1 .. university=3).
func (e Education) Rank() int { return int(e) + 1 }

func (e Education) String() string {
	switch e {
	case Primary:
		return "primary"
	case Secondary:
		return "secondary"
	case University:
		return "university"
	default:
		return fmt.Sprintf("education(%d)", uint8(e))
	}
}

// ParseEducation accepts the English level names and their Spanish
// equivalents (primaria, secundaria, universitaria).
func ParseEducation(s string) (Education, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "primary", "primaria":
		return Primary, nil
	case "secondary", "secundaria":
		return Secondary, nil
	case "university", "universitaria":
		return University, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidEducation, s)
}

// educationAt maps a rounded mean rank offset back to a level, clamping to
// the valid range.
func educationAt(idx int) Education {
	if idx < 0 {
		idx = 0
	}
	if idx > int(University) {
		idx = int(University)
	}
	return Educations[idx]
}

// Service is a public facility available in a cell.
type Service uint8

const (
	School Service = iota
	Hospital
	Store
)

// Services lists the service catalog.
var Services = [...]Service{School, Hospital, Store}

func (s Service) valid() bool { return s <= Store }

// Weight is the service's contribution to the infrastructure impact.
func (s Service) Weight() int {
	switch s {
	case School:
		return 3
	case Hospital:
		return 2
	case Store:
		return 1
	default:
		return 0
	}
}

func (s Service) String() string {
	switch s {
	case School:
		return "school"
	case Hospital:
		return "hospital"
	case Store:
		return "store"
	default:
		return fmt.Sprintf("service(%d)", uint8(s))
	}
}

// ParseService accepts school/hospital/store and escuela/hospital/tienda.
func ParseService(s string) (Service, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "school", "escuela":
		return School, nil
	case "hospital":
		return Hospital, nil
	case "store", "tienda":
		return Store, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidService, s)
}

// Status is the socioeconomic classification derived from a cell's score.
type Status uint8

const (
	Low Status = iota
	Medium
	High
)

// Statuses lists every classification in ascending order.
var Statuses = [...]Status{Low, Medium, High}

func (s Status) String() string {
	switch s {
	case Low:
		return "low"
	case Medium:
		return "medium"
	case High:
		return "high"
	default:
		return fmt.Sprintf("status(%d)", uint8(s))
	}
}

// Score thresholds separating the status bands. Each band includes its
// lower edge.
const (
	MediumScore = 40.0
	HighScore   = 80.0
)

// Classify maps a score to its status band.
func Classify(score float64) Status {
	switch {
	case score < MediumScore:
		return Low
	case score < HighScore:
		return Medium
	default:
		return High
	}
}

// Cell holds one location's attributes. Cells are immutable once built:
// rules always construct new ones and status is fixed at construction.
type Cell struct {
	income     float64
	density    float64
	services   []Service
	averageAge float64
	education  Education
	status     Status
}

// NewCell validates the attributes and derives the cell's status.
func NewCell(income, density float64, services []Service, averageAge float64, education Education) (Cell, error) {
	if !education.valid() {
		return Cell{}, fmt.Errorf("%w: %d", ErrInvalidEducation, uint8(education))
	}
	if err := checkAttribute("income", income); err != nil {
		return Cell{}, err
	}
	if err := checkAttribute("density", density); err != nil {
		return Cell{}, err
	}
	if err := checkAttribute("average age", averageAge); err != nil {
		return Cell{}, err
	}
	if len(services) > len(Services) {
		return Cell{}, fmt.Errorf("%w: %d services", ErrInvalidService, len(services))
	}
	var seen [len(Services)]bool
	for _, s := range services {
		if !s.valid() {
			return Cell{}, fmt.Errorf("%w: %d", ErrInvalidService, uint8(s))
		}
		if seen[s] {
			return Cell{}, fmt.Errorf("%w: duplicate %s", ErrInvalidService, s)
		}
		seen[s] = true
	}
	c := Cell{
		income:     income,
		density:    density,
		averageAge: averageAge,
		education:  education,
	}
	if len(services) > 0 {
		c.services = append([]Service(nil), services...)
	}
	c.status = Classify(c.Score())
	return c, nil
}

func checkAttribute(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fmt.Errorf("%w: %s %v", ErrInvalidAttribute, name, v)
	}
	return nil
}

// MustCell is NewCell for literals known to be valid; it panics otherwise.
func MustCell(income, density float64, services []Service, averageAge float64, education Education) Cell {
	c, err := NewCell(income, density, services, averageAge, education)
	if err != nil {
		panic(err)
	}
	return c
}

// Income is the average income of the cell.
func (c Cell) Income() float64 { return c.income }

// Density is the population density of the cell.
func (c Cell) Density() float64 { return c.density }

// AverageAge is the mean age of the cell's inhabitants.
func (c Cell) AverageAge() float64 { return c.averageAge }

// Education is the predominant education level.
func (c Cell) Education() Education { return c.education }

// Status is the classification derived at construction.
func (c Cell) Status() Status { return c.status }

// ServiceCount is the number of distinct services offered.
func (c Cell) ServiceCount() int { return len(c.services) }

// Services returns a copy of the cell's services in insertion order.
func (c Cell) Services() []Service {
	if len(c.services) == 0 {
		return nil
	}
	return append([]Service(nil), c.services...)
}

// Has reports whether the cell offers s.
func (c Cell) Has(s Service) bool {
	for _, v := range c.services {
		if v == s {
			return true
		}
	}
	return false
}

// Score is the weighted sum the status is classified from.
func (c Cell) Score() float64 {
	return c.income/1000 +
		c.density/10 +
		float64(len(c.services))*5 +
		c.averageAge/5 +
		float64(c.education.Rank())*10
}

// with rebuilds the cell with new numeric attributes and education,
// sharing the (immutable) services slice.
func (c Cell) with(income, density, averageAge float64, education Education) (Cell, error) {
	return NewCell(income, density, c.services, averageAge, education)
}

func (c Cell) String() string {
	names := make([]string, len(c.services))
	for i, s := range c.services {
		names[i] = s.String()
	}
	return fmt.Sprintf("{income=%.2f density=%.2f services=[%s] age=%.2f education=%s status=%s}",
		c.income, c.density, strings.Join(names, ","), c.averageAge, c.education, c.status)
}
