package socio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"socio-ca/internal/core"
	"socio-ca/internal/logging"

	"golang.org/x/sync/errgroup"
)

var (
	// ErrInvalidDimensions reports a grid that cannot host the rules.
	ErrInvalidDimensions = errors.New("socio: invalid grid dimensions")
	// ErrOutOfBounds reports a coordinate outside the grid.
	ErrOutOfBounds = errors.New("socio: coordinate out of bounds")
)

// Initial attribute ranges, half-open.
const (
	incomeMin, incomeMax   = 10000, 70000
	densityMin, densityMax = 1, 100
	ageMin, ageMax         = 20, 80
)

// Automaton owns the current generation of cells and advances it under a
// rule. x indexes columns and y rows; the grid is bounded.
type Automaton struct {
	cfg  Config
	cur  *core.Grid[Cell]
	nxt  *core.Grid[Cell]
	rule Rule
	gen  int

	display []uint8
	log     *slog.Logger
}

func validateDimensions(rows, cols int) error {
	if rows <= 0 || cols <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, rows, cols)
	}
	if rows == 1 && cols == 1 {
		return fmt.Errorf("%w: 1x1 grid has no neighbors", ErrInvalidDimensions)
	}
	return nil
}

func newAutomaton(cfg Config) (*Automaton, error) {
	if err := validateDimensions(cfg.Rows, cfg.Cols); err != nil {
		return nil, err
	}
	if _, err := cfg.Rule.Transition(); err != nil {
		return nil, err
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	size := core.Size{W: cfg.Cols, H: cfg.Rows}
	return &Automaton{
		cfg:     cfg,
		cur:     core.NewGrid[Cell](size.W, size.H),
		nxt:     core.NewGrid[Cell](size.W, size.H),
		rule:    cfg.Rule,
		display: make([]uint8, size.Cells()),
		log:     logger,
	}, nil
}

// New returns an Automaton whose cells are drawn from cfg.Seed.
func New(cfg Config) (*Automaton, error) {
	a, err := newAutomaton(cfg)
	if err != nil {
		return nil, err
	}
	a.populate(core.NewRNG(cfg.Seed))
	return a, nil
}

// NewFromCells returns an Automaton holding the given row-major cells.
func NewFromCells(cfg Config, cells []Cell) (*Automaton, error) {
	a, err := newAutomaton(cfg)
	if err != nil {
		return nil, err
	}
	if len(cells) != a.Size().Cells() {
		return nil, fmt.Errorf("%w: %d cells for %dx%d grid", ErrInvalidDimensions, len(cells), cfg.Rows, cfg.Cols)
	}
	copy(a.cur.Cells(), cells)
	a.rebuildDisplay()
	return a, nil
}

// RandomCell draws a cell with attributes in the initial ranges: integer
// income in [10000,70000), density in [1,100), age in [20,80), a uniform
// education level and 0-3 distinct services in random order.
func RandomCell(rng *core.RNG) Cell {
	income := float64(rng.IntRange(incomeMin, incomeMax))
	density := float64(rng.IntRange(densityMin, densityMax))
	services := randomServices(rng)
	age := float64(rng.IntRange(ageMin, ageMax))
	edu := Educations[rng.IntN(len(Educations))]
	return MustCell(income, density, services, age, edu)
}

func randomServices(rng *core.RNG) []Service {
	n := rng.IntN(len(Services) + 1)
	if n == 0 {
		return nil
	}
	idx := rng.Sample(len(Services), n)
	out := make([]Service, len(idx))
	for i, j := range idx {
		out[i] = Services[j]
	}
	return out
}

func (a *Automaton) populate(rng *core.RNG) {
	cells := a.cur.Cells()
	for i := range cells {
		cells[i] = RandomCell(rng)
	}
	a.gen = 0
	a.rebuildDisplay()
}

// Name returns the simulation identifier.
func (a *Automaton) Name() string { return "socio" }

// Size reports the grid dimensions (W = columns, H = rows).
func (a *Automaton) Size() core.Size { return a.cur.Size() }

// Dimensions reports the grid as (rows, cols).
func (a *Automaton) Dimensions() (int, int) { return a.cur.H, a.cur.W }

// Generation counts the steps committed since construction or Reset.
func (a *Automaton) Generation() int { return a.gen }

// Rule returns the rule Step applies.
func (a *Automaton) Rule() Rule { return a.rule }

// SetRule selects the rule Step applies.
func (a *Automaton) SetRule(r Rule) error {
	if _, err := r.Transition(); err != nil {
		return err
	}
	a.rule = r
	return nil
}

// Seed returns the seed the automaton was configured with.
func (a *Automaton) Seed() int64 { return a.cfg.Seed }

// Cells exposes the status code (Low, Medium, High) of every position in
// row-major order for rendering.
func (a *Automaton) Cells() []uint8 { return a.display }

// At returns the cell at column x, row y.
func (a *Automaton) At(x, y int) (Cell, error) {
	if !a.cur.In(x, y) {
		return Cell{}, fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, x, y)
	}
	return a.cur.At(x, y), nil
}

// Snapshot copies the current generation in row-major order.
func (a *Automaton) Snapshot() []Cell {
	return append([]Cell(nil), a.cur.Cells()...)
}

// Neighbors returns the in-bounds Moore neighbours of (x, y) in the current
// generation.
func (a *Automaton) Neighbors(x, y int) ([]Cell, error) {
	if !a.cur.In(x, y) {
		return nil, fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, x, y)
	}
	return a.cur.Moore(make([]Cell, 0, len(core.MooreOffsets)), x, y), nil
}

// Reset repopulates the grid from seed; zero reuses the configured seed.
func (a *Automaton) Reset(seed int64) {
	if seed == 0 {
		seed = a.cfg.Seed
	}
	a.populate(core.NewRNG(seed))
}

// Step applies the selected rule once.
func (a *Automaton) Step() error { return a.Apply(a.rule) }

// Apply advances every cell by one generation under rule. Every successor
// is computed from the pre-step grid only; the new generation replaces
// the current one after the whole pass succeeds, so on error the grid is
// left exactly as it was.
func (a *Automaton) Apply(rule Rule) error {
	fn, err := rule.Transition()
	if err != nil {
		return err
	}
	return a.apply(rule.String(), fn)
}

// ApplyFunc is Apply for a transition outside the built-in rule set.
func (a *Automaton) ApplyFunc(name string, fn TransitionFunc) error {
	if fn == nil {
		return fmt.Errorf("%w: nil transition", ErrUnknownRule)
	}
	return a.apply(name, fn)
}

func (a *Automaton) apply(name string, fn TransitionFunc) error {
	var err error
	if a.cfg.Workers > 1 && a.cur.H > 1 {
		err = a.passParallel(fn)
	} else {
		err = a.passRows(fn, 0, a.cur.H)
	}
	if err != nil {
		return fmt.Errorf("apply %s at generation %d: %w", name, a.gen, err)
	}
	a.cur, a.nxt = a.nxt, a.cur
	a.gen++
	a.rebuildDisplay()
	if a.log.Enabled(context.Background(), slog.LevelDebug) {
		s := a.Stats()
		a.log.Debug("step committed",
			"rule", name,
			"generation", a.gen,
			"low", s.Counts[Low],
			"medium", s.Counts[Medium],
			"high", s.Counts[High])
	}
	return nil
}

// passRows writes successors for rows [y0, y1) into nxt.
func (a *Automaton) passRows(fn TransitionFunc, y0, y1 int) error {
	neighbors := make([]Cell, 0, len(core.MooreOffsets))
	for y := y0; y < y1; y++ {
		for x := 0; x < a.cur.W; x++ {
			neighbors = a.cur.Moore(neighbors[:0], x, y)
			next, err := fn(a.cur.At(x, y), neighbors)
			if err != nil {
				return fmt.Errorf("cell (%d,%d): %w", x, y, err)
			}
			a.nxt.Set(x, y, next)
		}
	}
	return nil
}

// passParallel splits rows into contiguous bands, one per worker. Each
// band writes a disjoint part of nxt and only reads cur.
func (a *Automaton) passParallel(fn TransitionFunc) error {
	workers := a.cfg.Workers
	if workers > a.cur.H {
		workers = a.cur.H
	}
	band := (a.cur.H + workers - 1) / workers
	var g errgroup.Group
	g.SetLimit(workers)
	for y0 := 0; y0 < a.cur.H; y0 += band {
		y1 := min(y0+band, a.cur.H)
		g.Go(func() error { return a.passRows(fn, y0, y1) })
	}
	return g.Wait()
}

func (a *Automaton) rebuildDisplay() {
	for i, c := range a.cur.Cells() {
		a.display[i] = uint8(c.status)
	}
}

func init() {
	core.Register("socio", func(cfg map[string]string) (core.Sim, error) {
		c, err := FromMap(cfg)
		if err != nil {
			return nil, err
		}
		return New(c)
	})
}
