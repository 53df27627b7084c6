package socio

import (
	"image/color"
	"math"
)

var statusPalette = []color.RGBA{
	Low:    {R: 255, G: 0, B: 0, A: 255},
	Medium: {R: 255, G: 255, B: 0, A: 255},
	High:   {R: 0, G: 100, B: 0, A: 255},
}

// Palette maps the status codes returned by Cells to colors: low is red,
// medium yellow and high dark green.
func (a *Automaton) Palette() []color.RGBA {
	return Palette()
}

// Palette returns a copy of the status palette.
func Palette() []color.RGBA {
	return append([]color.RGBA(nil), statusPalette...)
}

// StatusGlyph is the character used for s in text renderings.
func StatusGlyph(s Status) byte {
	switch s {
	case Low:
		return '.'
	case Medium:
		return 'o'
	default:
		return '#'
	}
}

// Attribute selects a numeric cell attribute for heat maps.
type Attribute uint8

const (
	AttrIncome Attribute = iota
	AttrDensity
	AttrAge
)

func (at Attribute) String() string {
	switch at {
	case AttrIncome:
		return "income"
	case AttrDensity:
		return "density"
	default:
		return "age"
	}
}

func (at Attribute) of(c Cell) float64 {
	switch at {
	case AttrIncome:
		return c.income
	case AttrDensity:
		return c.density
	default:
		return c.averageAge
	}
}

// AttributeField returns the chosen attribute of every cell normalised to
// [0,1] against the current generation's min and max. A uniform field maps
// to zero.
func (a *Automaton) AttributeField(at Attribute) []float32 {
	cells := a.cur.Cells()
	out := make([]float32, len(cells))
	if len(cells) == 0 {
		return out
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, c := range cells {
		v := at.of(c)
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	span := hi - lo
	if span <= 0 {
		return out
	}
	for i, c := range cells {
		out[i] = float32((at.of(c) - lo) / span)
	}
	return out
}
