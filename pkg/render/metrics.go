package render

import (
	"math"
	"strconv"
)

// metrics holds the values derived once from style plus grid size. Pure
// function of the configuration; never mutated afterwards.
type metrics struct {
	patternW float64
	patternH float64
	canvas   float64
	offsetX  float64
	offsetY  float64

	// Absolute corner radii in user units.
	outerRadius float64
	innerRadius float64
}

// deriveMetrics computes the render geometry for a rows x cols pattern.
// The canvas is square, sized from the larger pattern dimension divided by
// the pattern-area ratio, with the pattern centered inside it.
func deriveMetrics(s *Style, rows, cols int) metrics {
	cell := s.CellSize
	m := metrics{
		patternW: float64(cols)*cell + float64(cols-1)*s.Gutter,
		patternH: float64(rows)*cell + float64(rows-1)*s.Gutter,
	}
	m.canvas = math.Max(m.patternW, m.patternH) / s.PatternAreaRatio
	m.offsetX = (m.canvas - m.patternW) / 2
	m.offsetY = (m.canvas - m.patternH) / 2

	// A rounding fraction of 1 is a half-cell radius: a full circle.
	m.outerRadius = s.Rounding.Outer * cell / 2
	m.innerRadius = s.Rounding.Inner * cell / 2
	return m
}

// cellOrigin returns the top-left corner of the cell at (row, col).
func (m *metrics) cellOrigin(s *Style, row, col int) (x, y float64) {
	step := s.CellSize + s.Gutter
	return m.offsetX + float64(col)*step, m.offsetY + float64(row)*step
}

// fnum formats a coordinate with three decimal places of precision and no
// trailing zeros. All path output goes through this one formatter so that
// documents are byte-stable across runs and platforms.
func fnum(v float64) string {
	r := math.Round(v*1000) / 1000
	if r == 0 {
		// Avoid "-0".
		r = 0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
