package render

import (
	"github.com/boradatti/gummygrid/pkg/errors"
)

// PaintOrder controls the SVG paint-order property on the cell path.
type PaintOrder string

const (
	PaintOrderNormal  PaintOrder = "normal"
	PaintOrderStroke  PaintOrder = "stroke"
	PaintOrderMarkers PaintOrder = "markers"
)

// LineJoin controls the SVG stroke-linejoin property on the cell path.
type LineJoin string

const (
	LineJoinMiter LineJoin = "miter"
	LineJoinRound LineJoin = "round"
	LineJoinBevel LineJoin = "bevel"
)

// Rounding holds the corner-rounding fractions, each in [0, 1]. Outer
// applies to filled-cell corners, Inner to the concave fillets drawn into
// empty cells between diagonal filled neighbors.
type Rounding struct {
	Inner float64
	Outer float64
}

// Shadow describes the CSS drop-shadow filter applied to the cell path.
// The shadow color comes from the dropShadow color category.
type Shadow struct {
	DX   float64
	DY   float64
	Blur float64
}

// Palette holds the candidate colors per category. Every category must be
// non-empty; the generator's default configuration guarantees that.
type Palette struct {
	Background []Color
	CellFill   []Color
	CellStroke []Color
	DropShadow []Color
}

// colors returns the candidate array for a category.
func (p *Palette) colors(cat Category) []Color {
	switch cat {
	case CategoryBackground:
		return p.Background
	case CategoryCellFill:
		return p.CellFill
	case CategoryCellStroke:
		return p.CellStroke
	case CategoryDropShadow:
		return p.DropShadow
	}
	return nil
}

// Style is the full render configuration. It is read-only once a Renderer
// has been constructed from it.
type Style struct {
	Palette Palette

	// ColorWeights optionally biases the per-category color draw. A vector's
	// length must match its category's color array; checked at draw time.
	ColorWeights map[Category][]float64

	// Locked groups share one drawn index across all member categories.
	// Member arrays must have equal length.
	Locked [][]Category

	Rounding    Rounding
	StrokeWidth float64
	Gutter      float64

	// Flow suppresses outer rounding on corners where a filled cell visually
	// merges with a filled neighbor.
	Flow bool

	// CellSize is the edge length of one cell in user units.
	CellSize float64

	// PatternAreaRatio is the fraction of the square canvas the pattern
	// occupies, in (0, 1].
	PatternAreaRatio float64

	Shadow *Shadow

	PaintOrder PaintOrder
	LineJoin   LineJoin
}

// validate checks the construction-time invariants: rounding fractions in
// range, non-empty color categories, and equal lengths inside locked groups.
func (s *Style) validate() error {
	for _, r := range []struct {
		name  string
		value float64
	}{{"inner", s.Rounding.Inner}, {"outer", s.Rounding.Outer}} {
		if r.value < 0 || r.value > 1 {
			return errors.New(errors.ErrCodeInvalidRounding,
				"%s rounding %v is outside [0, 1]", r.name, r.value)
		}
	}
	if s.CellSize <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cell size must be positive, got %v", s.CellSize)
	}
	if s.PatternAreaRatio <= 0 || s.PatternAreaRatio > 1 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"pattern area ratio %v is outside (0, 1]", s.PatternAreaRatio)
	}
	if s.StrokeWidth < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "stroke width must not be negative, got %v", s.StrokeWidth)
	}
	if s.Gutter < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "gutter must not be negative, got %v", s.Gutter)
	}

	for _, cat := range categories {
		if len(s.Palette.colors(cat)) == 0 {
			return errors.New(errors.ErrCodeEmptyColorArray, "color category %q has no entries", cat)
		}
	}

	for _, group := range s.Locked {
		if len(group) < 2 {
			continue
		}
		want := len(s.Palette.colors(group[0]))
		for _, cat := range group[1:] {
			if got := len(s.Palette.colors(cat)); got != want {
				return errors.New(errors.ErrCodeLockedColorMismatch,
					"locked categories %q (%d colors) and %q (%d colors) differ in length",
					group[0], want, cat, got)
			}
		}
	}
	return nil
}
