package render

import (
	"math"
	"strings"
)

// Pattern is the read-only view of a built grid the renderer consumes.
// Out-of-bounds queries must report false.
type Pattern interface {
	Size() (rows, cols int)
	Filled(row, col int) bool
}

// pathBuilder accumulates SVG path commands with stable float formatting.
type pathBuilder struct {
	b strings.Builder
}

func (p *pathBuilder) moveTo(x, y float64) {
	p.b.WriteString("M" + fnum(x) + " " + fnum(y))
}

func (p *pathBuilder) lineTo(x, y float64) {
	p.b.WriteString("L" + fnum(x) + " " + fnum(y))
}

// arcTo emits a clockwise quarter-circle arc of radius r ending at (x, y).
func (p *pathBuilder) arcTo(r, x, y float64) {
	rs := fnum(r)
	p.b.WriteString("A" + rs + " " + rs + " 0 0 1 " + fnum(x) + " " + fnum(y))
}

func (p *pathBuilder) close() {
	p.b.WriteString("Z")
}

func (p *pathBuilder) String() string {
	return p.b.String()
}

// corner identifies one of a cell's four corners.
type corner int

const (
	cornerTL corner = iota
	cornerTR
	cornerBR
	cornerBL
)

// cornerNeighbors maps a corner to the relative offsets of the two adjacent
// orthogonal neighbors and the diagonal neighbor meeting at that corner.
var cornerNeighbors = map[corner][3][2]int{
	cornerTL: {{-1, 0}, {0, -1}, {-1, -1}},
	cornerTR: {{-1, 0}, {0, 1}, {-1, 1}},
	cornerBR: {{1, 0}, {0, 1}, {1, 1}},
	cornerBL: {{1, 0}, {0, -1}, {1, -1}},
}

// buildPath walks the pattern in row-major order and assembles the single
// aggregated path: one closed contour per filled cell plus up to four
// concave fillets per empty cell.
func (r *Renderer) buildPath(p Pattern) string {
	rows, cols := p.Size()
	inner := r.innerCornersDrawable()

	var pb pathBuilder
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			if p.Filled(row, col) {
				r.filledCellContour(&pb, p, row, col)
			} else if inner {
				r.emptyCellFillets(&pb, p, row, col)
			}
		}
	}
	return pb.String()
}

// mergesAt reports whether the filled cell at (row, col) visually merges
// with a neighbor at the given corner: either adjacent orthogonal neighbor
// or the diagonal one is filled.
func mergesAt(p Pattern, row, col int, c corner) bool {
	for _, d := range cornerNeighbors[c] {
		if p.Filled(row+d[0], col+d[1]) {
			return true
		}
	}
	return false
}

// filledCellContour emits the closed rounded-rectangle contour for one
// filled cell. Each corner is an arc unless flow is on and the cell merges
// with a filled neighbor there, in which case a straight two-segment elbow
// keeps the merged shapes flush.
func (r *Renderer) filledCellContour(pb *pathBuilder, p Pattern, row, col int) {
	s := r.style.CellSize
	x, y := r.m.cellOrigin(&r.style, row, col)
	rad := math.Min(r.m.outerRadius, s/2)

	if rad == 0 {
		pb.moveTo(x, y)
		pb.lineTo(x+s, y)
		pb.lineTo(x+s, y+s)
		pb.lineTo(x, y+s)
		pb.close()
		return
	}

	// Rounding of exactly 1 makes the corners meet: no straight edges.
	full := s/2-rad < 1e-9

	elbow := func(c corner) bool {
		return r.style.Flow && mergesAt(p, row, col, c)
	}
	emit := func(c corner, cx, cy, ex, ey float64) {
		if elbow(c) {
			pb.lineTo(cx, cy)
			pb.lineTo(ex, ey)
			return
		}
		pb.arcTo(rad, ex, ey)
	}

	pb.moveTo(x+rad, y)
	if !full {
		pb.lineTo(x+s-rad, y)
	}
	emit(cornerTR, x+s, y, x+s, y+rad)
	if !full {
		pb.lineTo(x+s, y+s-rad)
	}
	emit(cornerBR, x+s, y+s, x+s-rad, y+s)
	if !full {
		pb.lineTo(x+rad, y+s)
	}
	emit(cornerBL, x, y+s, x, y+s-rad)
	if !full {
		pb.lineTo(x, y+rad)
	}
	emit(cornerTL, x, y, x+rad, y)
	pb.close()
}

// innerCornersDrawable decides whether empty-cell fillets are drawn at all.
// Inner rounding must be enabled, and either the inner radius reaches the
// outer one (with a stroke present the fillet may match it exactly; without
// a stroke it must exceed it to be visible) or flow is on.
func (r *Renderer) innerCornersDrawable() bool {
	inner, outer := r.style.Rounding.Inner, r.style.Rounding.Outer
	if inner <= 0 {
		return false
	}
	switch {
	case r.style.Flow:
		return true
	case r.style.StrokeWidth > 0:
		return inner >= outer
	default:
		return inner > outer
	}
}

// emptyCellFillets emits up to four concave corner shapes for an empty cell,
// one per pair of adjacent filled orthogonal neighbors, in the fixed order
// top+left, top+right, bottom+right, bottom+left. Each shape is a quarter
// arc closed through the corner point, filling the visual gap where two
// filled cells meet diagonally around this empty cell. Corner points sit at
// the center of the gutter gap.
func (r *Renderer) emptyCellFillets(pb *pathBuilder, p Pattern, row, col int) {
	s := r.style.CellSize
	x, y := r.m.cellOrigin(&r.style, row, col)
	ri := math.Min(r.m.innerRadius, s/2)
	if ri <= 0 {
		return
	}
	g2 := r.style.Gutter / 2

	top := p.Filled(row-1, col)
	bottom := p.Filled(row+1, col)
	left := p.Filled(row, col-1)
	right := p.Filled(row, col+1)

	if top && left {
		cx, cy := x-g2, y-g2
		pb.moveTo(cx, cy+ri)
		pb.arcTo(ri, cx+ri, cy)
		pb.lineTo(cx, cy)
		pb.close()
	}
	if top && right {
		cx, cy := x+s+g2, y-g2
		pb.moveTo(cx-ri, cy)
		pb.arcTo(ri, cx, cy+ri)
		pb.lineTo(cx, cy)
		pb.close()
	}
	if bottom && right {
		cx, cy := x+s+g2, y+s+g2
		pb.moveTo(cx, cy-ri)
		pb.arcTo(ri, cx-ri, cy)
		pb.lineTo(cx, cy)
		pb.close()
	}
	if bottom && left {
		cx, cy := x-g2, y+s+g2
		pb.moveTo(cx+ri, cy)
		pb.arcTo(ri, cx, cy-ri)
		pb.lineTo(cx, cy)
		pb.close()
	}
}
