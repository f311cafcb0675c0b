// Package grid implements the boolean fill-pattern model behind avatar
// generation.
//
// A Grid owns a fixed-size rectangular arena of cells. Build fills a subset
// of cells pseudo-randomly under two constraints: horizontal mirroring is
// unconditional (every cell with a distinct mirror across the vertical center
// line is kept in sync), and vertical mirroring applies when enabled. Edge
// guarantees can force at least one filled cell onto each outer row or
// column, so patterns never collapse to an empty border.
//
// The random source is injected as a capability interface, keeping the
// package free of any concrete randomness and making draw order explicit.
package grid

import (
	"github.com/boradatti/gummygrid/pkg/errors"
)

// Source is the random capability a Grid needs: chained integer draws and
// biased boolean draws. *random.Randomizer satisfies it.
type Source interface {
	Number(min, max int) int
	Boolean(bias ...float64) bool
}

// Options configures grid construction and the fill pass.
type Options struct {
	Rows    int
	Columns int

	// VerticalSymmetry mirrors fills across the horizontal center line.
	// Horizontal mirroring is always on.
	VerticalSymmetry bool

	// EnsureTopBottom forces at least one filled cell onto the first and
	// last rows. EnsureLeftRight does the same for the outer columns.
	EnsureTopBottom bool
	EnsureLeftRight bool

	// FillBias is the probability passed to every fill draw. Values below 1
	// read as probabilities, values of 1 and above as integer weights out of
	// the next power of ten.
	FillBias float64
}

// pooledState is the tri-state flag used transiently by pool detection.
type pooledState uint8

const (
	pooledUnknown pooledState = iota
	pooledYes
	pooledNo
)

// Cell is one grid position. Row and Col never change after construction;
// Filled flips at most from false to true during Build.
type Cell struct {
	Row    int
	Col    int
	Filled bool
	pooled pooledState
}

// Pooled reports whether pool detection classified this cell as an interior
// enclosed empty cell. Meaningful only after Grid.Pools has run.
func (c *Cell) Pooled() bool {
	return c.pooled == pooledYes
}

// Grid owns the cell arena. Dimensions are fixed at construction.
type Grid struct {
	rows  int
	cols  int
	opts  Options
	src   Source
	cells []Cell // row-major arena; cells never move
}

// New allocates a grid. It fails with INVALID_DIMENSIONS before any cell
// allocation when either dimension is not positive.
func New(opts Options, src Source) (*Grid, error) {
	if opts.Rows < 1 || opts.Columns < 1 {
		return nil, errors.New(errors.ErrCodeInvalidDimensions,
			"grid size %dx%d is invalid: rows and columns must be positive",
			opts.Rows, opts.Columns)
	}
	g := &Grid{
		rows:  opts.Rows,
		cols:  opts.Columns,
		opts:  opts,
		src:   src,
		cells: make([]Cell, opts.Rows*opts.Columns),
	}
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			cell := g.at(r, c)
			cell.Row, cell.Col = r, c
		}
	}
	return g, nil
}

// Size returns the grid dimensions.
func (g *Grid) Size() (rows, cols int) {
	return g.rows, g.cols
}

// at returns the cell at (r, c). Callers must pass in-bounds coordinates.
func (g *Grid) at(r, c int) *Cell {
	return &g.cells[r*g.cols+c]
}

// CellAt returns the cell at (r, c), or false when the coordinates are out
// of bounds. Out-of-bounds lookups are ordinary "no neighbor" results, never
// a failure.
func (g *Grid) CellAt(r, c int) (*Cell, bool) {
	if r < 0 || r >= g.rows || c < 0 || c >= g.cols {
		return nil, false
	}
	return g.at(r, c), true
}

// Filled reports whether the cell at (r, c) is filled. Out-of-bounds
// coordinates report false, which lets neighbor checks run unguarded.
func (g *Grid) Filled(r, c int) bool {
	cell, ok := g.CellAt(r, c)
	return ok && cell.Filled
}

// Cells returns the cell sequence in row-major order. The renderer consumes
// this exact order, so it is part of the deterministic contract.
func (g *Grid) Cells() []*Cell {
	out := make([]*Cell, 0, len(g.cells))
	for i := range g.cells {
		out = append(out, &g.cells[i])
	}
	return out
}

// horizontalParallel returns the mirror across the vertical center line, or
// false when the cell sits on the exact middle column and has none.
func (g *Grid) horizontalParallel(c *Cell) (*Cell, bool) {
	mc := g.cols - 1 - c.Col
	if mc == c.Col {
		return nil, false
	}
	return g.at(c.Row, mc), true
}

// verticalParallel returns the mirror across the horizontal center line, or
// false when the cell sits on the exact middle row and has none.
func (g *Grid) verticalParallel(c *Cell) (*Cell, bool) {
	mr := g.rows - 1 - c.Row
	if mr == c.Row {
		return nil, false
	}
	return g.at(mr, c.Col), true
}

// wannaFill performs one biased fill draw.
func (g *Grid) wannaFill() bool {
	return g.src.Boolean(g.opts.FillBias)
}

// fill marks a cell and its mirrors as filled. The horizontal parallel is
// always kept in sync; under vertical symmetry the vertical parallels of
// both are synced too, so the four-way mirror set stays consistent.
func (g *Grid) fill(c *Cell) {
	c.Filled = true
	hp, hasHP := g.horizontalParallel(c)
	if hasHP {
		hp.Filled = true
	}
	if !g.opts.VerticalSymmetry {
		return
	}
	if vp, ok := g.verticalParallel(c); ok {
		vp.Filled = true
	}
	if hasHP {
		if vp, ok := g.verticalParallel(hp); ok {
			vp.Filled = true
		}
	}
}

// Build runs the fill pipeline: the base random pass over the fillable
// subset, then the top/bottom edge guarantee, then the left/right edge
// guarantee. Draw order is fixed; reordering would change every generated
// pattern.
func (g *Grid) Build() {
	g.buildBase()
	if g.opts.EnsureTopBottom {
		g.ensureRow(0)
		if g.rows > 1 {
			g.ensureRow(g.rows - 1)
		}
	}
	if g.opts.EnsureLeftRight {
		g.ensureColumn(0)
		if g.cols > 1 {
			g.ensureColumn(g.cols - 1)
		}
	}
}

// buildBase iterates candidate cells in row-major order. Columns are always
// restricted to the left half (rounding up); rows are restricted to the top
// half only under vertical symmetry.
func (g *Grid) buildBase() {
	rowLimit := g.rows
	if g.opts.VerticalSymmetry {
		rowLimit = (g.rows + 1) / 2
	}
	colLimit := (g.cols + 1) / 2

	for r := 0; r < rowLimit; r++ {
		for c := 0; c < colLimit; c++ {
			if g.wannaFill() {
				g.fill(g.at(r, c))
			}
		}
	}
}

// rowHasFill reports whether any cell in row r is filled.
func (g *Grid) rowHasFill(r int) bool {
	for c := 0; c < g.cols; c++ {
		if g.at(r, c).Filled {
			return true
		}
	}
	return false
}

// colHasFill reports whether any cell in column c is filled.
func (g *Grid) colHasFill(c int) bool {
	for r := 0; r < g.rows; r++ {
		if g.at(r, c).Filled {
			return true
		}
	}
	return false
}

// ensureRow forces fills onto row r when it is completely empty: one cell at
// a uniformly picked column in [0, columns/2], then at most one more at the
// first remaining column whose fresh fill draw succeeds.
func (g *Grid) ensureRow(r int) {
	if g.rowHasFill(r) {
		return
	}
	limit := g.cols / 2
	pick := g.src.Number(0, limit)
	g.fill(g.at(r, pick))
	for c := 0; c <= limit; c++ {
		if c == pick {
			continue
		}
		if g.wannaFill() {
			g.fill(g.at(r, c))
			break
		}
	}
}

// ensureColumn is the column-wise analogue of ensureRow, picking a row in
// [0, rows/2].
func (g *Grid) ensureColumn(c int) {
	if g.colHasFill(c) {
		return
	}
	limit := g.rows / 2
	pick := g.src.Number(0, limit)
	g.fill(g.at(pick, c))
	for r := 0; r <= limit; r++ {
		if r == pick {
			continue
		}
		if g.wannaFill() {
			g.fill(g.at(r, c))
			break
		}
	}
}
