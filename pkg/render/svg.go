// Package render turns a built fill pattern plus a style configuration into
// a complete SVG document.
//
// The renderer owns all geometry: one closed rounded-rectangle contour per
// filled cell, optional concave fillets inside empty cells, and the
// surrounding document (canvas, style sheet, gradient definitions,
// background). Color selection is the only randomized decision; it is
// delegated to an injected Source so that the renderer itself stays a pure
// function of pattern, style, and draw sequence.
//
// Output is deterministic byte-for-byte: float formatting is fixed, gradient
// attributes are emitted in sorted order, and cells are visited in the
// pattern's row-major order.
package render

import (
	"bytes"
	"fmt"

	"github.com/boradatti/gummygrid/pkg/errors"
)

// Source is the random capability the renderer needs: weighted index
// selection. *random.Randomizer satisfies it.
type Source interface {
	ChoiceIndex(n int, weights []float64) (int, error)
}

// Resolved maps each color category to the concrete color drawn for it.
type Resolved map[Category]Color

// Renderer emits SVG documents for patterns of one fixed grid size.
type Renderer struct {
	style Style
	rows  int
	cols  int
	m     metrics
}

// New validates the style and derives the render geometry for a rows x cols
// pattern. All construction-time failures (rounding range, empty color
// arrays, locked-length mismatches) surface here, before any drawing.
func New(style Style, rows, cols int) (*Renderer, error) {
	if rows < 1 || cols < 1 {
		return nil, errors.New(errors.ErrCodeInvalidDimensions,
			"pattern size %dx%d is invalid", rows, cols)
	}
	if err := style.validate(); err != nil {
		return nil, err
	}
	return &Renderer{
		style: style,
		rows:  rows,
		cols:  cols,
		m:     deriveMetrics(&style, rows, cols),
	}, nil
}

// CanvasSize returns the square canvas edge length in user units.
func (r *Renderer) CanvasSize() float64 {
	return r.m.canvas
}

// ResolveColors draws one color per category. Categories inside a locked
// group share a single index, drawn once from the group's first category
// with that category's weight vector; unlocked categories draw
// independently. Resolution order is fixed (background, cellFill,
// cellStroke, dropShadow) because every draw advances the source.
//
// A weight vector whose length does not match its color array fails with
// WEIGHT_LENGTH_MISMATCH naming the offending category.
func (r *Renderer) ResolveColors(src Source) (Resolved, error) {
	groupOf := map[Category]int{}
	for gi, group := range r.style.Locked {
		for _, cat := range group {
			groupOf[cat] = gi
		}
	}

	drawn := map[int]int{}
	out := Resolved{}
	for _, cat := range categories {
		arr := r.style.Palette.colors(cat)

		if gi, locked := groupOf[cat]; locked {
			idx, ok := drawn[gi]
			if !ok {
				first := r.style.Locked[gi][0]
				firstArr := r.style.Palette.colors(first)
				var err error
				idx, err = src.ChoiceIndex(len(firstArr), r.style.ColorWeights[first])
				if err != nil {
					return nil, errors.Wrap(errors.GetCode(err), err,
						"resolve locked color group for category %q", first)
				}
				drawn[gi] = idx
			}
			out[cat] = arr[idx]
			continue
		}

		idx, err := src.ChoiceIndex(len(arr), r.style.ColorWeights[cat])
		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err,
				"resolve color for category %q", cat)
		}
		out[cat] = arr[idx]
	}
	return out, nil
}

// Render resolves colors through src and assembles the complete document
// for the given pattern.
func (r *Renderer) Render(p Pattern, src Source) ([]byte, error) {
	rows, cols := p.Size()
	if rows != r.rows || cols != r.cols {
		return nil, errors.New(errors.ErrCodeInvalidDimensions,
			"pattern is %dx%d but renderer was built for %dx%d", rows, cols, r.rows, r.cols)
	}

	colors, err := r.ResolveColors(src)
	if err != nil {
		return nil, err
	}
	path := r.buildPath(p)

	var buf bytes.Buffer
	c := fnum(r.m.canvas)
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s">`+"\n", c, c, c, c)
	r.renderStyleSheet(&buf, colors)
	r.renderDefs(&buf, colors)
	fmt.Fprintf(&buf, `<rect class="gg-background" width="%s" height="%s"/>`+"\n", c, c)
	if path != "" {
		fmt.Fprintf(&buf, `<path class="gg-cells" d="%s"/>`+"\n", path)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

// paintRef returns the CSS paint value for a resolved category: the flat
// value, or a url() reference to the category's gradient definition.
func paintRef(cat Category, c Color) string {
	if c.IsGradient() {
		return fmt.Sprintf("url(#%s)", gradientID(cat))
	}
	return c.Value()
}

func gradientID(cat Category) string {
	return "gg-grad-" + string(cat)
}

// shadowColor returns a usable CSS color for the drop-shadow filter. The
// filter function cannot reference gradients, so a gradient resolution
// falls back to its first stop.
func shadowColor(c Color) string {
	if g := c.Gradient(); g != nil {
		if len(g.Stops) > 0 {
			return g.Stops[0].Color
		}
		return "#000"
	}
	return c.Value()
}

// renderStyleSheet writes the document's <style> block from the resolved
// colors and the style's stroke/filter settings.
func (r *Renderer) renderStyleSheet(buf *bytes.Buffer, colors Resolved) {
	buf.WriteString("<style>")
	fmt.Fprintf(buf, ".gg-background{fill:%s;}", paintRef(CategoryBackground, colors[CategoryBackground]))

	buf.WriteString(".gg-cells{")
	fmt.Fprintf(buf, "fill:%s;", paintRef(CategoryCellFill, colors[CategoryCellFill]))
	if r.style.StrokeWidth > 0 {
		fmt.Fprintf(buf, "stroke:%s;", paintRef(CategoryCellStroke, colors[CategoryCellStroke]))
		fmt.Fprintf(buf, "stroke-width:%s;", fnum(r.style.StrokeWidth))
		if r.style.LineJoin != "" {
			fmt.Fprintf(buf, "stroke-linejoin:%s;", r.style.LineJoin)
		}
	}
	if r.style.PaintOrder != "" && r.style.PaintOrder != PaintOrderNormal {
		fmt.Fprintf(buf, "paint-order:%s;", r.style.PaintOrder)
	}
	if sh := r.style.Shadow; sh != nil {
		fmt.Fprintf(buf, "filter:drop-shadow(%spx %spx %spx %s);",
			fnum(sh.DX), fnum(sh.DY), fnum(sh.Blur), shadowColor(colors[CategoryDropShadow]))
	}
	buf.WriteString("}")
	buf.WriteString("</style>\n")
}

// renderDefs writes gradient definitions for every category that resolved
// to a gradient. Nothing is written when all colors are flat.
func (r *Renderer) renderDefs(buf *bytes.Buffer, colors Resolved) {
	var defs bytes.Buffer
	for _, cat := range categories {
		if g := colors[cat].Gradient(); g != nil {
			g.renderDef(&defs, gradientID(cat))
		}
	}
	if defs.Len() == 0 {
		return
	}
	buf.WriteString("<defs>")
	buf.Write(defs.Bytes())
	buf.WriteString("</defs>\n")
}
