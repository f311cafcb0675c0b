// Package gummygrid generates deterministic avatar graphics: a seed string
// is hashed into a pseudo-random draw sequence, the sequence fills a
// mirrored boolean grid, and the grid is rendered into a standalone SVG
// document. The same seed, salt, and configuration always produce the same
// bytes.
//
// Typical use:
//
//	gen, err := gummygrid.New(gummygrid.Config{})
//	if err != nil { ... }
//	svg, err := gen.BuildFrom(ctx, "jarvis")
//	if err != nil { ... }
//	fmt.Println(svg.String())
package gummygrid

import (
	"context"
	"time"

	"github.com/boradatti/gummygrid/pkg/grid"
	"github.com/boradatti/gummygrid/pkg/observability"
	"github.com/boradatti/gummygrid/pkg/random"
	"github.com/boradatti/gummygrid/pkg/render"
)

// Generator builds avatars for seeds under one fixed configuration. The
// renderer and its derived canvas metrics are constructed once; only the
// grid and the draw sequence are per seed.
//
// A Generator is not safe for concurrent use: the randomizer carries the
// hash chain between draws. Create one per goroutine, or serialize calls.
type Generator struct {
	rng      *random.Randomizer
	renderer *render.Renderer
	gridOpts grid.Options
}

// New resolves cfg over the defaults and validates the result. Invalid
// dimensions, rounding fractions, color arrays, or locked groups are
// reported before any seed is accepted.
func New(cfg Config) (*Generator, error) {
	opts, style, salt := merge(cfg)
	renderer, err := render.New(style, opts.Rows, opts.Columns)
	if err != nil {
		return nil, err
	}
	return &Generator{
		rng:      random.New(salt),
		renderer: renderer,
		gridOpts: opts,
	}, nil
}

// CanvasSize returns the edge length of the square canvas in user units.
func (g *Generator) CanvasSize() float64 {
	return g.renderer.CanvasSize()
}

// BuildFrom generates the avatar for seed. The draw sequence restarts from
// the seed hash on every call, so repeated calls with the same seed return
// identical documents regardless of what was generated in between.
func (g *Generator) BuildFrom(ctx context.Context, seed string) (*SVG, error) {
	hooks := observability.Generator()
	hooks.OnBuildStart(ctx, seed)
	start := time.Now()

	svg, err := g.build(ctx, seed)
	size := 0
	if svg != nil {
		size = len(svg.markup)
	}
	hooks.OnBuildComplete(ctx, seed, size, time.Since(start), err)
	return svg, err
}

func (g *Generator) build(ctx context.Context, seed string) (*SVG, error) {
	g.rng.SetSeed(seed)

	hooks := observability.Generator()
	hooks.OnGridStart(ctx, seed, g.gridOpts.Rows, g.gridOpts.Columns)
	gridStart := time.Now()

	pattern, err := grid.New(g.gridOpts, g.rng)
	if err != nil {
		return nil, err
	}
	pattern.Build()

	filled := 0
	for _, c := range pattern.Cells() {
		if c.Filled {
			filled++
		}
	}
	hooks.OnGridComplete(ctx, seed, filled, time.Since(gridStart))

	markup, err := g.renderer.Render(pattern, g.rng)
	if err != nil {
		return nil, err
	}
	return &SVG{markup: markup}, nil
}
