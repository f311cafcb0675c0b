package cli

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/boradatti/gummygrid/pkg/gummygrid"
	"github.com/boradatti/gummygrid/pkg/render"
)

// gradientRefPrefix marks a color entry that references a named gradient
// from the [style.gradients] table, e.g. "grad:ocean".
const gradientRefPrefix = "grad:"

// fileConfig is the TOML schema for --config files. All fields are
// optional; anything unset keeps the generator default.
type fileConfig struct {
	Salt  int32            `toml:"salt"`
	Grid  *fileGridConfig  `toml:"grid"`
	Style *fileStyleConfig `toml:"style"`
}

type fileGridConfig struct {
	Rows             int      `toml:"rows"`
	Columns          int      `toml:"columns"`
	VerticalSymmetry *bool    `toml:"vertical_symmetry"`
	EnsureTopBottom  *bool    `toml:"ensure_top_bottom"`
	EnsureLeftRight  *bool    `toml:"ensure_left_right"`
	FillBias         *float64 `toml:"fill_bias"`
}

type fileStyleConfig struct {
	Background []string `toml:"background"`
	CellFill   []string `toml:"cell_fill"`
	CellStroke []string `toml:"cell_stroke"`
	DropShadow []string `toml:"drop_shadow"`

	ColorWeights map[string][]float64    `toml:"color_weights"`
	Locked       [][]string              `toml:"locked"`
	Gradients    map[string]fileGradient `toml:"gradients"`

	InnerRounding    *float64 `toml:"inner_rounding"`
	OuterRounding    *float64 `toml:"outer_rounding"`
	StrokeWidth      *float64 `toml:"stroke_width"`
	Gutter           *float64 `toml:"gutter"`
	Flow             *bool    `toml:"flow"`
	CellSize         *float64 `toml:"cell_size"`
	PatternAreaRatio *float64 `toml:"pattern_area_ratio"`

	Shadow *fileShadow `toml:"shadow"`

	PaintOrder string `toml:"paint_order"`
	LineJoin   string `toml:"line_join"`
}

type fileGradient struct {
	Kind  string            `toml:"kind"`
	Attrs map[string]string `toml:"attrs"`
	Stops []fileStop        `toml:"stops"`
}

type fileStop struct {
	Offset  string `toml:"offset"`
	Color   string `toml:"color"`
	Opacity string `toml:"opacity"`
}

type fileShadow struct {
	DX   float64 `toml:"dx"`
	DY   float64 `toml:"dy"`
	Blur float64 `toml:"blur"`
}

// LoadConfig reads a TOML configuration file into a generator config.
func LoadConfig(path string) (gummygrid.Config, error) {
	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return gummygrid.Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return fc.toConfig()
}

func (fc *fileConfig) toConfig() (gummygrid.Config, error) {
	cfg := gummygrid.Config{Salt: fc.Salt}

	if fc.Grid != nil {
		cfg.Grid = &gummygrid.GridConfig{
			Rows:             fc.Grid.Rows,
			Columns:          fc.Grid.Columns,
			VerticalSymmetry: fc.Grid.VerticalSymmetry,
			EnsureTopBottom:  fc.Grid.EnsureTopBottom,
			EnsureLeftRight:  fc.Grid.EnsureLeftRight,
			FillBias:         fc.Grid.FillBias,
		}
	}
	if fc.Style == nil {
		return cfg, nil
	}

	fs := fc.Style
	style := &gummygrid.StyleConfig{
		InnerRounding:    fs.InnerRounding,
		OuterRounding:    fs.OuterRounding,
		StrokeWidth:      fs.StrokeWidth,
		Gutter:           fs.Gutter,
		Flow:             fs.Flow,
		CellSize:         fs.CellSize,
		PatternAreaRatio: fs.PatternAreaRatio,
		Shadow:           fs.shadow(),
		PaintOrder:       render.PaintOrder(fs.PaintOrder),
		LineJoin:         render.LineJoin(fs.LineJoin),
	}

	var err error
	if style.Background, err = fs.colors(fs.Background); err != nil {
		return cfg, err
	}
	if style.CellFill, err = fs.colors(fs.CellFill); err != nil {
		return cfg, err
	}
	if style.CellStroke, err = fs.colors(fs.CellStroke); err != nil {
		return cfg, err
	}
	if style.DropShadow, err = fs.colors(fs.DropShadow); err != nil {
		return cfg, err
	}

	if fs.ColorWeights != nil {
		style.ColorWeights = make(map[render.Category][]float64, len(fs.ColorWeights))
		for name, weights := range fs.ColorWeights {
			cat, err := parseCategory(name)
			if err != nil {
				return cfg, err
			}
			style.ColorWeights[cat] = weights
		}
	}
	for _, group := range fs.Locked {
		cats := make([]render.Category, 0, len(group))
		for _, name := range group {
			cat, err := parseCategory(name)
			if err != nil {
				return cfg, err
			}
			cats = append(cats, cat)
		}
		style.LockedColors = append(style.LockedColors, cats)
	}

	cfg.Style = style
	return cfg, nil
}

func (fs *fileStyleConfig) shadow() *render.Shadow {
	if fs.Shadow == nil {
		return nil
	}
	return &render.Shadow{DX: fs.Shadow.DX, DY: fs.Shadow.DY, Blur: fs.Shadow.Blur}
}

// colors converts string entries into colors, resolving "grad:" references
// against the gradients table. A nil input stays nil so the generator
// default survives.
func (fs *fileStyleConfig) colors(entries []string) ([]render.Color, error) {
	if entries == nil {
		return nil, nil
	}
	out := make([]render.Color, 0, len(entries))
	for _, entry := range entries {
		if name, ok := strings.CutPrefix(entry, gradientRefPrefix); ok {
			fg, ok := fs.Gradients[name]
			if !ok {
				return nil, fmt.Errorf("color %q references undefined gradient %q", entry, name)
			}
			grad, err := fg.toGradient(name)
			if err != nil {
				return nil, err
			}
			out = append(out, render.Grad(grad))
			continue
		}
		out = append(out, render.Flat(entry))
	}
	return out, nil
}

func (fg *fileGradient) toGradient(name string) (render.Gradient, error) {
	var kind render.GradientKind
	switch fg.Kind {
	case "", "linear":
		kind = render.GradientLinear
	case "radial":
		kind = render.GradientRadial
	default:
		return render.Gradient{}, fmt.Errorf("gradient %q has unknown kind %q", name, fg.Kind)
	}
	stops := make([]render.Stop, 0, len(fg.Stops))
	for _, s := range fg.Stops {
		stops = append(stops, render.Stop{Offset: s.Offset, Color: s.Color, Opacity: s.Opacity})
	}
	return render.Gradient{Kind: kind, Attrs: fg.Attrs, Stops: stops}, nil
}

func parseCategory(name string) (render.Category, error) {
	switch render.Category(name) {
	case render.CategoryBackground, render.CategoryCellFill,
		render.CategoryCellStroke, render.CategoryDropShadow:
		return render.Category(name), nil
	}
	return "", fmt.Errorf("unknown color category %q", name)
}
