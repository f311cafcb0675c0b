package gummygrid

import (
	"github.com/boradatti/gummygrid/pkg/grid"
	"github.com/boradatti/gummygrid/pkg/render"
)

// Config is a partial generator configuration merged over DefaultConfig.
// Zero values keep the default: nil pointers for booleans and fractions
// whose zero is meaningful, nil slices for color arrays, zero ints for
// dimensions. Non-nil nested structs merge field by field.
type Config struct {
	// Salt differentiates otherwise-identical seeds across generator
	// configurations. It is folded into every hash reset.
	Salt int32

	Grid  *GridConfig
	Style *StyleConfig
}

// GridConfig configures the fill-pattern model.
type GridConfig struct {
	Rows    int
	Columns int

	VerticalSymmetry *bool
	EnsureTopBottom  *bool
	EnsureLeftRight  *bool

	// FillBias is the probability of each fill draw. Values below 1 read as
	// probabilities, 1 and above as integer weights out of the next power
	// of ten.
	FillBias *float64
}

// StyleConfig configures the renderer.
type StyleConfig struct {
	Background []render.Color
	CellFill   []render.Color
	CellStroke []render.Color
	DropShadow []render.Color

	ColorWeights map[render.Category][]float64
	LockedColors [][]render.Category

	InnerRounding *float64
	OuterRounding *float64
	StrokeWidth   *float64
	Gutter        *float64
	Flow          *bool

	CellSize         *float64
	PatternAreaRatio *float64

	Shadow *render.Shadow

	PaintOrder render.PaintOrder
	LineJoin   render.LineJoin
}

// Default configuration values.
const (
	DefaultRows             = 5
	DefaultColumns          = 5
	DefaultFillBias         = 0.5
	DefaultInnerRounding    = 0.5
	DefaultOuterRounding    = 0.5
	DefaultStrokeWidth      = 0.0
	DefaultGutter           = 0.0
	DefaultCellSize         = 10.0
	DefaultPatternAreaRatio = 0.75
)

// DefaultConfig returns the complete default configuration: a 5x5 grid with
// edge guarantees, half rounding, flow enabled, and a muted palette with a
// light background.
func DefaultConfig() Config {
	return Config{
		Grid: &GridConfig{
			Rows:             DefaultRows,
			Columns:          DefaultColumns,
			VerticalSymmetry: boolPtr(false),
			EnsureTopBottom:  boolPtr(true),
			EnsureLeftRight:  boolPtr(true),
			FillBias:         floatPtr(DefaultFillBias),
		},
		Style: &StyleConfig{
			Background: []render.Color{render.Flat("#f1f5f9")},
			CellFill: []render.Color{
				render.Flat("#2563eb"),
				render.Flat("#7c3aed"),
				render.Flat("#db2777"),
				render.Flat("#ea580c"),
				render.Flat("#16a34a"),
				render.Flat("#0d9488"),
			},
			CellStroke:       []render.Color{render.Flat("#ffffff")},
			DropShadow:       []render.Color{render.Flat("rgba(0,0,0,0.25)")},
			InnerRounding:    floatPtr(DefaultInnerRounding),
			OuterRounding:    floatPtr(DefaultOuterRounding),
			StrokeWidth:      floatPtr(DefaultStrokeWidth),
			Gutter:           floatPtr(DefaultGutter),
			Flow:             boolPtr(true),
			CellSize:         floatPtr(DefaultCellSize),
			PatternAreaRatio: floatPtr(DefaultPatternAreaRatio),
			PaintOrder:       render.PaintOrderStroke,
			LineJoin:         render.LineJoinRound,
		},
	}
}

func boolPtr(v bool) *bool        { return &v }
func floatPtr(v float64) *float64 { return &v }

// merge overlays cfg onto the defaults and returns the fully resolved grid
// options and render style. Unset fields keep their default; set fields
// replace it outright.
func merge(cfg Config) (grid.Options, render.Style, int32) {
	def := DefaultConfig()

	gc := mergeGrid(def.Grid, cfg.Grid)
	sc := mergeStyle(def.Style, cfg.Style)

	opts := grid.Options{
		Rows:             gc.Rows,
		Columns:          gc.Columns,
		VerticalSymmetry: *gc.VerticalSymmetry,
		EnsureTopBottom:  *gc.EnsureTopBottom,
		EnsureLeftRight:  *gc.EnsureLeftRight,
		FillBias:         *gc.FillBias,
	}
	style := render.Style{
		Palette: render.Palette{
			Background: sc.Background,
			CellFill:   sc.CellFill,
			CellStroke: sc.CellStroke,
			DropShadow: sc.DropShadow,
		},
		ColorWeights:     sc.ColorWeights,
		Locked:           sc.LockedColors,
		Rounding:         render.Rounding{Inner: *sc.InnerRounding, Outer: *sc.OuterRounding},
		StrokeWidth:      *sc.StrokeWidth,
		Gutter:           *sc.Gutter,
		Flow:             *sc.Flow,
		CellSize:         *sc.CellSize,
		PatternAreaRatio: *sc.PatternAreaRatio,
		Shadow:           sc.Shadow,
		PaintOrder:       sc.PaintOrder,
		LineJoin:         sc.LineJoin,
	}
	return opts, style, cfg.Salt
}

func mergeGrid(def, user *GridConfig) *GridConfig {
	if user == nil {
		return def
	}
	out := *def
	if user.Rows != 0 {
		out.Rows = user.Rows
	}
	if user.Columns != 0 {
		out.Columns = user.Columns
	}
	if user.VerticalSymmetry != nil {
		out.VerticalSymmetry = user.VerticalSymmetry
	}
	if user.EnsureTopBottom != nil {
		out.EnsureTopBottom = user.EnsureTopBottom
	}
	if user.EnsureLeftRight != nil {
		out.EnsureLeftRight = user.EnsureLeftRight
	}
	if user.FillBias != nil {
		out.FillBias = user.FillBias
	}
	return &out
}

func mergeStyle(def, user *StyleConfig) *StyleConfig {
	if user == nil {
		return def
	}
	out := *def
	if user.Background != nil {
		out.Background = user.Background
	}
	if user.CellFill != nil {
		out.CellFill = user.CellFill
	}
	if user.CellStroke != nil {
		out.CellStroke = user.CellStroke
	}
	if user.DropShadow != nil {
		out.DropShadow = user.DropShadow
	}
	if user.ColorWeights != nil {
		out.ColorWeights = user.ColorWeights
	}
	if user.LockedColors != nil {
		out.LockedColors = user.LockedColors
	}
	if user.InnerRounding != nil {
		out.InnerRounding = user.InnerRounding
	}
	if user.OuterRounding != nil {
		out.OuterRounding = user.OuterRounding
	}
	if user.StrokeWidth != nil {
		out.StrokeWidth = user.StrokeWidth
	}
	if user.Gutter != nil {
		out.Gutter = user.Gutter
	}
	if user.Flow != nil {
		out.Flow = user.Flow
	}
	if user.CellSize != nil {
		out.CellSize = user.CellSize
	}
	if user.PatternAreaRatio != nil {
		out.PatternAreaRatio = user.PatternAreaRatio
	}
	if user.Shadow != nil {
		out.Shadow = user.Shadow
	}
	if user.PaintOrder != "" {
		out.PaintOrder = user.PaintOrder
	}
	if user.LineJoin != "" {
		out.LineJoin = user.LineJoin
	}
	return &out
}
