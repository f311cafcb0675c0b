package gummygrid

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/boradatti/gummygrid/pkg/errors"
	"github.com/boradatti/gummygrid/pkg/render"
)

func mustGenerator(t *testing.T, cfg Config) *Generator {
	t.Helper()
	gen, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return gen
}

func mustBuild(t *testing.T, gen *Generator, seed string) *SVG {
	t.Helper()
	svg, err := gen.BuildFrom(context.Background(), seed)
	if err != nil {
		t.Fatalf("BuildFrom(%q) error: %v", seed, err)
	}
	return svg
}

func TestDefaultConfigIsValid(t *testing.T) {
	gen := mustGenerator(t, Config{})
	svg := mustBuild(t, gen, "jarvis")
	if !strings.HasPrefix(svg.String(), "<svg") {
		t.Errorf("document does not start with <svg: %.40q", svg.String())
	}
	if !strings.HasSuffix(strings.TrimSpace(svg.String()), "</svg>") {
		t.Errorf("document does not end with </svg>")
	}
}

func TestBuildFromDeterminism(t *testing.T) {
	gen := mustGenerator(t, Config{})
	first := mustBuild(t, gen, "jarvis").String()

	// Same instance, interleaved with other seeds.
	mustBuild(t, gen, "someone-else")
	second := mustBuild(t, gen, "jarvis").String()
	if first != second {
		t.Errorf("same instance produced different documents for the same seed")
	}

	// Fresh instance with the same configuration.
	third := mustBuild(t, mustGenerator(t, Config{}), "jarvis").String()
	if first != third {
		t.Errorf("fresh instance produced a different document for the same seed")
	}
}

func TestDistinctSeedsDiffer(t *testing.T) {
	gen := mustGenerator(t, Config{})
	a := mustBuild(t, gen, "jarvis").String()
	b := mustBuild(t, gen, "jarvas").String()
	if a == b {
		t.Errorf("distinct seeds produced identical documents")
	}
}

func TestSaltChangesOutput(t *testing.T) {
	plain := mustBuild(t, mustGenerator(t, Config{}), "jarvis").String()
	salted := mustBuild(t, mustGenerator(t, Config{Salt: 42}), "jarvis").String()
	if plain == salted {
		t.Errorf("salt had no effect on the document")
	}
}

func TestConfigMergeKeepsDefaults(t *testing.T) {
	bias := 0.9
	gen := mustGenerator(t, Config{
		Grid: &GridConfig{FillBias: &bias},
	})
	if gen.gridOpts.Rows != DefaultRows || gen.gridOpts.Columns != DefaultColumns {
		t.Errorf("partial grid config lost default dimensions: got %dx%d",
			gen.gridOpts.Rows, gen.gridOpts.Columns)
	}
	if gen.gridOpts.FillBias != bias {
		t.Errorf("FillBias override lost: got %v", gen.gridOpts.FillBias)
	}
	if !gen.gridOpts.EnsureTopBottom || !gen.gridOpts.EnsureLeftRight {
		t.Errorf("partial grid config lost default edge guarantees")
	}
}

func TestConfigOverridesDimensions(t *testing.T) {
	gen := mustGenerator(t, Config{
		Grid: &GridConfig{Rows: 7, Columns: 9},
	})
	if gen.gridOpts.Rows != 7 || gen.gridOpts.Columns != 9 {
		t.Errorf("got %dx%d, want 7x9", gen.gridOpts.Rows, gen.gridOpts.Columns)
	}
}

func TestConfigZeroFillBiasOverride(t *testing.T) {
	// A pointer to zero must override the default, not be treated as unset.
	zero := 0.0
	off := false
	gen := mustGenerator(t, Config{
		Grid: &GridConfig{
			FillBias:        &zero,
			EnsureTopBottom: &off,
			EnsureLeftRight: &off,
		},
	})
	svg := mustBuild(t, gen, "jarvis")
	if strings.Contains(svg.String(), `class="gg-cells"`) {
		t.Errorf("zero fill bias still produced a cell path")
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	bad := 3.0
	tests := []struct {
		name string
		cfg  Config
		code errors.Code
	}{
		{
			name: "negative rows",
			cfg:  Config{Grid: &GridConfig{Rows: -1}},
			code: errors.ErrCodeInvalidDimensions,
		},
		{
			name: "rounding above one",
			cfg:  Config{Style: &StyleConfig{OuterRounding: &bad}},
			code: errors.ErrCodeInvalidRounding,
		},
		{
			name: "empty fill colors",
			cfg:  Config{Style: &StyleConfig{CellFill: []render.Color{}}},
			code: errors.ErrCodeEmptyColorArray,
		},
		{
			name: "locked length mismatch",
			cfg: Config{Style: &StyleConfig{
				Background: []render.Color{render.Flat("#fff"), render.Flat("#000")},
				LockedColors: [][]render.Category{
					{render.CategoryBackground, render.CategoryCellFill},
				},
			}},
			code: errors.ErrCodeLockedColorMismatch,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("got code %s, want %s", errors.GetCode(err), tt.code)
			}
		})
	}
}

func TestURLEncoded(t *testing.T) {
	svg := &SVG{markup: []byte(`<svg a="b c"/>`)}
	enc := svg.URLEncoded(false)
	if strings.ContainsAny(enc, "<>\" ") {
		t.Errorf("encoded output still contains reserved characters: %q", enc)
	}
	with := svg.URLEncoded(true)
	if !strings.HasPrefix(with, DataURIPrefix) {
		t.Errorf("missing data URI prefix: %q", with)
	}
	if with != DataURIPrefix+enc {
		t.Errorf("prefixed form differs beyond the prefix")
	}
}

func TestWriteFile(t *testing.T) {
	gen := mustGenerator(t, Config{})
	svg := mustBuild(t, gen, "jarvis")

	path := filepath.Join(t.TempDir(), "avatar.svg")
	if err := svg.WriteFile(path); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading back: %v", err)
	}
	if string(data) != svg.String() {
		t.Errorf("file contents differ from markup")
	}
}

func TestWriteFileBadPath(t *testing.T) {
	svg := &SVG{markup: []byte("<svg/>")}
	err := svg.WriteFile(filepath.Join(t.TempDir(), "missing", "avatar.svg"))
	if err == nil {
		t.Fatalf("expected error for nonexistent directory")
	}
	if !errors.Is(err, errors.ErrCodeInternal) {
		t.Errorf("got code %s, want %s", errors.GetCode(err), errors.ErrCodeInternal)
	}
}

func TestCanvasSize(t *testing.T) {
	size := 8.0
	ratio := 0.8
	gen := mustGenerator(t, Config{
		Grid: &GridConfig{Rows: 5, Columns: 5},
		Style: &StyleConfig{
			CellSize:         &size,
			PatternAreaRatio: &ratio,
		},
	})
	// 5 cells of 8 units with no gutter span 40; canvas = 40 / 0.8.
	if got := gen.CanvasSize(); got != 50 {
		t.Errorf("CanvasSize() = %v, want 50", got)
	}
}

// The default 5x5 configuration with seed "jarvis" is the regression anchor
// for the whole pipeline: any change to hashing, draw order, mirroring, or
// path emission shows up here.
func TestStableDocumentShape(t *testing.T) {
	svg := mustBuild(t, mustGenerator(t, Config{}), "jarvis").String()

	for _, want := range []string{
		`viewBox="0 0 `,
		`class="gg-background"`,
		`class="gg-cells"`,
		"<path ",
		"</svg>",
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("document missing %q", want)
		}
	}

	// Horizontal mirroring must survive end to end: the cell path is the
	// same when rebuilt from a generator configured identically.
	again := mustBuild(t, mustGenerator(t, Config{}), "jarvis").String()
	if svg != again {
		t.Errorf("regression anchor document is not stable")
	}
}

// Golden pin for the "jarvis" anchor. The digest fixes the document bytes
// across runs and across processes, so a deterministic regression that
// would slip past same-process comparisons still fails here. Regenerate
// the constants only for an intentional output change.
func TestGoldenDocumentDigest(t *testing.T) {
	const (
		wantDigest = "2858caaf322b35be6aafaa4b38803fc5eb9c10ac0202aca1c7ad9aa118a5bf6a"
		wantLen    = 2095
	)

	doc := mustBuild(t, mustGenerator(t, Config{}), "jarvis").Bytes()
	sum := sha256.Sum256(doc)
	if got := hex.EncodeToString(sum[:]); got != wantDigest {
		t.Errorf("document digest = %s, want %s\ndocument:\n%s", got, wantDigest, doc)
	}
	if len(doc) != wantLen {
		t.Errorf("document length = %d, want %d", len(doc), wantLen)
	}
}
