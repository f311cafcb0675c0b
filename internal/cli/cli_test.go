package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/boradatti/gummygrid/pkg/render"
)

func TestRootCommandStructure(t *testing.T) {
	c := New(os.Stderr, LogInfo)
	root := c.RootCommand()

	want := map[string]bool{
		"generate":   false,
		"serve":      false,
		"preview":    false,
		"cache":      false,
		"completion": false,
	}
	for _, cmd := range root.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "style.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
salt = 7

[grid]
rows = 7
columns = 9
vertical_symmetry = true
fill_bias = 0.75

[style]
cell_size = 12.0
gutter = 1.5
cell_fill = ["#2563eb", "grad:ocean"]
locked = [["cellFill", "cellStroke"]]
paint_order = "stroke"

[style.color_weights]
cellFill = [1.0, 2.0]

[style.shadow]
dx = 1.0
dy = 2.0
blur = 3.0

[style.gradients.ocean]
kind = "linear"
attrs = { x1 = "0", y1 = "0", x2 = "1", y2 = "1" }
stops = [
  { offset = "0%", color = "#0ea5e9" },
  { offset = "100%", color = "#1d4ed8" },
]
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}

	if cfg.Salt != 7 {
		t.Errorf("Salt = %d, want 7", cfg.Salt)
	}
	if cfg.Grid == nil || cfg.Grid.Rows != 7 || cfg.Grid.Columns != 9 {
		t.Fatalf("grid config not loaded: %+v", cfg.Grid)
	}
	if cfg.Grid.VerticalSymmetry == nil || !*cfg.Grid.VerticalSymmetry {
		t.Error("vertical_symmetry not loaded")
	}
	if cfg.Grid.FillBias == nil || *cfg.Grid.FillBias != 0.75 {
		t.Error("fill_bias not loaded")
	}

	st := cfg.Style
	if st == nil {
		t.Fatal("style config not loaded")
	}
	if st.CellSize == nil || *st.CellSize != 12 {
		t.Error("cell_size not loaded")
	}
	if len(st.CellFill) != 2 {
		t.Fatalf("cell_fill has %d entries, want 2", len(st.CellFill))
	}
	if st.CellFill[0].Value() != "#2563eb" {
		t.Errorf("flat color = %q", st.CellFill[0].Value())
	}
	grad := st.CellFill[1].Gradient()
	if grad == nil {
		t.Fatal("gradient reference not resolved")
	}
	if grad.Kind != render.GradientLinear || len(grad.Stops) != 2 {
		t.Errorf("gradient not loaded: %+v", grad)
	}
	if grad.Attrs["x2"] != "1" {
		t.Errorf("gradient attrs not loaded: %v", grad.Attrs)
	}
	if got := st.ColorWeights[render.CategoryCellFill]; len(got) != 2 || got[1] != 2 {
		t.Errorf("color weights not loaded: %v", got)
	}
	if len(st.LockedColors) != 1 || st.LockedColors[0][1] != render.CategoryCellStroke {
		t.Errorf("locked groups not loaded: %v", st.LockedColors)
	}
	if st.Shadow == nil || st.Shadow.Blur != 3 {
		t.Errorf("shadow not loaded: %+v", st.Shadow)
	}
	if st.PaintOrder != render.PaintOrderStroke {
		t.Errorf("paint_order = %q", st.PaintOrder)
	}
}

func TestLoadConfigUndefinedGradient(t *testing.T) {
	path := writeConfig(t, `
[style]
cell_fill = ["grad:nope"]
`)
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for undefined gradient reference")
	}
}

func TestLoadConfigUnknownCategory(t *testing.T) {
	path := writeConfig(t, `
[style]
locked = [["cellFill", "outline"]]
`)
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for unknown category")
	}
}

func TestGenerateBuildConfigOverrides(t *testing.T) {
	path := writeConfig(t, `
salt = 1

[grid]
rows = 6
columns = 6
`)
	c := New(io.Discard, LogInfo)
	cmd := c.generateCommand()
	if err := cmd.Flags().Parse([]string{"--config", path, "--rows", "8", "--salt", "5", "--gutter", "2"}); err != nil {
		t.Fatalf("flag parse error: %v", err)
	}
	opts := generateOpts{config: path, rows: 8, salt: 5, gutter: 2}
	cfg, err := opts.buildConfig(cmd)
	if err != nil {
		t.Fatalf("buildConfig error: %v", err)
	}
	if cfg.Salt != 5 {
		t.Errorf("Salt = %d, want flag override 5", cfg.Salt)
	}
	if cfg.Grid.Rows != 8 {
		t.Errorf("Rows = %d, want flag override 8", cfg.Grid.Rows)
	}
	if cfg.Grid.Columns != 6 {
		t.Errorf("Columns = %d, want config value 6", cfg.Grid.Columns)
	}
	if cfg.Style == nil || cfg.Style.Gutter == nil || *cfg.Style.Gutter != 2 {
		t.Error("Gutter flag override not applied")
	}
	if cfg.Style.CellSize != nil {
		t.Error("unset cell-size flag should not override config")
	}
}

func TestCacheDirRespectsXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-test")
	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir error: %v", err)
	}
	if dir != filepath.Join("/tmp/xdg-test", appName) {
		t.Errorf("cacheDir = %q", dir)
	}
}

func TestPreviewModelRebuild(t *testing.T) {
	m := newPreviewModel("jarvis", &previewOpts{rows: 5, cols: 5})
	if m.err != nil {
		t.Fatalf("rebuild error: %v", m.err)
	}
	if len(m.cells) != 5 || len(m.cells[0]) != 5 {
		t.Fatalf("unexpected pattern shape")
	}

	// Horizontal mirroring must show up in the preview pattern.
	for r := 0; r < 5; r++ {
		for c := 0; c < 5; c++ {
			if m.cells[r][c] != m.cells[r][4-c] {
				t.Fatalf("pattern not mirrored at (%d,%d)", r, c)
			}
		}
	}
	if m.color == "" {
		t.Error("no fill color chosen")
	}
}
