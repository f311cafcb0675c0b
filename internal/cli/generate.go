package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/boradatti/gummygrid/pkg/gummygrid"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	output  string // output file path; empty writes to stdout
	config  string // TOML configuration file path
	dataURI bool   // emit a percent-encoded data URI instead of raw SVG

	rows int   // grid rows override
	cols int   // grid columns override
	salt int32 // seed salt override

	verticalSymmetry bool    // mirror across the horizontal center line
	fillBias         float64 // fill probability / integer weight
	cellSize         float64 // cell edge length in user units
	gutter           float64 // spacing between cells
	strokeWidth      float64 // cell outline width
	outerRounding    float64 // filled-corner rounding fraction
	innerRounding    float64 // empty-corner fillet fraction
	flow             bool    // merge rounding with filled neighbors
}

// generateCommand creates the generate command, which renders the avatar
// for one seed.
func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate <seed>",
		Short: "Render the avatar for a seed",
		Long: `Render the avatar for a seed to a file or stdout.

The avatar is fully determined by the seed, the salt, and the
configuration, so the same invocation always produces the same image.
Flags override values from the --config file, which overrides the
built-in defaults.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&opts.config, "config", "", "TOML configuration file")
	cmd.Flags().BoolVar(&opts.dataURI, "data-uri", false, "emit a data:image/svg+xml URI")

	cmd.Flags().IntVar(&opts.rows, "rows", 0, "grid rows")
	cmd.Flags().IntVar(&opts.cols, "cols", 0, "grid columns")
	cmd.Flags().Int32Var(&opts.salt, "salt", 0, "seed salt")
	cmd.Flags().BoolVar(&opts.verticalSymmetry, "vertical-symmetry", false, "mirror across the horizontal center line")
	cmd.Flags().Float64Var(&opts.fillBias, "fill-bias", gummygrid.DefaultFillBias, "fill probability (or integer weight)")
	cmd.Flags().Float64Var(&opts.cellSize, "cell-size", gummygrid.DefaultCellSize, "cell edge length")
	cmd.Flags().Float64Var(&opts.gutter, "gutter", gummygrid.DefaultGutter, "spacing between cells")
	cmd.Flags().Float64Var(&opts.strokeWidth, "stroke", gummygrid.DefaultStrokeWidth, "cell outline width")
	cmd.Flags().Float64Var(&opts.outerRounding, "rounding", gummygrid.DefaultOuterRounding, "filled-corner rounding in [0,1]")
	cmd.Flags().Float64Var(&opts.innerRounding, "inner-rounding", gummygrid.DefaultInnerRounding, "empty-corner fillet rounding in [0,1]")
	cmd.Flags().BoolVar(&opts.flow, "flow", true, "suppress rounding where filled cells merge")

	return cmd
}

func (c *CLI) runGenerate(cmd *cobra.Command, seed string, opts *generateOpts) error {
	cfg, err := opts.buildConfig(cmd)
	if err != nil {
		return err
	}

	gen, err := gummygrid.New(cfg)
	if err != nil {
		return err
	}

	p := newProgress(loggerFromContext(cmd.Context()))
	svg, err := gen.BuildFrom(cmd.Context(), seed)
	if err != nil {
		return err
	}
	p.done(fmt.Sprintf("Generated avatar for %q", seed))

	if opts.output == "" {
		if opts.dataURI {
			fmt.Println(svg.URLEncoded(true))
			return nil
		}
		fmt.Print(svg.String())
		return nil
	}

	if opts.dataURI {
		return writeString(opts.output, svg.URLEncoded(true))
	}
	if err := svg.WriteFile(opts.output); err != nil {
		return err
	}
	printSuccess("Avatar written")
	printFile(opts.output)
	return nil
}

// writeString writes s to path with 0644 permissions.
func writeString(path, s string) error {
	if err := os.WriteFile(path, []byte(s), 0o644); err != nil {
		return err
	}
	printSuccess("Avatar written")
	printFile(path)
	return nil
}

// buildConfig loads the config file (when given) and applies flag
// overrides on top. Only flags the user actually set override the file,
// so defaults on unset flags never mask configured values.
func (opts *generateOpts) buildConfig(cmd *cobra.Command) (gummygrid.Config, error) {
	cfg := gummygrid.Config{}
	if opts.config != "" {
		loaded, err := LoadConfig(opts.config)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	changed := cmd.Flags().Changed

	if changed("salt") {
		cfg.Salt = opts.salt
	}

	if changed("rows") || changed("cols") || changed("vertical-symmetry") || changed("fill-bias") {
		gc := gummygrid.GridConfig{}
		if cfg.Grid != nil {
			gc = *cfg.Grid
		}
		if changed("rows") {
			gc.Rows = opts.rows
		}
		if changed("cols") {
			gc.Columns = opts.cols
		}
		if changed("vertical-symmetry") {
			gc.VerticalSymmetry = &opts.verticalSymmetry
		}
		if changed("fill-bias") {
			gc.FillBias = &opts.fillBias
		}
		cfg.Grid = &gc
	}

	styleFlags := []string{"cell-size", "gutter", "stroke", "rounding", "inner-rounding", "flow"}
	anyStyle := false
	for _, name := range styleFlags {
		if changed(name) {
			anyStyle = true
			break
		}
	}
	if anyStyle {
		sc := gummygrid.StyleConfig{}
		if cfg.Style != nil {
			sc = *cfg.Style
		}
		if changed("cell-size") {
			sc.CellSize = &opts.cellSize
		}
		if changed("gutter") {
			sc.Gutter = &opts.gutter
		}
		if changed("stroke") {
			sc.StrokeWidth = &opts.strokeWidth
		}
		if changed("rounding") {
			sc.OuterRounding = &opts.outerRounding
		}
		if changed("inner-rounding") {
			sc.InnerRounding = &opts.innerRounding
		}
		if changed("flow") {
			sc.Flow = &opts.flow
		}
		cfg.Style = &sc
	}
	return cfg, nil
}
