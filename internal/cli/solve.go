package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/autolayout/pkg/cache"
	"github.com/matzehuels/autolayout/pkg/errors"
	"github.com/matzehuels/autolayout/pkg/render"
	"github.com/matzehuels/autolayout/pkg/render/sink"
	"github.com/matzehuels/autolayout/pkg/render/styles"
	"github.com/matzehuels/autolayout/pkg/solver"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatSVG  = "svg"
	formatPDF  = "pdf"
	formatPNG  = "png"
	formatDOT  = "dot"

	// artifactTTL bounds how long rendered PDF and PNG files are reused.
	artifactTTL = 7 * 24 * time.Hour
)

var solveFormats = []string{formatText, formatJSON, formatSVG, formatPDF, formatPNG}

type solveOptions struct {
	env       envFlags
	format    string
	output    string
	style     string
	guides    bool
	relative  bool
	ambiguity bool
	noCache   bool
	scale     float64
}

// solveCommand creates the solve command.
func (c *CLI) solveCommand() *cobra.Command {
	var opts solveOptions

	cmd := &cobra.Command{
		Use:   "solve <scenario>",
		Short: "Solve a scenario and print or render its frames",
		Long: `Solve a scenario file (.toml, .yaml or .json) and write the frames.

Formats:
  text   frame table with diagnostics (default)
  json   frames, diagnostics and solver statistics
  svg    wireframe of every element
  pdf    wireframe converted with rsvg-convert
  png    wireframe converted with rsvg-convert`,
		Example: `  autolayout solve login.toml
  autolayout solve login.toml --width 600 -f svg -o login.svg
  autolayout solve login.toml --keyboard 300 --ambiguity -f json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSolve(cmd.Context(), args[0], opts)
		},
	}

	opts.env.register(cmd)
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatText, "output format: "+strings.Join(solveFormats, ", "))
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (pdf and png default to <name>.<format>)")
	cmd.Flags().StringVar(&opts.style, "style", "simple", "wireframe style: "+strings.Join(styles.Names(), ", "))
	cmd.Flags().BoolVar(&opts.guides, "guides", false, "include layout guides")
	cmd.Flags().BoolVar(&opts.relative, "relative", false, "write owner-relative frames in JSON output")
	cmd.Flags().BoolVar(&opts.ambiguity, "ambiguity", false, "report items whose frames are not uniquely determined")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().Float64Var(&opts.scale, "scale", 2, "PNG scale factor")

	return cmd
}

func (c *CLI) runSolve(ctx context.Context, path string, opts solveOptions) error {
	if !slices.Contains(solveFormats, opts.format) {
		return errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (want one of %s)", opts.format, strings.Join(solveFormats, ", "))
	}
	style, ok := styles.ByName(opts.style)
	if !ok {
		return errors.New(errors.ErrCodeInvalidInput, "unknown style %q (want one of %s)", opts.style, strings.Join(styles.Names(), ", "))
	}

	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	var solverOpts []solver.Option
	if opts.ambiguity {
		solverOpts = append(solverOpts, solver.WithAmbiguityCheck())
	}
	sc, err := c.load(ctx, path, opts.env, solverOpts...)
	if err != nil {
		return err
	}
	res, err := sc.Engine.Layout(ctx)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Solved %s: %d frames, %d diagnostics", sc.Name, len(res.Frames), len(res.Diagnostics)))

	switch opts.format {
	case formatText:
		fmt.Fprintln(c.stdout, framesTable(res, opts.guides))
		printDiagnostics(res)
		return nil
	case formatJSON:
		jsonOpts := []sink.JSONOption{sink.WithJSONName(sc.Name), sink.WithJSONEnvironment(sc.Engine.Environment())}
		if opts.relative {
			jsonOpts = append(jsonOpts, sink.WithJSONRelative())
		}
		data, err := sink.RenderJSON(res, jsonOpts...)
		if err != nil {
			return err
		}
		return c.writeOutput(opts.output, append(data, '\n'), false)
	}

	svgOpts := []sink.SVGOption{sink.WithStyle(style), sink.WithTitle(sc.Name)}
	if opts.guides {
		svgOpts = append(svgOpts, sink.WithGuides())
	}
	svg := sink.RenderSVG(res, svgOpts...)
	if opts.format == formatSVG {
		return c.writeOutput(opts.output, svg, false)
	}

	output := opts.output
	if output == "" {
		output = sc.Name + "." + opts.format
	}
	key := opts.env.artifact("layout", opts.format)
	key.Style, key.Guides, key.Scale = style.Name(), opts.guides, opts.scale
	data, cached, err := c.convert(ctx, cache.ArtifactKey(sc.src, key), func() ([]byte, error) {
		if opts.format == formatPDF {
			return render.ToPDF(ctx, svg)
		}
		return render.ToPNG(ctx, svg, opts.scale)
	}, opts.noCache)
	if err != nil {
		return err
	}
	return c.writeOutput(output, data, cached)
}

// convert returns the artifact under key, producing and caching it on a
// miss. Cache failures only cost a recomputation.
func (c *CLI) convert(ctx context.Context, key string, produce func() ([]byte, error), noCache bool) ([]byte, bool, error) {
	store := c.newCache(noCache)
	defer store.Close()

	if data, ok, err := store.Get(ctx, key); err != nil {
		c.Logger.Debug("cache read failed", "err", err)
	} else if ok {
		return data, true, nil
	}

	spin := newSpinnerWithContext(ctx, "Converting...")
	spin.Start()
	data, err := produce()
	if err != nil {
		spin.StopWithError("conversion failed")
		return nil, false, err
	}
	spin.Stop()
	if err := store.Set(ctx, key, data, artifactTTL); err != nil {
		c.Logger.Debug("cache write failed", "err", err)
	}
	return data, false, nil
}
