package cli

import (
	"context"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/autolayout/pkg/cache"
	"github.com/matzehuels/autolayout/pkg/errors"
	"github.com/matzehuels/autolayout/pkg/render"
	"github.com/matzehuels/autolayout/pkg/render/nodelink"
	"github.com/matzehuels/autolayout/pkg/solver"
)

var graphFormats = []string{formatDOT, formatSVG, formatPDF, formatPNG}

type graphOptions struct {
	env      envFlags
	format   string
	output   string
	detailed bool
	noCache  bool
}

// graphCommand creates the graph command.
func (c *CLI) graphCommand() *cobra.Command {
	var opts graphOptions

	cmd := &cobra.Command{
		Use:   "graph <scenario>",
		Short: "Draw the constraint graph of a scenario",
		Long: `Draw elements, guides and the active constraints between them.

The scenario is solved first so constraints in conflicting sets are drawn
in red. DOT output needs no Graphviz; the other formats render in-process.`,
		Example: `  autolayout graph login.toml -f dot
  autolayout graph login.toml --detailed -f svg -o login-graph.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(cmd.Context(), args[0], opts)
		},
	}

	opts.env.register(cmd)
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatSVG, "output format: "+strings.Join(graphFormats, ", "))
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (pdf and png default to <name>-graph.<format>)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "label edges with identifiers and priorities")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

func (c *CLI) runGraph(ctx context.Context, path string, opts graphOptions) error {
	if !slices.Contains(graphFormats, opts.format) {
		return errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (want one of %s)", opts.format, strings.Join(graphFormats, ", "))
	}

	sc, err := c.load(ctx, path, opts.env)
	if err != nil {
		return err
	}
	res, err := sc.Engine.Layout(ctx)
	if err != nil {
		return err
	}

	dot := nodelink.ToDOT(sc.Engine.Tree(), sc.Engine.Store().Active(), nodelink.Options{
		Detailed:  opts.detailed,
		Conflicts: conflicting(res),
	})
	if opts.format == formatDOT {
		return c.writeOutput(opts.output, []byte(dot), false)
	}

	output := opts.output
	if output == "" && opts.format != formatSVG {
		output = sc.Name + "-graph." + opts.format
	}
	key := opts.env.artifact("graph", opts.format)
	key.Detailed = opts.detailed
	data, cached, err := c.convert(ctx, cache.ArtifactKey(sc.src, key), func() ([]byte, error) {
		svg, err := nodelink.RenderSVG(ctx, dot)
		if err != nil || opts.format == formatSVG {
			return svg, err
		}
		if opts.format == formatPDF {
			return render.ToPDF(ctx, svg)
		}
		return render.ToPNG(ctx, svg, 2)
	}, opts.noCache)
	if err != nil {
		return err
	}
	return c.writeOutput(output, data, cached)
}

// conflicting lists the identifiers of every unsatisfiable set.
func conflicting(res *solver.Result) []string {
	var out []string
	for _, d := range res.Diagnostics {
		if d.Kind == solver.Unsatisfiable {
			out = append(out, d.Constraints...)
		}
	}
	return out
}
