package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/autolayout/pkg/errors"
	"github.com/matzehuels/autolayout/pkg/layout"
	"github.com/matzehuels/autolayout/pkg/vfl"
)

type vflOptions struct {
	views   []string
	metrics []string
	align   []string
	prefix  string
}

// vflCommand creates the vfl command, which expands a visual format string
// against throwaway views for checking formats before putting them in a
// scenario.
func (c *CLI) vflCommand() *cobra.Command {
	var opts vflOptions

	cmd := &cobra.Command{
		Use:   "vfl <format>",
		Short: "Expand a visual format string into constraints",
		Example: `  autolayout vfl 'H:|-[name]-[field(>=120)]-|'
  autolayout vfl 'V:|-(pad)-[a]-[b]' --metric pad=24 --align leading --prefix col`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runVFL(args[0], opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.views, "view", nil, "view names (default: every [name] in the format)")
	cmd.Flags().StringSliceVar(&opts.metrics, "metric", nil, "metrics as name=value")
	cmd.Flags().StringSliceVar(&opts.align, "align", nil, "align every view on this attribute")
	cmd.Flags().StringVar(&opts.prefix, "prefix", "", "name constraints prefix-0, prefix-1, ...")

	return cmd
}

func (c *CLI) runVFL(format string, opts vflOptions) error {
	names := opts.views
	if len(names) == 0 {
		names = viewNames(format)
	}
	root := layout.NewElement("superview")
	tree := layout.NewTree(root)
	items := make([]layout.Item, 0, len(names))
	for _, name := range names {
		el := layout.NewElement(name)
		if err := tree.Add(root, el); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "view %q", name)
		}
		items = append(items, el)
	}

	metrics, err := parseMetrics(opts.metrics)
	if err != nil {
		return err
	}

	var parseOpts []vfl.Option
	for _, a := range opts.align {
		attr, ok := layout.ParseAttribute(a)
		if !ok {
			return errors.New(errors.ErrCodeInvalidInput, "unknown attribute %q", a)
		}
		parseOpts = append(parseOpts, vfl.AlignAll(attr))
	}
	if opts.prefix != "" {
		parseOpts = append(parseOpts, vfl.Identifiers(opts.prefix))
	}

	cs, err := vfl.Parse(format, vfl.Views(items...), metrics, parseOpts...)
	if err != nil {
		return err
	}
	for _, con := range cs {
		fmt.Fprintln(c.stdout, con)
	}
	printSuccess("%d constraints", len(cs))
	return nil
}

// viewNames collects every bracketed name in format, in order of first use.
func viewNames(format string) []string {
	var out []string
	seen := make(map[string]bool)
	for rest := format; ; {
		i := strings.IndexByte(rest, '[')
		if i < 0 {
			return out
		}
		rest = rest[i+1:]
		end := strings.IndexAny(rest, "(]")
		if end < 0 {
			return out
		}
		if name := rest[:end]; name != "" && !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
		rest = rest[end:]
	}
}

func parseMetrics(pairs []string) (map[string]float64, error) {
	out := make(map[string]float64, len(pairs))
	for _, p := range pairs {
		name, value, ok := strings.Cut(p, "=")
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "metric %q is not name=value", p)
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "metric %q", name)
		}
		out[name] = v
	}
	return out, nil
}
