package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/autolayout/pkg/cache"
	"github.com/matzehuels/autolayout/pkg/engine"
	"github.com/matzehuels/autolayout/pkg/scenario"
	"github.com/matzehuels/autolayout/pkg/solver"
)

// envFlags override the scenario environment from the command line.
type envFlags struct {
	width    float64
	height   float64
	keyboard float64
	rotate   bool
}

func (f *envFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.width, "width", 0, "override the container width")
	cmd.Flags().Float64Var(&f.height, "height", 0, "override the container height")
	cmd.Flags().Float64Var(&f.keyboard, "keyboard", 0, "show a docked keyboard of this height")
	cmd.Flags().BoolVar(&f.rotate, "rotate", false, "rotate the environment a quarter turn")
}

// apply writes the overrides into doc before it is built, so variant and
// keyboard rules see the final environment.
func (f envFlags) apply(doc *scenario.Document) {
	env := &doc.Environment
	if f.width > 0 {
		env.Width = f.width
	}
	if f.height > 0 {
		env.Height = f.height
	}
	if f.keyboard > 0 {
		env.Keyboard = &scenario.Keyboard{
			Visible: true,
			Y:       env.Height - f.keyboard,
			Width:   env.Width,
			Height:  f.keyboard,
		}
	}
}

func (f envFlags) artifact(kind, format string) cache.ArtifactOpts {
	return cache.ArtifactOpts{
		Kind:     kind,
		Format:   format,
		Width:    f.width,
		Height:   f.height,
		Keyboard: f.keyboard,
		Rotated:  f.rotate,
	}
}

// loaded is a built scenario together with its source bytes, which key the
// artifact cache.
type loaded struct {
	*scenario.Scenario
	src []byte
}

// load reads, overrides and builds the scenario at path.
func (c *CLI) load(ctx context.Context, path string, env envFlags, opts ...solver.Option) (*loaded, error) {
	enc, err := scenario.EncodingFor(path)
	if err != nil {
		return nil, err
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	doc, err := scenario.Decode(src, enc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if doc.Name == "" {
		doc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	env.apply(doc)

	sc, err := doc.Build(
		engine.WithLogger(loggerFromContext(ctx)),
		engine.WithSolver(solver.New(opts...)),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if env.rotate {
		if err := sc.Engine.Rotate(ctx); err != nil {
			return nil, err
		}
	}
	return &loaded{Scenario: sc, src: src}, nil
}

// writeOutput writes data to path, or to stdout when path is empty.
func (c *CLI) writeOutput(path string, data []byte, cached bool) error {
	if path == "" {
		_, err := c.stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	printFile(path, cached)
	return nil
}
