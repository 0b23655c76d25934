package scenario

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/matzehuels/autolayout/pkg/solver"
)

func TestExamplesSolveCleanly(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "examples", "*.*"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Skip("no examples found")
	}
	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			sc, err := Open(path, quiet())
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			res, err := sc.Engine.Layout(context.Background())
			if err != nil {
				t.Fatalf("Layout() error = %v", err)
			}
			for _, d := range res.Diagnostics {
				if d.Kind != solver.Ambiguous {
					t.Errorf("diagnostic: %s", d)
				}
			}
		})
	}
}
