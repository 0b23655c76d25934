package sink

import (
	"github.com/matzehuels/autolayout/pkg/layout"
	"github.com/matzehuels/autolayout/pkg/solver"
)

// placed is a frame converted to root coordinates.
type placed struct {
	solver.ItemFrame
	Abs   layout.Frame
	Depth int
}

// absolute converts owner-relative frames to root coordinates. Frames are
// listed owners first, so one pass suffices.
func absolute(res *solver.Result) []placed {
	type origin struct {
		x, y  float64
		depth int
	}
	origins := make(map[string]origin, len(res.Frames))
	out := make([]placed, 0, len(res.Frames))
	for _, f := range res.Frames {
		o := origins[f.Owner]
		p := placed{ItemFrame: f, Abs: f.Frame.Offset(o.x, o.y)}
		if f.Owner != "" {
			p.Depth = o.depth + 1
		}
		if !f.Guide {
			origins[f.Item.ID()] = origin{x: p.Abs.X, y: p.Abs.Y, depth: p.Depth}
		}
		out = append(out, p)
	}
	return out
}

func rootSize(ps []placed) (w, h float64) {
	for _, p := range ps {
		if p.Owner == "" && !p.Guide {
			return p.Abs.Width, p.Abs.Height
		}
	}
	return 0, 0
}

// conflicted collects the items named by diagnostics or by the constraints
// they list.
func conflicted(res *solver.Result) map[string]bool {
	out := make(map[string]bool)
	for _, d := range res.Diagnostics {
		if d.Item != "" {
			out[d.Item] = true
		}
	}
	for _, c := range res.Dropped {
		for _, it := range c.Items() {
			out[it.ID()] = true
		}
	}
	return out
}
