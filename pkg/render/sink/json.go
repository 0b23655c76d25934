package sink

import (
	"encoding/json"

	"github.com/matzehuels/autolayout/pkg/resolve"
	"github.com/matzehuels/autolayout/pkg/solver"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	name     string
	env      *resolve.Environment
	relative bool
}

// WithJSONName records the scenario name.
func WithJSONName(name string) JSONOption { return func(r *jsonRenderer) { r.name = name } }

// WithJSONEnvironment records the environment the layout was solved in.
func WithJSONEnvironment(env resolve.Environment) JSONOption {
	return func(r *jsonRenderer) { r.env = &env }
}

// WithJSONRelative writes owner-relative frames instead of root coordinates.
func WithJSONRelative() JSONOption { return func(r *jsonRenderer) { r.relative = true } }

type jsonOutput struct {
	Name        string           `json:"name,omitempty"`
	Width       float64          `json:"width"`
	Height      float64          `json:"height"`
	Environment *jsonEnvironment `json:"environment,omitempty"`
	Frames      []jsonFrame      `json:"frames"`
	Diagnostics []jsonDiagnostic `json:"diagnostics,omitempty"`
	Unsatisfied []string         `json:"unsatisfied,omitempty"`
	Dropped     []string         `json:"dropped,omitempty"`
	Stats       jsonStats        `json:"stats"`
}

type jsonEnvironment struct {
	HorizontalSizeClass string  `json:"horizontal_size_class"`
	VerticalSizeClass   string  `json:"vertical_size_class"`
	ContentScale        float64 `json:"content_scale"`
	KeyboardVisible     bool    `json:"keyboard_visible"`
	KeyboardNear        string  `json:"keyboard_near"`
}

type jsonFrame struct {
	ID            string   `json:"id"`
	Owner         string   `json:"owner,omitempty"`
	X             float64  `json:"x"`
	Y             float64  `json:"y"`
	Width         float64  `json:"width"`
	Height        float64  `json:"height"`
	Guide         bool     `json:"guide,omitempty"`
	ContentWidth  *float64 `json:"content_width,omitempty"`
	ContentHeight *float64 `json:"content_height,omitempty"`
}

type jsonDiagnostic struct {
	Kind        string   `json:"kind"`
	Message     string   `json:"message"`
	Constraints []string `json:"constraints,omitempty"`
	Dropped     string   `json:"dropped,omitempty"`
	Item        string   `json:"item,omitempty"`
	Attributes  []string `json:"attributes,omitempty"`
}

type jsonStats struct {
	Variables   int `json:"variables"`
	Constraints int `json:"constraints"`
	Tiers       int `json:"tiers"`
	Pivots      int `json:"pivots"`
}

// RenderJSON exports the solved frames and everything the solver gave up on
// as a pretty-printed JSON document.
func RenderJSON(res *solver.Result, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	placed := absolute(res)
	w, h := rootSize(placed)
	out := jsonOutput{
		Name:   r.name,
		Width:  w,
		Height: h,
		Frames: make([]jsonFrame, 0, len(placed)),
		Stats: jsonStats{
			Variables:   res.Stats.Variables,
			Constraints: res.Stats.Constraints,
			Tiers:       res.Stats.Tiers,
			Pivots:      res.Stats.Pivots,
		},
	}
	if r.env != nil {
		hc, vc := r.env.SizeClasses()
		out.Environment = &jsonEnvironment{
			HorizontalSizeClass: hc.String(),
			VerticalSizeClass:   vc.String(),
			ContentScale:        r.env.Traits.Scale(),
			KeyboardVisible:     r.env.Keyboard.Visible,
			KeyboardNear:        r.env.KeyboardNearEdges().String(),
		}
	}

	for _, p := range placed {
		f := p.Abs
		if r.relative {
			f = p.Frame
		}
		jf := jsonFrame{
			ID:     p.Item.ID(),
			Owner:  p.Owner,
			X:      f.X,
			Y:      f.Y,
			Width:  f.Width,
			Height: f.Height,
			Guide:  p.Guide,
		}
		if cs := p.ContentSize; cs != nil {
			jf.ContentWidth, jf.ContentHeight = &cs.Width, &cs.Height
		}
		out.Frames = append(out.Frames, jf)
	}

	for _, d := range res.Diagnostics {
		jd := jsonDiagnostic{
			Kind:        d.Kind.String(),
			Message:     d.Message,
			Constraints: d.Constraints,
			Dropped:     d.Dropped,
			Item:        d.Item,
		}
		for _, a := range d.Attributes {
			jd.Attributes = append(jd.Attributes, a.String())
		}
		out.Diagnostics = append(out.Diagnostics, jd)
	}
	for _, c := range res.Unsatisfied {
		out.Unsatisfied = append(out.Unsatisfied, c.Identifier())
	}
	for _, c := range res.Dropped {
		out.Dropped = append(out.Dropped, c.Identifier())
	}

	return json.MarshalIndent(out, "", "  ")
}
