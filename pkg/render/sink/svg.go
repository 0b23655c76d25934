package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/autolayout/pkg/render/styles"
	"github.com/matzehuels/autolayout/pkg/solver"
)

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style  styles.Style
	guides bool
	labels bool
	title  string
}

// WithStyle selects the visual style. The default is [styles.Simple].
func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithGuides also draws layout guides as dashed outlines.
func WithGuides() SVGOption { return func(r *svgRenderer) { r.guides = true } }

func WithoutLabels() SVGOption { return func(r *svgRenderer) { r.labels = false } }

func WithTitle(t string) SVGOption { return func(r *svgRenderer) { r.title = t } }

// RenderSVG draws every element's frame, outermost first. Hidden and zero
// sized frames are still drawn so conflicts stay visible; guides only with
// WithGuides.
func RenderSVG(res *solver.Result, opts ...SVGOption) []byte {
	r := svgRenderer{style: styles.Simple{}, labels: true}
	for _, opt := range opts {
		opt(&r)
	}

	placed := absolute(res)
	w, h := rootSize(placed)
	bad := conflicted(res)

	var boxes []styles.Box
	for _, p := range placed {
		if p.Guide && !r.guides {
			continue
		}
		id := p.Item.ID()
		boxes = append(boxes, styles.Box{
			ID:       id,
			Label:    id,
			X:        p.Abs.X,
			Y:        p.Abs.Y,
			W:        p.Abs.Width,
			H:        p.Abs.Height,
			Depth:    p.Depth,
			Guide:    p.Guide,
			Conflict: bad[id],
		})
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n", w, h, w, h)
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", styles.EscapeXML(r.title))
	}
	r.style.RenderDefs(&buf, w, h)
	for _, b := range boxes {
		r.style.RenderBox(&buf, b)
	}
	if r.labels {
		for _, b := range boxes {
			if !b.Guide && b.Depth > 0 {
				r.style.RenderLabel(&buf, b)
			}
		}
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}
