// Package render turns solved layouts into pictures and documents.
//
// # Overview
//
//   - Wireframes and JSON exports of solved frames (in [sink])
//   - Visual styles for wireframes (in [styles])
//   - Constraint graphs drawn with Graphviz (in [nodelink])
//   - Generic format conversion from SVG to PDF and PNG
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg):
//
//	svg := sink.RenderSVG(result)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2)
//
// [sink]: github.com/matzehuels/autolayout/pkg/render/sink
// [styles]: github.com/matzehuels/autolayout/pkg/render/styles
// [nodelink]: github.com/matzehuels/autolayout/pkg/render/nodelink
package render
