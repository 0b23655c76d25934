// Package nodelink renders layout trees and their constraints as node-link
// diagrams.
//
// # Overview
//
// Every element and guide becomes a node. Dotted edges show ownership and
// solid edges show constraints, pointing from the constrained item to the
// item it references. Optional constraints are dashed and conflicting ones
// red, which makes the graph a quick way to see why a layout is
// unsatisfiable.
//
// # Usage
//
// Convert a tree to DOT, then render to SVG:
//
//	dot := nodelink.ToDOT(tree, constraints, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
