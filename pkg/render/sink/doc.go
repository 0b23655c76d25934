// Package sink writes solved layouts as SVG wireframes and JSON documents.
//
// Frames in a [solver.Result] are relative to their owner; both sinks
// convert them to root coordinates first.
//
//	svg := sink.RenderSVG(res, sink.WithGuides(), sink.WithStyle(styles.Blueprint{}))
//	data, err := sink.RenderJSON(res, sink.WithJSONName("login"))
package sink
