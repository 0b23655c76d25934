// Package scenario loads layout scenarios from TOML, YAML or JSON documents
// and builds them into an [engine.Engine].
//
// A scenario declares the element tree, metrics, constraints written as
// expressions or visual format strings, stack containers, adaptive variants
// and keyboard-conditional sets:
//
//	name = "login"
//	constraints = [
//	    "title.top == root.margins.top + pad",
//	    "title.centerX == root.centerX",
//	]
//
//	[environment]
//	width = 375
//	height = 667
//	safe_area = { top = 20, bottom = 34 }
//
//	[metrics]
//	pad = 16
//
//	[[elements]]
//	id = "title"
//	intrinsic = [120, 24]
//
//	[[elements]]
//	id = "field"
//	intrinsic = [-1, 32]
//
//	[[formats]]
//	format = "H:|-[field]-|"
//
//	[[switches]]
//	name = "orientation"
//
//	[[switches.variants]]
//	name = "wide"
//	when = { min_width = 500 }
//	constraints = ["field.width == 0.5 * root.width @750"]
//
// Top-level keys such as constraints must precede the first table in TOML.
// Expressions use the syntax printed by [constraint.Constraint.String];
// see [ParseExpression].
package scenario
