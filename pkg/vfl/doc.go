// Package vfl parses the visual format language, a compact ASCII notation
// for rows and columns of items:
//
//	H:|-(20)-[a(==b)]-(10)-[b]-(20)-|
//	V:|-[title]-[body(>=100@750)]-|
//
// The grammar:
//
//	format     = [ ("H" | "V") ":" ] [ "|" connection ] view { connection view } [ connection "|" ]
//	view       = "[" name [ "(" predicate { "," predicate } ")" ] "]"
//	connection = "" | "-" | "-" predicates "-"
//	predicates = number | metric | "(" predicate { "," predicate } ")"
//	predicate  = [ "==" | "<=" | ">=" ] ( number | metric | name ) [ "@" ( number | metric ) ]
//
// An empty connection places items flush against each other. A bare "-"
// means standard spacing: [constraint.SystemSpacing] between siblings and
// [StandardSuperviewSpacing] to the enclosing item. Predicates inside a view
// constrain its width (H) or height (V); a name there may refer to another
// view, as in [a(==b)].
//
// [Parse] turns a format into ordinary constraints; it never activates them.
package vfl
