// Package constraint defines linear relations between anchors.
//
// A constraint reads
//
//	first REL multiplier × second + constant   @priority
//
// or, for size anchors only,
//
//	first REL constant   @priority
//
// where REL is one of ==, <= or >=. Constraints are immutable values created
// by [New] or [Constant]; anchor kinds are checked at construction so a
// constraint that exists is always well-formed. Activation is handled by the
// store package, solving by the solver package.
//
// # Priorities
//
// Priorities range from 1 to 1000. Constraints at [layout.Required] must hold;
// anything lower is satisfied as closely as possible, higher priorities first.
//
// # Identifiers
//
// Every constraint has an identifier used in diagnostics. Callers name them
// with [WithIdentifier]; otherwise a random one is generated.
package constraint
