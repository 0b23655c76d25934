// Package resolve turns anchors into linear expressions over solver unknowns.
//
// Every free item in a [layout.Tree] (non-root elements, custom guides and
// scroll content guides) owns four unknowns: x, y, width and height in the
// root's coordinate space. Items derived from others resolve to expressions
// over their owner's unknowns:
//
//   - the root frame is pinned to the [Environment] size
//   - the root safe-area and keyboard guides are environment constants
//   - margins guides are their owner's rectangle inset by its margins
//   - frame guides coincide with their owner
//
// [Resolver.Value] reports concrete coordinates for anchors the environment
// determines on its own, such as the root safe area's bottom edge.
package resolve
