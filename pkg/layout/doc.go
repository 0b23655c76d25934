// Package layout defines the data model shared by every stage of the
// constraint engine: geometry, priorities, anchors, elements, guides and the
// layout tree that owns them.
//
// # Elements and Guides
//
// An [Element] is a layout participant with an optional intrinsic content
// size and per-axis content-hugging and compression-resistance priorities.
// A [Guide] is a virtual participant that takes part in constraints but is
// never painted: custom spacer guides, margins, safe area, the keyboard
// region, and the content and frame guides of a scroll element.
//
// Both are [Item]s and expose the eight anchors used by constraints:
//
//	button.Leading()   button.Trailing()  button.CenterX()  button.Width()
//	button.Top()       button.Bottom()    button.CenterY()  button.Height()
//
// # Layout Tree
//
// A [Tree] is rooted at the container element whose frame is supplied by the
// host environment. Parents exclusively own their children, and frames are
// reported relative to the parent. Every structural or content change bumps
// [Tree.Version] so hosts know a new layout pass is required.
//
//	root := layout.NewElement("root")
//	tree := layout.NewTree(root)
//	label := layout.NewElement("caption", layout.WithIntrinsicSize(120, 21))
//	_ = tree.Add(root, label)
//
// # Priorities
//
// [Priority] values lie in [1, 1000]. [Required] constraints must hold;
// everything below is optional and resolved tier by tier by the solver.
// The well-known levels mirror the platform constants: [DefaultHigh] (750,
// default compression resistance), [DefaultLow] (250, default hugging) and
// [FittingSizeLevel] (50).
package layout
