package focus

// Node is one element of a scene graph as seen by the traversal engine.
// Implementations must be comparable with ==; sibling lookup relies on it.
type Node interface {
	// Children returns the ordered children. Order is traversal order.
	Children() []Node
	// Parent returns the owning node, or nil for the root.
	Parent() Node
	IsFocusTraversable() bool
	// IsShowing reports effective visibility (own flag and every ancestor).
	IsShowing() bool
}

// Eligible reports whether n is a legal focus target.
func Eligible(n Node) bool {
	return n != nil && n.IsFocusTraversable() && n.IsShowing()
}

// deepestRightmost follows last-child links until it reaches a leaf.
func deepestRightmost(n Node) Node {
	for {
		children := n.Children()
		if len(children) == 0 {
			return n
		}
		n = children[len(children)-1]
	}
}

// indexOf returns the position of n among siblings, or -1.
func indexOf(siblings []Node, n Node) int {
	for i, s := range siblings {
		if s == n {
			return i
		}
	}
	return -1
}
