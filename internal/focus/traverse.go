package focus

// NextFocusable returns the first eligible node after owner in pre-order
// (node before children, children left to right) among the descendants of
// root. The root itself is never a candidate. A nil owner starts the walk at
// root's first child. Returns nil when the ordering is exhausted.
func NextFocusable(root, owner Node) Node {
	next := owner
	if owner == nil {
		children := root.Children()
		if len(children) == 0 {
			return nil
		}
		next = children[0]
		if Eligible(next) {
			return next
		}
	}
	for {
		if children := next.Children(); len(children) > 0 {
			next = children[0]
		} else if sib := nextSibling(next); sib != nil {
			next = sib
		} else if next = climb(next); next == nil {
			return nil
		}
		if Eligible(next) {
			return next
		}
	}
}

// PreviousFocusable returns the first eligible node before owner in reverse
// pre-order. Unlike NextFocusable it may return the root, when the root is
// eligible. Returns nil for a nil owner or when the ordering is exhausted.
func PreviousFocusable(root, owner Node) Node {
	if owner == nil {
		return nil
	}
	prev := owner
	for {
		parent := prev.Parent()
		if parent == nil {
			return nil
		}
		siblings := parent.Children()
		if i := indexOf(siblings, prev); i > 0 {
			prev = deepestRightmost(siblings[i-1])
		} else {
			prev = parent
		}
		if Eligible(prev) {
			return prev
		}
	}
}

// Order lists every eligible descendant of root in forward traversal order.
func Order(root Node) []Node {
	var out []Node
	for n := NextFocusable(root, nil); n != nil; n = NextFocusable(root, n) {
		out = append(out, n)
	}
	return out
}

func nextSibling(n Node) Node {
	parent := n.Parent()
	if parent == nil {
		return nil
	}
	siblings := parent.Children()
	if i := indexOf(siblings, n); i >= 0 && i < len(siblings)-1 {
		return siblings[i+1]
	}
	return nil
}

// climb walks up from n until an ancestor has a right sibling and returns
// that sibling. Returns nil once the walk reaches a child of the root.
func climb(n Node) Node {
	for {
		p := n.Parent()
		if p == nil {
			return nil
		}
		gp := p.Parent()
		if gp == nil {
			return nil
		}
		uncles := gp.Children()
		if i := indexOf(uncles, p); i >= 0 && i < len(uncles)-1 {
			return uncles[i+1]
		}
		n = p
	}
}
