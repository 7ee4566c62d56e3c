// Package scene provides an arena-backed widget tree that implements
// focus.Node.
//
// Nodes live in a single slice and refer to each other by index, so the
// parent/child links never form reference cycles. A Handle pairs the tree
// with an index and is what the traversal engine sees.
package scene

import (
	"errors"
	"fmt"

	"focusnav/internal/focus"
)

// ID addresses a node within one Tree.
type ID int

// None is the parent ID of the root.
const None ID = -1

var (
	ErrUnknownNode   = errors.New("unknown node")
	ErrEmptyName     = errors.New("empty node name")
	ErrDuplicateName = errors.New("duplicate node name")
)

type node struct {
	name      string
	parent    ID
	children  []ID
	focusable bool
	visible   bool
}

// Option configures a node when it is added.
type Option func(*node)

// Focusable sets whether the node can take keyboard focus. Default false.
func Focusable(v bool) Option {
	return func(n *node) { n.focusable = v }
}

// Visible sets the node's own visibility flag. Default true.
func Visible(v bool) Option {
	return func(n *node) { n.visible = v }
}

// Tree is a scene graph stored as an arena. Not safe for concurrent use.
type Tree struct {
	nodes  []node
	byName map[string]ID
}

// New creates a tree holding only a root node named rootName.
func New(rootName string, opts ...Option) *Tree {
	t := &Tree{byName: make(map[string]ID)}
	root := node{name: rootName, parent: None, visible: true}
	for _, o := range opts {
		o(&root)
	}
	t.nodes = append(t.nodes, root)
	t.byName[rootName] = 0
	return t
}

// Add appends a new last child under parent and returns its ID.
func (t *Tree) Add(parent ID, name string, opts ...Option) (ID, error) {
	if !t.valid(parent) {
		return None, fmt.Errorf("add %q under %d: %w", name, parent, ErrUnknownNode)
	}
	if name == "" {
		return None, ErrEmptyName
	}
	if _, ok := t.byName[name]; ok {
		return None, fmt.Errorf("add %q: %w", name, ErrDuplicateName)
	}
	n := node{name: name, parent: parent, visible: true}
	for _, o := range opts {
		o(&n)
	}
	id := ID(len(t.nodes))
	t.nodes = append(t.nodes, n)
	t.nodes[parent].children = append(t.nodes[parent].children, id)
	t.byName[name] = id
	return id, nil
}

// Root returns the root ID, which is always 0.
func (t *Tree) Root() ID { return 0 }

// Len returns the number of nodes, root included.
func (t *Tree) Len() int { return len(t.nodes) }

// Lookup finds a node by name.
func (t *Tree) Lookup(name string) (ID, bool) {
	id, ok := t.byName[name]
	return id, ok
}

// Name returns the node's name, or "" for an unknown ID.
func (t *Tree) Name(id ID) string {
	if !t.valid(id) {
		return ""
	}
	return t.nodes[id].name
}

// Parent returns the parent ID, or None for the root and unknown IDs.
func (t *Tree) Parent(id ID) ID {
	if !t.valid(id) {
		return None
	}
	return t.nodes[id].parent
}

// Children returns a copy of the node's child IDs.
func (t *Tree) Children(id ID) []ID {
	if !t.valid(id) {
		return nil
	}
	return append([]ID(nil), t.nodes[id].children...)
}

func (t *Tree) IsFocusable(id ID) bool {
	return t.valid(id) && t.nodes[id].focusable
}

// IsVisible reports the node's own flag, ignoring ancestors.
func (t *Tree) IsVisible(id ID) bool {
	return t.valid(id) && t.nodes[id].visible
}

// IsShowing reports whether the node and all its ancestors are visible.
func (t *Tree) IsShowing(id ID) bool {
	if !t.valid(id) {
		return false
	}
	for c := id; c != None; c = t.nodes[c].parent {
		if !t.nodes[c].visible {
			return false
		}
	}
	return true
}

func (t *Tree) SetFocusable(id ID, v bool) error {
	if !t.valid(id) {
		return fmt.Errorf("set focusable on %d: %w", id, ErrUnknownNode)
	}
	t.nodes[id].focusable = v
	return nil
}

func (t *Tree) SetVisible(id ID, v bool) error {
	if !t.valid(id) {
		return fmt.Errorf("set visible on %d: %w", id, ErrUnknownNode)
	}
	t.nodes[id].visible = v
	return nil
}

// Walk visits nodes in pre-order with their depth below the root.
// Returning false from fn skips that node's children.
func (t *Tree) Walk(fn func(id ID, depth int) bool) {
	t.walk(t.Root(), 0, fn)
}

func (t *Tree) walk(id ID, depth int, fn func(ID, int) bool) {
	if !fn(id, depth) {
		return
	}
	for _, c := range t.nodes[id].children {
		t.walk(c, depth+1, fn)
	}
}

// Node returns the traversal handle for id. It panics on an unknown ID.
func (t *Tree) Node(id ID) Handle {
	if !t.valid(id) {
		panic(fmt.Sprintf("scene: node %d out of range [0,%d)", id, len(t.nodes)))
	}
	return Handle{tree: t, id: id}
}

// RootNode returns the handle for the root.
func (t *Tree) RootNode() Handle {
	return t.Node(t.Root())
}

func (t *Tree) valid(id ID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}

// Handle is a comparable reference to one node in a Tree.
type Handle struct {
	tree *Tree
	id   ID
}

var _ focus.Node = Handle{}

func (h Handle) ID() ID       { return h.id }
func (h Handle) Tree() *Tree  { return h.tree }
func (h Handle) Name() string { return h.tree.Name(h.id) }
func (h Handle) String() string {
	return h.Name()
}

// Children implements focus.Node.
func (h Handle) Children() []focus.Node {
	ids := h.tree.nodes[h.id].children
	out := make([]focus.Node, len(ids))
	for i, c := range ids {
		out[i] = Handle{tree: h.tree, id: c}
	}
	return out
}

// Parent implements focus.Node. It returns a nil interface for the root.
func (h Handle) Parent() focus.Node {
	p := h.tree.nodes[h.id].parent
	if p == None {
		return nil
	}
	return Handle{tree: h.tree, id: p}
}

func (h Handle) IsFocusTraversable() bool { return h.tree.IsFocusable(h.id) }

func (h Handle) IsShowing() bool { return h.tree.IsShowing(h.id) }

// HandleOf unwraps a focus.Node produced by a Tree.
func HandleOf(n focus.Node) (Handle, bool) {
	h, ok := n.(Handle)
	return h, ok
}
