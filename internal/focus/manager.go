package focus

// Manager tracks the focus owner for one scene and answers traversal
// queries against it. Create one per scene; it is not safe for concurrent use.
type Manager struct {
	owner Node
}

// NewManager returns a Manager with no focus owner.
func NewManager() *Manager {
	return &Manager{}
}

// Next returns the node that receives focus on a forward (tab) event.
func (m *Manager) Next(root, owner Node) Node {
	return NextFocusable(root, owner)
}

// Previous returns the node that receives focus on a backward (shift-tab) event.
func (m *Manager) Previous(root, owner Node) Node {
	return PreviousFocusable(root, owner)
}

// CurrentFocusOwner returns the recorded focus owner, or nil.
func (m *Manager) CurrentFocusOwner() Node {
	return m.owner
}

// SetCurrentFocusOwner records n as the focus owner. n may be nil.
// No validation is done against any tree.
func (m *Manager) SetCurrentFocusOwner(n Node) {
	m.owner = n
}
