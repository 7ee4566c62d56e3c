package ui

import (
	"fmt"

	"focusnav/internal/dispatch"
	"focusnav/internal/focus"
	"focusnav/internal/scene"
)

// maxHistory bounds FocusTracker.History.
const maxHistory = 8

// FocusTracker is the toolkit side of focus: it records which node is
// visually focused and a short history of transitions for the status area.
type FocusTracker struct {
	Current scene.ID // ID of the visually focused node, or scene.None
	History []string // most recent transition last
}

var _ dispatch.Focuser = (*FocusTracker)(nil)

// NewFocusTracker creates a tracker with nothing focused.
func NewFocusTracker() *FocusTracker {
	return &FocusTracker{Current: scene.None}
}

// RequestFocus implements dispatch.Focuser.
func (f *FocusTracker) RequestFocus(n focus.Node) {
	h, ok := scene.HandleOf(n)
	if !ok {
		return
	}
	f.Current = h.ID()
	f.record(fmt.Sprintf("→ %s", h.Name()))
}

// ReleaseFocus implements dispatch.Focuser. Releasing a node that is not
// the current one is ignored.
func (f *FocusTracker) ReleaseFocus(n focus.Node) {
	h, ok := scene.HandleOf(n)
	if !ok || h.ID() != f.Current {
		return
	}
	f.Current = scene.None
	f.record(fmt.Sprintf("← %s", h.Name()))
}

// IsFocused reports whether id is the visually focused node.
func (f *FocusTracker) IsFocused(id scene.ID) bool {
	return f.Current != scene.None && f.Current == id
}

func (f *FocusTracker) record(entry string) {
	f.History = append(f.History, entry)
	if len(f.History) > maxHistory {
		f.History = f.History[len(f.History)-maxHistory:]
	}
}
