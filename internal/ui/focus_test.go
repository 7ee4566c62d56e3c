package ui

import (
	"fmt"
	"testing"

	"focusnav/internal/scene"
)

func TestFocusTracker_RequestRelease(t *testing.T) {
	tree := scene.New("root")
	a, _ := tree.Add(tree.Root(), "a", scene.Focusable(true))
	b, _ := tree.Add(tree.Root(), "b", scene.Focusable(true))

	f := NewFocusTracker()

	if f.IsFocused(a) {
		t.Fatal("nothing should be focused initially")
	}
	f.RequestFocus(tree.Node(a))
	if !f.IsFocused(a) {
		t.Errorf("expected a focused, Current=%d", f.Current)
	}

	// Releasing a node that is not current is ignored.
	f.ReleaseFocus(tree.Node(b))
	if !f.IsFocused(a) {
		t.Error("releasing b must not clear a")
	}

	f.ReleaseFocus(tree.Node(a))
	if f.Current != scene.None {
		t.Errorf("Current = %d, want None", f.Current)
	}

	if fmt.Sprint(f.History) != "[→ a ← a]" {
		t.Errorf("History = %v", f.History)
	}
}

func TestFocusTracker_HistoryBounded(t *testing.T) {
	tree := scene.New("root")
	a, _ := tree.Add(tree.Root(), "a", scene.Focusable(true))
	f := NewFocusTracker()
	for i := 0; i < maxHistory*2; i++ {
		f.RequestFocus(tree.Node(a))
	}
	if len(f.History) != maxHistory {
		t.Errorf("len(History) = %d, want %d", len(f.History), maxHistory)
	}
}

func TestFocusTracker_IgnoresForeignNodes(t *testing.T) {
	f := NewFocusTracker()
	f.RequestFocus(nil)
	f.ReleaseFocus(nil)
	if f.Current != scene.None || len(f.History) != 0 {
		t.Errorf("nil nodes should be ignored: Current=%d History=%v", f.Current, f.History)
	}
}
