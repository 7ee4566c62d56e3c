package ui

import (
	"strings"
	"testing"

	"focusnav/internal/scene"

	tea "github.com/charmbracelet/bubbletea"
)

func TestSceneView_RendersTree(t *testing.T) {
	tree := scene.New("window")
	panel, _ := tree.Add(tree.Root(), "panel")
	ok, _ := tree.Add(panel, "ok", scene.Focusable(true))
	tree.Add(panel, "cancel", scene.Focusable(true))

	tracker := NewFocusTracker()
	tracker.RequestFocus(tree.Node(ok))
	v := NewSceneView(tree, tracker)
	v.Status = "moved to ok"

	out := v.View()
	for _, want := range []string{"window", "panel", "▸ ◆ ok", "◇ cancel", "focus: ok", "moved to ok"} {
		if !strings.Contains(out, want) {
			t.Errorf("View() missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "panel") > strings.Index(out, "cancel") {
		t.Error("nodes should render in pre-order")
	}
}

func TestSceneView_EmptyAndBlurred(t *testing.T) {
	v := NewSceneView(scene.New("empty"), NewFocusTracker())
	v.Blurred = true
	out := v.View()
	if !strings.Contains(out, "(empty scene)") {
		t.Errorf("expected empty marker:\n%s", out)
	}
	if !strings.Contains(out, "scene not focused") {
		t.Errorf("expected blurred status:\n%s", out)
	}
}

func TestSceneView_ErrorStatus(t *testing.T) {
	tree := scene.New("root")
	v := NewSceneView(tree, nil)
	v.Err = scene.ErrUnknownNode
	if !strings.Contains(v.View(), "unknown node") {
		t.Error("error should replace the status line")
	}
}

func TestSceneView_WindowSize(t *testing.T) {
	v := NewSceneView(scene.New("root"), nil)
	nv, cmd := v.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	if cmd != nil || nv != v {
		t.Errorf("Update(WindowSizeMsg) = %v, %v", nv, cmd)
	}
	if v.width != 40 {
		t.Errorf("width = %d, want 40", v.width)
	}
}

func TestSceneView_PicksAndHistory(t *testing.T) {
	tree := scene.New("window")
	ok, _ := tree.Add(tree.Root(), "ok", scene.Focusable(true))
	cancel, _ := tree.Add(tree.Root(), "cancel", scene.Focusable(true))

	tracker := NewFocusTracker()
	tracker.RequestFocus(tree.Node(cancel))
	tracker.RequestFocus(tree.Node(ok))
	v := NewSceneView(tree, tracker)
	v.Picks = map[scene.ID]string{ok: "1", cancel: "2"}

	out := v.View()
	for _, want := range []string{"1 ◆ ok", "2 ◇ cancel", "recent: → cancel → ok"} {
		if !strings.Contains(out, want) {
			t.Errorf("View() missing %q:\n%s", want, out)
		}
	}
}
