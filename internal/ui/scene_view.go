package ui

import (
	"strings"

	"focusnav/internal/scene"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SceneView renders the scene tree, one node per line, indented by depth.
type SceneView struct {
	Tree    *scene.Tree
	Tracker *FocusTracker
	Status  string
	Err     error
	Blurred bool
	// Picks labels the nodes offered by SPC g. Nil outside pick mode.
	Picks map[scene.ID]string
	width int
}

// Ensure SceneView implements View.
var _ View = (*SceneView)(nil)

// NewSceneView creates a view over tree using tracker for the highlight.
func NewSceneView(tree *scene.Tree, tracker *FocusTracker) *SceneView {
	return &SceneView{Tree: tree, Tracker: tracker}
}

// Init implements View.
func (v *SceneView) Init() tea.Cmd { return nil }

// Update implements View.
func (v *SceneView) Update(msg tea.Msg) (View, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		v.width = msg.Width
	}
	return v, nil
}

// View implements View.
func (v *SceneView) View() string {
	var b strings.Builder
	b.WriteString(Styles.Title.Render(v.Tree.Name(v.Tree.Root())))
	b.WriteString("\n")

	lines := make([]string, 0, v.Tree.Len())
	v.Tree.Walk(func(id scene.ID, depth int) bool {
		if id == v.Tree.Root() {
			return true
		}
		lines = append(lines, v.renderNode(id, depth-1))
		return true
	})
	if len(lines) == 0 {
		lines = append(lines, Styles.Hint.Render("(empty scene)"))
	}

	box := Styles.Box
	if v.width > 4 {
		box = box.Width(v.width - 4)
	}
	b.WriteString(box.Render(strings.Join(lines, "\n")))
	b.WriteString("\n")
	b.WriteString(v.statusLine())
	return b.String()
}

func (v *SceneView) renderNode(id scene.ID, depth int) string {
	indent := strings.Repeat("  ", depth)
	marker := "  "
	glyph := "·"
	if v.Tree.IsFocusable(id) {
		glyph = "◇"
	}

	if label, ok := v.Picks[id]; ok {
		marker = label + " "
	}

	var style lipgloss.Style
	switch {
	case v.Tracker != nil && v.Tracker.IsFocused(id):
		if v.Picks == nil {
			marker = "▸ "
		}
		glyph = "◆"
		style = Styles.Focused
	case !v.Tree.IsShowing(id):
		style = Styles.Hidden
	case v.Tree.IsFocusable(id):
		style = Styles.Focusable
	default:
		style = Styles.Muted
	}
	return indent + marker + style.Render(glyph+" "+v.Tree.Name(id))
}

func (v *SceneView) statusLine() string {
	if v.Err != nil {
		return Styles.Error.Render(v.Err.Error())
	}
	if v.Blurred {
		return Styles.Blurred.Render("scene not focused")
	}
	owner := "none"
	if v.Tracker != nil && v.Tracker.Current != scene.None {
		owner = v.Tree.Name(v.Tracker.Current)
	}
	line := Styles.Status.Render("focus: " + owner)
	if v.Status != "" {
		line += "  " + Styles.Hint.Render(v.Status)
	}
	if v.Tracker != nil && len(v.Tracker.History) > 0 {
		line += "\n" + Styles.Hint.Render("recent: "+strings.Join(v.Tracker.History, " "))
	}
	return line
}
