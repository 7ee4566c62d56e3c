package ui

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"focusnav/internal/dispatch"
	"focusnav/internal/focus"
	"focusnav/internal/scene"

	tea "github.com/charmbracelet/bubbletea"
	"go.opentelemetry.io/otel/trace"
)

// FocusForwardMsg moves focus to the next node (tab).
type FocusForwardMsg struct{}

// FocusBackwardMsg moves focus to the previous node (shift+tab).
type FocusBackwardMsg struct{}

// ToggleBlurMsg simulates the scene losing or regaining terminal focus (SPC b).
type ToggleBlurMsg struct{}

// ToggleVisibleMsg hides or shows the container around the focus owner (SPC n v).
type ToggleVisibleMsg struct{}

// ToggleFocusableMsg makes the focus owner non-traversable (SPC n f).
type ToggleFocusableMsg struct{}

// PickNodeMsg labels every eligible node so one can be focused directly (SPC g).
type PickNodeMsg struct{}

// FocusNodeMsg focuses the named node, as a click on it would.
type FocusNodeMsg struct {
	Name string
}

// RestoreSceneMsg resets every node's flags to their loaded values (SPC n u).
type RestoreSceneMsg struct{}

// AppConfig carries the ambient dependencies of the app.
type AppConfig struct {
	Logger *slog.Logger
	Tracer trace.Tracer
	Wrap   bool
}

type nodeFlags struct {
	focusable, visible bool
}

// AppModel is the root model: one scene, one dispatcher, one key handler.
type AppModel struct {
	Mode       AppMode
	Tree       *scene.Tree
	Dispatcher *dispatch.Dispatcher
	Tracker    *FocusTracker
	Scene      *SceneView
	KeyHandler *KeyHandler
	Logger     *slog.Logger

	initial []nodeFlags         // flags at load time, indexed by scene.ID
	picks   map[string]scene.ID // label -> node while SPC g is pending
}

// pickLabels are handed out in order to the nodes offered by SPC g.
const pickLabels = "123456789abcdefghijklmnopqrstuvwxyz"

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// NewAppModel creates the root model for tree. The scene starts blurred and
// gains focus from the Init command.
func NewAppModel(tree *scene.Tree, cfg AppConfig) *AppModel {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	tracker := NewFocusTracker()
	m := &AppModel{
		Mode:    ModeBlurred,
		Tree:    tree,
		Tracker: tracker,
		Scene:   NewSceneView(tree, tracker),
		Logger:  logger,
	}
	opts := []dispatch.Option{
		dispatch.WithFocuser(tracker),
		dispatch.WithLogger(logger),
		dispatch.WithWrap(cfg.Wrap),
		dispatch.WithOnChange(m.focusChanged),
	}
	if cfg.Tracer != nil {
		opts = append(opts, dispatch.WithTracer(cfg.Tracer))
	}
	m.Dispatcher = dispatch.New(tree.RootNode(), opts...)

	reg := NewKeybindRegistry()
	focused := []AppMode{ModeFocused}
	reg.BindWithDesc("q", tea.Quit, "Quit")
	reg.BindWithDesc("ctrl+c", tea.Quit, "Quit")
	reg.BindWithDesc("SPC q", tea.Quit, "Quit")
	reg.BindWithDescForMode("tab", msgCmd(FocusForwardMsg{}), "Next", focused)
	reg.BindWithDescForMode("shift+tab", msgCmd(FocusBackwardMsg{}), "Previous", focused)
	reg.BindWithDesc("SPC b", msgCmd(ToggleBlurMsg{}), "Blur/focus scene")
	reg.BindWithDescForMode("SPC n v", msgCmd(ToggleVisibleMsg{}), "Toggle container visibility", focused)
	reg.BindWithDescForMode("SPC n f", msgCmd(ToggleFocusableMsg{}), "Make node non-focusable", focused)
	reg.BindWithDesc("SPC n u", msgCmd(RestoreSceneMsg{}), "Restore scene")
	reg.BindWithDescForMode("SPC g", msgCmd(PickNodeMsg{}), "Go to node", focused)

	m.KeyHandler = NewKeyHandler(reg)
	m.KeyHandler.Mode = m.Mode
	m.Scene.Blurred = true
	for i := 0; i < tree.Len(); i++ {
		id := scene.ID(i)
		m.initial = append(m.initial, nodeFlags{tree.IsFocusable(id), tree.IsVisible(id)})
	}
	return m
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (m *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: m}
}

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	return msgCmd(tea.FocusMsg{})
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	ctx := context.Background()
	switch msg := msg.(type) {
	case tea.FocusMsg:
		a.gainFocus(ctx)
		return a, nil
	case tea.BlurMsg:
		a.loseFocus(ctx)
		return a, nil
	case ToggleBlurMsg:
		if a.Mode == ModeFocused {
			a.loseFocus(ctx)
		} else {
			a.gainFocus(ctx)
		}
		return a, nil
	case FocusForwardMsg:
		n, ok := a.Dispatcher.Forward(ctx)
		a.report(n, ok, "end of focus order")
		return a, nil
	case FocusBackwardMsg:
		n, ok := a.Dispatcher.Backward(ctx)
		a.report(n, ok, "start of focus order")
		return a, nil
	case ToggleVisibleMsg:
		a.toggleVisible(ctx)
		return a, nil
	case ToggleFocusableMsg:
		a.disableOwner(ctx)
		return a, nil
	case RestoreSceneMsg:
		a.restore()
		return a, nil
	case PickNodeMsg:
		a.startPick()
		return a, nil
	case FocusNodeMsg:
		a.focusNode(ctx, msg.Name)
		return a, nil
	case tea.KeyMsg:
		if a.picks != nil {
			return a, a.pick(msg)
		}
		if consumed, cmd := a.KeyHandler.Handle(msg); consumed {
			return a, cmd
		}
	}

	v, cmd := a.Scene.Update(msg)
	if s, ok := v.(*SceneView); ok {
		a.Scene = s
	}
	return a, cmd
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	base := a.Scene.View()
	if a.KeyHandler.LeaderWaiting {
		return base + "\n" + RenderKeybindHelp(a.KeyHandler)
	}
	return base + "\n" + RenderNavHelp()
}

func (m *AppModel) setMode(mode AppMode) {
	m.Mode = mode
	m.KeyHandler.Mode = mode
	m.Scene.Blurred = mode == ModeBlurred
}

func (m *AppModel) gainFocus(ctx context.Context) {
	m.setMode(ModeFocused)
	m.Scene.Err = nil
	if n, ok := m.Dispatcher.FocusGained(ctx); ok {
		m.Scene.Status = "focused " + nodeName(n)
	} else {
		m.Scene.Status = "nothing to focus"
	}
}

func (m *AppModel) loseFocus(ctx context.Context) {
	m.cancelPick()
	m.Dispatcher.FocusLost(ctx)
	m.setMode(ModeBlurred)
}

func (m *AppModel) report(n focus.Node, ok bool, exhausted string) {
	m.Scene.Err = nil
	if !ok {
		m.Scene.Status = exhausted
		return
	}
	m.Scene.Status = "moved to " + nodeName(n)
}

// toggleVisible flips the visibility of the owner's parent container, or of
// the owner itself when it sits directly under the root.
func (m *AppModel) toggleVisible(ctx context.Context) {
	h, ok := scene.HandleOf(m.Dispatcher.Owner())
	if !ok {
		m.Scene.Status = "no focus owner"
		return
	}
	target := m.Tree.Parent(h.ID())
	if target == m.Tree.Root() || target == scene.None {
		target = h.ID()
	}
	visible := !m.Tree.IsVisible(target)
	if err := m.Tree.SetVisible(target, visible); err != nil {
		m.Scene.Err = err
		return
	}
	m.Logger.Debug("visibility toggled", "node", m.Tree.Name(target), "visible", visible)
	m.Scene.Status = fmt.Sprintf("%s visible=%t", m.Tree.Name(target), visible)
	m.moveOffIneligible(ctx)
}

func (m *AppModel) disableOwner(ctx context.Context) {
	h, ok := scene.HandleOf(m.Dispatcher.Owner())
	if !ok {
		m.Scene.Status = "no focus owner"
		return
	}
	if err := m.Tree.SetFocusable(h.ID(), false); err != nil {
		m.Scene.Err = err
		return
	}
	m.Logger.Debug("focusable cleared", "node", h.Name())
	m.Scene.Status = h.Name() + " is no longer focusable"
	m.moveOffIneligible(ctx)
}

// moveOffIneligible moves focus forward, then backward, when the owner can
// no longer hold focus.
func (m *AppModel) moveOffIneligible(ctx context.Context) {
	if owner := m.Dispatcher.Owner(); owner == nil || focus.Eligible(owner) {
		return
	}
	if n, ok := m.Dispatcher.Forward(ctx); ok {
		m.Scene.Status += ", moved to " + nodeName(n)
		return
	}
	if n, ok := m.Dispatcher.Backward(ctx); ok {
		m.Scene.Status += ", moved to " + nodeName(n)
		return
	}
	m.Scene.Status += ", no focusable node left"
}

// focusChanged is the dispatcher's change hook. The log file keeps one line
// per owner change, independent of the debug level.
func (m *AppModel) focusChanged(from, to focus.Node) {
	m.Logger.Info("focus changed", "from", nodeName(from), "to", nodeName(to))
}

// startPick labels the eligible nodes in tab order. The next key picks one.
func (m *AppModel) startPick() {
	order := focus.Order(m.Dispatcher.Root())
	if len(order) == 0 {
		m.Scene.Status = "nothing to focus"
		return
	}
	m.picks = make(map[string]scene.ID)
	m.Scene.Picks = make(map[scene.ID]string)
	for i, n := range order {
		if i == len(pickLabels) {
			break
		}
		h, ok := scene.HandleOf(n)
		if !ok {
			continue
		}
		label := string(pickLabels[i])
		m.picks[label] = h.ID()
		m.Scene.Picks[h.ID()] = label
	}
	m.Scene.Status = "go to: press a label, esc to cancel"
}

// pick resolves a key pressed while labels are shown. Any key ends pick mode.
func (m *AppModel) pick(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	id, ok := m.picks[key]
	m.cancelPick()
	if !ok {
		if key == "esc" {
			m.Scene.Status = "go to cancelled"
		} else {
			m.Scene.Status = fmt.Sprintf("no node labelled %q", key)
		}
		return nil
	}
	return msgCmd(FocusNodeMsg{Name: m.Tree.Name(id)})
}

func (m *AppModel) cancelPick() {
	m.picks = nil
	m.Scene.Picks = nil
}

func (m *AppModel) focusNode(ctx context.Context, name string) {
	id, ok := m.Tree.Lookup(name)
	if !ok {
		m.Scene.Err = fmt.Errorf("go to %q: %w", name, scene.ErrUnknownNode)
		return
	}
	if err := m.Dispatcher.Focus(ctx, m.Tree.Node(id)); err != nil {
		m.Scene.Err = err
		return
	}
	m.Scene.Err = nil
	m.Scene.Status = "focused " + name
}

func (m *AppModel) restore() {
	for i, f := range m.initial {
		id := scene.ID(i)
		// IDs below Len never fail.
		_ = m.Tree.SetFocusable(id, f.focusable)
		_ = m.Tree.SetVisible(id, f.visible)
	}
	m.Scene.Err = nil
	m.Scene.Status = "scene restored"
}

func nodeName(n focus.Node) string {
	if h, ok := scene.HandleOf(n); ok {
		return h.Name()
	}
	return "<none>"
}

func msgCmd(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
