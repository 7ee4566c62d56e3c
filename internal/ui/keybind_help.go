package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// newHelpModel returns a help.Model styled with the shared palette.
func newHelpModel() help.Model {
	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true)
	h.Styles.ShortDesc = Styles.Hint
	h.Styles.ShortSeparator = Styles.Hint
	return h
}

// RenderKeybindHelp produces the transient help view shown after SPC.
// When keyHandler holds a partial sequence (e.g. "SPC n"), shows next-level hints.
func RenderKeybindHelp(keyHandler *KeyHandler) string {
	if keyHandler == nil {
		return ""
	}
	km := NewKeyMap(keyHandler.Registry, keyHandler)
	bindings := km.ShortHelp()
	if len(bindings) == 0 {
		return ""
	}

	prefix := keyHandler.CurrentSeq()
	if prefix == "" {
		prefix = "SPC"
	}
	content := Styles.Muted.Render(prefix) + " " + newHelpModel().ShortHelpView(bindings)
	return Styles.HelpBox.Render(content)
}

// RenderNavHelp renders the one-line footer with the single-key bindings.
func RenderNavHelp() string {
	return newHelpModel().View(DefaultNavKeyMap())
}
