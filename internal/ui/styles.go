package ui

import "github.com/charmbracelet/lipgloss"

// Theme colors used throughout the UI
const (
	ColorAccent    = "86"  // Cyan/green - titles, help box border
	ColorHighlight = "205" // Magenta - the focus owner
	ColorDanger    = "196" // Red - errors in the status line
	ColorMuted     = "241" // Gray - non-traversable nodes, hints
	ColorText      = "252" // Light gray - focusable nodes
	ColorDim       = "238" // Dark gray - hidden subtrees
)

// Styles contains shared style definitions used by the scene view.
var Styles = struct {
	Title   lipgloss.Style // Bold accent - scene title
	Box     lipgloss.Style // Rounded border around the tree
	HelpBox lipgloss.Style // Leader help popup

	Focused   lipgloss.Style // The focus owner
	Focusable lipgloss.Style // Eligible nodes
	Muted     lipgloss.Style // Non-traversable but showing
	Hidden    lipgloss.Style // Not showing (own flag or ancestor)
	Hint      lipgloss.Style // Help text
	Status    lipgloss.Style // Status line
	Error     lipgloss.Style // Status line errors
	Blurred   lipgloss.Style // Banner when the scene has no focus
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(0, 1),
	HelpBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccent)).
		Padding(0, 1).
		MarginTop(1),
	Focused: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true),
	Focusable: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Hidden: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDim)).
		Strikethrough(true),
	Hint: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Status: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccent)),
	Error: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDanger)),
	Blurred: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)).
		Italic(true),
}
