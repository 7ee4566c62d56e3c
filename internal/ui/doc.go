// Package ui is a Bubble Tea front end that renders a scene tree and moves
// keyboard focus through it.
//
// Core pieces:
//   - AppModel: root model; routes keys and terminal focus events to the dispatcher
//   - SceneView: renders the tree with the focus owner highlighted
//   - FocusTracker: the toolkit side of a focus change (dispatch.Focuser)
//   - KeybindRegistry / KeyHandler: single keys plus SPC leader sequences
package ui
