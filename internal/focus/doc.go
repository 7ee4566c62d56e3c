// Package focus decides which node receives keyboard focus on a tab or
// shift-tab navigation event.
//
// Core pieces:
//   - Node: the capability surface a widget tree exposes (children, parent,
//     traversable, showing)
//   - Eligible: whether a node may take focus
//   - NextFocusable / PreviousFocusable: pre-order and reverse pre-order walks
//   - Manager: per-scene holder of the current focus owner
//
// Forward traversal never returns the root it is given. Backward traversal
// returns the root when the root itself is eligible. A nil result means the
// ordering is exhausted; callers decide whether to wrap around.
//
// The engine does not lock or validate the tree. Callers serialize tree
// mutation with traversal and guarantee the tree is finite and acyclic.
package focus
