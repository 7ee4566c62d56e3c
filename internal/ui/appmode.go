package ui

// AppMode says whether the scene currently holds terminal focus.
type AppMode int

const (
	ModeFocused AppMode = iota
	ModeBlurred
)

func (m AppMode) String() string {
	switch m {
	case ModeFocused:
		return "Focused"
	case ModeBlurred:
		return "Blurred"
	default:
		return "Unknown"
	}
}
