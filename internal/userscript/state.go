package userscript

// renderState tracks whether the cached header matches the model.
type renderState int

const (
	stateDirty renderState = iota
	stateClean
)

func (s renderState) String() string {
	switch s {
	case stateDirty:
		return "dirty"
	case stateClean:
		return "clean"
	default:
		return "unknown"
	}
}
