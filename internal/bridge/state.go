package bridge

// State is the readiness of the solver context
type State int32

const (
	Uninitialized State = iota
	Initializing
	Ready
	Faulted
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initializing:
		return "initializing"
	case Ready:
		return "ready"
	case Faulted:
		return "faulted"
	}
	return "unknown"
}
