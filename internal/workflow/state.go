package workflow

// State is one step of the scan wizard
type State int

const (
	// StateIdle has no usable message
	StateIdle State = iota

	// StateTextEntered has a non-blank message ready to submit
	StateTextEntered

	// StateProcessing has exactly one analysis request outstanding
	StateProcessing

	// StateResult holds a successful analysis result
	StateResult
)

var stateNames = map[State]string{
	StateIdle:        "idle",
	StateTextEntered: "text_entered",
	StateProcessing:  "processing",
	StateResult:      "result",
}

// String returns the state name
func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// AcceptsInput reports whether the message may be edited in this state
func (s State) AcceptsInput() bool {
	return s == StateIdle || s == StateTextEntered
}
