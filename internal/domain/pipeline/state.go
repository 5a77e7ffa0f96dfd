// Package pipeline provides framework-neutral pipeline states and bus messages.
package pipeline

// State represents a pipeline state. Values are ordered by increasing liveness.
type State int

const (
	StateVoidPending State = iota // No pending state
	StateNull                     // Initial state, no resources allocated
	StateReady                    // Resources allocated, no data flowing
	StatePaused                   // Prerolled, clock stopped
	StatePlaying                  // Data flowing, clock running
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateVoidPending:
		return "VOID_PENDING"
	case StateNull:
		return "NULL"
	case StateReady:
		return "READY"
	case StatePaused:
		return "PAUSED"
	case StatePlaying:
		return "PLAYING"
	default:
		return "UNKNOWN"
	}
}

// Verb returns the lowercase verb used when reporting a refused transition.
func (s State) Verb() string {
	switch s {
	case StateNull:
		return "stop"
	case StateReady:
		return "get ready"
	case StatePaused:
		return "pause"
	case StatePlaying:
		return "play"
	default:
		return "change state"
	}
}

// StateChangeReturn is the outcome of a state change request.
type StateChangeReturn int

const (
	StateChangeFailure   StateChangeReturn = iota // Transition rejected
	StateChangeSuccess                            // Completed synchronously
	StateChangeAsync                              // Completes later, reported on the bus
	StateChangeNoPreroll                          // Succeeded, live source cannot preroll
)

// String returns the string representation of the return value.
func (r StateChangeReturn) String() string {
	switch r {
	case StateChangeFailure:
		return "failure"
	case StateChangeSuccess:
		return "success"
	case StateChangeAsync:
		return "async"
	case StateChangeNoPreroll:
		return "no_preroll"
	default:
		return "unknown"
	}
}
