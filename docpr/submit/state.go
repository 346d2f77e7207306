package submit

// State is a step of a submission attempt.
type State int

// Submission states, in the order they are entered.
// StateFailed is reachable from every other state.
const (
	StateCollecting State = iota
	StateSyncing
	StateBranching
	StateStaging
	StateCommitting
	StatePushing
	StateOpeningPR
	StateDone
	StateFailed
)

var stateNames = [...]string{
	StateCollecting: "collecting files",
	StateSyncing:    "syncing",
	StateBranching:  "branching",
	StateStaging:    "staging",
	StateCommitting: "committing",
	StatePushing:    "pushing",
	StateOpeningPR:  "opening pull request",
	StateDone:       "done",
	StateFailed:     "failed",
}

// String returns a human-readable state name.
func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}

	return stateNames[s]
}
