package workflow

// Decision is the retry governor's verdict after an execution attempt.
type Decision int

const (
	// Proceed moves to formatting.
	Proceed Decision = iota
	// Retry loops back to synthesis in repair mode.
	Retry
	// Abort ends the session without an answer.
	Abort
)

func (d Decision) String() string {
	switch d {
	case Proceed:
		return "proceed"
	case Retry:
		return "retry"
	case Abort:
		return "abort"
	}
	return "unknown"
}

// Decide maps the last execution error and the number of synthesis calls
// made so far onto the next transition. maxAttempts is the total number of
// synthesis calls a session may make, so a failure observed with
// iterations == maxAttempts aborts.
func Decide(errText string, iterations, maxAttempts int) Decision {
	if errText == "" {
		return Proceed
	}
	if iterations < maxAttempts {
		return Retry
	}
	return Abort
}
