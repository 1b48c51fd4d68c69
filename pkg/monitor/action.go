// Package monitor holds the three data-owning monitors (System, Docker,
// Swarm). Each pairs a snapshot with UI-state, a log buffer lifecycle, and
// a background-action handle, exposing the uniform Update/PollLogs/
// PollAction surface the application shell drives every tick.
package monitor

// ActionResult is what a background destructive action reports back
// through its single-shot channel.
type ActionResult struct {
	Message string
	Err     error
}

// actionState tracks one monitor's single in-flight background action.
// Concurrent actions on the same monitor are disallowed by the caller
// checking InProgress before dispatching a new one.
type actionState struct {
	inProgress bool
	result     chan ActionResult
	lastStatus string
}

func (a *actionState) start() chan ActionResult {
	ch := make(chan ActionResult, 1)
	a.inProgress = true
	a.result = ch

	return ch
}

// poll performs a non-blocking receive on the in-flight action's result
// channel; on receipt it records a status message and clears the flag.
func (a *actionState) poll() {
	if !a.inProgress || a.result == nil {
		return
	}

	select {
	case res := <-a.result:
		a.inProgress = false
		a.result = nil

		if res.Err != nil {
			a.lastStatus = res.Err.Error()
		} else {
			a.lastStatus = res.Message
		}
	default:
	}
}

// InProgress reports whether a background action is still outstanding.
func (a *actionState) InProgress() bool {
	return a.inProgress
}

// LastStatus returns the most recently completed action's status message.
func (a *actionState) LastStatus() string {
	return a.lastStatus
}
