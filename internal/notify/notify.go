package notify

// Receives orchestration events as the pipeline progresses.
//
// Implementations deliver to a side channel (e.g. Slack) and report
// delivery problems as errors. Delivery is strictly best-effort: the
// orchestrator logs a failed delivery and moves on, so an implementation
// must never block indefinitely or panic.
type Notifier interface {

	// Called once when the run begins.
	RunStarted(buildType, architecture string) error

	// Called after each selected stage completes successfully.
	StepCompleted(description string) error

	// Called once when every selected stage has completed.
	RunSucceeded(minutes, seconds int) error

	// Called once when a stage fault ends the run.
	RunFailed(cause string) error

	// Called once when an interrupt ends the run.
	RunInterrupted() error
}

// A [Notifier] that discards every event.
//
// Used when notifications are disabled so the orchestrator never has to
// check for a nil notifier.
type Nop struct{}

func (Nop) RunStarted(string, string) error { return nil }
func (Nop) StepCompleted(string) error      { return nil }
func (Nop) RunSucceeded(int, int) error     { return nil }
func (Nop) RunFailed(string) error          { return nil }
func (Nop) RunInterrupted() error           { return nil }
