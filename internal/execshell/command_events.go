package execshell

// ProcessEventObserver receives lifecycle notifications for external process execution.
type ProcessEventObserver interface {
	// ProcessStarted notifies observers that a process is about to be spawned.
	ProcessStarted(command ProcessCommand)
	// ProcessCompleted notifies observers that a process finished and supplies the result.
	ProcessCompleted(command ProcessCommand, result ProcessResult)
	// ProcessStartFailed reports that the process could not be started.
	ProcessStartFailed(command ProcessCommand, result ProcessResult)
}

// noopProcessEventObserver discards all process events.
type noopProcessEventObserver struct{}

// ProcessStarted implements ProcessEventObserver for the no-op observer.
func (noopProcessEventObserver) ProcessStarted(ProcessCommand) {}

// ProcessCompleted implements ProcessEventObserver for the no-op observer.
func (noopProcessEventObserver) ProcessCompleted(ProcessCommand, ProcessResult) {}

// ProcessStartFailed implements ProcessEventObserver for the no-op observer.
func (noopProcessEventObserver) ProcessStartFailed(ProcessCommand, ProcessResult) {}
