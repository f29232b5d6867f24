package execshell

import "context"

// ProcessOutcome classifies how an external process invocation ended.
type ProcessOutcome string

const (
	// ProcessOutcomeCompleted indicates the process started and ran to completion.
	ProcessOutcomeCompleted ProcessOutcome = "completed"
	// ProcessOutcomeKilled indicates cancellation terminated the process before it finished.
	ProcessOutcomeKilled ProcessOutcome = "killed"
	// ProcessOutcomeStartupError indicates the process never started.
	ProcessOutcomeStartupError ProcessOutcome = "startup_error"
)

// ProcessCommand describes a single external executable invocation.
type ProcessCommand struct {
	Executable           string
	Arguments            []string
	StandardInput        []byte
	WorkingDirectory     string
	EnvironmentVariables map[string]string
}

// ProcessResult captures everything observed while running an external process.
// Startup failures and cancellation are reported as result states rather than
// errors so callers always receive whatever output the process produced.
type ProcessResult struct {
	StandardOutput      string
	StandardError       string
	ExitCode            int
	Killed              bool
	StartupErrorMessage string
}

// Outcome derives the terminal classification for the result.
func (result ProcessResult) Outcome() ProcessOutcome {
	if len(result.StartupErrorMessage) > 0 {
		return ProcessOutcomeStartupError
	}
	if result.Killed {
		return ProcessOutcomeKilled
	}
	return ProcessOutcomeCompleted
}

// CommandRunner executes a process command and reports the unified result.
type CommandRunner interface {
	Run(executionContext context.Context, command ProcessCommand) ProcessResult
}

// ProcessCommandExecutor abstracts the executor for collaborators that spawn external commands.
type ProcessCommandExecutor interface {
	Execute(executionContext context.Context, command ProcessCommand) ProcessResult
}
