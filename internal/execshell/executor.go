package execshell

import (
	"context"

	"go.uber.org/zap"
)

const (
	executableLogFieldNameConstant    = "executable"
	argumentsLogFieldNameConstant     = "arguments"
	outcomeLogFieldNameConstant       = "outcome"
	exitCodeLogFieldNameConstant      = "exit_code"
	processStartingLogMessageConstant = "starting external process"
	processFinishedLogMessageConstant = "external process finished"
)

// ProcessExecutor runs external commands while logging lifecycle details and
// notifying a ProcessEventObserver.
type ProcessExecutor struct {
	logger        *zap.Logger
	commandRunner CommandRunner
	eventObserver ProcessEventObserver
}

// NewProcessExecutor constructs an executor that discards process events.
func NewProcessExecutor(logger *zap.Logger, commandRunner CommandRunner) (*ProcessExecutor, error) {
	return NewProcessExecutorWithObserver(logger, commandRunner, noopProcessEventObserver{})
}

// NewProcessExecutorWithObserver constructs an executor that forwards process
// events to the supplied observer.
func NewProcessExecutorWithObserver(logger *zap.Logger, commandRunner CommandRunner, eventObserver ProcessEventObserver) (*ProcessExecutor, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if commandRunner == nil {
		return nil, ErrCommandRunnerNotConfigured
	}
	if eventObserver == nil {
		eventObserver = noopProcessEventObserver{}
	}
	return &ProcessExecutor{logger: logger, commandRunner: commandRunner, eventObserver: eventObserver}, nil
}

// Execute runs the supplied command and reports the unified result.
func (executor *ProcessExecutor) Execute(executionContext context.Context, command ProcessCommand) ProcessResult {
	executor.logger.Debug(processStartingLogMessageConstant,
		zap.String(executableLogFieldNameConstant, command.Executable),
		zap.Strings(argumentsLogFieldNameConstant, command.Arguments),
	)
	executor.eventObserver.ProcessStarted(command)

	executionResult := executor.commandRunner.Run(executionContext, command)

	executor.logger.Debug(processFinishedLogMessageConstant,
		zap.String(executableLogFieldNameConstant, command.Executable),
		zap.String(outcomeLogFieldNameConstant, string(executionResult.Outcome())),
		zap.Int(exitCodeLogFieldNameConstant, executionResult.ExitCode),
	)

	if executionResult.Outcome() == ProcessOutcomeStartupError {
		executor.eventObserver.ProcessStartFailed(command, executionResult)
		return executionResult
	}
	executor.eventObserver.ProcessCompleted(command, executionResult)
	return executionResult
}
