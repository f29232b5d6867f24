package ui

import (
	"go.uber.org/zap"

	"github.com/temirov/pipeshell/internal/execshell"
)

// ConsoleProcessEventLogger renders process lifecycle events using a zap logger configured for human-readable output.
type ConsoleProcessEventLogger struct {
	logger    *zap.Logger
	formatter execshell.ProcessMessageFormatter
}

// NewConsoleProcessEventLogger constructs a console event logger backed by the provided zap logger.
func NewConsoleProcessEventLogger(logger *zap.Logger) *ConsoleProcessEventLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConsoleProcessEventLogger{logger: logger, formatter: execshell.ProcessMessageFormatter{}}
}

// ProcessStarted implements execshell.ProcessEventObserver by logging process start notifications.
func (eventLogger *ConsoleProcessEventLogger) ProcessStarted(command execshell.ProcessCommand) {
	if eventLogger == nil {
		return
	}
	eventLogger.logger.Info(eventLogger.formatter.BuildStartedMessage(command))
}

// ProcessCompleted implements execshell.ProcessEventObserver by logging process completion notifications.
func (eventLogger *ConsoleProcessEventLogger) ProcessCompleted(command execshell.ProcessCommand, result execshell.ProcessResult) {
	if eventLogger == nil {
		return
	}
	if result.Outcome() == execshell.ProcessOutcomeKilled {
		eventLogger.logger.Warn(eventLogger.formatter.BuildCancellationMessage(command))
		return
	}
	if result.ExitCode == 0 {
		eventLogger.logger.Info(eventLogger.formatter.BuildSuccessMessage(command))
		return
	}
	eventLogger.logger.Warn(eventLogger.formatter.BuildFailureMessage(command, result))
}

// ProcessStartFailed implements execshell.ProcessEventObserver by logging processes that never launched.
func (eventLogger *ConsoleProcessEventLogger) ProcessStartFailed(command execshell.ProcessCommand, result execshell.ProcessResult) {
	if eventLogger == nil {
		return
	}
	eventLogger.logger.Error(eventLogger.formatter.BuildStartupFailureMessage(command, result))
}
