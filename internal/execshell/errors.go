package execshell

import "errors"

const (
	loggerNotConfiguredMessageConstant          = "logger not configured"
	commandRunnerNotConfiguredMessageConstant   = "command runner not configured"
	processExecutorNotConfiguredMessageConstant = "process executor not configured"
	shellResolverNotConfiguredMessageConstant   = "shell resolver not configured"
)

var (
	// ErrLoggerNotConfigured indicates a component was constructed without a logger.
	ErrLoggerNotConfigured = errors.New(loggerNotConfiguredMessageConstant)
	// ErrCommandRunnerNotConfigured indicates the executor was constructed without a command runner.
	ErrCommandRunnerNotConfigured = errors.New(commandRunnerNotConfiguredMessageConstant)
	// ErrProcessExecutorNotConfigured indicates a component was constructed without a process executor.
	ErrProcessExecutorNotConfigured = errors.New(processExecutorNotConfiguredMessageConstant)
	// ErrShellResolverNotConfigured indicates the delegator was constructed without a shell resolver.
	ErrShellResolverNotConfigured = errors.New(shellResolverNotConfiguredMessageConstant)
)
