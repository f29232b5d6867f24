package pipeline

import "errors"

const (
	loggerNotConfiguredMessageConstant          = "logger not configured"
	processExecutorNotConfiguredMessageConstant = "process executor not configured"
	shellDelegatorNotConfiguredMessageConstant  = "shell delegator not configured"
)

var (
	// ErrLoggerNotConfigured indicates the executor was constructed without a logger.
	ErrLoggerNotConfigured = errors.New(loggerNotConfiguredMessageConstant)
	// ErrProcessExecutorNotConfigured indicates the executor was constructed without a process executor.
	ErrProcessExecutorNotConfigured = errors.New(processExecutorNotConfiguredMessageConstant)
	// ErrShellDelegatorNotConfigured indicates the executor was constructed without a shell delegator.
	ErrShellDelegatorNotConfigured = errors.New(shellDelegatorNotConfiguredMessageConstant)
)
