package execshell

import (
	"fmt"
	"strings"
)

const (
	processStartTemplateConstant          = "Running %s"
	processSuccessTemplateConstant        = "Completed %s"
	processFailureTemplateConstant        = "%s failed with exit code %d%s"
	processCancellationTemplateConstant   = "Cancelled %s"
	processStartupFailureTemplateConstant = "%s could not start: %s"
	standardErrorSuffixTemplateConstant   = ": %s"
	commandArgumentsJoinSeparatorConstant = " "
	commandLabelTemplateConstant          = "%s%s%s"
	unknownStartupFailureMessageConstant  = "unknown error"
	emptyStringConstant                   = ""
)

// ProcessMessageFormatter builds human-readable messages for process lifecycle events.
type ProcessMessageFormatter struct{}

// BuildStartedMessage formats the message describing a process about to run.
func (formatter ProcessMessageFormatter) BuildStartedMessage(command ProcessCommand) string {
	return fmt.Sprintf(processStartTemplateConstant, formatter.formatCommandLabel(command))
}

// BuildResultMessage formats the message matching the terminal state of the result.
func (formatter ProcessMessageFormatter) BuildResultMessage(command ProcessCommand, result ProcessResult) string {
	switch result.Outcome() {
	case ProcessOutcomeStartupError:
		return formatter.BuildStartupFailureMessage(command, result)
	case ProcessOutcomeKilled:
		return formatter.BuildCancellationMessage(command)
	default:
		if result.ExitCode != 0 {
			return formatter.BuildFailureMessage(command, result)
		}
		return formatter.BuildSuccessMessage(command)
	}
}

// BuildSuccessMessage formats the message describing a process that completed with a zero exit code.
func (formatter ProcessMessageFormatter) BuildSuccessMessage(command ProcessCommand) string {
	return fmt.Sprintf(processSuccessTemplateConstant, formatter.formatCommandLabel(command))
}

// BuildFailureMessage formats the message describing a process that returned a non-zero exit code.
func (formatter ProcessMessageFormatter) BuildFailureMessage(command ProcessCommand, result ProcessResult) string {
	return fmt.Sprintf(processFailureTemplateConstant, formatter.formatCommandLabel(command), result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
}

// BuildCancellationMessage formats the message describing a process terminated by cancellation.
func (formatter ProcessMessageFormatter) BuildCancellationMessage(command ProcessCommand) string {
	return fmt.Sprintf(processCancellationTemplateConstant, formatter.formatCommandLabel(command))
}

// BuildStartupFailureMessage formats the message describing a process that never started.
func (formatter ProcessMessageFormatter) BuildStartupFailureMessage(command ProcessCommand, result ProcessResult) string {
	failureDescription := strings.TrimSpace(result.StartupErrorMessage)
	if len(failureDescription) == 0 {
		failureDescription = unknownStartupFailureMessageConstant
	}
	return fmt.Sprintf(processStartupFailureTemplateConstant, formatter.formatCommandLabel(command), failureDescription)
}

func (formatter ProcessMessageFormatter) formatCommandLabel(command ProcessCommand) string {
	if len(command.Arguments) == 0 {
		return command.Executable
	}
	return fmt.Sprintf(commandLabelTemplateConstant, command.Executable, commandArgumentsJoinSeparatorConstant, strings.Join(command.Arguments, commandArgumentsJoinSeparatorConstant))
}

func (formatter ProcessMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}
