package execshell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
)

const (
	environmentAssignmentSeparatorConstant = "="
	environmentAssignmentTemplateConstant  = "%s%s%s"
	missingExecutableMessageConstant       = "no executable name provided"
	startFailureTemplateConstant           = "unable to start %s: %v"
	pipeCreationFailureTemplateConstant    = "unable to open %s pipe for %s: %v"
	standardInputPipeNameConstant          = "standard input"
	standardOutputPipeNameConstant         = "standard output"
	standardErrorPipeNameConstant          = "standard error"
	unknownExitCodeConstant                = -1
)

// OSCommandRunner executes process commands using the operating system facilities.
type OSCommandRunner struct{}

// NewOSCommandRunner constructs a runner backed by os/exec.
func NewOSCommandRunner() *OSCommandRunner {
	return &OSCommandRunner{}
}

// Run spawns the executable directly, without any shell interpretation, and
// supervises it until completion or cancellation. Standard input is written
// concurrently with output capture so large payloads cannot deadlock either
// side of the pipe.
func (runner *OSCommandRunner) Run(executionContext context.Context, command ProcessCommand) ProcessResult {
	executableName := strings.TrimSpace(command.Executable)
	if len(executableName) == 0 {
		return ProcessResult{StartupErrorMessage: missingExecutableMessageConstant, ExitCode: unknownExitCodeConstant}
	}

	commandArguments := append([]string{}, command.Arguments...)
	executable := exec.Command(executableName, commandArguments...)
	configureProcessGroup(executable)

	if len(command.WorkingDirectory) > 0 {
		executable.Dir = command.WorkingDirectory
	}

	if len(command.EnvironmentVariables) > 0 {
		mergedEnvironment := append([]string{}, os.Environ()...)
		for environmentKey, environmentValue := range command.EnvironmentVariables {
			mergedEnvironment = append(mergedEnvironment, fmt.Sprintf(environmentAssignmentTemplateConstant, environmentKey, environmentAssignmentSeparatorConstant, environmentValue))
		}
		executable.Env = mergedEnvironment
	}

	standardInputPipe, standardInputPipeError := executable.StdinPipe()
	if standardInputPipeError != nil {
		return startupFailureResult(standardInputPipeNameConstant, executableName, standardInputPipeError)
	}
	standardOutputPipe, standardOutputPipeError := executable.StdoutPipe()
	if standardOutputPipeError != nil {
		return startupFailureResult(standardOutputPipeNameConstant, executableName, standardOutputPipeError)
	}
	standardErrorPipe, standardErrorPipeError := executable.StderrPipe()
	if standardErrorPipeError != nil {
		return startupFailureResult(standardErrorPipeNameConstant, executableName, standardErrorPipeError)
	}

	startError := executable.Start()
	if startError != nil {
		return ProcessResult{
			StartupErrorMessage: fmt.Sprintf(startFailureTemplateConstant, executableName, startError),
			ExitCode:            unknownExitCodeConstant,
		}
	}

	// A consumer that exits before reading its whole input (head, grep -q)
	// breaks the pipe; broken-pipe write failures are not process failures,
	// so they are discarded.
	go func() {
		if len(command.StandardInput) > 0 {
			_, _ = standardInputPipe.Write(command.StandardInput)
		}
		_ = standardInputPipe.Close()
	}()

	var standardOutputBuffer bytes.Buffer
	var standardErrorBuffer bytes.Buffer
	var streamGroup sync.WaitGroup
	streamGroup.Add(2)
	go func() {
		defer streamGroup.Done()
		_, _ = io.Copy(&standardOutputBuffer, standardOutputPipe)
	}()
	go func() {
		defer streamGroup.Done()
		_, _ = io.Copy(&standardErrorBuffer, standardErrorPipe)
	}()

	supervisionDone := make(chan struct{})
	var terminationMutex sync.Mutex
	terminatedByCancellation := false
	var watcherGroup sync.WaitGroup
	watcherGroup.Add(1)
	go func() {
		defer watcherGroup.Done()
		select {
		case <-executionContext.Done():
			terminationMutex.Lock()
			terminatedByCancellation = true
			terminationMutex.Unlock()
			killProcessTree(executable)
		case <-supervisionDone:
		}
	}()

	streamGroup.Wait()
	waitError := executable.Wait()
	close(supervisionDone)
	watcherGroup.Wait()

	terminationMutex.Lock()
	killed := terminatedByCancellation
	terminationMutex.Unlock()

	result := ProcessResult{
		StandardOutput: standardOutputBuffer.String(),
		StandardError:  standardErrorBuffer.String(),
	}

	if killed && waitError != nil {
		result.Killed = true
		result.ExitCode = unknownExitCodeConstant
		return result
	}

	if waitError == nil {
		return result
	}

	exitError := &exec.ExitError{}
	if errors.As(waitError, &exitError) {
		result.ExitCode = exitError.ExitCode()
		return result
	}

	result.ExitCode = unknownExitCodeConstant
	return result
}

func startupFailureResult(pipeName string, executableName string, cause error) ProcessResult {
	return ProcessResult{
		StartupErrorMessage: fmt.Sprintf(pipeCreationFailureTemplateConstant, pipeName, executableName, cause),
		ExitCode:            unknownExitCodeConstant,
	}
}
