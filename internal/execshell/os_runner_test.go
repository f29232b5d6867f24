package execshell_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/temirov/pipeshell/internal/execshell"
	"github.com/temirov/pipeshell/internal/platform"
)

const (
	testPosixShellPathConstant       = "/bin/sh"
	testPosixShellFlagConstant       = "-c"
	testPosixSkipReasonConstant      = "requires a POSIX shell environment"
	testCancellationTimeoutConstant  = 150 * time.Millisecond
	testCancellationDeadlineConstant = 5 * time.Second
)

func requirePosixEnvironment(testInstance *testing.T) {
	if platform.IsWindows() {
		testInstance.Skip(testPosixSkipReasonConstant)
	}
}

func TestOSCommandRunnerCapturesBothStreams(testInstance *testing.T) {
	requirePosixEnvironment(testInstance)

	runner := execshell.NewOSCommandRunner()
	command := execshell.ProcessCommand{
		Executable: testPosixShellPathConstant,
		Arguments:  []string{testPosixShellFlagConstant, "printf out; printf err 1>&2"},
	}

	result := runner.Run(context.Background(), command)

	require.Equal(testInstance, execshell.ProcessOutcomeCompleted, result.Outcome())
	require.Equal(testInstance, 0, result.ExitCode)
	require.Equal(testInstance, "out", result.StandardOutput)
	require.Equal(testInstance, "err", result.StandardError)
}

func TestOSCommandRunnerFeedsStandardInput(testInstance *testing.T) {
	requirePosixEnvironment(testInstance)

	runner := execshell.NewOSCommandRunner()
	command := execshell.ProcessCommand{
		Executable:    "cat",
		Arguments:     []string{"-"},
		StandardInput: []byte("alpha\nbeta\n"),
	}

	result := runner.Run(context.Background(), command)

	require.Equal(testInstance, execshell.ProcessOutcomeCompleted, result.Outcome())
	require.Equal(testInstance, 0, result.ExitCode)
	require.Equal(testInstance, "alpha\nbeta\n", result.StandardOutput)
}

func TestOSCommandRunnerToleratesConsumerClosingInputEarly(testInstance *testing.T) {
	requirePosixEnvironment(testInstance)

	largeInput := strings.Repeat("payload line\n", 100000)
	runner := execshell.NewOSCommandRunner()
	command := execshell.ProcessCommand{
		Executable:    "head",
		Arguments:     []string{"-c", "12"},
		StandardInput: []byte(largeInput),
	}

	result := runner.Run(context.Background(), command)

	require.Equal(testInstance, execshell.ProcessOutcomeCompleted, result.Outcome())
	require.Equal(testInstance, 0, result.ExitCode)
	require.Equal(testInstance, "payload line", result.StandardOutput)
}

func TestOSCommandRunnerReportsMissingExecutableAsStartupError(testInstance *testing.T) {
	runner := execshell.NewOSCommandRunner()
	command := execshell.ProcessCommand{Executable: "definitely-not-a-real-tool-41c7"}

	result := runner.Run(context.Background(), command)

	require.Equal(testInstance, execshell.ProcessOutcomeStartupError, result.Outcome())
	require.Contains(testInstance, result.StartupErrorMessage, "definitely-not-a-real-tool-41c7")
	require.Empty(testInstance, result.StandardOutput)
	require.Empty(testInstance, result.StandardError)
}

func TestOSCommandRunnerRejectsBlankExecutableName(testInstance *testing.T) {
	runner := execshell.NewOSCommandRunner()

	result := runner.Run(context.Background(), execshell.ProcessCommand{Executable: "   "})

	require.Equal(testInstance, execshell.ProcessOutcomeStartupError, result.Outcome())
	require.Equal(testInstance, "no executable name provided", result.StartupErrorMessage)
}

func TestOSCommandRunnerReportsNonZeroExitAsCompletion(testInstance *testing.T) {
	requirePosixEnvironment(testInstance)

	runner := execshell.NewOSCommandRunner()
	command := execshell.ProcessCommand{
		Executable: testPosixShellPathConstant,
		Arguments:  []string{testPosixShellFlagConstant, "printf before; exit 3"},
	}

	result := runner.Run(context.Background(), command)

	require.Equal(testInstance, execshell.ProcessOutcomeCompleted, result.Outcome())
	require.Equal(testInstance, 3, result.ExitCode)
	require.Equal(testInstance, "before", result.StandardOutput)
	require.False(testInstance, result.Killed)
}

func TestOSCommandRunnerKillsProcessTreeOnCancellation(testInstance *testing.T) {
	requirePosixEnvironment(testInstance)

	executionContext, cancelExecution := context.WithTimeout(context.Background(), testCancellationTimeoutConstant)
	defer cancelExecution()

	runner := execshell.NewOSCommandRunner()
	command := execshell.ProcessCommand{
		Executable: testPosixShellPathConstant,
		Arguments:  []string{testPosixShellFlagConstant, "printf partial; sleep 30"},
	}

	startTime := time.Now()
	result := runner.Run(executionContext, command)
	elapsedTime := time.Since(startTime)

	require.Equal(testInstance, execshell.ProcessOutcomeKilled, result.Outcome())
	require.True(testInstance, result.Killed)
	require.Equal(testInstance, "partial", result.StandardOutput)
	require.Less(testInstance, elapsedTime, testCancellationDeadlineConstant)
}

func TestOSCommandRunnerHonorsWorkingDirectory(testInstance *testing.T) {
	requirePosixEnvironment(testInstance)

	temporaryDirectory := testInstance.TempDir()
	runner := execshell.NewOSCommandRunner()
	command := execshell.ProcessCommand{
		Executable:       testPosixShellPathConstant,
		Arguments:        []string{testPosixShellFlagConstant, "pwd"},
		WorkingDirectory: temporaryDirectory,
	}

	result := runner.Run(context.Background(), command)

	require.Equal(testInstance, 0, result.ExitCode)
	require.Contains(testInstance, strings.TrimSpace(result.StandardOutput), filepath.Base(temporaryDirectory))
}

func TestOSCommandRunnerMergesEnvironmentVariables(testInstance *testing.T) {
	requirePosixEnvironment(testInstance)

	runner := execshell.NewOSCommandRunner()
	command := execshell.ProcessCommand{
		Executable:           testPosixShellPathConstant,
		Arguments:            []string{testPosixShellFlagConstant, `printf "%s" "$PIPESHELL_RUNNER_PROBE"`},
		EnvironmentVariables: map[string]string{"PIPESHELL_RUNNER_PROBE": "present"},
	}

	result := runner.Run(context.Background(), command)

	require.Equal(testInstance, 0, result.ExitCode)
	require.Equal(testInstance, "present", result.StandardOutput)
}
