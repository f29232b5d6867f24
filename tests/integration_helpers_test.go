package tests

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

const (
	integrationCommandTimeoutConstant     = 60 * time.Second
	goCommandNameConstant                 = "go"
	goRunSubcommandConstant               = "run"
	goBuildSubcommandConstant             = "build"
	goOutputFlagConstant                  = "-o"
	modulePathArgumentConstant            = "."
	integrationBinaryNameConstant         = "pipeshell-integration"
	windowsExecutableSuffixConstant       = ".exe"
	environmentAssignmentOperatorConstant = "="
	windowsOperatingSystemConstant        = "windows"
	windowsSkipReasonConstant             = "integration pipelines rely on POSIX utilities"
)

type integrationCommandResult struct {
	standardOutput string
	standardError  string
	executionError error
}

// runPipeshellCommand executes the CLI from the repository root through "go run"
// and captures the two output streams separately so payload assertions stay
// byte-exact while diagnostics land on standard error.
func runPipeshellCommand(testInstance *testing.T, environmentOverrides []string, arguments []string) integrationCommandResult {
	testInstance.Helper()
	skipWithoutUnixShell(testInstance)

	currentWorkingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		testInstance.Fatalf("unable to determine working directory: %v", workingDirectoryError)
	}
	repositoryRootDirectory := filepath.Dir(currentWorkingDirectory)

	executionContext, cancelFunction := context.WithTimeout(context.Background(), integrationCommandTimeoutConstant)
	defer cancelFunction()

	commandArguments := append([]string{goRunSubcommandConstant, modulePathArgumentConstant}, arguments...)
	command := exec.CommandContext(executionContext, goCommandNameConstant, commandArguments...)
	command.Dir = repositoryRootDirectory
	command.Env = append(append([]string{}, os.Environ()...), environmentOverrides...)

	var standardOutputBuffer bytes.Buffer
	var standardErrorBuffer bytes.Buffer
	command.Stdout = &standardOutputBuffer
	command.Stderr = &standardErrorBuffer

	executionError := command.Run()

	return integrationCommandResult{
		standardOutput: standardOutputBuffer.String(),
		standardError:  standardErrorBuffer.String(),
		executionError: executionError,
	}
}

func skipWithoutUnixShell(testInstance *testing.T) {
	testInstance.Helper()
	if runtime.GOOS == windowsOperatingSystemConstant {
		testInstance.Skip(windowsSkipReasonConstant)
	}
}

// buildIntegrationBinary compiles the CLI once into a temporary directory so
// tests that need a custom working directory can run it there.
func buildIntegrationBinary(testInstance *testing.T, repositoryRootDirectory string) string {
	testInstance.Helper()

	binaryName := integrationBinaryNameConstant
	if runtime.GOOS == windowsOperatingSystemConstant {
		binaryName += windowsExecutableSuffixConstant
	}
	binaryPath := filepath.Join(testInstance.TempDir(), binaryName)

	executionContext, cancelFunction := context.WithTimeout(context.Background(), integrationCommandTimeoutConstant)
	defer cancelFunction()

	command := exec.CommandContext(executionContext, goCommandNameConstant, goBuildSubcommandConstant, goOutputFlagConstant, binaryPath, modulePathArgumentConstant)
	command.Dir = repositoryRootDirectory

	outputBytes, buildError := command.CombinedOutput()
	if buildError != nil {
		testInstance.Fatalf("unable to build integration binary: %v\n%s", buildError, string(outputBytes))
	}
	return binaryPath
}

func runBinaryIntegrationCommand(
	testInstance *testing.T,
	binaryPath string,
	workingDirectory string,
	environmentOverrides map[string]string,
	timeout time.Duration,
	arguments []string,
) (string, error) {
	testInstance.Helper()

	executionContext, cancelFunction := context.WithTimeout(context.Background(), timeout)
	defer cancelFunction()

	command := exec.CommandContext(executionContext, binaryPath, arguments...)
	command.Dir = workingDirectory

	environment := append([]string{}, os.Environ()...)
	for environmentKey, environmentValue := range environmentOverrides {
		environment = append(environment, environmentKey+environmentAssignmentOperatorConstant+environmentValue)
	}
	command.Env = environment

	outputBytes, runError := command.CombinedOutput()
	return string(outputBytes), runError
}
