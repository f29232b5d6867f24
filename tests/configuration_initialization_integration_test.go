package tests

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	initializationLocalCaseNameConstant     = "local_scope"
	initializationUserCaseNameConstant      = "user_scope"
	initializationOverwriteCaseNameConstant = "overwrite_protection"
	initializationForceCaseNameConstant     = "force_overwrite"
	initializationLocalArgumentConstant     = "--init"
	initializationUserArgumentConstant      = "--init=user"
	initializationForceFlagConstant         = "--force"
	initializationHomeEnvNameConstant       = "HOME"
	initializationUserDirectoryNameConstant = ".pipeshell"
	initializationExistsFragmentConstant    = "already exists"
	initializationCreatedFragmentConstant   = "created configuration file"
)

type initializationEnvironment struct {
	workingDirectory          string
	environmentOverrides      map[string]string
	expectedConfigurationPath string
}

func TestCLIConfigurationInitializationCreatesFiles(testInstance *testing.T) {
	skipWithoutUnixShell(testInstance)

	currentWorkingDirectory, workingDirectoryError := os.Getwd()
	require.NoError(testInstance, workingDirectoryError)
	repositoryRootDirectory := filepath.Dir(currentWorkingDirectory)

	binaryPath := buildIntegrationBinary(testInstance, repositoryRootDirectory)

	testCases := []struct {
		name      string
		arguments []string
		prepare   func(*testing.T) initializationEnvironment
	}{
		{
			name:      initializationLocalCaseNameConstant,
			arguments: []string{initializationLocalArgumentConstant},
			prepare: func(t *testing.T) initializationEnvironment {
				workingDirectory := t.TempDir()
				return initializationEnvironment{
					workingDirectory:          workingDirectory,
					environmentOverrides:      map[string]string{},
					expectedConfigurationPath: filepath.Join(workingDirectory, integrationConfigFileNameConstant),
				}
			},
		},
		{
			name:      initializationUserCaseNameConstant,
			arguments: []string{initializationUserArgumentConstant},
			prepare: func(t *testing.T) initializationEnvironment {
				workingDirectory := t.TempDir()
				homeDirectory := t.TempDir()
				return initializationEnvironment{
					workingDirectory: workingDirectory,
					environmentOverrides: map[string]string{
						initializationHomeEnvNameConstant: homeDirectory,
					},
					expectedConfigurationPath: filepath.Join(homeDirectory, initializationUserDirectoryNameConstant, integrationConfigFileNameConstant),
				}
			},
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(integrationSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(t *testing.T) {
			environmentDetails := testCase.prepare(t)

			outputText, runError := runBinaryIntegrationCommand(
				t,
				binaryPath,
				environmentDetails.workingDirectory,
				environmentDetails.environmentOverrides,
				integrationCommandTimeoutConstant,
				testCase.arguments,
			)
			require.NoError(t, runError, outputText)
			require.Contains(t, outputText, initializationCreatedFragmentConstant)

			fileContent, readError := os.ReadFile(environmentDetails.expectedConfigurationPath)
			require.NoError(t, readError)
			require.NotEmpty(t, fileContent)
		})
	}
}

func TestCLIConfigurationInitializationOverwriteProtection(testInstance *testing.T) {
	skipWithoutUnixShell(testInstance)

	currentWorkingDirectory, workingDirectoryError := os.Getwd()
	require.NoError(testInstance, workingDirectoryError)
	repositoryRootDirectory := filepath.Dir(currentWorkingDirectory)

	binaryPath := buildIntegrationBinary(testInstance, repositoryRootDirectory)

	testCases := []struct {
		name            string
		secondArguments []string
		expectError     bool
	}{
		{
			name:            initializationOverwriteCaseNameConstant,
			secondArguments: []string{initializationLocalArgumentConstant},
			expectError:     true,
		},
		{
			name: initializationForceCaseNameConstant,
			secondArguments: []string{
				initializationLocalArgumentConstant,
				initializationForceFlagConstant,
			},
			expectError: false,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(integrationSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(t *testing.T) {
			workingDirectory := t.TempDir()

			firstOutput, firstError := runBinaryIntegrationCommand(
				t,
				binaryPath,
				workingDirectory,
				map[string]string{},
				integrationCommandTimeoutConstant,
				[]string{initializationLocalArgumentConstant},
			)
			require.NoError(t, firstError, firstOutput)

			configurationPath := filepath.Join(workingDirectory, integrationConfigFileNameConstant)
			initialContent, readError := os.ReadFile(configurationPath)
			require.NoError(t, readError)
			require.NotEmpty(t, initialContent)

			secondOutput, secondError := runBinaryIntegrationCommand(
				t,
				binaryPath,
				workingDirectory,
				map[string]string{},
				integrationCommandTimeoutConstant,
				testCase.secondArguments,
			)

			if testCase.expectError {
				require.Error(t, secondError)
				require.Contains(t, secondOutput, initializationExistsFragmentConstant)
			} else {
				require.NoError(t, secondError, secondOutput)
			}

			resultingContent, verifyError := os.ReadFile(configurationPath)
			require.NoError(t, verifyError)
			require.NotEmpty(t, resultingContent)
		})
	}
}
