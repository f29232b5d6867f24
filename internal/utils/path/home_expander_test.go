package pathutils_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	pathutils "github.com/temirov/pipeshell/internal/utils/path"
)

const (
	testHomeDirectoryConstant             = "/home/example"
	testTildeRelativePathConstant         = "~/pipelines/catalog.yaml"
	testTildeRelativeSegmentConstant      = "pipelines/catalog.yaml"
	testAbsolutePathConstant              = "/etc/pipeshell/catalog.yaml"
	testRelativePathConstant              = "catalog.yaml"
	testProviderFailureMessageConstant    = "home directory unavailable"
	testCaseTildeOnlyNameConstant         = "tilde_only"
	testCaseTildePrefixNameConstant       = "tilde_prefix"
	testCaseAbsoluteNameConstant          = "absolute_path_unchanged"
	testCaseRelativeNameConstant          = "relative_path_unchanged"
	testCaseEmptyNameConstant             = "empty_path_unchanged"
	testCaseProviderFailureNameConstant   = "provider_failure_returns_input"
	testCaseNilExpanderNameConstant       = "nil_expander_returns_input"
	testCaseDefaultProviderNameConstant   = "nil_provider_uses_operating_system"
	testProviderFailureInputPathConstant  = "~/unreachable"
	testDefaultProviderInputPathConstant  = "~"
	testDefaultProviderHomeEnvVarConstant = "HOME"
)

func TestHomeExpanderExpand(testInstance *testing.T) {
	testCases := []struct {
		name          string
		inputPath     string
		expectedPath  string
		providerError error
	}{
		{
			name:         testCaseTildeOnlyNameConstant,
			inputPath:    "~",
			expectedPath: testHomeDirectoryConstant,
		},
		{
			name:         testCaseTildePrefixNameConstant,
			inputPath:    testTildeRelativePathConstant,
			expectedPath: filepath.Join(testHomeDirectoryConstant, testTildeRelativeSegmentConstant),
		},
		{
			name:         testCaseAbsoluteNameConstant,
			inputPath:    testAbsolutePathConstant,
			expectedPath: testAbsolutePathConstant,
		},
		{
			name:         testCaseRelativeNameConstant,
			inputPath:    testRelativePathConstant,
			expectedPath: testRelativePathConstant,
		},
		{
			name:         testCaseEmptyNameConstant,
			inputPath:    "",
			expectedPath: "",
		},
		{
			name:          testCaseProviderFailureNameConstant,
			inputPath:     testProviderFailureInputPathConstant,
			expectedPath:  testProviderFailureInputPathConstant,
			providerError: errors.New(testProviderFailureMessageConstant),
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			homeExpander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
				if testCase.providerError != nil {
					return "", testCase.providerError
				}
				return testHomeDirectoryConstant, nil
			})

			expandedPath := homeExpander.Expand(testCase.inputPath)

			require.Equal(testInstance, testCase.expectedPath, expandedPath)
		})
	}
}

func TestHomeExpanderNilReceiver(testInstance *testing.T) {
	testInstance.Run(testCaseNilExpanderNameConstant, func(testInstance *testing.T) {
		var homeExpander *pathutils.HomeExpander

		expandedPath := homeExpander.Expand(testTildeRelativePathConstant)

		require.Equal(testInstance, testTildeRelativePathConstant, expandedPath)
	})
}

func TestHomeExpanderDefaultProvider(testInstance *testing.T) {
	testInstance.Run(testCaseDefaultProviderNameConstant, func(testInstance *testing.T) {
		homeDirectoryPath := testInstance.TempDir()
		testInstance.Setenv(testDefaultProviderHomeEnvVarConstant, homeDirectoryPath)

		homeExpander := pathutils.NewHomeExpanderWithProvider(nil)

		expandedPath := homeExpander.Expand(testDefaultProviderInputPathConstant)

		require.Equal(testInstance, homeDirectoryPath, expandedPath)
	})
}
