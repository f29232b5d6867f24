package platform

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	searchPathEnvironmentVariableNameConstant = "PATH"
)

// ExecutableLocator finds executables by name on the current system.
type ExecutableLocator interface {
	// Locate returns the full path of the named executable and whether it was found.
	Locate(executableName string) (string, bool)
}

// EnvironmentPathLocator scans the directories listed in the search-path
// environment variable. The variable is read on every call so environment
// changes between delegations are honored.
type EnvironmentPathLocator struct{}

// NewEnvironmentPathLocator constructs the default executable locator.
func NewEnvironmentPathLocator() EnvironmentPathLocator {
	return EnvironmentPathLocator{}
}

// Locate walks the search-path directories in order and returns the first
// regular file matching the executable name.
func (locator EnvironmentPathLocator) Locate(executableName string) (string, bool) {
	trimmedExecutableName := strings.TrimSpace(executableName)
	if len(trimmedExecutableName) == 0 {
		return "", false
	}

	searchPathValue := os.Getenv(searchPathEnvironmentVariableNameConstant)
	if len(searchPathValue) == 0 {
		return "", false
	}

	for _, searchDirectory := range strings.Split(searchPathValue, string(os.PathListSeparator)) {
		if len(searchDirectory) == 0 {
			continue
		}

		candidatePath := filepath.Join(searchDirectory, trimmedExecutableName)
		fileInformation, statError := os.Stat(candidatePath)
		if statError != nil {
			continue
		}
		if fileInformation.IsDir() {
			continue
		}

		return candidatePath, true
	}

	return "", false
}
