package tests

import (
	"os"
	"testing"
)

// TestMain points HOME at a throwaway directory so a developer's own
// ~/.pipeshell configuration cannot leak into the spawned CLI processes.
func TestMain(m *testing.M) {
	temporaryHome, creationError := os.MkdirTemp("", "pipeshell-home-")
	if creationError == nil {
		_ = os.Setenv("HOME", temporaryHome)
	}

	exitCode := m.Run()

	if creationError == nil {
		_ = os.RemoveAll(temporaryHome)
	}
	os.Exit(exitCode)
}
