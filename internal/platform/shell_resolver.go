package platform

import (
	"path/filepath"
	"strings"
)

const (
	posixShellPathConstant               = "/bin/sh"
	posixShellCommandFlagConstant        = "-c"
	modernWindowsShellExecutableConstant = "pwsh.exe"
	legacyWindowsShellExecutableConstant = "powershell.exe"
	windowsShellCommandFlagConstant      = "-Command"
)

// ShellDefinition couples a shell executable with the flag that makes it
// evaluate a command string.
type ShellDefinition struct {
	Path        string
	CommandFlag string
}

// ShellResolver determines the default shell used for delegated pipelines.
type ShellResolver struct {
	executableLocator ExecutableLocator
}

// NewShellResolver constructs a resolver. A nil locator falls back to scanning
// the environment search path.
func NewShellResolver(executableLocator ExecutableLocator) *ShellResolver {
	if executableLocator == nil {
		executableLocator = NewEnvironmentPathLocator()
	}
	return &ShellResolver{executableLocator: executableLocator}
}

// DefaultShell resolves the shell for the current platform. Resolution never
// fails: a fallback shell is always returned.
func (resolver *ShellResolver) DefaultShell() ShellDefinition {
	if IsWindows() {
		return resolver.resolveWindowsShell()
	}
	return ShellDefinition{Path: posixShellPathConstant, CommandFlag: posixShellCommandFlagConstant}
}

// resolveWindowsShell prefers the modern PowerShell when the locator finds it,
// falling back to the legacy shell by bare name otherwise.
func (resolver *ShellResolver) resolveWindowsShell() ShellDefinition {
	locatedPath, located := resolver.executableLocator.Locate(modernWindowsShellExecutableConstant)
	if located {
		return ShellDefinition{Path: locatedPath, CommandFlag: windowsShellCommandFlagConstant}
	}
	return ShellDefinition{Path: legacyWindowsShellExecutableConstant, CommandFlag: windowsShellCommandFlagConstant}
}

// IsModernWindowsShell reports whether the shell path names the modern
// PowerShell executable rather than the legacy fallback.
func IsModernWindowsShell(shellPath string) bool {
	return strings.EqualFold(filepath.Base(shellPath), modernWindowsShellExecutableConstant)
}
