package platform

import "runtime"

const (
	windowsOperatingSystemIdentifierConstant = "windows"
	linuxOperatingSystemIdentifierConstant   = "linux"
	darwinOperatingSystemIdentifierConstant  = "darwin"
)

// IsWindows reports whether the current operating system is Windows.
func IsWindows() bool {
	return runtime.GOOS == windowsOperatingSystemIdentifierConstant
}

// IsLinux reports whether the current operating system is Linux.
func IsLinux() bool {
	return runtime.GOOS == linuxOperatingSystemIdentifierConstant
}

// IsMacOS reports whether the current operating system is macOS.
func IsMacOS() bool {
	return runtime.GOOS == darwinOperatingSystemIdentifierConstant
}

// IsUnixLike reports whether the current operating system follows Unix shell
// conventions. Every supported platform other than Windows does.
func IsUnixLike() bool {
	return !IsWindows()
}
