package shellquote

import (
	"strings"

	"github.com/temirov/pipeshell/internal/platform"
)

const (
	singleQuoteLiteralConstant             = "'"
	doubleQuoteLiteralConstant             = `"`
	unixEscapedSingleQuoteSequenceConstant = `'\''`
	powerShellEscapedQuoteSequenceConstant = "''"
	pipelineOperatorSeparatorConstant      = " | "
	emptyStringConstant                    = ""
)

type replacementRule struct {
	search  string
	replace string
}

// The backslash rule must run first: every later rule introduces backslashes
// that would otherwise be escaped again.
var unixArgumentReplacementRules = []replacementRule{
	{search: `\`, replace: `\\`},
	{search: `"`, replace: `\"`},
	{search: `$`, replace: `\$`},
	{search: "`", replace: "\\`"},
	{search: "\n", replace: `\n`},
	{search: "\r", replace: `\r`},
}

// The backtick rule must run first for the same reason the Unix rules escape
// the backslash first: backtick is PowerShell's escape character.
var powerShellArgumentReplacementRules = []replacementRule{
	{search: "`", replace: "``"},
	{search: `"`, replace: "`\""},
	{search: "\r", replace: "`r"},
	{search: "\n", replace: "`n"},
	{search: "\t", replace: "`t"},
}

// EscapeForUnixShell wraps the value in single quotes for literal use as one
// word in POSIX shells. Embedded single quotes are closed, escaped, and
// reopened.
func EscapeForUnixShell(value string) string {
	escapedValue := strings.ReplaceAll(value, singleQuoteLiteralConstant, unixEscapedSingleQuoteSequenceConstant)
	return singleQuoteLiteralConstant + escapedValue + singleQuoteLiteralConstant
}

// EscapeForPowerShell wraps the value in single quotes for literal use in
// PowerShell, where an embedded single quote is doubled.
func EscapeForPowerShell(value string) string {
	escapedValue := strings.ReplaceAll(value, singleQuoteLiteralConstant, powerShellEscapedQuoteSequenceConstant)
	return singleQuoteLiteralConstant + escapedValue + singleQuoteLiteralConstant
}

// EscapeForUnixShellArgument wraps a whole pipe expression in double quotes for
// embedding in a POSIX command-line string. Pipe operators stay unescaped so
// the shell still parses them; characters able to break the quoting are
// neutralized.
func EscapeForUnixShellArgument(pipelineExpression string) string {
	return doubleQuoteLiteralConstant + applyReplacementRules(pipelineExpression, unixArgumentReplacementRules) + doubleQuoteLiteralConstant
}

// EscapeForPowerShellArgument wraps a whole pipe expression in double quotes
// for embedding in a Windows command-line string, using PowerShell's backtick
// escapes.
func EscapeForPowerShellArgument(pipelineExpression string) string {
	return doubleQuoteLiteralConstant + applyReplacementRules(pipelineExpression, powerShellArgumentReplacementRules) + doubleQuoteLiteralConstant
}

// EscapeForShellArgument dispatches to the whole-expression variant for the
// current platform.
func EscapeForShellArgument(pipelineExpression string) string {
	if platform.IsWindows() {
		return EscapeForPowerShellArgument(pipelineExpression)
	}
	return EscapeForUnixShellArgument(pipelineExpression)
}

// EscapePipelineExpression applies the platform's neutralizing substitutions
// without the wrapping double quotes. The result is handed to the shell as one
// discrete argument: the argument boundary replaces the quoting, and pipe
// operators keep their meaning inside the shell's parse.
func EscapePipelineExpression(pipelineExpression string) string {
	if platform.IsWindows() {
		return applyReplacementRules(pipelineExpression, powerShellArgumentReplacementRules)
	}
	return applyReplacementRules(pipelineExpression, unixArgumentReplacementRules)
}

// BuildPipelineCommand joins command texts with the pipe operator. A single
// command is returned unchanged and an empty list yields an empty string.
func BuildPipelineCommand(commandTexts []string) string {
	if len(commandTexts) == 0 {
		return emptyStringConstant
	}
	if len(commandTexts) == 1 {
		return commandTexts[0]
	}
	return strings.Join(commandTexts, pipelineOperatorSeparatorConstant)
}

func applyReplacementRules(value string, rules []replacementRule) string {
	transformedValue := value
	for _, rule := range rules {
		transformedValue = strings.ReplaceAll(transformedValue, rule.search, rule.replace)
	}
	return transformedValue
}
