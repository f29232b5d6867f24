package execshell

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/temirov/pipeshell/internal/platform"
	"github.com/temirov/pipeshell/internal/shellquote"
)

const (
	noCommandsMessageConstant            = "no commands provided to delegate"
	singleCommandMessageTemplateConstant = "single command %q should run directly without shell delegation"
	shellPathLogFieldNameConstant        = "shell"
	expressionLogFieldNameConstant       = "expression"
	delegatingLogMessageConstant         = "delegating pipeline to shell"
)

// DefaultShellResolver supplies the shell used for delegated pipeline execution.
type DefaultShellResolver interface {
	DefaultShell() platform.ShellDefinition
}

// ShellDelegatorDependencies bundles the collaborators required by the delegator.
type ShellDelegatorDependencies struct {
	Logger          *zap.Logger
	ProcessExecutor ProcessCommandExecutor
	ShellResolver   DefaultShellResolver
}

// ShellDelegator runs multi-stage pipelines through the platform default shell
// so the shell provides the piping between stages.
type ShellDelegator struct {
	logger          *zap.Logger
	processExecutor ProcessCommandExecutor
	shellResolver   DefaultShellResolver
}

// NewShellDelegator validates the dependencies and constructs a delegator.
func NewShellDelegator(dependencies ShellDelegatorDependencies) (*ShellDelegator, error) {
	if dependencies.Logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if dependencies.ProcessExecutor == nil {
		return nil, ErrProcessExecutorNotConfigured
	}
	if dependencies.ShellResolver == nil {
		return nil, ErrShellResolverNotConfigured
	}
	return &ShellDelegator{
		logger:          dependencies.Logger,
		processExecutor: dependencies.ProcessExecutor,
		shellResolver:   dependencies.ShellResolver,
	}, nil
}

// Execute joins the supplied command texts into a single pipeline expression,
// neutralizes shell metacharacters inside it, and runs it through the default
// shell with the supplied standard input. Empty lists and single commands are
// rejected as startup errors; delegation is only for composed pipelines.
func (delegator *ShellDelegator) Execute(executionContext context.Context, commandTexts []string, standardInput []byte) ProcessResult {
	if len(commandTexts) == 0 {
		return ProcessResult{StartupErrorMessage: noCommandsMessageConstant, ExitCode: unknownExitCodeConstant}
	}
	if len(commandTexts) == 1 {
		return ProcessResult{
			StartupErrorMessage: fmt.Sprintf(singleCommandMessageTemplateConstant, commandTexts[0]),
			ExitCode:            unknownExitCodeConstant,
		}
	}

	pipelineExpression := shellquote.BuildPipelineCommand(commandTexts)
	escapedExpression := shellquote.EscapePipelineExpression(pipelineExpression)
	shellDefinition := delegator.shellResolver.DefaultShell()

	delegator.logger.Debug(delegatingLogMessageConstant,
		zap.String(shellPathLogFieldNameConstant, shellDefinition.Path),
		zap.String(expressionLogFieldNameConstant, escapedExpression),
	)

	return delegator.processExecutor.Execute(executionContext, ProcessCommand{
		Executable:    shellDefinition.Path,
		Arguments:     []string{shellDefinition.CommandFlag, escapedExpression},
		StandardInput: standardInput,
	})
}
