package run

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/temirov/pipeshell/internal/builtins"
	"github.com/temirov/pipeshell/internal/catalog"
	"github.com/temirov/pipeshell/internal/execshell"
	"github.com/temirov/pipeshell/internal/pipeline"
	"github.com/temirov/pipeshell/internal/platform"
	"github.com/temirov/pipeshell/internal/shellquote"
	"github.com/temirov/pipeshell/internal/ui"
	"github.com/temirov/pipeshell/internal/utils"
	flagutils "github.com/temirov/pipeshell/internal/utils/flags"
	pathutils "github.com/temirov/pipeshell/internal/utils/path"
)

const (
	commandUseConstant                   = "run [pipeline]"
	commandShortDescriptionConstant      = "Run a pipeline that feeds an internal command through external processes"
	commandLongDescriptionConstant       = "run executes a pipeline whose first stage is an internal command; the captured output of that stage is piped through the remaining external commands."
	savedFlagNameConstant                = "saved"
	savedFlagDescriptionConstant         = "Name of a saved pipeline from the catalog"
	catalogFlagNameConstant              = "catalog"
	catalogFlagDescriptionConstant       = "Path to the pipeline catalog file"
	dryRunFlagNameConstant               = "dry-run"
	dryRunFlagDescriptionConstant        = "Preview the execution plan without spawning processes"
	warnNonZeroFlagNameConstant          = "warn-nonzero"
	warnNonZeroFlagDescriptionConstant   = "Warn on standard error when the pipeline exits with a nonzero code"
	pipelineTextRequiredMessageConstant  = "pipeline text required; provide a positional argument or --saved flag"
	conflictingSourcesMessageConstant    = "provide either pipeline text or --saved, not both"
	savedPipelineMissingTemplateConstant = "saved pipeline %q is not defined in %s"
	loadCatalogErrorTemplateConstant     = "unable to load pipeline catalog: %w"
	dryRunInternalTemplateConstant       = "dry-run: internal command: %s\n"
	dryRunDirectTemplateConstant         = "dry-run: direct process: %s\n"
	dryRunShellTemplateConstant          = "dry-run: shell invocation: %s %s %s\n"
	standardErrorHeadingConstant         = "stderr:"
	nonZeroExitWarningTemplateConstant   = "warning: pipeline exited with code %d\n"
	argumentJoinSeparatorConstant        = " "
	trailingNewlineConstant              = "\n"
)

// CommandBuilder assembles the run command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConsoleLoggerProvider        LoggerProvider
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
	CommandRunner                execshell.CommandRunner
	ShellResolver                execshell.DefaultShellResolver
}

// Build constructs the run command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}

	command.Flags().String(savedFlagNameConstant, "", savedFlagDescriptionConstant)
	command.Flags().String(catalogFlagNameConstant, "", catalogFlagDescriptionConstant)
	flagutils.AddToggleFlag(command.Flags(), nil, dryRunFlagNameConstant, "", false, dryRunFlagDescriptionConstant)
	flagutils.AddToggleFlag(command.Flags(), nil, warnNonZeroFlagNameConstant, "", true, warnNonZeroFlagDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	positionalText := strings.TrimSpace(strings.Join(arguments, argumentJoinSeparatorConstant))
	savedName, _ := command.Flags().GetString(savedFlagNameConstant)
	savedName = strings.TrimSpace(savedName)

	if len(positionalText) > 0 && len(savedName) > 0 {
		return errors.New(conflictingSourcesMessageConstant)
	}

	commandConfiguration := builder.resolveConfiguration()

	pipelineText := positionalText
	if len(savedName) > 0 {
		resolvedText, resolveError := builder.resolveSavedPipeline(command, commandConfiguration, savedName)
		if resolveError != nil {
			return resolveError
		}
		pipelineText = resolvedText
	}

	if len(pipelineText) == 0 {
		if helpError := displayCommandHelp(command); helpError != nil {
			return helpError
		}
		return errors.New(pipelineTextRequiredMessageConstant)
	}

	parsedPipeline := pipeline.ParsePipeline(pipelineText)
	shellResolver := builder.resolveShellResolver()

	dryRunEnabled, _ := command.Flags().GetBool(dryRunFlagNameConstant)
	if dryRunEnabled {
		return renderExecutionPlan(command, parsedPipeline, shellResolver)
	}

	executionResult, executionError := builder.executePipeline(command, parsedPipeline, shellResolver)
	if executionError != nil {
		return executionError
	}

	warnNonZero := commandConfiguration.WarnNonZero
	if command.Flags().Changed(warnNonZeroFlagNameConstant) {
		warnNonZero, _ = command.Flags().GetBool(warnNonZeroFlagNameConstant)
	}

	return renderResult(command, executionResult, warnNonZero)
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) resolveShellResolver() execshell.DefaultShellResolver {
	if builder.ShellResolver != nil {
		return builder.ShellResolver
	}
	return platform.NewShellResolver(nil)
}

func (builder *CommandBuilder) resolveSavedPipeline(command *cobra.Command, commandConfiguration CommandConfiguration, savedName string) (string, error) {
	catalogPath, _ := command.Flags().GetString(catalogFlagNameConstant)
	catalogPath = strings.TrimSpace(catalogPath)
	if len(catalogPath) == 0 {
		catalogPath = commandConfiguration.CatalogPath
	}

	expandedCatalogPath := pathutils.NewHomeExpander().Expand(catalogPath)
	loadedCatalog, loadError := catalog.LoadCatalog(expandedCatalogPath)
	if loadError != nil {
		return "", fmt.Errorf(loadCatalogErrorTemplateConstant, loadError)
	}

	savedDefinition, definitionFound := loadedCatalog.Find(savedName)
	if !definitionFound {
		return "", fmt.Errorf(savedPipelineMissingTemplateConstant, savedName, expandedCatalogPath)
	}
	return savedDefinition.Pipeline, nil
}

func (builder *CommandBuilder) executePipeline(command *cobra.Command, parsedPipeline pipeline.ParsedPipeline, shellResolver execshell.DefaultShellResolver) (pipeline.ExecutionResult, error) {
	logger := resolveLogger(builder.LoggerProvider)

	commandRunner := builder.CommandRunner
	if commandRunner == nil {
		commandRunner = execshell.NewOSCommandRunner()
	}

	var processEventObserver execshell.ProcessEventObserver
	if builder.HumanReadableLoggingProvider != nil && builder.HumanReadableLoggingProvider() {
		processEventObserver = ui.NewConsoleProcessEventLogger(resolveLogger(builder.ConsoleLoggerProvider))
	}

	processExecutor, executorCreationError := execshell.NewProcessExecutorWithObserver(logger, commandRunner, processEventObserver)
	if executorCreationError != nil {
		return pipeline.ExecutionResult{}, executorCreationError
	}

	shellDelegator, delegatorCreationError := execshell.NewShellDelegator(execshell.ShellDelegatorDependencies{
		Logger:          logger,
		ProcessExecutor: processExecutor,
		ShellResolver:   shellResolver,
	})
	if delegatorCreationError != nil {
		return pipeline.ExecutionResult{}, delegatorCreationError
	}

	pipelineExecutor, pipelineCreationError := pipeline.NewExecutor(pipeline.ExecutorDependencies{
		Logger:          logger,
		ProcessExecutor: processExecutor,
		ShellDelegator:  shellDelegator,
	})
	if pipelineCreationError != nil {
		return pipeline.ExecutionResult{}, pipelineCreationError
	}

	commandRegistry := builtins.NewDefaultRegistry()

	contextAccessor := utils.NewCommandContextAccessor()
	runContext := contextAccessor.WithRunIdentifier(command.Context(), uuid.NewString())

	return pipelineExecutor.Execute(runContext, parsedPipeline, commandRegistry.Execute), nil
}

func renderExecutionPlan(command *cobra.Command, parsedPipeline pipeline.ParsedPipeline, shellResolver execshell.DefaultShellResolver) error {
	planDescription, validationMessage, pipelineIsExecutable := pipeline.DescribeExecution(parsedPipeline)
	if !pipelineIsExecutable {
		return errors.New(validationMessage)
	}

	outputWriter := utils.NewFlushingWriter(command.OutOrStdout())
	internalSegment, _ := parsedPipeline.InternalSegment()
	fmt.Fprintf(outputWriter, dryRunInternalTemplateConstant, internalSegment.Text)

	if planDescription.Direct {
		directInvocation := strings.Join(append([]string{planDescription.Executable}, planDescription.Arguments...), argumentJoinSeparatorConstant)
		fmt.Fprintf(outputWriter, dryRunDirectTemplateConstant, directInvocation)
		return nil
	}

	pipelineExpression := shellquote.EscapePipelineExpression(shellquote.BuildPipelineCommand(planDescription.PipelineCommands))
	shellDefinition := shellResolver.DefaultShell()
	fmt.Fprintf(outputWriter, dryRunShellTemplateConstant, shellDefinition.Path, shellDefinition.CommandFlag, pipelineExpression)
	return nil
}

func renderResult(command *cobra.Command, executionResult pipeline.ExecutionResult, warnNonZero bool) error {
	outputWriter := utils.NewFlushingWriter(command.OutOrStdout())
	errorWriter := utils.NewFlushingWriter(command.ErrOrStderr())

	if len(executionResult.Output) > 0 {
		fmt.Fprint(outputWriter, executionResult.Output)
	}
	if executionResult.HasErrorOutput() {
		writeStandardErrorSection(errorWriter, executionResult.ErrorOutput)
	}

	if executionResult.Cancelled {
		return errors.New(executionResult.ErrorMessage)
	}
	if !executionResult.Success {
		return errors.New(executionResult.ErrorMessage)
	}

	if warnNonZero && executionResult.HasNonZeroExitCode() {
		fmt.Fprintf(errorWriter, nonZeroExitWarningTemplateConstant, *executionResult.ExitCode)
	}

	return nil
}

func writeStandardErrorSection(errorWriter io.Writer, errorOutput string) {
	fmt.Fprintln(errorWriter, standardErrorHeadingConstant)
	fmt.Fprint(errorWriter, errorOutput)
	if !strings.HasSuffix(errorOutput, trailingNewlineConstant) {
		fmt.Fprintln(errorWriter)
	}
}
