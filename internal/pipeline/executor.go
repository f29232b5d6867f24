package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/temirov/pipeshell/internal/execshell"
	"github.com/temirov/pipeshell/internal/utils"
)

const (
	runIdentifierLogFieldNameConstant      = "run_id"
	internalCommandLogFieldNameConstant    = "internal_command"
	externalStageCountLogFieldNameConstant = "external_stages"
	successLogFieldNameConstant            = "success"
	cancelledLogFieldNameConstant          = "cancelled"
	pipelineStartingLogMessageConstant     = "executing pipeline"
	pipelineFinishedLogMessageConstant     = "pipeline finished"
	invalidPipelineMessageConstant         = "pipeline is not valid"
	missingInternalExecutorMessageConstant = "no internal command executor provided"
	multipleInternalStagesMessageConstant  = "pipeline supports exactly one internal command"
	internalCommandFailedMessageConstant   = "internal command failed"
	cancellationMessageConstant            = "pipeline execution was cancelled"
	singleStageStartupHintTemplateConstant = "external command %q could not be started: %s (check that it is installed and available on your PATH)"
	multiStageStartupHintTemplateConstant  = "shell delegation failed: %s (check that every pipeline stage is installed and available on your PATH)"
)

// ExternalProcessExecutor runs one external command directly, without shell interpretation.
type ExternalProcessExecutor interface {
	Execute(executionContext context.Context, command execshell.ProcessCommand) execshell.ProcessResult
}

// PipelineShellDelegator runs a multi-stage pipeline through the platform shell.
type PipelineShellDelegator interface {
	Execute(executionContext context.Context, commandTexts []string, standardInput []byte) execshell.ProcessResult
}

// ExecutorDependencies bundles the collaborators required by the Executor.
type ExecutorDependencies struct {
	Logger          *zap.Logger
	ProcessExecutor ExternalProcessExecutor
	ShellDelegator  PipelineShellDelegator
}

// Executor orchestrates a full pipeline run: the in-process stage writes into
// a capturing sink, the captured text becomes standard input for the external
// stages, and the raw process outcome is mapped into an ExecutionResult.
type Executor struct {
	logger          *zap.Logger
	processExecutor ExternalProcessExecutor
	shellDelegator  PipelineShellDelegator
	contextAccessor utils.CommandContextAccessor
}

// NewExecutor validates the dependencies and constructs an Executor.
func NewExecutor(dependencies ExecutorDependencies) (*Executor, error) {
	if dependencies.Logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if dependencies.ProcessExecutor == nil {
		return nil, ErrProcessExecutorNotConfigured
	}
	if dependencies.ShellDelegator == nil {
		return nil, ErrShellDelegatorNotConfigured
	}
	return &Executor{
		logger:          dependencies.Logger,
		processExecutor: dependencies.ProcessExecutor,
		shellDelegator:  dependencies.ShellDelegator,
		contextAccessor: utils.NewCommandContextAccessor(),
	}, nil
}

type executionPlanKind int

const (
	directProcessPlanKind executionPlanKind = iota
	shellChainPlanKind
)

// executionPlan is the single dispatch decision for the external stages,
// selected once from the segment count.
type executionPlan struct {
	kind             executionPlanKind
	directExecutable string
	directArguments  []string
	chainCommands    []string
}

// Execute runs the parsed pipeline. Validation failures and in-process stage
// failures return before any OS process is spawned.
func (executor *Executor) Execute(executionContext context.Context, parsedPipeline ParsedPipeline, internalExecutor InternalCommandExecutor) ExecutionResult {
	if internalExecutor == nil {
		return failureResult(missingInternalExecutorMessageConstant)
	}
	validationMessage, pipelineIsExecutable := validatePipeline(parsedPipeline)
	if !pipelineIsExecutable {
		return failureResult(validationMessage)
	}

	runIdentifier, runIdentifierPresent := executor.contextAccessor.RunIdentifier(executionContext)
	if !runIdentifierPresent {
		runIdentifier = uuid.NewString()
	}

	internalSegment, _ := parsedPipeline.InternalSegment()
	externalSegments := parsedPipeline.ExternalSegments()

	executor.logger.Debug(pipelineStartingLogMessageConstant,
		zap.String(runIdentifierLogFieldNameConstant, runIdentifier),
		zap.String(internalCommandLogFieldNameConstant, internalSegment.Text),
		zap.Int(externalStageCountLogFieldNameConstant, len(externalSegments)),
	)

	captureSink := NewCaptureSink()
	internalResult := internalExecutor(executionContext, internalSegment.Text, captureSink)
	if executionContext.Err() != nil {
		return ExecutionResult{
			Output:       captureSink.Contents(),
			ErrorMessage: cancellationMessageConstant,
			Cancelled:    true,
		}
	}
	if !internalResult.Success {
		internalFailureMessage := strings.TrimSpace(internalResult.ErrorMessage)
		if len(internalFailureMessage) == 0 {
			internalFailureMessage = internalCommandFailedMessageConstant
		}
		return failureResult(internalFailureMessage)
	}

	capturedOutput := captureSink.Contents()
	plan := planExternalExecution(externalSegments)

	var processResult execshell.ProcessResult
	switch plan.kind {
	case directProcessPlanKind:
		processResult = executor.processExecutor.Execute(executionContext, execshell.ProcessCommand{
			Executable:    plan.directExecutable,
			Arguments:     plan.directArguments,
			StandardInput: []byte(capturedOutput),
		})
	default:
		processResult = executor.shellDelegator.Execute(executionContext, plan.chainCommands, []byte(capturedOutput))
	}

	executionResult := mapProcessResult(plan, processResult)

	executor.logger.Debug(pipelineFinishedLogMessageConstant,
		zap.String(runIdentifierLogFieldNameConstant, runIdentifier),
		zap.Bool(successLogFieldNameConstant, executionResult.Success),
		zap.Bool(cancelledLogFieldNameConstant, executionResult.Cancelled),
	)

	return executionResult
}

// ExecutionPlanDescription reports how the external stages of a pipeline would
// be dispatched, for callers that preview execution without spawning.
type ExecutionPlanDescription struct {
	Direct           bool
	Executable       string
	Arguments        []string
	PipelineCommands []string
}

// DescribeExecution validates the parsed pipeline and reports its dispatch
// plan. When the pipeline cannot be executed the boolean result is false and
// the string carries the validation message.
func DescribeExecution(parsedPipeline ParsedPipeline) (ExecutionPlanDescription, string, bool) {
	validationMessage, pipelineIsExecutable := validatePipeline(parsedPipeline)
	if !pipelineIsExecutable {
		return ExecutionPlanDescription{}, validationMessage, false
	}

	plan := planExternalExecution(parsedPipeline.ExternalSegments())
	if plan.kind == directProcessPlanKind {
		return ExecutionPlanDescription{
			Direct:     true,
			Executable: plan.directExecutable,
			Arguments:  plan.directArguments,
		}, emptyStringConstant, true
	}
	return ExecutionPlanDescription{PipelineCommands: plan.chainCommands}, emptyStringConstant, true
}

func validatePipeline(parsedPipeline ParsedPipeline) (string, bool) {
	if !parsedPipeline.Valid {
		if len(parsedPipeline.ErrorMessage) > 0 {
			return parsedPipeline.ErrorMessage, false
		}
		return invalidPipelineMessageConstant, false
	}
	if len(parsedPipeline.Segments) == 0 {
		return invalidPipelineMessageConstant, false
	}

	internalSegmentCount := 0
	for _, segment := range parsedPipeline.Segments {
		if segment.IsInternal {
			internalSegmentCount++
		}
	}
	if internalSegmentCount == 0 || !parsedPipeline.Segments[0].IsInternal {
		return missingInternalStageMessageConstant, false
	}
	if internalSegmentCount > 1 {
		return multipleInternalStagesMessageConstant, false
	}

	externalSegments := parsedPipeline.ExternalSegments()
	if len(externalSegments) == 0 {
		return missingExternalStageMessageConstant, false
	}
	for _, externalSegment := range externalSegments {
		if len(strings.TrimSpace(externalSegment.Text)) == 0 {
			return emptyExternalCommandMessageConstant, false
		}
	}

	return emptyStringConstant, true
}

func planExternalExecution(externalSegments []PipelineSegment) executionPlan {
	if len(externalSegments) == 1 {
		commandTokens := strings.Fields(externalSegments[0].Text)
		return executionPlan{
			kind:             directProcessPlanKind,
			directExecutable: commandTokens[0],
			directArguments:  commandTokens[1:],
		}
	}

	commandTexts := make([]string, 0, len(externalSegments))
	for _, externalSegment := range externalSegments {
		commandTexts = append(commandTexts, externalSegment.Text)
	}
	return executionPlan{kind: shellChainPlanKind, chainCommands: commandTexts}
}

func mapProcessResult(plan executionPlan, processResult execshell.ProcessResult) ExecutionResult {
	switch processResult.Outcome() {
	case execshell.ProcessOutcomeStartupError:
		startupFailureMessage := fmt.Sprintf(multiStageStartupHintTemplateConstant, processResult.StartupErrorMessage)
		if plan.kind == directProcessPlanKind {
			startupFailureMessage = fmt.Sprintf(singleStageStartupHintTemplateConstant, plan.directExecutable, processResult.StartupErrorMessage)
		}
		return ExecutionResult{
			Output:       processResult.StandardOutput,
			ErrorOutput:  processResult.StandardError,
			ErrorMessage: startupFailureMessage,
		}
	case execshell.ProcessOutcomeKilled:
		return ExecutionResult{
			Output:       processResult.StandardOutput,
			ErrorOutput:  processResult.StandardError,
			ErrorMessage: cancellationMessageConstant,
			Cancelled:    true,
		}
	default:
		exitCode := processResult.ExitCode
		return ExecutionResult{
			Success:     true,
			Output:      processResult.StandardOutput,
			ErrorOutput: processResult.StandardError,
			ExitCode:    &exitCode,
		}
	}
}

func failureResult(errorMessage string) ExecutionResult {
	return ExecutionResult{ErrorMessage: errorMessage}
}
