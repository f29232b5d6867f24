package pipeline

import (
	"context"
	"strings"
)

// PipelineSegment describes one stage of a parsed pipeline.
type PipelineSegment struct {
	Text       string
	Position   int
	IsInternal bool
	IsFirst    bool
	IsLast     bool
}

// ParsedPipeline carries the typed segments of one pipeline invocation
// together with the outcome of the syntactic parse.
type ParsedPipeline struct {
	Segments     []PipelineSegment
	Valid        bool
	ErrorMessage string
}

// InternalSegment returns the leading in-process segment of the pipeline.
func (parsedPipeline ParsedPipeline) InternalSegment() (PipelineSegment, bool) {
	for _, segment := range parsedPipeline.Segments {
		if segment.IsInternal {
			return segment, true
		}
	}
	return PipelineSegment{}, false
}

// ExternalSegments returns the segments executed as OS processes, in order.
func (parsedPipeline ParsedPipeline) ExternalSegments() []PipelineSegment {
	externalSegments := make([]PipelineSegment, 0, len(parsedPipeline.Segments))
	for _, segment := range parsedPipeline.Segments {
		if !segment.IsInternal {
			externalSegments = append(externalSegments, segment)
		}
	}
	return externalSegments
}

// InternalCommandResult reports the outcome of the in-process stage.
type InternalCommandResult struct {
	Success      bool
	ErrorMessage string
}

// InternalCommandExecutor runs the in-process stage of a pipeline, writing the
// output it produces to the supplied sink.
type InternalCommandExecutor func(executionContext context.Context, commandText string, outputSink OutputSink) InternalCommandResult

// ExecutionResult is the unified outcome of one pipeline run. A non-zero exit
// code from the external stage is reported as data on a successful result, not
// as a failure.
type ExecutionResult struct {
	Success      bool
	Output       string
	ErrorOutput  string
	ErrorMessage string
	ExitCode     *int
	Cancelled    bool
}

// HasErrorOutput reports whether any standard error content was captured.
func (result ExecutionResult) HasErrorOutput() bool {
	return len(strings.TrimSpace(result.ErrorOutput)) > 0
}

// HasNonZeroExitCode reports whether the external stage finished with a non-zero exit code.
func (result ExecutionResult) HasNonZeroExitCode() bool {
	return result.ExitCode != nil && *result.ExitCode != 0
}
