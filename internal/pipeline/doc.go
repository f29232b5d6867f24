// Package pipeline orchestrates runs that feed the output of an in-process
// command through one or more external OS processes with pipe semantics.
//
// ParsePipeline types the raw text into segments, CaptureSink collects the
// internal stage's output, and Executor dispatches the external stages either
// directly through a process executor or through shell delegation, mapping the
// raw process outcome into a unified ExecutionResult.
package pipeline
