// Package builtins implements the in-process commands that can appear as the
// internal stage of a pipeline, together with the registry that resolves them
// by name and adapts them to the pipeline executor's contract.
package builtins
