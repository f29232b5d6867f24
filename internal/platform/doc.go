// Package platform answers operating-system identity questions and resolves the
// default shell used for delegated pipeline execution. Shell discovery is an
// injectable capability so command composition stays testable on every host.
package platform
