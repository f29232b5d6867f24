package builtins

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/temirov/pipeshell/internal/pipeline"
)

const (
	emitCommandNameConstant          = "emit"
	emitCommandDescriptionConstant   = "write the arguments as a single line"
	linesCommandNameConstant         = "lines"
	linesCommandDescriptionConstant  = "write each argument on its own line"
	repeatCommandNameConstant        = "repeat"
	repeatCommandDescriptionConstant = "write the text a given number of times, one line each"
	envCommandNameConstant           = "env"
	envCommandDescriptionConstant    = "write the value of an environment variable"

	argumentJoinSeparatorConstant      = " "
	lineSeparatorConstant              = "\n"
	repeatUsageMessageConstant         = "repeat requires a count and text to repeat"
	invalidRepeatCountTemplateConstant = "repeat requires a positive count, got %q"
	envUsageMessageConstant            = "env requires exactly one variable name"
	missingVariableTemplateConstant    = "environment variable %q is not set"
)

// NewDefaultRegistry constructs a registry populated with the stock builtins.
func NewDefaultRegistry() *Registry {
	registry := NewRegistry()
	for _, definition := range defaultCommandDefinitions() {
		// Registration of the stock set cannot fail; the names are unique literals.
		_ = registry.Register(definition)
	}
	return registry
}

func defaultCommandDefinitions() []CommandDefinition {
	return []CommandDefinition{
		{Name: emitCommandNameConstant, Description: emitCommandDescriptionConstant, Handler: emitCommandHandler},
		{Name: linesCommandNameConstant, Description: linesCommandDescriptionConstant, Handler: linesCommandHandler},
		{Name: repeatCommandNameConstant, Description: repeatCommandDescriptionConstant, Handler: repeatCommandHandler},
		{Name: envCommandNameConstant, Description: envCommandDescriptionConstant, Handler: envCommandHandler},
	}
}

func emitCommandHandler(executionContext context.Context, arguments []string, outputSink pipeline.OutputSink) error {
	outputSink.WriteText(strings.Join(arguments, argumentJoinSeparatorConstant) + lineSeparatorConstant)
	return nil
}

func linesCommandHandler(executionContext context.Context, arguments []string, outputSink pipeline.OutputSink) error {
	for _, argument := range arguments {
		outputSink.WriteText(argument + lineSeparatorConstant)
	}
	return nil
}

func repeatCommandHandler(executionContext context.Context, arguments []string, outputSink pipeline.OutputSink) error {
	if len(arguments) < 2 {
		return errors.New(repeatUsageMessageConstant)
	}
	repetitionCount, parseError := strconv.Atoi(arguments[0])
	if parseError != nil || repetitionCount < 1 {
		return fmt.Errorf(invalidRepeatCountTemplateConstant, arguments[0])
	}

	repeatedText := strings.Join(arguments[1:], argumentJoinSeparatorConstant)
	for repetitionIndex := 0; repetitionIndex < repetitionCount; repetitionIndex++ {
		outputSink.WriteText(repeatedText + lineSeparatorConstant)
	}
	return nil
}

func envCommandHandler(executionContext context.Context, arguments []string, outputSink pipeline.OutputSink) error {
	if len(arguments) != 1 {
		return errors.New(envUsageMessageConstant)
	}
	variableValue, variablePresent := os.LookupEnv(arguments[0])
	if !variablePresent {
		return fmt.Errorf(missingVariableTemplateConstant, arguments[0])
	}
	outputSink.WriteText(variableValue + lineSeparatorConstant)
	return nil
}
