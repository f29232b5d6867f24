package builtins

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/temirov/pipeshell/internal/pipeline"
)

const (
	blankCommandNameMessageConstant         = "builtin command name cannot be blank"
	missingHandlerMessageTemplateConstant   = "builtin command %q has no handler"
	duplicateCommandMessageTemplateConstant = "builtin command %q is already registered"
	noCommandProvidedMessageConstant        = "no internal command provided"
	unknownCommandMessageTemplateConstant   = "unknown internal command %q"
)

// CommandHandler produces the output of one builtin invocation.
type CommandHandler func(executionContext context.Context, arguments []string, outputSink pipeline.OutputSink) error

// CommandDefinition describes one builtin command.
type CommandDefinition struct {
	Name        string
	Description string
	Handler     CommandHandler
}

// Registry holds the builtin commands available as the internal pipeline stage.
type Registry struct {
	mutex       sync.RWMutex
	definitions map[string]CommandDefinition
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{definitions: map[string]CommandDefinition{}}
}

// Register adds a builtin definition, rejecting blank names, missing handlers,
// and duplicates.
func (registry *Registry) Register(definition CommandDefinition) error {
	commandName := strings.TrimSpace(definition.Name)
	if len(commandName) == 0 {
		return errors.New(blankCommandNameMessageConstant)
	}
	if definition.Handler == nil {
		return fmt.Errorf(missingHandlerMessageTemplateConstant, commandName)
	}

	registry.mutex.Lock()
	defer registry.mutex.Unlock()
	if _, alreadyRegistered := registry.definitions[commandName]; alreadyRegistered {
		return fmt.Errorf(duplicateCommandMessageTemplateConstant, commandName)
	}
	definition.Name = commandName
	registry.definitions[commandName] = definition
	return nil
}

// Lookup returns the definition registered under the supplied name.
func (registry *Registry) Lookup(commandName string) (CommandDefinition, bool) {
	registry.mutex.RLock()
	defer registry.mutex.RUnlock()
	definition, definitionFound := registry.definitions[strings.TrimSpace(commandName)]
	return definition, definitionFound
}

// Definitions returns every registered builtin sorted by name.
func (registry *Registry) Definitions() []CommandDefinition {
	registry.mutex.RLock()
	defer registry.mutex.RUnlock()

	definitions := make([]CommandDefinition, 0, len(registry.definitions))
	for _, definition := range registry.definitions {
		definitions = append(definitions, definition)
	}
	sort.Slice(definitions, func(firstIndex int, secondIndex int) bool {
		return definitions[firstIndex].Name < definitions[secondIndex].Name
	})
	return definitions
}

// Execute adapts the registry to the pipeline's internal-stage contract: the
// command text is tokenized, the named builtin runs against the sink, and
// handler failures become internal command results rather than errors.
func (registry *Registry) Execute(executionContext context.Context, commandText string, outputSink pipeline.OutputSink) pipeline.InternalCommandResult {
	commandTokens := strings.Fields(commandText)
	if len(commandTokens) == 0 {
		return pipeline.InternalCommandResult{ErrorMessage: noCommandProvidedMessageConstant}
	}

	definition, definitionFound := registry.Lookup(commandTokens[0])
	if !definitionFound {
		return pipeline.InternalCommandResult{ErrorMessage: fmt.Sprintf(unknownCommandMessageTemplateConstant, commandTokens[0])}
	}

	handlerError := definition.Handler(executionContext, commandTokens[1:], outputSink)
	if handlerError != nil {
		return pipeline.InternalCommandResult{ErrorMessage: handlerError.Error()}
	}
	return pipeline.InternalCommandResult{Success: true}
}
