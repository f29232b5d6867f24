package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temirov/pipeshell/internal/builtins"
	"github.com/temirov/pipeshell/internal/utils"
)

const (
	commandUseConstant              = "commands"
	commandShortDescriptionConstant = "List the internal commands available to pipelines"
	commandLongDescriptionConstant  = "commands prints every registered internal command together with its description."
	definitionLineTemplateConstant  = "%-10s %s\n"
)

// CommandBuilder assembles the commands listing command.
type CommandBuilder struct {
	RegistryProvider func() *builtins.Registry
}

// Build constructs the commands command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	commandRegistry := builder.resolveRegistry()
	outputWriter := utils.NewFlushingWriter(command.OutOrStdout())

	for _, commandDefinition := range commandRegistry.Definitions() {
		fmt.Fprintf(outputWriter, definitionLineTemplateConstant, commandDefinition.Name, commandDefinition.Description)
	}

	return nil
}

func (builder *CommandBuilder) resolveRegistry() *builtins.Registry {
	if builder.RegistryProvider != nil {
		if providedRegistry := builder.RegistryProvider(); providedRegistry != nil {
			return providedRegistry
		}
	}
	return builtins.NewDefaultRegistry()
}
