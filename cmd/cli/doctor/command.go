package doctor

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/temirov/pipeshell/internal/execshell"
	"github.com/temirov/pipeshell/internal/platform"
	"github.com/temirov/pipeshell/internal/utils"
)

const (
	commandUseConstant              = "doctor"
	commandShortDescriptionConstant = "Report the execution environment used for pipelines"
	commandLongDescriptionConstant  = "doctor prints the operating system identity and the default shell used for delegated pipelines."
	operatingSystemTemplateConstant = "operating system: %s\n"
	defaultShellTemplateConstant    = "default shell: %s\n"
	shellFlagTemplateConstant       = "shell command flag: %s\n"
	modernShellTemplateConstant     = "modern shell located: %t\n"
)

// CommandBuilder assembles the doctor command.
type CommandBuilder struct {
	ShellResolver execshell.DefaultShellResolver
}

// Build constructs the doctor command.
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
	shellResolver := builder.ShellResolver
	if shellResolver == nil {
		shellResolver = platform.NewShellResolver(nil)
	}

	outputWriter := utils.NewFlushingWriter(command.OutOrStdout())
	shellDefinition := shellResolver.DefaultShell()

	fmt.Fprintf(outputWriter, operatingSystemTemplateConstant, runtime.GOOS)
	fmt.Fprintf(outputWriter, defaultShellTemplateConstant, shellDefinition.Path)
	fmt.Fprintf(outputWriter, shellFlagTemplateConstant, shellDefinition.CommandFlag)
	if platform.IsWindows() {
		fmt.Fprintf(outputWriter, modernShellTemplateConstant, platform.IsModernWindowsShell(shellDefinition.Path))
	}

	return nil
}
