package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/pipeshell/cmd/cli/commands"
	"github.com/temirov/pipeshell/cmd/cli/doctor"
	runcmd "github.com/temirov/pipeshell/cmd/cli/run"
	"github.com/temirov/pipeshell/internal/utils"
	flagutils "github.com/temirov/pipeshell/internal/utils/flags"
)

const (
	applicationNameConstant                 = "pipeshell"
	applicationShortDescriptionConstant     = "Command-line interface for the pipeshell pipeline engine"
	applicationLongDescriptionConstant      = "pipeshell feeds the output of built-in commands through chains of external executables with pipe semantics."
	configFileFlagNameConstant              = "config"
	configFileFlagUsageConstant             = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                = "log-level"
	logLevelFlagUsageConstant               = "Override the configured log level."
	logFormatFlagNameConstant               = "log-format"
	logFormatFlagUsageConstant              = "Override the configured log format."
	versionFlagArgumentConstant             = "--version"
	versionOutputTemplateConstant           = "%s version: %s\n"
	defaultApplicationVersionConstant       = "development"
	initializationFlagArgumentConstant      = "--init"
	initializationAssignmentPrefixConstant  = "--init="
	forceFlagArgumentConstant               = "--force"
	localInitializationScopeConstant        = "local"
	userInitializationScopeConstant         = "user"
	configurationFileExtensionConstant      = ".yaml"
	configurationCreatedTemplateConstant    = "created configuration file %s\n"
	configurationExistsTemplateConstant     = "configuration file %s already exists (use --force to overwrite)"
	unknownScopeTemplateConstant            = "unknown configuration scope %q (expected local or user)"
	homeDirectoryErrorTemplateConstant      = "unable to resolve home directory: %w"
	configurationDirectoryPermissions       = 0o755
	configurationFilePermissions            = 0o644
	commonConfigurationKeyConstant          = "common"
	commonLogLevelConfigKeyConstant         = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant        = commonConfigurationKeyConstant + ".log_format"
	environmentPrefixConstant               = "PIPESHELL"
	configurationNameConstant               = "config"
	configurationTypeConstant               = "yaml"
	configurationInitializedMessageConstant = "configuration initialized"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationFileFieldConstant          = "config_file"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	rootCommandInfoMessageConstant          = "pipeshell CLI executed"
	rootCommandDebugMessageConstant         = "pipeshell CLI diagnostics"
	logFieldCommandNameConstant             = "command_name"
	logFieldArgumentCountConstant           = "argument_count"
	logFieldArgumentsConstant               = "arguments"
	loggerNotInitializedMessageConstant     = "logger not initialized"
	defaultConfigurationSearchPathConstant  = "."
	userConfigurationDirectoryNameConstant  = ".pipeshell"
	argumentTerminatorConstant              = "--"
	toolsConfigurationKeyConstant           = "tools"
	runConfigurationKeyConstant             = toolsConfigurationKeyConstant + ".run"
)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common ApplicationCommonConfiguration `mapstructure:"common"`
	Tools  ApplicationToolsConfiguration  `mapstructure:"tools"`
}

// ApplicationCommonConfiguration stores logging configuration shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// ApplicationToolsConfiguration holds configuration for CLI subcommands grouped by tool family.
type ApplicationToolsConfiguration struct {
	Run runcmd.CommandConfiguration `mapstructure:"run"`
}

// Application wires the Cobra root command, configuration loader, and structured loggers.
type Application struct {
	rootCommand            *cobra.Command
	configurationLoader    *utils.ConfigurationLoader
	loggerFactory          *utils.LoggerFactory
	logger                 *zap.Logger
	consoleLogger          *zap.Logger
	configuration          ApplicationConfiguration
	configurationMetadata  utils.LoadedConfiguration
	configurationFilePath  string
	logLevelFlagValue      string
	logFormatFlagValue     string
	commandContextAccessor utils.CommandContextAccessor
	versionResolver        func(context.Context) string
	exitFunction           func(int)
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() *Application {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		configurationSearchPaths(),
	)
	embeddedConfiguration, embeddedConfigurationType := EmbeddedDefaultConfiguration()
	configurationLoader.SetEmbeddedConfiguration(embeddedConfiguration, embeddedConfigurationType)

	application := &Application{
		configurationLoader:    configurationLoader,
		loggerFactory:          utils.NewLoggerFactory(),
		logger:                 zap.NewNop(),
		consoleLogger:          zap.NewNop(),
		commandContextAccessor: utils.NewCommandContextAccessor(),
		versionResolver:        resolveBuildVersion,
		exitFunction:           os.Exit,
	}

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return application.runRootCommand(command, arguments)
		},
	}

	cobraCommand.SetContext(context.Background())
	cobraCommand.PersistentFlags().StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logLevelFlagValue, logLevelFlagNameConstant, "", logLevelFlagUsageConstant)
	logFormatUsage := flagutils.FormatChoiceUsage(
		string(utils.LogFormatStructured),
		[]string{string(utils.LogFormatStructured), string(utils.LogFormatConsole)},
		logFormatFlagUsageConstant,
	)
	cobraCommand.PersistentFlags().StringVar(&application.logFormatFlagValue, logFormatFlagNameConstant, "", logFormatUsage)

	runBuilder := runcmd.CommandBuilder{
		LoggerProvider: func() *zap.Logger {
			return application.logger
		},
		ConsoleLoggerProvider: func() *zap.Logger {
			return application.consoleLogger
		},
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
		ConfigurationProvider: func() runcmd.CommandConfiguration {
			return application.configuration.Tools.Run
		},
	}
	runCommand, runBuildError := runBuilder.Build()
	if runBuildError == nil {
		cobraCommand.AddCommand(runCommand)
	}

	doctorBuilder := doctor.CommandBuilder{}
	doctorCommand, doctorBuildError := doctorBuilder.Build()
	if doctorBuildError == nil {
		cobraCommand.AddCommand(doctorCommand)
	}

	commandsBuilder := commands.CommandBuilder{}
	commandsCommand, commandsBuildError := commandsBuilder.Build()
	if commandsBuildError == nil {
		cobraCommand.AddCommand(commandsCommand)
	}

	application.rootCommand = cobraCommand

	return application
}

// Execute runs the configured Cobra command hierarchy and ensures logger flushing.
func (application *Application) Execute() error {
	commandArguments := flagutils.NormalizeToggleArguments(os.Args[1:])
	if containsVersionFlag(commandArguments) {
		fmt.Fprintf(os.Stdout, versionOutputTemplateConstant, applicationNameConstant, application.resolveVersion())
		application.exitFunction(0)
		return nil
	}

	if initializationScope, initializationRequested := extractInitializationScope(commandArguments); initializationRequested {
		createdPath, initializationError := application.initializeDefaultConfigurationFile(initializationScope, containsForceFlag(commandArguments))
		if initializationError != nil {
			return initializationError
		}
		fmt.Fprintf(os.Stdout, configurationCreatedTemplateConstant, createdPath)
		application.exitFunction(0)
		return nil
	}

	application.rootCommand.SetArgs(commandArguments)

	executionError := application.rootCommand.Execute()
	if syncError := application.flushLogger(); syncError != nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Execute builds a fresh application instance and executes the root command hierarchy.
func Execute() error {
	return NewApplication().Execute()
}

func configurationSearchPaths() []string {
	searchPaths := []string{defaultConfigurationSearchPathConstant}
	homeDirectory, homeDirectoryError := os.UserHomeDir()
	if homeDirectoryError == nil && len(strings.TrimSpace(homeDirectory)) > 0 {
		searchPaths = append(searchPaths, filepath.Join(homeDirectory, userConfigurationDirectoryNameConstant))
	}
	return searchPaths
}

func containsVersionFlag(arguments []string) bool {
	for _, argument := range arguments {
		if argument == argumentTerminatorConstant {
			return false
		}
		if argument == versionFlagArgumentConstant {
			return true
		}
	}
	return false
}

func extractInitializationScope(arguments []string) (string, bool) {
	for _, argument := range arguments {
		if argument == argumentTerminatorConstant {
			return "", false
		}
		if argument == initializationFlagArgumentConstant {
			return localInitializationScopeConstant, true
		}
		if strings.HasPrefix(argument, initializationAssignmentPrefixConstant) {
			return strings.TrimPrefix(argument, initializationAssignmentPrefixConstant), true
		}
	}
	return "", false
}

func containsForceFlag(arguments []string) bool {
	for _, argument := range arguments {
		if argument == argumentTerminatorConstant {
			return false
		}
		if argument == forceFlagArgumentConstant {
			return true
		}
	}
	return false
}

// initializeDefaultConfigurationFile writes the embedded default configuration
// to the requested scope, refusing to overwrite an existing file unless forced.
func (application *Application) initializeDefaultConfigurationFile(scope string, forceOverwrite bool) (string, error) {
	targetPath, targetPathError := resolveInitializationTargetPath(scope)
	if targetPathError != nil {
		return "", targetPathError
	}

	if _, statError := os.Stat(targetPath); statError == nil && !forceOverwrite {
		return "", fmt.Errorf(configurationExistsTemplateConstant, targetPath)
	}

	if directoryError := os.MkdirAll(filepath.Dir(targetPath), configurationDirectoryPermissions); directoryError != nil {
		return "", directoryError
	}

	embeddedConfiguration, _ := EmbeddedDefaultConfiguration()
	if writeError := os.WriteFile(targetPath, embeddedConfiguration, configurationFilePermissions); writeError != nil {
		return "", writeError
	}

	return targetPath, nil
}

func resolveInitializationTargetPath(scope string) (string, error) {
	configurationFileName := configurationNameConstant + configurationFileExtensionConstant

	switch strings.ToLower(strings.TrimSpace(scope)) {
	case localInitializationScopeConstant:
		return configurationFileName, nil
	case userInitializationScopeConstant:
		homeDirectory, homeDirectoryError := os.UserHomeDir()
		if homeDirectoryError != nil {
			return "", fmt.Errorf(homeDirectoryErrorTemplateConstant, homeDirectoryError)
		}
		return filepath.Join(homeDirectory, userConfigurationDirectoryNameConstant, configurationFileName), nil
	default:
		return "", fmt.Errorf(unknownScopeTemplateConstant, scope)
	}
}

func (application *Application) resolveVersion() string {
	if application.versionResolver == nil {
		return defaultApplicationVersionConstant
	}
	versionText := strings.TrimSpace(application.versionResolver(context.Background()))
	if len(versionText) == 0 {
		return defaultApplicationVersionConstant
	}
	return versionText
}

func resolveBuildVersion(_ context.Context) string {
	buildInfo, buildInfoAvailable := debug.ReadBuildInfo()
	if buildInfoAvailable && len(strings.TrimSpace(buildInfo.Main.Version)) > 0 {
		return buildInfo.Main.Version
	}
	return defaultApplicationVersionConstant
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:  string(utils.LogLevelInfo),
		commonLogFormatConfigKeyConstant: string(utils.LogFormatStructured),
	}
	for configurationKey, configurationValue := range runcmd.DefaultConfigurationValues(runConfigurationKeyConstant) {
		defaultValues[configurationKey] = configurationValue
	}

	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, defaultValues, &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	application.configurationMetadata = loadedConfiguration

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}

	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}

	loggerOutputs, loggerCreationError := application.loggerFactory.CreateLoggerOutputs(
		utils.LogLevel(application.configuration.Common.LogLevel),
		utils.LogFormat(application.configuration.Common.LogFormat),
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = loggerOutputs.DiagnosticLogger
	application.consoleLogger = loggerOutputs.ConsoleLogger

	application.logger.Info(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
	)

	if command != nil {
		updatedContext := application.commandContextAccessor.WithConfigurationFilePath(
			command.Context(),
			application.configurationMetadata.ConfigFileUsed,
		)
		command.SetContext(updatedContext)
		if rootCommand := command.Root(); rootCommand != nil {
			rootCommand.SetContext(updatedContext)
		}
	}

	return nil
}

func (application *Application) humanReadableLoggingEnabled() bool {
	logFormatValue := strings.TrimSpace(application.configuration.Common.LogFormat)
	return strings.EqualFold(logFormatValue, string(utils.LogFormatConsole))
}

func (application *Application) runRootCommand(command *cobra.Command, arguments []string) error {
	if application.logger == nil {
		return errors.New(loggerNotInitializedMessageConstant)
	}

	application.logger.Info(
		rootCommandInfoMessageConstant,
		zap.String(logFieldCommandNameConstant, command.Name()),
		zap.Int(logFieldArgumentCountConstant, len(arguments)),
	)

	application.logger.Debug(
		rootCommandDebugMessageConstant,
		zap.Strings(logFieldArgumentsConstant, arguments),
	)

	if len(arguments) == 0 {
		return command.Help()
	}

	return nil
}

func (application *Application) flushLogger() error {
	if syncError := application.syncLoggerInstance(application.logger); syncError != nil {
		return syncError
	}
	if syncError := application.syncLoggerInstance(application.consoleLogger); syncError != nil {
		return syncError
	}
	return nil
}

func (application *Application) syncLoggerInstance(logger *zap.Logger) error {
	if logger == nil {
		return nil
	}

	syncError := logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	default:
		return syncError
	}
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}

	rootCommand := command.Root()
	if rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet == nil {
			continue
		}

		if flagSet.Changed(flagName) {
			return true
		}
	}

	return false
}
