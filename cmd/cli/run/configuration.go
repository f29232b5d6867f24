package run

import "strings"

const (
	configurationWarnNonZeroKeyConstant = "warn_nonzero"
	configurationCatalogPathKeyConstant = "catalog_path"
	configurationKeySeparatorConstant   = "."
	defaultCatalogPathConstant          = "~/.pipeshell/pipelines.yaml"
)

// CommandConfiguration captures configuration values for run.
type CommandConfiguration struct {
	WarnNonZero bool   `mapstructure:"warn_nonzero"`
	CatalogPath string `mapstructure:"catalog_path"`
}

// DefaultCommandConfiguration provides default run command settings.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		WarnNonZero: true,
		CatalogPath: defaultCatalogPathConstant,
	}
}

// DefaultConfigurationValues produces Viper defaults for the run command.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + configurationKeySeparatorConstant + configurationWarnNonZeroKeyConstant: defaults.WarnNonZero,
		rootKey + configurationKeySeparatorConstant + configurationCatalogPathKeyConstant: defaults.CatalogPath,
	}
}

// Sanitize normalizes configuration values.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.CatalogPath = strings.TrimSpace(configuration.CatalogPath)
	if len(sanitized.CatalogPath) == 0 {
		sanitized.CatalogPath = defaultCatalogPathConstant
	}
	return sanitized
}
