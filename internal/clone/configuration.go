package clone

import "strings"

const (
	defaultURLListPathConstant      = "README.txt"
	defaultCloneRootConstant        = "community-templates"
	configurationURLListKeyConstant = "url_list"
	configurationRootKeyConstant    = "clone_root"
	configurationWorkersKeyConstant = "workers"
	configurationNamingKeyConstant  = "naming"
)

// CommandConfiguration captures persistent settings for the clone command.
type CommandConfiguration struct {
	URLList   string `mapstructure:"url_list"`
	CloneRoot string `mapstructure:"clone_root"`
	Workers   int    `mapstructure:"workers"`
	Naming    string `mapstructure:"naming"`
}

// DefaultCommandConfiguration returns baseline configuration values for the clone command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		URLList:   defaultURLListPathConstant,
		CloneRoot: defaultCloneRootConstant,
		Workers:   DefaultWorkerCount,
		Naming:    string(NamingSchemeOwnerRepository),
	}
}

// DefaultConfigurationValues produces Viper defaults for the clone command under rootKey.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + "." + configurationURLListKeyConstant: defaults.URLList,
		rootKey + "." + configurationRootKeyConstant:    defaults.CloneRoot,
		rootKey + "." + configurationWorkersKeyConstant: defaults.Workers,
		rootKey + "." + configurationNamingKeyConstant:  defaults.Naming,
	}
}

// sanitize trims whitespace and restores defaults for blank or out-of-range values.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	defaults := DefaultCommandConfiguration()
	sanitized := configuration

	sanitized.URLList = strings.TrimSpace(configuration.URLList)
	if len(sanitized.URLList) == 0 {
		sanitized.URLList = defaults.URLList
	}

	sanitized.CloneRoot = strings.TrimSpace(configuration.CloneRoot)
	if len(sanitized.CloneRoot) == 0 {
		sanitized.CloneRoot = defaults.CloneRoot
	}

	if sanitized.Workers < 1 {
		sanitized.Workers = defaults.Workers
	}

	sanitized.Naming = strings.TrimSpace(configuration.Naming)
	if len(sanitized.Naming) == 0 {
		sanitized.Naming = defaults.Naming
	}

	return sanitized
}
