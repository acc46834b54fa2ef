package templates

import "strings"

const (
	defaultCommunityRootConstant           = "community-templates"
	defaultReferenceRootConstant           = "nuclei-templates"
	defaultOutputRootConstant              = "categorized_templates"
	defaultDuplicateLogConstant            = "duplicate_files.log"
	configurationCommunityRootKeyConstant  = "community_root"
	configurationReferenceRootKeyConstant  = "reference_root"
	configurationModeKeyConstant           = "mode"
	configurationOutputRootKeyConstant     = "output_root"
	configurationDuplicateLogKeyConstant   = "duplicate_log"
	configurationExtensionsKeyConstant     = "extensions"
	configurationExcludeKeyConstant        = "exclude_directories"
	configurationCategoriesFileKeyConstant = "categories_file"
	configurationDryRunKeyConstant         = "dry_run"
)

// CommandConfiguration captures persistent settings for the dedupe command.
type CommandConfiguration struct {
	CommunityRoot      string   `mapstructure:"community_root"`
	ReferenceRoot      string   `mapstructure:"reference_root"`
	Mode               string   `mapstructure:"mode"`
	OutputRoot         string   `mapstructure:"output_root"`
	DuplicateLog       string   `mapstructure:"duplicate_log"`
	Extensions         []string `mapstructure:"extensions"`
	ExcludeDirectories []string `mapstructure:"exclude_directories"`
	CategoriesFile     string   `mapstructure:"categories_file"`
	DryRun             bool     `mapstructure:"dry_run"`
}

// DefaultCommandConfiguration returns baseline configuration values for the dedupe command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		CommunityRoot:      defaultCommunityRootConstant,
		ReferenceRoot:      defaultReferenceRootConstant,
		Mode:               string(ModeRename),
		OutputRoot:         defaultOutputRootConstant,
		DuplicateLog:       defaultDuplicateLogConstant,
		Extensions:         []string{},
		ExcludeDirectories: []string{},
		CategoriesFile:     "",
		DryRun:             false,
	}
}

// DefaultConfigurationValues produces Viper defaults for the dedupe command under rootKey.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + "." + configurationCommunityRootKeyConstant:  defaults.CommunityRoot,
		rootKey + "." + configurationReferenceRootKeyConstant:  defaults.ReferenceRoot,
		rootKey + "." + configurationModeKeyConstant:           defaults.Mode,
		rootKey + "." + configurationOutputRootKeyConstant:     defaults.OutputRoot,
		rootKey + "." + configurationDuplicateLogKeyConstant:   defaults.DuplicateLog,
		rootKey + "." + configurationExtensionsKeyConstant:     defaults.Extensions,
		rootKey + "." + configurationExcludeKeyConstant:        defaults.ExcludeDirectories,
		rootKey + "." + configurationCategoriesFileKeyConstant: defaults.CategoriesFile,
		rootKey + "." + configurationDryRunKeyConstant:         defaults.DryRun,
	}
}

// sanitize trims whitespace and restores defaults for blank paths.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	defaults := DefaultCommandConfiguration()
	sanitized := configuration

	sanitized.CommunityRoot = trimOrDefault(configuration.CommunityRoot, defaults.CommunityRoot)
	sanitized.ReferenceRoot = trimOrDefault(configuration.ReferenceRoot, defaults.ReferenceRoot)
	sanitized.Mode = trimOrDefault(configuration.Mode, defaults.Mode)
	sanitized.OutputRoot = trimOrDefault(configuration.OutputRoot, defaults.OutputRoot)
	sanitized.DuplicateLog = trimOrDefault(configuration.DuplicateLog, defaults.DuplicateLog)
	sanitized.CategoriesFile = strings.TrimSpace(configuration.CategoriesFile)
	sanitized.Extensions = sanitizeList(configuration.Extensions)
	sanitized.ExcludeDirectories = sanitizeList(configuration.ExcludeDirectories)

	return sanitized
}

func trimOrDefault(value string, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return fallback
	}
	return trimmed
}

func sanitizeList(raw []string) []string {
	sanitized := make([]string, 0, len(raw))
	for _, candidate := range raw {
		trimmed := strings.TrimSpace(candidate)
		if len(trimmed) == 0 {
			continue
		}
		sanitized = append(sanitized, trimmed)
	}
	return sanitized
}
