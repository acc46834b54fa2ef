package cli

import _ "embed"

//go:embed default_config.yaml
var embeddedDefaultConfigurationContent []byte

// EmbeddedDefaultConfiguration returns a copy of the embedded defaults together with their format.
func EmbeddedDefaultConfiguration() ([]byte, string) {
	configurationContent := make([]byte, len(embeddedDefaultConfigurationContent))
	copy(configurationContent, embeddedDefaultConfigurationContent)
	return configurationContent, configurationTypeConstant
}
