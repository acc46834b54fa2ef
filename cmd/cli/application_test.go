package cli_test

import (
	"bytes"
	"testing"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/temirov/templatesync/cmd/cli"
	"github.com/temirov/templatesync/internal/clone"
	"github.com/temirov/templatesync/internal/templates"
)

func TestEmbeddedDefaultsMatchCommandDefaults(testInstance *testing.T) {
	configurationContent, configurationType := cli.EmbeddedDefaultConfiguration()
	require.Equal(testInstance, "yaml", configurationType)

	viperInstance := viper.New()
	viperInstance.SetConfigType(configurationType)
	require.NoError(testInstance, viperInstance.ReadConfig(bytes.NewReader(configurationContent)))

	testCases := []struct {
		name     string
		key      string
		target   func() any
		expected any
	}{
		{
			name:     "clone",
			key:      "tools.clone",
			target:   func() any { return &clone.CommandConfiguration{} },
			expected: func() any { defaults := clone.DefaultCommandConfiguration(); return &defaults }(),
		},
		{
			name:     "dedupe",
			key:      "tools.dedupe",
			target:   func() any { return &templates.CommandConfiguration{} },
			expected: func() any { defaults := templates.DefaultCommandConfiguration(); return &defaults }(),
		},
		{
			name:     "common",
			key:      "common",
			target:   func() any { return &cli.ApplicationCommonConfiguration{} },
			expected: &cli.ApplicationCommonConfiguration{LogLevel: "info", LogFormat: "structured"},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			decoded := testCase.target()
			decoder, decoderError := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
				Result:      decoded,
				ErrorUnused: true,
			})
			require.NoError(testInstance, decoderError)
			require.NoError(testInstance, decoder.Decode(viperInstance.Get(testCase.key)))
			require.Equal(testInstance, testCase.expected, decoded)
		})
	}
}

func TestEmbeddedDefaultConfigurationReturnsCopy(testInstance *testing.T) {
	firstContent, _ := cli.EmbeddedDefaultConfiguration()
	firstContent[0] = '#'

	secondContent, _ := cli.EmbeddedDefaultConfiguration()
	require.NotEqual(testInstance, firstContent[0], secondContent[0])
}

func TestNewApplicationBuilds(testInstance *testing.T) {
	application, applicationError := cli.NewApplication()
	require.NoError(testInstance, applicationError)
	require.NotNil(testInstance, application)
}
