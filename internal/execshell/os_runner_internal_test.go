package execshell

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMergeEnvironment(testInstance *testing.T) {
	testCases := []struct {
		name     string
		base     []string
		override map[string]string
		expected []string
	}{
		{
			name:     "no_overrides_inherits",
			base:     []string{"PATH=/bin"},
			expected: nil,
		},
		{
			name:     "overrides_sorted_after_base",
			base:     []string{"PATH=/bin", "GIT_TERMINAL_PROMPT=1"},
			override: map[string]string{"GIT_TERMINAL_PROMPT": "0", "GIT_ASKPASS": ""},
			expected: []string{"PATH=/bin", "GIT_TERMINAL_PROMPT=1", "GIT_ASKPASS=", "GIT_TERMINAL_PROMPT=0"},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			base := append([]string{}, testCase.base...)
			require.Equal(testInstance, testCase.expected, mergeEnvironment(base, testCase.override))
			require.Equal(testInstance, testCase.base, base)
		})
	}
}
