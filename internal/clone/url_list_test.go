package clone_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/templatesync/internal/clone"
)

func TestReadRepositoryURLs(testInstance *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "trims_and_deduplicates",
			input:    "https://github.com/b/two\n  https://github.com/a/one  \n\nhttps://github.com/b/two\n\t\n",
			expected: []string{"https://github.com/a/one", "https://github.com/b/two"},
		},
		{
			name:     "windows_line_endings",
			input:    "https://github.com/a/one\r\nhttps://github.com/a/one\r\n",
			expected: []string{"https://github.com/a/one"},
		},
		{
			name:     "blank_input",
			input:    "\n \n",
			expected: nil,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			repositoryURLs, readError := clone.ReadRepositoryURLs(strings.NewReader(testCase.input))
			require.NoError(testInstance, readError)
			require.Equal(testInstance, testCase.expected, repositoryURLs)
		})
	}
}
