package templates_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/templatesync/internal/templates"
)

func TestDefaultCategoryTableMatches(testInstance *testing.T) {
	table, tableError := templates.DefaultCategoryTable()
	require.NoError(testInstance, tableError)
	require.Equal(testInstance, templates.DefaultFallbackCategory, table.Fallback)

	testCases := []struct {
		fileName           string
		expectedCategories []string
	}{
		{fileName: "wp-login-bruteforce.yaml", expectedCategories: []string{"wordpress", "auth"}},
		{fileName: "CVE-2024-1234-XSS.yaml", expectedCategories: []string{"cve", "xss"}},
		{fileName: "generic-admin-panel.yaml", expectedCategories: []string{"panel"}},
		{fileName: "foo.yaml", expectedCategories: []string{"other"}},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.fileName, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedCategories, table.Match(testCase.fileName))
		})
	}
}

func TestLoadCategoryTable(testInstance *testing.T) {
	testCases := []struct {
		name          string
		document      string
		expectedTable templates.CategoryTable
		expectError   bool
	}{
		{
			name:     "normalizes_keywords_and_defaults_fallback",
			document: "categories:\n  - name: auth\n    keywords: [' Login ', '']\n",
			expectedTable: templates.CategoryTable{
				Fallback:   "other",
				Categories: []templates.Category{{Name: "auth", Keywords: []string{"login"}}},
			},
		},
		{
			name:     "custom_fallback",
			document: "fallback: misc\ncategories:\n  - name: xss\n    keywords: [xss]\n",
			expectedTable: templates.CategoryTable{
				Fallback:   "misc",
				Categories: []templates.Category{{Name: "xss", Keywords: []string{"xss"}}},
			},
		},
		{name: "unknown_field", document: "categories: []\ncolour: red\n", expectError: true},
		{name: "empty_table", document: "fallback: other\n", expectError: true},
		{name: "duplicate_name", document: "categories:\n  - {name: a, keywords: [x]}\n  - {name: a, keywords: [y]}\n", expectError: true},
		{name: "missing_keywords", document: "categories:\n  - {name: a, keywords: []}\n", expectError: true},
		{name: "fallback_collision", document: "categories:\n  - {name: other, keywords: [x]}\n", expectError: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			table, loadError := templates.LoadCategoryTable(strings.NewReader(testCase.document))
			if testCase.expectError {
				require.Error(testInstance, loadError)
				return
			}
			require.NoError(testInstance, loadError)
			require.Equal(testInstance, testCase.expectedTable, table)
		})
	}
}

func TestCategoryMatchIsMonotonic(testInstance *testing.T) {
	table := templates.CategoryTable{
		Fallback: "other",
		Categories: []templates.Category{
			{Name: "alpha", Keywords: []string{"a1"}},
			{Name: "beta", Keywords: []string{"b1", "b2"}},
			{Name: "gamma", Keywords: []string{"g1"}},
		},
	}

	require.Equal(testInstance, []string{"other"}, table.Match("none.yaml"))
	require.Equal(testInstance, []string{"beta"}, table.Match("b1-b2.yaml"))
	require.Equal(testInstance, []string{"alpha", "beta", "gamma"}, table.Match("G1-B2-A1.yaml"))
}
