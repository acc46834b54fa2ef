package templates_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/templatesync/internal/templates"
	"github.com/temirov/templatesync/internal/testsupport"
)

func TestBuildInventory(testInstance *testing.T) {
	root := filepath.Join(testInstance.TempDir(), "community-templates")
	testsupport.CreateTemplateTree(testInstance, root,
		testsupport.TemplateFile{RelativePath: "acme__one/http/foo.yaml", Contents: "a"},
		testsupport.TemplateFile{RelativePath: "acme__one/.git/config", Contents: "ignored"},
		testsupport.TemplateFile{RelativePath: "acme__one/README.md", Contents: "docs"},
		testsupport.TemplateFile{RelativePath: "zeta__two/foo.yaml", Contents: "b"},
		testsupport.TemplateFile{RelativePath: "acme-two/foo.yaml", Contents: "c"},
		testsupport.TemplateFile{RelativePath: "nuclei-templates/bar.yaml", Contents: "nested reference"},
		testsupport.TemplateFile{RelativePath: "acme__one/dns/BAZ.YML", Contents: "d"},
	)

	testCases := []struct {
		name               string
		options            templates.InventoryOptions
		expectedFiles      map[string]string
		expectedCollisions []templates.Collision
	}{
		{
			name: "all_files_with_tie_break",
			options: templates.InventoryOptions{
				ExcludeDirectories: []string{filepath.Join(root, "nuclei-templates")},
			},
			expectedFiles: map[string]string{
				"foo.yaml":  filepath.Join(root, "acme-two/foo.yaml"),
				"README.md": filepath.Join(root, "acme__one/README.md"),
				"BAZ.YML":   filepath.Join(root, "acme__one/dns/BAZ.YML"),
			},
			expectedCollisions: []templates.Collision{
				{FileName: "foo.yaml", KeptPath: filepath.Join(root, "acme-two/foo.yaml"), ShadowedPath: filepath.Join(root, "acme__one/http/foo.yaml")},
				{FileName: "foo.yaml", KeptPath: filepath.Join(root, "acme-two/foo.yaml"), ShadowedPath: filepath.Join(root, "zeta__two/foo.yaml")},
			},
		},
		{
			name: "extension_filter_includes_nested_reference_when_not_excluded",
			options: templates.InventoryOptions{
				Extensions: []string{"yml", ".YAML"},
			},
			expectedFiles: map[string]string{
				"foo.yaml": filepath.Join(root, "acme-two/foo.yaml"),
				"bar.yaml": filepath.Join(root, "nuclei-templates/bar.yaml"),
				"BAZ.YML":  filepath.Join(root, "acme__one/dns/BAZ.YML"),
			},
			expectedCollisions: []templates.Collision{
				{FileName: "foo.yaml", KeptPath: filepath.Join(root, "acme-two/foo.yaml"), ShadowedPath: filepath.Join(root, "acme__one/http/foo.yaml")},
				{FileName: "foo.yaml", KeptPath: filepath.Join(root, "acme-two/foo.yaml"), ShadowedPath: filepath.Join(root, "zeta__two/foo.yaml")},
			},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			inventory, inventoryError := templates.BuildInventory(root, testCase.options)
			require.NoError(testInstance, inventoryError)
			require.Equal(testInstance, testCase.expectedFiles, inventory.Files)
			require.Equal(testInstance, testCase.expectedCollisions, inventory.Collisions)
			require.Empty(testInstance, inventory.WalkFailures)
		})
	}
}

func TestBuildInventoryMissingRootFails(testInstance *testing.T) {
	_, inventoryError := templates.BuildInventory(filepath.Join(testInstance.TempDir(), "absent"), templates.InventoryOptions{})
	require.ErrorIs(testInstance, inventoryError, os.ErrNotExist)
}

func TestCommonAndExclusive(testInstance *testing.T) {
	community := templates.Inventory{Files: map[string]string{"foo.yaml": "c/foo.yaml", "only-community.yaml": "c/only-community.yaml"}}
	reference := templates.Inventory{Files: map[string]string{"foo.yaml": "r/foo.yaml", "bar.yaml": "r/bar.yaml", "baz.yaml": "r/baz.yaml"}}

	require.Equal(testInstance, []string{"foo.yaml"}, templates.Common(community, reference))
	require.Equal(testInstance, []string{"bar.yaml", "baz.yaml"}, templates.Exclusive(reference, community))
	require.Equal(testInstance, []string{"only-community.yaml"}, templates.Exclusive(community, reference))
	require.Equal(testInstance, 2, community.Len())
}
