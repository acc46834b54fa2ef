package testsupport

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	fixtureDirectoryPermissionsConstant = fs.FileMode(0o755)
	fixtureFilePermissionsConstant      = fs.FileMode(0o644)
	urlListFileNameConstant             = "README.txt"
	urlListLineSeparatorConstant        = "\n"
)

// SampleRepositoryURLs lists well-formed repository URLs for clone tests.
func SampleRepositoryURLs() []string {
	return []string{
		"https://github.com/user/repo1.git",
		"https://github.com/user/repo2.git",
		"https://github.com/user/repo3.git",
	}
}

// TemplateFile describes one file materialized by CreateTemplateTree.
type TemplateFile struct {
	RelativePath string
	Contents     string
}

// WriteURLList writes the provided lines verbatim to README.txt inside directory and returns its path.
func WriteURLList(testInstance testing.TB, directory string, lines ...string) string {
	testInstance.Helper()
	listPath := filepath.Join(directory, urlListFileNameConstant)
	contents := strings.Join(lines, urlListLineSeparatorConstant) + urlListLineSeparatorConstant
	if writeError := os.WriteFile(listPath, []byte(contents), fixtureFilePermissionsConstant); writeError != nil {
		testInstance.Fatalf("write url list: %v", writeError)
	}
	return listPath
}

// CreateTemplateTree writes every file below root, creating parent directories.
func CreateTemplateTree(testInstance testing.TB, root string, files ...TemplateFile) {
	testInstance.Helper()
	if mkdirError := os.MkdirAll(root, fixtureDirectoryPermissionsConstant); mkdirError != nil {
		testInstance.Fatalf("create root %s: %v", root, mkdirError)
	}
	for _, file := range files {
		filePath := filepath.Join(root, filepath.FromSlash(file.RelativePath))
		if mkdirError := os.MkdirAll(filepath.Dir(filePath), fixtureDirectoryPermissionsConstant); mkdirError != nil {
			testInstance.Fatalf("create directory for %s: %v", file.RelativePath, mkdirError)
		}
		if writeError := os.WriteFile(filePath, []byte(file.Contents), fixtureFilePermissionsConstant); writeError != nil {
			testInstance.Fatalf("write %s: %v", file.RelativePath, writeError)
		}
	}
}

// ReadTree returns every regular file below root keyed by slash-separated relative path.
// A missing root yields an empty map.
func ReadTree(testInstance testing.TB, root string) map[string]string {
	testInstance.Helper()
	contents := make(map[string]string)
	walkError := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkError error) error {
		if walkError != nil {
			if path == root && os.IsNotExist(walkError) {
				return fs.SkipAll
			}
			return walkError
		}
		if entry.IsDir() {
			return nil
		}
		data, readError := os.ReadFile(path)
		if readError != nil {
			return readError
		}
		relativePath, relativeError := filepath.Rel(root, path)
		if relativeError != nil {
			return relativeError
		}
		contents[filepath.ToSlash(relativePath)] = string(data)
		return nil
	})
	if walkError != nil {
		testInstance.Fatalf("read tree %s: %v", root, walkError)
	}
	return contents
}

// SetEnvironment applies environment overrides for the duration of the test.
func SetEnvironment(testInstance *testing.T, values map[string]string) {
	testInstance.Helper()
	for key, value := range values {
		testInstance.Setenv(key, value)
	}
}
