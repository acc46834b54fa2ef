package templates

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

const gitMetadataDirectoryNameConstant = ".git"

// InventoryOptions narrows a tree walk.
type InventoryOptions struct {
	// Extensions restricts the walk to files with these extensions (case-insensitive, leading dot optional). Empty means all files.
	Extensions []string
	// ExcludeDirectories lists directories skipped entirely, compared by absolute path.
	ExcludeDirectories []string
}

// Collision records a file shadowed by another file with the same base name in one tree.
type Collision struct {
	FileName     string
	KeptPath     string
	ShadowedPath string
}

// WalkFailure records an entry below the root that could not be read.
type WalkFailure struct {
	Path  string
	Cause error
}

// Inventory maps base file names to one full path within a tree.
type Inventory struct {
	Root         string
	Files        map[string]string
	Collisions   []Collision
	WalkFailures []WalkFailure
}

// BuildInventory walks root recursively, skipping .git and excluded directories.
// When two files share a base name the lexicographically smallest full path wins and the other is recorded as a collision.
// A failure on root itself is returned; failures below it are recorded and skipped.
func BuildInventory(root string, options InventoryOptions) (Inventory, error) {
	inventory := Inventory{Root: root, Files: make(map[string]string)}
	allowedExtensions := normalizeExtensions(options.Extensions)
	excludedDirectories := absolutePathSet(options.ExcludeDirectories)

	walkError := filepath.WalkDir(root, func(path string, directoryEntry fs.DirEntry, walkError error) error {
		if walkError != nil {
			if path == root {
				return walkError
			}
			inventory.WalkFailures = append(inventory.WalkFailures, WalkFailure{Path: path, Cause: walkError})
			if directoryEntry != nil && directoryEntry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if directoryEntry.IsDir() {
			if path != root && directoryEntry.Name() == gitMetadataDirectoryNameConstant {
				return fs.SkipDir
			}
			if path != root && isExcludedDirectory(path, excludedDirectories) {
				return fs.SkipDir
			}
			return nil
		}

		if len(allowedExtensions) > 0 {
			if _, allowed := allowedExtensions[strings.ToLower(filepath.Ext(path))]; !allowed {
				return nil
			}
		}

		inventory.add(directoryEntry.Name(), path)
		return nil
	})
	if walkError != nil {
		return Inventory{}, walkError
	}

	sort.Slice(inventory.Collisions, func(leftIndex int, rightIndex int) bool {
		return inventory.Collisions[leftIndex].ShadowedPath < inventory.Collisions[rightIndex].ShadowedPath
	})
	return inventory, nil
}

func (inventory *Inventory) add(fileName string, path string) {
	existingPath, exists := inventory.Files[fileName]
	if !exists {
		inventory.Files[fileName] = path
		return
	}

	keptPath, shadowedPath := existingPath, path
	if path < existingPath {
		keptPath, shadowedPath = path, existingPath
	}
	inventory.Files[fileName] = keptPath
	inventory.Collisions = append(inventory.Collisions, Collision{FileName: fileName, KeptPath: keptPath, ShadowedPath: shadowedPath})
}

// Len reports the number of distinct file names.
func (inventory Inventory) Len() int {
	return len(inventory.Files)
}

// Names returns the file names in sorted order.
func (inventory Inventory) Names() []string {
	names := make([]string, 0, len(inventory.Files))
	for name := range inventory.Files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Common returns the sorted names present in both inventories.
func Common(left Inventory, right Inventory) []string {
	var names []string
	for _, name := range left.Names() {
		if _, present := right.Files[name]; present {
			names = append(names, name)
		}
	}
	return names
}

// Exclusive returns the sorted names present in left but not in right.
func Exclusive(left Inventory, right Inventory) []string {
	var names []string
	for _, name := range left.Names() {
		if _, present := right.Files[name]; !present {
			names = append(names, name)
		}
	}
	return names
}

func normalizeExtensions(rawExtensions []string) map[string]struct{} {
	normalized := make(map[string]struct{}, len(rawExtensions))
	for _, rawExtension := range rawExtensions {
		extension := strings.ToLower(strings.TrimSpace(rawExtension))
		if len(extension) == 0 {
			continue
		}
		if !strings.HasPrefix(extension, ".") {
			extension = "." + extension
		}
		normalized[extension] = struct{}{}
	}
	return normalized
}

func absolutePathSet(paths []string) map[string]struct{} {
	absolutePaths := make(map[string]struct{}, len(paths))
	for _, candidate := range paths {
		trimmed := strings.TrimSpace(candidate)
		if len(trimmed) == 0 {
			continue
		}
		absolutePath, absError := filepath.Abs(trimmed)
		if absError != nil {
			continue
		}
		absolutePaths[absolutePath] = struct{}{}
	}
	return absolutePaths
}

func isExcludedDirectory(path string, excludedDirectories map[string]struct{}) bool {
	if len(excludedDirectories) == 0 {
		return false
	}
	absolutePath, absError := filepath.Abs(path)
	if absError != nil {
		return false
	}
	_, excluded := excludedDirectories[absolutePath]
	return excluded
}
