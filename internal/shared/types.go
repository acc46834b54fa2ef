package shared

import (
	"context"
	"io"
	"io/fs"

	"github.com/temirov/templatesync/internal/execshell"
)

// FileSystem exposes the filesystem operations required by the clone and dedupe services.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	Remove(path string) error
	Rename(oldPath string, newPath string) error
	MkdirAll(path string, permissions fs.FileMode) error
	Open(path string) (io.ReadCloser, error)
	Create(path string) (io.WriteCloser, error)
	OpenAppend(path string) (io.WriteCloser, error)
}

// GitExecutor exposes the subset of shell execution used by the clone service.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}
