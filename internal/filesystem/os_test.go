package filesystem_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/templatesync/internal/filesystem"
	"github.com/temirov/templatesync/internal/shared"
)

var _ shared.FileSystem = filesystem.OSFileSystem{}

func TestOSFileSystemRoundTrip(testInstance *testing.T) {
	fileSystem := filesystem.OSFileSystem{}
	workingDirectory := testInstance.TempDir()
	nestedDirectory := filepath.Join(workingDirectory, "nested", "category")

	require.NoError(testInstance, fileSystem.MkdirAll(nestedDirectory, 0o755))

	targetPath := filepath.Join(nestedDirectory, "template.yaml")
	writer, createError := fileSystem.Create(targetPath)
	require.NoError(testInstance, createError)
	_, writeError := io.WriteString(writer, "id: test\n")
	require.NoError(testInstance, writeError)
	require.NoError(testInstance, writer.Close())

	for iteration := 0; iteration < 2; iteration++ {
		appender, appendError := fileSystem.OpenAppend(filepath.Join(workingDirectory, "log.tsv"))
		require.NoError(testInstance, appendError)
		_, writeError = io.WriteString(appender, "line\n")
		require.NoError(testInstance, writeError)
		require.NoError(testInstance, appender.Close())
	}
	logContents, readError := os.ReadFile(filepath.Join(workingDirectory, "log.tsv"))
	require.NoError(testInstance, readError)
	require.Equal(testInstance, "line\nline\n", string(logContents))

	renamedPath := filepath.Join(nestedDirectory, "_dup__template.yaml")
	require.NoError(testInstance, fileSystem.Rename(targetPath, renamedPath))

	reader, openError := fileSystem.Open(renamedPath)
	require.NoError(testInstance, openError)
	contents, readAllError := io.ReadAll(reader)
	require.NoError(testInstance, readAllError)
	require.NoError(testInstance, reader.Close())
	require.Equal(testInstance, "id: test\n", string(contents))

	info, statError := fileSystem.Stat(renamedPath)
	require.NoError(testInstance, statError)
	require.Equal(testInstance, int64(len(contents)), info.Size())

	require.NoError(testInstance, fileSystem.Remove(renamedPath))
	_, statError = fileSystem.Stat(renamedPath)
	require.ErrorIs(testInstance, statError, os.ErrNotExist)
}
