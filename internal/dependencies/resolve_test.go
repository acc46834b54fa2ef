package dependencies_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/templatesync/internal/dependencies"
	"github.com/temirov/templatesync/internal/execshell"
	"github.com/temirov/templatesync/internal/filesystem"
)

type stubGitExecutor struct{}

func (stubGitExecutor) ExecuteGit(context.Context, execshell.CommandDetails) (execshell.ExecutionResult, error) {
	return execshell.ExecutionResult{}, nil
}

func TestResolveFileSystemDefaultsToOperatingSystem(testInstance *testing.T) {
	require.Equal(testInstance, filesystem.OSFileSystem{}, dependencies.ResolveFileSystem(nil))
}

func TestResolveGitExecutor(testInstance *testing.T) {
	testCases := []struct {
		name                 string
		existing             stubGitExecutor
		useExisting          bool
		humanReadableLogging bool
	}{
		{name: "existing_executor_preserved", useExisting: true},
		{name: "structured_default"},
		{name: "console_default", humanReadableLogging: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			if testCase.useExisting {
				resolved, resolveError := dependencies.ResolveGitExecutor(testCase.existing, zap.NewNop(), testCase.humanReadableLogging)
				require.NoError(testInstance, resolveError)
				require.Equal(testInstance, testCase.existing, resolved)
				return
			}

			resolved, resolveError := dependencies.ResolveGitExecutor(nil, zap.NewNop(), testCase.humanReadableLogging)
			require.NoError(testInstance, resolveError)
			require.IsType(testInstance, &execshell.ShellExecutor{}, resolved)
		})
	}

	testInstance.Run("missing_logger_rejected", func(testInstance *testing.T) {
		_, resolveError := dependencies.ResolveGitExecutor(nil, nil, false)
		require.ErrorIs(testInstance, resolveError, execshell.ErrLoggerNotConfigured)
	})
}
