package testsupport

import (
	"context"
	"os"
	"sync"

	"github.com/temirov/templatesync/internal/execshell"
)

const (
	gitCloneArgumentConstant         = "clone"
	gitDirectoryFlagArgumentConstant = "-C"
	stubFailureExitCodeConstant      = 128
	stubCloneFailureMessageConstant  = "fatal: could not read Username: terminal prompts disabled"
	stubPullFailureMessageConstant   = "fatal: not a git repository"
	stubDirectoryPermissionsConstant = 0o755
)

// GitExecutorStub records git invocations and simulates clone and pull outcomes. It is safe for concurrent use.
type GitExecutorStub struct {
	// FailingURLs makes "git clone <url>" exit non-zero.
	FailingURLs map[string]bool
	// FailingDirectories makes "git -C <dir> pull" exit non-zero.
	FailingDirectories map[string]bool
	// CreateDirectories materializes the clone destination on success, as git does.
	CreateDirectories bool
	// BeforeReturn, when set, runs after recording and before the simulated result is returned.
	BeforeReturn func(details execshell.CommandDetails)

	mutex            sync.Mutex
	executedCommands []execshell.CommandDetails
}

// ExecuteGit implements shared.GitExecutor.
func (stub *GitExecutorStub) ExecuteGit(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	stub.mutex.Lock()
	stub.executedCommands = append(stub.executedCommands, details)
	stub.mutex.Unlock()

	if stub.BeforeReturn != nil {
		stub.BeforeReturn(details)
	}

	arguments := details.Arguments
	switch {
	case len(arguments) >= 3 && arguments[0] == gitCloneArgumentConstant:
		if stub.FailingURLs[arguments[1]] {
			return stub.fail(details, stubCloneFailureMessageConstant)
		}
		if stub.CreateDirectories {
			if mkdirError := os.MkdirAll(arguments[2], stubDirectoryPermissionsConstant); mkdirError != nil {
				return execshell.ExecutionResult{}, execshell.CommandExecutionError{Command: execshell.ShellCommand{Name: execshell.CommandGit, Details: details}, Cause: mkdirError}
			}
		}
	case len(arguments) >= 2 && arguments[0] == gitDirectoryFlagArgumentConstant:
		if stub.FailingDirectories[arguments[1]] {
			return stub.fail(details, stubPullFailureMessageConstant)
		}
	}

	return execshell.ExecutionResult{ExitCode: 0}, nil
}

// ExecutedCommands returns a copy of the recorded invocations.
func (stub *GitExecutorStub) ExecutedCommands() []execshell.CommandDetails {
	stub.mutex.Lock()
	defer stub.mutex.Unlock()
	return append([]execshell.CommandDetails{}, stub.executedCommands...)
}

// CountSubcommand reports how many recorded invocations used the provided leading argument.
func (stub *GitExecutorStub) CountSubcommand(leadingArgument string) int {
	count := 0
	for _, details := range stub.ExecutedCommands() {
		if len(details.Arguments) > 0 && details.Arguments[0] == leadingArgument {
			count++
		}
	}
	return count
}

func (stub *GitExecutorStub) fail(details execshell.CommandDetails, standardError string) (execshell.ExecutionResult, error) {
	result := execshell.ExecutionResult{ExitCode: stubFailureExitCodeConstant, StandardError: standardError}
	return execshell.ExecutionResult{}, execshell.CommandFailedError{
		Command: execshell.ShellCommand{Name: execshell.CommandGit, Details: details},
		Result:  result,
	}
}
