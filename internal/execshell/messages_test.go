package execshell

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommandMessageFormatterDescribesCloneAndPull(testInstance *testing.T) {
	cloneCommand := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments: []string{"clone", "https://github.com/example/templates", "community-templates/example__templates"},
		},
	}
	pullCommand := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments: []string{"-C", "community-templates/example__templates", "pull"},
		},
	}
	unknownCommand := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"status"},
			WorkingDirectory: "/workspace",
		},
	}

	testCases := []struct {
		name     string
		render   func(formatter CommandMessageFormatter) string
		expected string
	}{
		{
			name:     "clone_started",
			render:   func(formatter CommandMessageFormatter) string { return formatter.BuildStartedMessage(cloneCommand) },
			expected: "Cloning https://github.com/example/templates into community-templates/example__templates",
		},
		{
			name:     "clone_succeeded",
			render:   func(formatter CommandMessageFormatter) string { return formatter.BuildSuccessMessage(cloneCommand) },
			expected: "Cloned https://github.com/example/templates into community-templates/example__templates",
		},
		{
			name: "clone_failed",
			render: func(formatter CommandMessageFormatter) string {
				return formatter.BuildFailureMessage(cloneCommand, ExecutionResult{ExitCode: 128, StandardError: "fatal: could not read Username\n"})
			},
			expected: "Failed to clone https://github.com/example/templates into community-templates/example__templates (exit code 128): fatal: could not read Username",
		},
		{
			name:     "pull_started",
			render:   func(formatter CommandMessageFormatter) string { return formatter.BuildStartedMessage(pullCommand) },
			expected: "Pulling latest changes in community-templates/example__templates",
		},
		{
			name: "pull_execution_failed",
			render: func(formatter CommandMessageFormatter) string {
				return formatter.BuildExecutionFailureMessage(pullCommand, errors.New("executable not found"))
			},
			expected: "Failed to pull in community-templates/example__templates: executable not found",
		},
		{
			name:     "generic_fallback",
			render:   func(formatter CommandMessageFormatter) string { return formatter.BuildSuccessMessage(unknownCommand) },
			expected: "Completed git status (in /workspace)",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expected, testCase.render(CommandMessageFormatter{}))
		})
	}
}
