package clone

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/templatesync/internal/dependencies"
	"github.com/temirov/templatesync/internal/shared"
	flagutils "github.com/temirov/templatesync/internal/utils/flags"
	pathutils "github.com/temirov/templatesync/internal/utils/path"
)

const (
	commandUseConstant                    = "clone"
	commandShortDescriptionConstant       = "Clone or update every repository listed in a URL file"
	commandLongDescriptionConstant        = "clone reads newline-delimited git URLs, removes duplicates, and clones new repositories or pulls existing ones in parallel."
	commandExecutionErrorTemplateConstant = "bulk clone failed: %w"
	unexpectedArgumentsMessageConstant    = "clone does not accept positional arguments"
	flagURLListNameConstant               = "url-list"
	flagURLListDescriptionConstant        = "Path to the newline-delimited repository URL list"
	flagCloneRootNameConstant             = "clone-root"
	flagCloneRootDescriptionConstant      = "Directory receiving cloned repositories"
	flagWorkersNameConstant               = "workers"
	flagWorkersDescriptionConstant        = "Number of concurrent git operations"
	flagNamingNameConstant                = "naming"
	flagNamingDescriptionConstant         = "Local directory naming scheme"
)

var errUnexpectedArguments = errors.New(unexpectedArgumentsMessageConstant)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider returns the current clone configuration.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the clone cobra command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        ConfigurationProvider
	HumanReadableLoggingProvider func() bool
	FileSystem                   shared.FileSystem
	GitExecutor                  shared.GitExecutor
}

// Build constructs the clone command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}

	defaults := DefaultCommandConfiguration()
	command.Flags().String(flagURLListNameConstant, defaults.URLList, flagURLListDescriptionConstant)
	command.Flags().String(flagCloneRootNameConstant, defaults.CloneRoot, flagCloneRootDescriptionConstant)
	command.Flags().Int(flagWorkersNameConstant, defaults.Workers, flagWorkersDescriptionConstant)
	command.Flags().String(flagNamingNameConstant, defaults.Naming, namingSchemeChoices.Usage(flagNamingDescriptionConstant))

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errUnexpectedArguments
	}

	options, optionsError := builder.parseOptions(command)
	if optionsError != nil {
		return optionsError
	}

	logger := builder.resolveLogger()
	gitExecutor, executorError := dependencies.ResolveGitExecutor(builder.GitExecutor, logger, builder.humanReadableLogging())
	if executorError != nil {
		return executorError
	}

	service, serviceError := NewService(logger, dependencies.ResolveFileSystem(builder.FileSystem), gitExecutor, command.OutOrStdout())
	if serviceError != nil {
		return serviceError
	}

	summary, runError := service.Run(command.Context(), options)
	if runError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, runError)
	}

	return summary.Render(command.OutOrStdout())
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command) (Options, error) {
	configuration := builder.resolveConfiguration()

	flagSet := command.Flags()
	flagutils.Override(flagSet, flagURLListNameConstant, &configuration.URLList, flagSet.GetString)
	flagutils.Override(flagSet, flagCloneRootNameConstant, &configuration.CloneRoot, flagSet.GetString)
	flagutils.Override(flagSet, flagWorkersNameConstant, &configuration.Workers, flagSet.GetInt)
	flagutils.Override(flagSet, flagNamingNameConstant, &configuration.Naming, flagSet.GetString)
	configuration = configuration.sanitize()

	namingScheme, namingError := ParseNamingScheme(configuration.Naming)
	if namingError != nil {
		return Options{}, namingError
	}

	homeExpander := pathutils.NewHomeExpander()
	return Options{
		URLListPath: homeExpander.Expand(configuration.URLList),
		CloneRoot:   homeExpander.Expand(configuration.CloneRoot),
		Workers:     configuration.Workers,
		Naming:      namingScheme,
	}, nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) humanReadableLogging() bool {
	if builder.HumanReadableLoggingProvider == nil {
		return false
	}
	return builder.HumanReadableLoggingProvider()
}
