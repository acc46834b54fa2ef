package templates

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
	commandUseConstant                    = "dedupe"
	commandShortDescriptionConstant       = "Remove, rename, or categorize community templates that duplicate a reference corpus"
	commandLongDescriptionConstant        = "dedupe walks the community and reference template trees, matches files by name, and resolves overlaps with the selected mode."
	commandExecutionErrorTemplateConstant = "template dedupe failed: %w"
	categoriesFileErrorTemplateConstant   = "unable to load categories file %s: %w"
	unexpectedArgumentsMessageConstant    = "dedupe does not accept positional arguments"
	flagCommunityRootNameConstant         = "community-root"
	flagCommunityRootDescriptionConstant  = "Community template tree to deduplicate"
	flagReferenceRootNameConstant         = "reference-root"
	flagReferenceRootDescriptionConstant  = "Reference template tree treated as the source of truth"
	flagModeNameConstant                  = "mode"
	flagModeDescriptionConstant           = "Duplicate resolution mode"
	flagOutputRootNameConstant            = "output-root"
	flagOutputRootDescriptionConstant     = "Output root for categorized copies"
	flagDuplicateLogNameConstant          = "duplicate-log"
	flagDuplicateLogDescriptionConstant   = "Tab-separated log receiving removed duplicates in rename mode"
	flagExtensionsNameConstant            = "extension"
	flagExtensionsDescriptionConstant     = "Restrict the walk to these file extensions (repeatable)"
	flagExcludeNameConstant               = "exclude"
	flagExcludeDescriptionConstant        = "Directory to skip during the walk (repeatable)"
	flagCategoriesFileNameConstant        = "categories-file"
	flagCategoriesFileDescriptionConstant = "YAML category table replacing the built-in one"
	flagDryRunNameConstant                = "dry-run"
	flagDryRunDescriptionConstant         = "Print planned actions without changing any files"
)

var errUnexpectedArguments = errors.New(unexpectedArgumentsMessageConstant)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider returns the current dedupe configuration.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the dedupe cobra command.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	FileSystem            shared.FileSystem
}

// Build constructs the dedupe command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}

	defaults := DefaultCommandConfiguration()
	command.Flags().String(flagCommunityRootNameConstant, defaults.CommunityRoot, flagCommunityRootDescriptionConstant)
	command.Flags().String(flagReferenceRootNameConstant, defaults.ReferenceRoot, flagReferenceRootDescriptionConstant)
	command.Flags().String(flagModeNameConstant, defaults.Mode, modeChoices.Usage(flagModeDescriptionConstant))
	command.Flags().String(flagOutputRootNameConstant, defaults.OutputRoot, flagOutputRootDescriptionConstant)
	command.Flags().String(flagDuplicateLogNameConstant, defaults.DuplicateLog, flagDuplicateLogDescriptionConstant)
	command.Flags().StringSlice(flagExtensionsNameConstant, nil, flagExtensionsDescriptionConstant)
	command.Flags().StringSlice(flagExcludeNameConstant, nil, flagExcludeDescriptionConstant)
	command.Flags().String(flagCategoriesFileNameConstant, "", flagCategoriesFileDescriptionConstant)
	dryRunFlag(defaults.DryRun).Bind(command)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errUnexpectedArguments
	}

	logger := builder.resolveLogger()
	fileSystem := dependencies.ResolveFileSystem(builder.FileSystem)

	options, optionsError := builder.parseOptions(command, fileSystem)
	if optionsError != nil {
		return optionsError
	}

	service, serviceError := NewService(logger, fileSystem, command.OutOrStdout())
	if serviceError != nil {
		return serviceError
	}

	report, runError := service.Run(command.Context(), options)
	if runError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, runError)
	}

	if renderError := report.RenderActions(command.OutOrStdout()); renderError != nil {
		return renderError
	}
	if report.Mode == ModeCategorize {
		return report.RenderCategories(command.OutOrStdout())
	}
	return nil
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command, fileSystem shared.FileSystem) (Options, error) {
	configuration := builder.resolveConfiguration()
	flagSet := command.Flags()

	flagutils.Override(flagSet, flagCommunityRootNameConstant, &configuration.CommunityRoot, flagSet.GetString)
	flagutils.Override(flagSet, flagReferenceRootNameConstant, &configuration.ReferenceRoot, flagSet.GetString)
	flagutils.Override(flagSet, flagModeNameConstant, &configuration.Mode, flagSet.GetString)
	flagutils.Override(flagSet, flagOutputRootNameConstant, &configuration.OutputRoot, flagSet.GetString)
	flagutils.Override(flagSet, flagDuplicateLogNameConstant, &configuration.DuplicateLog, flagSet.GetString)
	flagutils.Override(flagSet, flagExtensionsNameConstant, &configuration.Extensions, flagSet.GetStringSlice)
	flagutils.Override(flagSet, flagExcludeNameConstant, &configuration.ExcludeDirectories, flagSet.GetStringSlice)
	flagutils.Override(flagSet, flagCategoriesFileNameConstant, &configuration.CategoriesFile, flagSet.GetString)
	configuration.DryRun = dryRunFlag(configuration.DryRun).Resolve(command, configuration.DryRun)
	configuration = configuration.sanitize()

	mode, modeError := ParseMode(configuration.Mode)
	if modeError != nil {
		return Options{}, modeError
	}

	homeExpander := pathutils.NewHomeExpander()
	var categoryTable CategoryTable
	if mode == ModeCategorize && len(configuration.CategoriesFile) > 0 {
		loadedTable, loadError := loadCategoryTableFile(fileSystem, homeExpander.Expand(configuration.CategoriesFile))
		if loadError != nil {
			return Options{}, loadError
		}
		categoryTable = loadedTable
	}

	return Options{
		CommunityRoot:      homeExpander.Expand(configuration.CommunityRoot),
		ReferenceRoot:      homeExpander.Expand(configuration.ReferenceRoot),
		OutputRoot:         homeExpander.Expand(configuration.OutputRoot),
		DuplicateLogPath:   homeExpander.Expand(configuration.DuplicateLog),
		Mode:               mode,
		Extensions:         configuration.Extensions,
		ExcludeDirectories: homeExpander.ExpandAll(configuration.ExcludeDirectories),
		Categories:         categoryTable,
		DryRun:             configuration.DryRun,
	}, nil
}

func dryRunFlag(defaultValue bool) flagutils.DryRunFlag {
	return flagutils.DryRunFlag{Name: flagDryRunNameConstant, Usage: flagDryRunDescriptionConstant, Default: defaultValue}
}

func loadCategoryTableFile(fileSystem shared.FileSystem, path string) (CategoryTable, error) {
	reader, openError := fileSystem.Open(path)
	if openError != nil {
		return CategoryTable{}, fmt.Errorf(categoriesFileErrorTemplateConstant, path, openError)
	}
	defer reader.Close()

	table, loadError := LoadCategoryTable(reader)
	if loadError != nil {
		return CategoryTable{}, fmt.Errorf(categoriesFileErrorTemplateConstant, path, loadError)
	}
	return table, nil
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
