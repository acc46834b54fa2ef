package templates

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/templatesync/internal/shared"
)

const (
	// DuplicateFilePrefix is prepended to community files renamed because they differ from a same-named reference file.
	DuplicateFilePrefix = "_dup__"

	directoryPermissionsConstant = fs.FileMode(0o755)

	communityCountTemplateConstant      = "Community templates: %d\n"
	commonCountTemplateConstant         = "Common templates: %d\n"
	referenceOnlyCountTemplateConstant  = "Reference-only templates: %d\n"
	communityAfterCountTemplateConstant = "Community templates after processing: %d\n"

	planRemoveTemplateConstant             = "DEDUPE-PLAN: remove %s\n"
	planRemoveMismatchTemplateConstant     = "DEDUPE-PLAN: remove %s (size mismatch: %d != %d bytes)\n"
	planRenameTemplateConstant             = "DEDUPE-PLAN: rename %s → %s\n"
	planCopyTemplateConstant               = "DEDUPE-PLAN: copy %s → %s\n"
	planSkipTemplateConstant               = "DEDUPE-PLAN: skip %s (content already in %s)\n"
	removedTemplateConstant                = "DEDUPE-REMOVED: %s\n"
	removedMismatchTemplateConstant        = "DEDUPE-REMOVED (size mismatch): %s (%d != %d bytes)\n"
	renamedTemplateConstant                = "DEDUPE-RENAMED: %s → %s\n"
	copiedTemplateConstant                 = "DEDUPE-COPIED: %s → %s\n"
	skippedTemplateConstant                = "DEDUPE-SKIP (content already in %s): %s\n"
	failedTemplateConstant                 = "DEDUPE-FAILED: %s: %v\n"
	duplicateRecordTemplateConstant        = "%s\t%s\t%s\t%d\t%d\n"
	communityInventoryErrorTemplate        = "unable to inventory community templates %s: %w"
	referenceInventoryErrorTemplate        = "unable to inventory reference templates %s: %w"
	outputRootErrorTemplateConstant        = "unable to create output root %s: %w"
	duplicateLogErrorTemplateConstant      = "unable to open duplicate log %s: %w"
	collisionMessageConstant               = "template name collision"
	sizeMismatchRemovalMessageConstant     = "removed community template whose size differs from the reference copy"
	duplicateLogCloseFailedMessageConstant = "duplicate log close failed"
	dedupeCompletedMessageConstant         = "template deduplication completed"
	logFieldFileNameConstant               = "file_name"
	logFieldKeptPathConstant               = "kept_path"
	logFieldShadowedPathConstant           = "shadowed_path"
	logFieldCommunityPathConstant          = "community_path"
	logFieldReferencePathConstant          = "reference_path"
	logFieldCommunitySizeConstant          = "community_size"
	logFieldReferenceSizeConstant          = "reference_size"
	logFieldModeConstant                   = "mode"
	logFieldDryRunConstant                 = "dry_run"
	logFieldFailedConstant                 = "failed"
)

var (
	// ErrFileSystemNotConfigured indicates the service was constructed without a filesystem.
	ErrFileSystemNotConfigured = errors.New("dedupe service requires a filesystem")
	errRenameTargetExists      = errors.New("rename target already exists")
)

// Options configures one dedupe run.
type Options struct {
	CommunityRoot      string
	ReferenceRoot      string
	OutputRoot         string
	DuplicateLogPath   string
	Mode               Mode
	Extensions         []string
	ExcludeDirectories []string
	Categories         CategoryTable
	DryRun             bool
}

// Service deduplicates a community template tree against a reference tree.
type Service struct {
	logger     *zap.Logger
	fileSystem shared.FileSystem
	output     io.Writer
}

// NewService validates collaborators and constructs a Service.
func NewService(logger *zap.Logger, fileSystem shared.FileSystem, output io.Writer) (*Service, error) {
	if fileSystem == nil {
		return nil, ErrFileSystemNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if output == nil {
		output = io.Discard
	}
	return &Service{logger: logger, fileSystem: fileSystem, output: output}, nil
}

// Run inventories both trees, resolves common names according to options.Mode, and re-counts the community tree.
// Per-file filesystem failures are reported and counted; only inventory, output-root, and duplicate-log failures abort.
func (service *Service) Run(executionContext context.Context, options Options) (Report, error) {
	mode, modeError := ParseMode(string(options.Mode))
	if modeError != nil {
		return Report{}, modeError
	}
	options.Mode = mode

	if mode == ModeCategorize && len(options.Categories.Categories) == 0 {
		defaultTable, tableError := DefaultCategoryTable()
		if tableError != nil {
			return Report{}, tableError
		}
		options.Categories = defaultTable
	}

	communityOptions := InventoryOptions{
		Extensions:         options.Extensions,
		ExcludeDirectories: append(append([]string{}, options.ExcludeDirectories...), options.ReferenceRoot, options.OutputRoot),
	}
	referenceOptions := InventoryOptions{
		Extensions:         options.Extensions,
		ExcludeDirectories: append(append([]string{}, options.ExcludeDirectories...), options.CommunityRoot, options.OutputRoot),
	}

	community, communityError := BuildInventory(options.CommunityRoot, communityOptions)
	if communityError != nil {
		return Report{}, fmt.Errorf(communityInventoryErrorTemplate, options.CommunityRoot, communityError)
	}
	reference, referenceError := BuildInventory(options.ReferenceRoot, referenceOptions)
	if referenceError != nil {
		return Report{}, fmt.Errorf(referenceInventoryErrorTemplate, options.ReferenceRoot, referenceError)
	}

	run := &dedupeRun{
		service:        service,
		options:        options,
		reporter:       shared.NewWriterReporter(service.output),
		community:      community,
		reference:      reference,
		categoryHashes: make(map[string]map[string]struct{}),
		report: &Report{
			Mode:           mode,
			DryRun:         options.DryRun,
			CategoryCounts: make(map[string]int),
		},
	}
	defer run.closeDuplicateLog()

	run.recordInventoryIssues(community)
	run.recordInventoryIssues(reference)

	commonNames := Common(community, reference)
	run.report.CommunityBefore = community.Len()
	run.report.Common = len(commonNames)
	run.report.ExclusiveToReference = len(Exclusive(reference, community))

	run.reporter.Printf(communityCountTemplateConstant, run.report.CommunityBefore)
	run.reporter.Printf(commonCountTemplateConstant, run.report.Common)
	run.reporter.Printf(referenceOnlyCountTemplateConstant, run.report.ExclusiveToReference)

	var resolutionError error
	switch mode {
	case ModeRemove:
		resolutionError = run.removeCommon(executionContext, commonNames)
	case ModeRename:
		resolutionError = run.renameCommon(executionContext, commonNames)
	case ModeCategorize:
		resolutionError = run.categorize(executionContext)
	}
	if resolutionError != nil {
		return *run.report, resolutionError
	}

	communityAfter, afterError := BuildInventory(options.CommunityRoot, communityOptions)
	if afterError != nil {
		return *run.report, fmt.Errorf(communityInventoryErrorTemplate, options.CommunityRoot, afterError)
	}
	run.report.CommunityAfter = communityAfter.Len()
	run.reporter.Printf(communityAfterCountTemplateConstant, run.report.CommunityAfter)

	service.logger.Info(
		dedupeCompletedMessageConstant,
		zap.String(logFieldModeConstant, string(mode)),
		zap.Bool(logFieldDryRunConstant, options.DryRun),
		zap.Int(logFieldFailedConstant, run.report.Failed),
	)
	return *run.report, nil
}

type dedupeRun struct {
	service        *Service
	options        Options
	reporter       shared.Reporter
	report         *Report
	community      Inventory
	reference      Inventory
	duplicateLog   io.WriteCloser
	categoryHashes map[string]map[string]struct{}
}

func (run *dedupeRun) recordInventoryIssues(inventory Inventory) {
	for _, collision := range inventory.Collisions {
		run.service.logger.Warn(
			collisionMessageConstant,
			zap.String(logFieldFileNameConstant, collision.FileName),
			zap.String(logFieldKeptPathConstant, collision.KeptPath),
			zap.String(logFieldShadowedPathConstant, collision.ShadowedPath),
		)
	}
	run.report.Collisions += len(inventory.Collisions)
	for _, failure := range inventory.WalkFailures {
		run.fail(failure.Path, failure.Cause)
	}
}

// removeCommon deletes every common-named community file; size mismatches are flagged, not prevented.
func (run *dedupeRun) removeCommon(executionContext context.Context, commonNames []string) error {
	for _, name := range commonNames {
		if contextError := executionContext.Err(); contextError != nil {
			return contextError
		}

		communityPath := run.community.Files[name]
		referencePath := run.reference.Files[name]
		communitySize, referenceSize, sizeError := run.sizes(communityPath, referencePath)
		sizeMismatch := sizeError == nil && communitySize != referenceSize

		if run.options.DryRun {
			run.report.Planned++
			if sizeMismatch {
				run.reporter.Printf(planRemoveMismatchTemplateConstant, communityPath, communitySize, referenceSize)
				continue
			}
			run.reporter.Printf(planRemoveTemplateConstant, communityPath)
			continue
		}

		if removeError := run.service.fileSystem.Remove(communityPath); removeError != nil {
			run.fail(communityPath, removeError)
			continue
		}

		if sizeMismatch {
			run.service.logger.Warn(
				sizeMismatchRemovalMessageConstant,
				zap.String(logFieldCommunityPathConstant, communityPath),
				zap.String(logFieldReferencePathConstant, referencePath),
				zap.Int64(logFieldCommunitySizeConstant, communitySize),
				zap.Int64(logFieldReferenceSizeConstant, referenceSize),
			)
			run.report.RemovedSizeMismatch++
			run.reporter.Printf(removedMismatchTemplateConstant, communityPath, communitySize, referenceSize)
			continue
		}

		run.report.Removed++
		run.reporter.Printf(removedTemplateConstant, communityPath)
	}
	return nil
}

// renameCommon deletes equal-size duplicates, logging each one, and renames the rest with DuplicateFilePrefix.
func (run *dedupeRun) renameCommon(executionContext context.Context, commonNames []string) error {
	for _, name := range commonNames {
		if contextError := executionContext.Err(); contextError != nil {
			return contextError
		}

		communityPath := run.community.Files[name]
		referencePath := run.reference.Files[name]
		communitySize, referenceSize, sizeError := run.sizes(communityPath, referencePath)
		if sizeError != nil {
			run.fail(communityPath, sizeError)
			continue
		}

		if communitySize == referenceSize {
			if run.options.DryRun {
				run.report.Planned++
				run.reporter.Printf(planRemoveTemplateConstant, communityPath)
				continue
			}
			if logError := run.openDuplicateLog(); logError != nil {
				return logError
			}
			if removeError := run.service.fileSystem.Remove(communityPath); removeError != nil {
				run.fail(communityPath, removeError)
				continue
			}
			run.report.Removed++
			run.reporter.Printf(removedTemplateConstant, communityPath)
			if _, writeError := fmt.Fprintf(run.duplicateLog, duplicateRecordTemplateConstant, name, communityPath, referencePath, communitySize, referenceSize); writeError != nil {
				run.fail(run.options.DuplicateLogPath, writeError)
			}
			continue
		}

		renamedPath := filepath.Join(filepath.Dir(communityPath), DuplicateFilePrefix+name)
		if run.options.DryRun {
			run.report.Planned++
			run.reporter.Printf(planRenameTemplateConstant, communityPath, renamedPath)
			continue
		}
		if _, statError := run.service.fileSystem.Stat(renamedPath); statError == nil {
			run.fail(communityPath, errRenameTargetExists)
			continue
		}
		if renameError := run.service.fileSystem.Rename(communityPath, renamedPath); renameError != nil {
			run.fail(communityPath, renameError)
			continue
		}
		run.report.Renamed++
		run.reporter.Printf(renamedTemplateConstant, communityPath, renamedPath)
	}
	return nil
}

// categorize deletes equal-size duplicates and copies every other community file into its categories.
func (run *dedupeRun) categorize(executionContext context.Context) error {
	if !run.options.DryRun {
		if mkdirError := run.service.fileSystem.MkdirAll(run.options.OutputRoot, directoryPermissionsConstant); mkdirError != nil {
			return fmt.Errorf(outputRootErrorTemplateConstant, run.options.OutputRoot, mkdirError)
		}
	}

	for _, name := range run.community.Names() {
		if contextError := executionContext.Err(); contextError != nil {
			return contextError
		}

		communityPath := run.community.Files[name]
		if referencePath, common := run.reference.Files[name]; common {
			communitySize, referenceSize, sizeError := run.sizes(communityPath, referencePath)
			if sizeError != nil {
				run.fail(communityPath, sizeError)
				continue
			}
			if communitySize == referenceSize {
				run.removeDuplicate(communityPath)
				continue
			}
		}

		run.copyIntoCategories(name, communityPath)
	}
	return nil
}

func (run *dedupeRun) removeDuplicate(communityPath string) {
	if run.options.DryRun {
		run.report.Planned++
		run.reporter.Printf(planRemoveTemplateConstant, communityPath)
		return
	}
	if removeError := run.service.fileSystem.Remove(communityPath); removeError != nil {
		run.fail(communityPath, removeError)
		return
	}
	run.report.Removed++
	run.reporter.Printf(removedTemplateConstant, communityPath)
}

// copyIntoCategories copies the file into every matching category unless that category already holds identical content.
func (run *dedupeRun) copyIntoCategories(name string, sourcePath string) {
	digest, hashError := run.hashFile(sourcePath)
	if hashError != nil {
		run.fail(sourcePath, hashError)
		return
	}

	for _, category := range run.options.Categories.Match(name) {
		categoryHashes, exists := run.categoryHashes[category]
		if !exists {
			categoryHashes = make(map[string]struct{})
			run.categoryHashes[category] = categoryHashes
		}

		categoryDirectory := filepath.Join(run.options.OutputRoot, category)
		destinationPath := filepath.Join(categoryDirectory, name)

		if _, duplicate := categoryHashes[digest]; duplicate {
			if run.options.DryRun {
				run.reporter.Printf(planSkipTemplateConstant, sourcePath, categoryDirectory)
			} else {
				run.reporter.Printf(skippedTemplateConstant, categoryDirectory, sourcePath)
			}
			run.report.SkippedDuplicate++
			continue
		}

		if run.options.DryRun {
			categoryHashes[digest] = struct{}{}
			run.report.Planned++
			run.report.CategoryCounts[category]++
			run.reporter.Printf(planCopyTemplateConstant, sourcePath, destinationPath)
			continue
		}

		if mkdirError := run.service.fileSystem.MkdirAll(categoryDirectory, directoryPermissionsConstant); mkdirError != nil {
			run.fail(categoryDirectory, mkdirError)
			continue
		}
		if copyError := run.copyFile(sourcePath, destinationPath); copyError != nil {
			run.fail(destinationPath, copyError)
			continue
		}

		categoryHashes[digest] = struct{}{}
		run.report.Copied++
		run.report.CategoryCounts[category]++
		run.reporter.Printf(copiedTemplateConstant, sourcePath, destinationPath)
	}
}

func (run *dedupeRun) sizes(communityPath string, referencePath string) (int64, int64, error) {
	communityInfo, communityError := run.service.fileSystem.Stat(communityPath)
	if communityError != nil {
		return 0, 0, communityError
	}
	referenceInfo, referenceError := run.service.fileSystem.Stat(referencePath)
	if referenceError != nil {
		return 0, 0, referenceError
	}
	return communityInfo.Size(), referenceInfo.Size(), nil
}

func (run *dedupeRun) hashFile(path string) (string, error) {
	reader, openError := run.service.fileSystem.Open(path)
	if openError != nil {
		return "", openError
	}
	defer reader.Close()

	hasher := md5.New()
	if _, copyError := io.Copy(hasher, reader); copyError != nil {
		return "", copyError
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

func (run *dedupeRun) copyFile(sourcePath string, destinationPath string) error {
	reader, openError := run.service.fileSystem.Open(sourcePath)
	if openError != nil {
		return openError
	}
	defer reader.Close()

	writer, createError := run.service.fileSystem.Create(destinationPath)
	if createError != nil {
		return createError
	}
	if _, copyError := io.Copy(writer, reader); copyError != nil {
		writer.Close()
		return copyError
	}
	return writer.Close()
}

func (run *dedupeRun) openDuplicateLog() error {
	if run.duplicateLog != nil {
		return nil
	}
	writer, openError := run.service.fileSystem.OpenAppend(run.options.DuplicateLogPath)
	if openError != nil {
		return fmt.Errorf(duplicateLogErrorTemplateConstant, run.options.DuplicateLogPath, openError)
	}
	run.duplicateLog = writer
	return nil
}

func (run *dedupeRun) closeDuplicateLog() {
	if run.duplicateLog == nil {
		return
	}
	if closeError := run.duplicateLog.Close(); closeError != nil {
		run.service.logger.Warn(duplicateLogCloseFailedMessageConstant, zap.Error(closeError))
	}
}

func (run *dedupeRun) fail(path string, cause error) {
	run.report.Failed++
	run.reporter.Printf(failedTemplateConstant, path, cause)
}
