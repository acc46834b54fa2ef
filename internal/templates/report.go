package templates

import (
	"io"
	"sort"

	"github.com/temirov/templatesync/internal/utils"
)

const (
	actionHeaderConstant           = "Action"
	categoryHeaderConstant         = "Category"
	countHeaderConstant            = "Templates"
	actionRemovedLabel             = "removed"
	actionRemovedSizeMismatchLabel = "removed (size mismatch)"
	actionRenamedLabel             = "renamed"
	actionCopiedLabel              = "copied"
	actionSkippedLabel             = "skipped (duplicate content)"
	actionPlannedLabel             = "planned"
	actionFailedLabel              = "failed"
)

// Report summarizes one dedupe run.
type Report struct {
	Mode                 Mode
	DryRun               bool
	CommunityBefore      int
	CommunityAfter       int
	Common               int
	ExclusiveToReference int
	Collisions           int
	Removed              int
	RemovedSizeMismatch  int
	Renamed              int
	Copied               int
	SkippedDuplicate     int
	Planned              int
	Failed               int
	CategoryCounts       map[string]int
}

// RenderActions writes the non-zero action counters as a table.
func (report Report) RenderActions(writer io.Writer) error {
	candidates := []utils.SummaryRow{
		{Label: actionRemovedLabel, Count: report.Removed},
		{Label: actionRemovedSizeMismatchLabel, Count: report.RemovedSizeMismatch},
		{Label: actionRenamedLabel, Count: report.Renamed},
		{Label: actionCopiedLabel, Count: report.Copied},
		{Label: actionSkippedLabel, Count: report.SkippedDuplicate},
		{Label: actionPlannedLabel, Count: report.Planned},
		{Label: actionFailedLabel, Count: report.Failed},
	}
	rows := make([]utils.SummaryRow, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate.Count > 0 {
			rows = append(rows, candidate)
		}
	}
	return utils.RenderSummaryTable(writer, actionHeaderConstant, countHeaderConstant, rows)
}

// RenderCategories writes per-category copy counts sorted by category name.
func (report Report) RenderCategories(writer io.Writer) error {
	names := make([]string, 0, len(report.CategoryCounts))
	for name := range report.CategoryCounts {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([]utils.SummaryRow, 0, len(names))
	for _, name := range names {
		rows = append(rows, utils.SummaryRow{Label: name, Count: report.CategoryCounts[name]})
	}
	return utils.RenderSummaryTable(writer, categoryHeaderConstant, countHeaderConstant, rows)
}
