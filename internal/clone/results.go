package clone

import (
	"fmt"
	"io"

	"github.com/temirov/templatesync/internal/utils"
)

const (
	clonedStatusTemplateConstant          = "✅ Cloned: %s\n"
	updatedStatusTemplateConstant         = "🔄 Updated: %s\n"
	updateFailedStatusTemplateConstant    = "⚠️ Failed to update: %s\n"
	skippedStatusTemplateConstant         = "❌ Skipped (private or error): %s\n"
	invalidStatusTemplateConstant         = "❌ Invalid URL format: %s\n"
	duplicateTargetStatusTemplateConstant = "⏭️ Duplicate target %s: %s\n"
	summaryOutcomeHeaderConstant          = "Outcome"
	summaryCountHeaderConstant            = "Count"
)

// Outcome classifies the result of processing one repository URL.
type Outcome string

// Supported outcomes.
const (
	OutcomeCloned          Outcome = "cloned"
	OutcomeUpdated         Outcome = "updated"
	OutcomeUpdateFailed    Outcome = "update failed"
	OutcomeSkipped         Outcome = "skipped (private or error)"
	OutcomeInvalid         Outcome = "invalid URL"
	OutcomeDuplicateTarget Outcome = "duplicate target"
)

var summaryOutcomeOrder = []Outcome{
	OutcomeCloned,
	OutcomeUpdated,
	OutcomeUpdateFailed,
	OutcomeSkipped,
	OutcomeInvalid,
	OutcomeDuplicateTarget,
}

// Result records the outcome for one repository URL.
type Result struct {
	Target  CloneTarget
	Outcome Outcome
}

// StatusLine renders the user-facing line for the result.
func (result Result) StatusLine() string {
	switch result.Outcome {
	case OutcomeCloned:
		return fmt.Sprintf(clonedStatusTemplateConstant, result.Target.Name)
	case OutcomeUpdated:
		return fmt.Sprintf(updatedStatusTemplateConstant, result.Target.Name)
	case OutcomeUpdateFailed:
		return fmt.Sprintf(updateFailedStatusTemplateConstant, result.Target.Name)
	case OutcomeSkipped:
		return fmt.Sprintf(skippedStatusTemplateConstant, result.Target.URL)
	case OutcomeDuplicateTarget:
		return fmt.Sprintf(duplicateTargetStatusTemplateConstant, result.Target.Directory, result.Target.URL)
	default:
		return fmt.Sprintf(invalidStatusTemplateConstant, result.Target.URL)
	}
}

// Summary aggregates results in completion order.
type Summary struct {
	Results []Result
}

// Count returns the number of results with the provided outcome.
func (summary Summary) Count(outcome Outcome) int {
	count := 0
	for _, result := range summary.Results {
		if result.Outcome == outcome {
			count++
		}
	}
	return count
}

// Attempted returns the number of URLs dispatched to git.
func (summary Summary) Attempted() int {
	return summary.Count(OutcomeCloned) + summary.Count(OutcomeUpdated) + summary.Count(OutcomeUpdateFailed) + summary.Count(OutcomeSkipped)
}

// Render writes the outcome count table, omitting outcomes that did not occur.
func (summary Summary) Render(writer io.Writer) error {
	rows := make([]utils.SummaryRow, 0, len(summaryOutcomeOrder))
	for _, outcome := range summaryOutcomeOrder {
		count := summary.Count(outcome)
		if count == 0 {
			continue
		}
		rows = append(rows, utils.SummaryRow{Label: string(outcome), Count: count})
	}
	return utils.RenderSummaryTable(writer, summaryOutcomeHeaderConstant, summaryCountHeaderConstant, rows)
}
