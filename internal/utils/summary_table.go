package utils

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

const summaryTableMaxWidthConstant = 80

// SummaryRow is one label/count pair rendered by RenderSummaryTable.
type SummaryRow struct {
	Label string
	Count int
}

// NewSummaryTable creates a markdown-styled table writer shared by the clone and dedupe reports.
func NewSummaryTable(headers []string, writer io.Writer) *tablewriter.Table {
	configuration := tablewriter.Config{
		Header: tw.CellConfig{
			Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			Formatting: tw.CellFormatting{AutoFormat: tw.Off},
		},
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignLeft},
		},
		MaxWidth: summaryTableMaxWidthConstant,
		Behavior: tw.Behavior{TrimSpace: tw.Off},
	}
	return tablewriter.NewTable(writer,
		tablewriter.WithConfig(configuration),
		tablewriter.WithHeader(headers),
		tablewriter.WithRenderer(renderer.NewBlueprint()),
		tablewriter.WithRendition(tw.Rendition{
			Symbols: tw.NewSymbols(tw.StyleMarkdown),
			Borders: tw.Border{
				Left:   tw.On,
				Top:    tw.Off,
				Right:  tw.On,
				Bottom: tw.Off,
			},
		}),
		tablewriter.WithRowAutoWrap(tw.WrapNone),
	)
}

// RenderSummaryTable writes rows as a two-column table.
func RenderSummaryTable(writer io.Writer, labelHeader string, countHeader string, rows []SummaryRow) error {
	table := NewSummaryTable([]string{labelHeader, countHeader}, writer)
	for _, row := range rows {
		if appendError := table.Append(row.Label, strconv.Itoa(row.Count)); appendError != nil {
			return appendError
		}
	}
	return table.Render()
}
