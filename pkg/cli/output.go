package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"dealscope/prospector/pkg/prospect"
	"dealscope/prospector/pkg/prospect/export"
	"dealscope/prospector/pkg/prospect/query"
	"dealscope/prospector/pkg/viewstate"
)

// OutputFormat represents the output format for command results.
type OutputFormat string

const (
	// FormatTable renders grouped tables (default).
	FormatTable OutputFormat = "table"
	// FormatJSON is JSON output.
	FormatJSON OutputFormat = "json"
	// FormatCSV is the prospect CSV export format.
	FormatCSV OutputFormat = "csv"
)

// ParseOutputFormat validates s. The empty string selects FormatTable.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(strings.ToLower(s)) {
	case "", FormatTable:
		return FormatTable, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", NewConfigError("format", fmt.Sprintf("unsupported output format %q (want table, json or csv)", s))
	}
}

// Formatter formats command output.
type Formatter interface {
	FormatTo(w io.Writer, data any) error
}

// TextFormatter writes values with fmt's default formatting, one per line.
// Slices of strings are written one element per line.
type TextFormatter struct{}

// FormatTo writes data to w in text format.
func (f *TextFormatter) FormatTo(w io.Writer, data any) error {
	if lines, ok := data.([]string); ok {
		for _, line := range lines {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		return nil
	}
	_, err := fmt.Fprintf(w, "%v\n", data)
	return err
}

// JSONFormatter formats output as JSON.
type JSONFormatter struct {
	Indent bool
}

// FormatTo writes data to w in JSON format.
func (f *JSONFormatter) FormatTo(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	if f.Indent {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(data)
}

// NewFormatter creates a formatter for plain values. Table and CSV both
// fall back to text.
func NewFormatter(format OutputFormat) Formatter {
	if format == FormatJSON {
		return &JSONFormatter{Indent: true}
	}
	return &TextFormatter{}
}

// ViewPrinter renders a query.View.
type ViewPrinter struct {
	Format OutputFormat

	// Limit caps the rows printed per group in table and JSON output, and
	// the total rows in CSV output. Zero prints everything.
	Limit int

	// StrictCSV enables RFC 4180 quoting for CSV output.
	StrictCSV bool
}

// ViewOutput is the JSON shape of a printed view.
type ViewOutput struct {
	Total             int           `json:"total"`
	Stats             query.Stats   `json:"stats"`
	ActiveFilterCount int           `json:"activeFilterCount"`
	Columns           []string      `json:"columns"`
	Groups            []GroupOutput `json:"groups"`
}

// GroupOutput is one group of a printed view.
type GroupOutput struct {
	Label string      `json:"label"`
	Count int         `json:"count"`
	Rows  []query.Row `json:"rows"`
}

// Print writes view to w in the printer's format.
func (p *ViewPrinter) Print(ctx context.Context, w io.Writer, view query.View, state viewstate.State) error {
	switch p.Format {
	case FormatJSON:
		return (&JSONFormatter{Indent: true}).FormatTo(w, p.output(view, state))
	case FormatCSV:
		records := view.Sorted
		if p.Limit > 0 && len(records) > p.Limit {
			records = records[:p.Limit]
		}
		if err := export.Run(ctx, export.NewCSVExporter(p.StrictCSV), records, view.ExportColumns, w); err != nil {
			return err
		}
		_, err := fmt.Fprintln(w)
		return err
	default:
		return p.printTable(w, view, state)
	}
}

func (p *ViewPrinter) output(view query.View, state viewstate.State) ViewOutput {
	out := ViewOutput{
		Total:             view.Total,
		Stats:             view.Stats,
		ActiveFilterCount: view.ActiveFilters,
		Columns:           view.Columns,
		Groups:            make([]GroupOutput, len(view.Groups)),
	}
	for i, g := range view.Groups {
		out.Groups[i] = GroupOutput{
			Label: g.Label,
			Count: len(g.Prospects),
			Rows:  query.ProjectAll(p.limited(g.Prospects), view.Columns, state.Ratings),
		}
	}
	return out
}

func (p *ViewPrinter) limited(records []prospect.Prospect) []prospect.Prospect {
	if p.Limit > 0 && len(records) > p.Limit {
		return records[:p.Limit]
	}
	return records
}

var (
	groupStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Faint(true)
)

func (p *ViewPrinter) printTable(w io.Writer, view query.View, state viewstate.State) error {
	headers := make([]string, 0, len(view.Columns))
	for _, id := range view.Columns {
		if f, ok := prospect.LookupField(id); ok {
			headers = append(headers, f.Label)
		}
	}

	var b strings.Builder
	for _, g := range view.Groups {
		fmt.Fprintf(&b, "%s\n", groupStyle.Render(fmt.Sprintf("%s (%d)", g.Label, len(g.Prospects))))

		rows := query.ProjectAll(p.limited(g.Prospects), view.Columns, state.Ratings)
		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers(headers...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				return cellStyle
			})
		for _, row := range rows {
			cells := make([]string, len(row.Cells))
			for i, c := range row.Cells {
				cells[i] = c.Value
			}
			t.Row(cells...)
		}
		b.WriteString(t.String())
		b.WriteString("\n")

		if hidden := len(g.Prospects) - len(rows); hidden > 0 {
			b.WriteString(mutedStyle.Render(fmt.Sprintf("... %d more", hidden)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(StatsLine(view))
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// StatsLine summarises a view in one line.
func StatsLine(view query.View) string {
	return fmt.Sprintf("Showing %d of %d prospects | Avg Combined %.1f | Avg Boomer %.1f | Avg Burnout %.1f | Active filters %d",
		view.Stats.Total, view.Total,
		view.Stats.AvgCombined, view.Stats.AvgBoomer, view.Stats.AvgBurnout,
		view.ActiveFilters,
	)
}
