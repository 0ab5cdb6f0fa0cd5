package export

import (
	"bufio"
	"context"
	"encoding/csv"
	"io"
	"strings"

	"dealscope/prospector/pkg/prospect"
)

// DefaultFilename is the download name for CSV exports.
const DefaultFilename = "ma-prospects.csv"

// CSVExporter writes prospects as comma-separated text.
//
// In the default mode the output matches the browser download byte for byte:
// the header is the column identifiers joined by commas, each row follows
// in the same column order, and a textual value containing a comma is
// wrapped in double quotes with no further escaping. Lines are separated by
// "\n" with no trailing newline. Embedded quotes and newlines pass through
// unescaped, so such output is not valid RFC 4180.
//
// Strict mode writes RFC 4180 output through encoding/csv instead.
type CSVExporter struct {
	// Strict enables RFC 4180 quoting.
	Strict bool
}

// NewCSVExporter creates a new CSV exporter.
func NewCSVExporter(strict bool) *CSVExporter {
	return &CSVExporter{Strict: strict}
}

// Format implements Exporter.
func (e *CSVExporter) Format() string { return "csv" }

// ContentType implements Exporter.
func (e *CSVExporter) ContentType() string { return "text/csv" }

// Export writes records under columns to w. The rating pseudo-column is
// dropped if present; unknown columns export as empty values.
func (e *CSVExporter) Export(ctx context.Context, records []prospect.Prospect, columns []string, w io.Writer) error {
	columns = DataColumns(columns)
	fields := resolve(columns)

	if e.Strict {
		return e.exportStrict(ctx, records, columns, fields, w)
	}

	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(strings.Join(columns, ",")); err != nil {
		return prospect.NewExportError("csv", len(records), err)
	}

	values := make([]string, len(fields))
	for i := range records {
		if i%500 == 0 {
			if err := ctx.Err(); err != nil {
				return prospect.NewExportError("csv", len(records), err)
			}
		}
		p := &records[i]
		for j, f := range fields {
			values[j] = naiveValue(f, p)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return prospect.NewExportError("csv", len(records), err)
		}
		if _, err := bw.WriteString(strings.Join(values, ",")); err != nil {
			return prospect.NewExportError("csv", len(records), err)
		}
	}

	if err := bw.Flush(); err != nil {
		return prospect.NewExportError("csv", len(records), err)
	}
	return nil
}

// naiveValue quotes a textual value only when it contains a comma.
func naiveValue(f *prospect.Field, p *prospect.Prospect) string {
	if f == nil {
		return ""
	}
	v := f.Raw(p)
	if f.IsString(p) && strings.Contains(v, ",") {
		return `"` + v + `"`
	}
	return v
}

func (e *CSVExporter) exportStrict(ctx context.Context, records []prospect.Prospect, columns []string, fields []*prospect.Field, w io.Writer) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(columns); err != nil {
		return prospect.NewExportError("csv", len(records), err)
	}

	row := make([]string, len(fields))
	for i := range records {
		if i%500 == 0 {
			if err := ctx.Err(); err != nil {
				return prospect.NewExportError("csv", len(records), err)
			}
		}
		for j, f := range fields {
			if f != nil {
				row[j] = f.Raw(&records[i])
			} else {
				row[j] = ""
			}
		}
		if err := writer.Write(row); err != nil {
			return prospect.NewExportError("csv", len(records), err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return prospect.NewExportError("csv", len(records), err)
	}
	return nil
}
