package export

import (
	"context"
	"encoding/json"
	"io"

	"dealscope/prospector/pkg/prospect"
)

// JSONExporter writes prospects as a JSON array of objects keyed by column
// identifier. Numeric fields keep their source JSON type.
type JSONExporter struct {
	// Pretty enables indented output.
	Pretty bool
}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter(pretty bool) *JSONExporter {
	return &JSONExporter{Pretty: pretty}
}

// Format implements Exporter.
func (e *JSONExporter) Format() string { return "json" }

// ContentType implements Exporter.
func (e *JSONExporter) ContentType() string { return "application/json" }

// Export writes records under columns to w.
func (e *JSONExporter) Export(ctx context.Context, records []prospect.Prospect, columns []string, w io.Writer) error {
	columns = DataColumns(columns)
	fields := resolve(columns)

	rows := make([]orderedRow, 0, len(records))
	for i := range records {
		if err := ctx.Err(); err != nil {
			return prospect.NewExportError("json", len(records), err)
		}
		row := orderedRow{keys: columns, values: make([]any, len(fields))}
		for j, f := range fields {
			row.values[j] = jsonValue(f, &records[i])
		}
		rows = append(rows, row)
	}

	enc := json.NewEncoder(w)
	if e.Pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(rows); err != nil {
		return prospect.NewExportError("json", len(records), err)
	}
	return nil
}

func jsonValue(f *prospect.Field, p *prospect.Prospect) any {
	if f == nil {
		return nil
	}
	if n, ok := f.Number(p); ok {
		return n
	}
	return f.Raw(p)
}

// orderedRow marshals as a JSON object with keys in column order.
type orderedRow struct {
	keys   []string
	values []any
}

func (r orderedRow) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for i, k := range r.keys {
		if i > 0 {
			buf = append(buf, ',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.values[i])
		if err != nil {
			return nil, err
		}
		buf = append(buf, key...)
		buf = append(buf, ':')
		buf = append(buf, val...)
	}
	return append(buf, '}'), nil
}
