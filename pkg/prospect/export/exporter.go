package export

import (
	"context"
	"fmt"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"dealscope/prospector/pkg/prospect"
)

// Exporter serialises a sorted prospect list under a column selection.
type Exporter interface {
	Export(ctx context.Context, records []prospect.Prospect, columns []string, w io.Writer) error
	Format() string
	ContentType() string
}

// Options configures New.
type Options struct {
	StrictCSV  bool
	PrettyJSON bool
}

// New returns the exporter for format ("csv" or "json").
func New(format string, opts Options) (Exporter, error) {
	switch format {
	case "csv", "":
		return NewCSVExporter(opts.StrictCSV), nil
	case "json":
		return NewJSONExporter(opts.PrettyJSON), nil
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

// Run exports through e inside an "export.<format>" span.
func Run(ctx context.Context, e Exporter, records []prospect.Prospect, columns []string, w io.Writer) error {
	ctx, span := otel.Tracer("dealscope/prospector/export").Start(ctx, "export."+e.Format(),
		trace.WithAttributes(
			attribute.Int("prospects.count", len(records)),
			attribute.Int("export.columns", len(columns)),
		),
	)
	defer span.End()

	if err := e.Export(ctx, records, columns, w); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// DataColumns drops the rating pseudo-column, keeping order.
func DataColumns(columns []string) []string {
	out := make([]string, 0, len(columns))
	for _, c := range columns {
		if c != prospect.ColumnRating {
			out = append(out, c)
		}
	}
	return out
}

func resolve(columns []string) []*prospect.Field {
	fields := make([]*prospect.Field, len(columns))
	for i, c := range columns {
		if f, ok := prospect.LookupField(c); ok {
			fields[i] = &f
		}
	}
	return fields
}
