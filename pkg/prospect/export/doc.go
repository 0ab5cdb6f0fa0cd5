// Package export serialises the sorted prospect view.
//
// # CSV
//
// CSVExporter reproduces the browser download exactly. Columns are the
// visible columns minus the rating indicator, in the order they were
// enabled. Only textual values containing a comma are quoted:
//
//	exporter := export.NewCSVExporter(false)
//	f, _ := os.Create(export.DefaultFilename)
//	defer f.Close()
//	err := exporter.Export(ctx, view.Sorted, state.ExportColumns(), f)
//
// Quotes and newlines inside values are not escaped. Pass strict=true for
// RFC 4180 output when the consumer is a real CSV parser.
//
// # JSON
//
// JSONExporter writes one object per prospect with keys in column order and
// numeric fields in their source JSON type.
package export
