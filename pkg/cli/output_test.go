package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"dealscope/prospector/pkg/prospect"
	"dealscope/prospector/pkg/prospect/query"
	"dealscope/prospector/pkg/viewstate"
)

func sampleView(t *testing.T, state viewstate.State) query.View {
	t.Helper()
	records := []prospect.Prospect{
		{CompanyName: "Acme", FullName: "Alice Able", CompanyIndustry: "Tech",
			CombinedAcquisitionScore: prospect.Num(80), BoomerScore: prospect.Num(60), BurnoutScore: prospect.Num(10)},
		{CompanyName: "Bolt", FullName: "Bob Brown", CompanyIndustry: "Finance",
			CombinedAcquisitionScore: prospect.Num(55), BoomerScore: prospect.Num(80), BurnoutScore: prospect.Num(90)},
		{CompanyName: "Crate", FullName: "Carol Chen",
			CombinedAcquisitionScore: prospect.Num(20), BoomerScore: prospect.Num(10), BurnoutScore: prospect.Num(5)},
	}
	return query.Run(context.Background(), records, state)
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{in: "", want: FormatTable},
		{in: "table", want: FormatTable},
		{in: "JSON", want: FormatJSON},
		{in: "csv", want: FormatCSV},
		{in: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOutputFormat(tt.in)
			if tt.wantErr {
				var cfgErr *ConfigError
				if !errors.As(err, &cfgErr) {
					t.Fatalf("expected ConfigError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestTextFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TextFormatter{}).FormatTo(&buf, []string{"Finance", "Tech"}); err != nil {
		t.Fatalf("FormatTo() error = %v", err)
	}
	if buf.String() != "Finance\nTech\n" {
		t.Errorf("FormatTo() = %q", buf.String())
	}

	buf.Reset()
	if err := (&TextFormatter{}).FormatTo(&buf, 42); err != nil {
		t.Fatalf("FormatTo() error = %v", err)
	}
	if buf.String() != "42\n" {
		t.Errorf("FormatTo() = %q", buf.String())
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := NewFormatter(FormatJSON).FormatTo(&buf, map[string]int{"total": 2}); err != nil {
		t.Fatalf("FormatTo() error = %v", err)
	}

	var got map[string]int
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got["total"] != 2 {
		t.Errorf("expected total 2, got %v", got)
	}
}

func TestViewPrinter_Table(t *testing.T) {
	state, err := viewstate.Apply(viewstate.Default(), viewstate.SetGroupBy(viewstate.GroupCombined))
	if err != nil {
		t.Fatal(err)
	}
	view := sampleView(t, state)

	var buf bytes.Buffer
	p := &ViewPrinter{Format: FormatTable}
	if err := p.Print(context.Background(), &buf, view, state); err != nil {
		t.Fatalf("Print() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Excellent (70-100) (1)",
		"Good (50-69) (1)",
		"Low (0-29) (1)",
		"Alice Able",
		"80.0",
		"Showing 3 of 3 prospects | Avg Combined 51.7",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q\n%s", want, out)
		}
	}
}

func TestViewPrinter_TableLimit(t *testing.T) {
	state := viewstate.Default()
	view := sampleView(t, state)

	var buf bytes.Buffer
	p := &ViewPrinter{Format: FormatTable, Limit: 1}
	if err := p.Print(context.Background(), &buf, view, state); err != nil {
		t.Fatalf("Print() error = %v", err)
	}
	if !strings.Contains(buf.String(), "... 2 more") {
		t.Errorf("expected truncation note\n%s", buf.String())
	}
	if strings.Contains(buf.String(), "Carol Chen") {
		t.Errorf("expected Carol Chen to be cut by the limit\n%s", buf.String())
	}
}

func TestViewPrinter_JSON(t *testing.T) {
	state := viewstate.Default()
	view := sampleView(t, state)

	var buf bytes.Buffer
	p := &ViewPrinter{Format: FormatJSON, Limit: 2}
	if err := p.Print(context.Background(), &buf, view, state); err != nil {
		t.Fatalf("Print() error = %v", err)
	}

	var out ViewOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	want := []string{"Alice Able-Acme", "Bob Brown-Bolt"}
	var got []string
	for _, row := range out.Groups[0].Rows {
		got = append(got, string(row.Key))
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
	if out.Groups[0].Count != 3 {
		t.Errorf("expected group count 3, got %d", out.Groups[0].Count)
	}
	if out.Stats.AvgCombined != 51.7 {
		t.Errorf("expected avgCombined 51.7, got %v", out.Stats.AvgCombined)
	}
}

func TestViewPrinter_CSV(t *testing.T) {
	state, err := viewstate.Apply(viewstate.Default(),
		viewstate.SetColumns([]string{prospect.ColumnRating, prospect.FieldCompanyName, prospect.FieldCombinedAcquisitionScore}))
	if err != nil {
		t.Fatal(err)
	}
	view := sampleView(t, state)

	var buf bytes.Buffer
	p := &ViewPrinter{Format: FormatCSV}
	if err := p.Print(context.Background(), &buf, view, state); err != nil {
		t.Fatalf("Print() error = %v", err)
	}

	want := "Company Name,Combined Acquisition Score\nAcme,80\nBolt,55\nCrate,20\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("CSV mismatch (-want +got):\n%s", diff)
	}
}
