package query

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"dealscope/prospector/pkg/prospect"
	"dealscope/prospector/pkg/viewstate"
)

// View is everything derived from a record list and a view state.
type View struct {
	// Total is the size of the unfiltered record list.
	Total int `json:"total"`

	// Sorted holds the filtered prospects, highest combined score first.
	Sorted []prospect.Prospect `json:"-"`

	// Groups partitions Sorted according to the state's grouping.
	Groups []Group `json:"-"`

	// Stats summarises the filtered set.
	Stats Stats `json:"stats"`

	// Columns are the visible columns in rendering order.
	Columns []string `json:"columns"`

	// ExportColumns are the CSV columns in the order they were enabled.
	ExportColumns []string `json:"exportColumns"`

	// ActiveFilters is the filter badge count.
	ActiveFilters int `json:"activeFilterCount"`
}

// Observer receives timing for each pipeline run.
type Observer interface {
	ObservePipeline(groupBy string, duration time.Duration, total, filtered int)
}

// Pipeline runs filter, sort, group, and stats over a record list.
type Pipeline struct {
	tracer   trace.Tracer
	observer Observer
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithObserver reports each run to o.
func WithObserver(o Observer) Option {
	return func(p *Pipeline) { p.observer = o }
}

// WithTracer overrides the tracer, which otherwise comes from the global
// OpenTelemetry provider.
func WithTracer(t trace.Tracer) Option {
	return func(p *Pipeline) { p.tracer = t }
}

// NewPipeline creates a Pipeline.
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{tracer: otel.Tracer("dealscope/prospector/query")}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run derives the view for state. It never fails and never modifies
// records; ctx only carries trace context.
func (p *Pipeline) Run(ctx context.Context, records []prospect.Prospect, state viewstate.State) View {
	start := time.Now()
	_, span := p.tracer.Start(ctx, "query.run",
		trace.WithAttributes(
			attribute.Int("prospects.total", len(records)),
			attribute.String("view.group_by", string(state.GroupBy)),
			attribute.Bool("view.search", state.Search != ""),
			attribute.Int("view.industries", len(state.SelectedIndustries)),
		),
	)
	defer span.End()

	filtered := Filter(records, CriteriaFrom(state))
	sorted := SortByCombined(filtered)

	view := View{
		Total:         len(records),
		Sorted:        sorted,
		Groups:        GroupSorted(sorted, state.GroupBy),
		Stats:         ComputeStats(filtered),
		Columns:       state.DisplayColumns(),
		ExportColumns: state.ExportColumns(),
		ActiveFilters: viewstate.ActiveFilterCount(state),
	}

	span.SetAttributes(
		attribute.Int("prospects.filtered", len(filtered)),
		attribute.Int("view.groups", len(view.Groups)),
	)
	if p.observer != nil {
		p.observer.ObservePipeline(string(state.GroupBy), time.Since(start), len(records), len(filtered))
	}
	return view
}

var defaultPipeline = NewPipeline()

// Run derives a view with a default Pipeline.
func Run(ctx context.Context, records []prospect.Prospect, state viewstate.State) View {
	return defaultPipeline.Run(ctx, records, state)
}
