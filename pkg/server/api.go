package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"dealscope/prospector/pkg/dataset"
	"dealscope/prospector/pkg/prospect"
	"dealscope/prospector/pkg/prospect/export"
	"dealscope/prospector/pkg/prospect/query"
	"dealscope/prospector/pkg/viewstate"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// ExportRecorder receives the outcome of each export.
type ExportRecorder interface {
	RecordExport(format string, rows int, err error)
}

// API implements the /api/v1 handlers over one session.
type API struct {
	dataset       *dataset.Dataset
	store         *viewstate.Store
	initial       viewstate.State
	pipeline      *query.Pipeline
	exports       ExportRecorder
	exportOptions export.Options
	filename      string
	industryLimit int
	logger        *slog.Logger
}

// APIConfig holds the collaborators of an API.
type APIConfig struct {
	Dataset  *dataset.Dataset
	Initial  viewstate.State
	Pipeline *query.Pipeline

	// Exports may be nil.
	Exports ExportRecorder

	ExportOptions export.Options
	Filename      string
	IndustryLimit int
}

// NewAPI creates an API with a fresh session seeded from cfg.Initial.
func NewAPI(cfg APIConfig) *API {
	pipeline := cfg.Pipeline
	if pipeline == nil {
		pipeline = query.NewPipeline()
	}
	filename := cfg.Filename
	if filename == "" {
		filename = export.DefaultFilename
	}
	limit := cfg.IndustryLimit
	if limit <= 0 {
		limit = query.DefaultIndustryLimit
	}
	return &API{
		dataset:       cfg.Dataset,
		store:         viewstate.NewStore(cfg.Initial),
		initial:       cfg.Initial.Clone(),
		pipeline:      pipeline,
		exports:       cfg.Exports,
		exportOptions: cfg.ExportOptions,
		filename:      filename,
		industryLimit: limit,
		logger:        slog.Default().With("component", "api"),
	}
}

// Store returns the session store.
func (a *API) Store() *viewstate.Store {
	return a.store
}

// Register mounts the API routes on mux. wrap is applied to every handler.
func (a *API) Register(mux *http.ServeMux, wrap func(http.Handler) http.Handler) {
	handle := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, wrap(h))
	}

	handle("GET /api/v1/view", a.handleView)
	handle("GET /api/v1/state", a.handleState)
	handle("POST /api/v1/state/reset", a.handleReset)
	handle("PUT /api/v1/state/search", a.handleSearch)
	handle("PUT /api/v1/state/industries", a.handleSetIndustries)
	handle("POST /api/v1/state/industries/toggle", a.handleToggleIndustry)
	handle("PUT /api/v1/state/ranges/{score}", a.handleRange)
	handle("PUT /api/v1/state/group", a.handleGroup)
	handle("PUT /api/v1/state/columns", a.handleSetColumns)
	handle("POST /api/v1/state/columns/toggle", a.handleToggleColumn)
	handle("PUT /api/v1/state/ratings", a.handleRating)
	handle("POST /api/v1/state/clear", a.handleClear)
	handle("GET /api/v1/industries", a.handleIndustries)
	handle("GET /api/v1/columns", a.handleColumns)
	handle("GET /api/v1/export.csv", a.handleExport("csv"))
	handle("GET /api/v1/export.json", a.handleExport("json"))
	handle("GET /api/v1/dataset", a.handleDataset)
	handle("POST /api/v1/dataset/reload", a.handleReload)
}

// Column describes one column for the column picker.
type Column struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Visible bool   `json:"visible"`
}

// ViewGroup is one group of projected rows.
type ViewGroup struct {
	Label string      `json:"label"`
	Count int         `json:"count"`
	Rows  []query.Row `json:"rows"`
}

// DatasetInfo describes the current dataset snapshot.
type DatasetInfo struct {
	Source   string    `json:"source"`
	Count    int       `json:"count"`
	Version  uint64    `json:"version"`
	Loaded   bool      `json:"loaded"`
	LoadedAt time.Time `json:"loadedAt,omitzero"`
}

// ViewResponse is the body of GET /api/v1/view.
type ViewResponse struct {
	Total             int             `json:"total"`
	Stats             query.Stats     `json:"stats"`
	ActiveFilterCount int             `json:"activeFilterCount"`
	Columns           []Column        `json:"columns"`
	Groups            []ViewGroup     `json:"groups"`
	State             viewstate.State `json:"state"`
	Dataset           DatasetInfo     `json:"dataset"`
}

func (a *API) datasetInfo() DatasetInfo {
	snap := a.dataset.Snapshot()
	return DatasetInfo{
		Source:   snap.Source,
		Count:    len(snap.Records),
		Version:  snap.Version,
		Loaded:   snap.Loaded(),
		LoadedAt: snap.LoadedAt,
	}
}

func (a *API) handleView(w http.ResponseWriter, r *http.Request) {
	state := a.store.Snapshot()
	snap := a.dataset.Snapshot()
	view := a.pipeline.Run(r.Context(), snap.Records, state)

	columns := make([]Column, 0, len(view.Columns))
	for _, id := range view.Columns {
		if f, ok := prospect.LookupField(id); ok {
			columns = append(columns, Column{ID: f.ID, Label: f.Label, Visible: true})
		}
	}

	groups := make([]ViewGroup, len(view.Groups))
	for i, g := range view.Groups {
		groups[i] = ViewGroup{
			Label: g.Label,
			Count: len(g.Prospects),
			Rows:  query.ProjectAll(g.Prospects, view.Columns, state.Ratings),
		}
	}

	writeJSON(w, http.StatusOK, ViewResponse{
		Total:             view.Total,
		Stats:             view.Stats,
		ActiveFilterCount: view.ActiveFilters,
		Columns:           columns,
		Groups:            groups,
		State:             state,
		Dataset:           a.datasetInfo(),
	})
}

func (a *API) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.store.Snapshot())
}

func (a *API) handleReset(w http.ResponseWriter, r *http.Request) {
	a.store.Reset(a.initial)
	writeJSON(w, http.StatusOK, a.store.Snapshot())
}

// dispatch applies actions to the session and answers with the new state.
func (a *API) dispatch(w http.ResponseWriter, r *http.Request, actions ...viewstate.Action) {
	state, err := a.store.Dispatch(actions...)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (a *API) handleSearch(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Search *string `json:"search"`
	}
	if err := decodeBody(r, &body); err != nil {
		a.writeError(w, r, err)
		return
	}
	if body.Search == nil {
		a.writeError(w, r, NewRequestError("search", "is required", nil))
		return
	}
	a.dispatch(w, r, viewstate.SetSearch(*body.Search))
}

func (a *API) handleSetIndustries(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Industries []string `json:"industries"`
	}
	if err := decodeBody(r, &body); err != nil {
		a.writeError(w, r, err)
		return
	}
	a.dispatch(w, r, viewstate.SetIndustries(body.Industries))
}

func (a *API) handleToggleIndustry(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Industry string `json:"industry"`
	}
	if err := decodeBody(r, &body); err != nil {
		a.writeError(w, r, err)
		return
	}
	if body.Industry == "" {
		a.writeError(w, r, NewRequestError("industry", "is required", nil))
		return
	}
	a.dispatch(w, r, viewstate.ToggleIndustry(body.Industry))
}

func (a *API) handleRange(w http.ResponseWriter, r *http.Request) {
	score, err := viewstate.ParseScore(r.PathValue("score"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	var body struct {
		Min *float64 `json:"min"`
		Max *float64 `json:"max"`
	}
	if err := decodeBody(r, &body); err != nil {
		a.writeError(w, r, err)
		return
	}

	switch {
	case body.Min != nil && body.Max != nil:
		a.dispatch(w, r, viewstate.SetRange(score, *body.Min, *body.Max))
	case body.Min != nil:
		a.dispatch(w, r, viewstate.SetMin(score, *body.Min))
	case body.Max != nil:
		a.dispatch(w, r, viewstate.SetMax(score, *body.Max))
	default:
		a.writeError(w, r, NewRequestError("min", "min or max is required", nil))
	}
}

func (a *API) handleGroup(w http.ResponseWriter, r *http.Request) {
	var body struct {
		GroupBy string `json:"groupBy"`
	}
	if err := decodeBody(r, &body); err != nil {
		a.writeError(w, r, err)
		return
	}
	g, err := viewstate.ParseGroupBy(body.GroupBy)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.dispatch(w, r, viewstate.SetGroupBy(g))
}

func (a *API) handleSetColumns(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Columns []string `json:"columns"`
	}
	if err := decodeBody(r, &body); err != nil {
		a.writeError(w, r, err)
		return
	}
	a.dispatch(w, r, viewstate.SetColumns(body.Columns))
}

func (a *API) handleToggleColumn(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Column string `json:"column"`
	}
	if err := decodeBody(r, &body); err != nil {
		a.writeError(w, r, err)
		return
	}
	a.dispatch(w, r, viewstate.ToggleColumn(body.Column))
}

func (a *API) handleRating(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Key   string `json:"key"`
		Stars int    `json:"stars"`
	}
	if err := decodeBody(r, &body); err != nil {
		a.writeError(w, r, err)
		return
	}
	if body.Key == "" {
		a.writeError(w, r, NewRequestError("key", "is required", nil))
		return
	}
	a.dispatch(w, r, viewstate.SetRating(prospect.RatingKey(body.Key), body.Stars))
}

func (a *API) handleClear(w http.ResponseWriter, r *http.Request) {
	a.dispatch(w, r, viewstate.ClearFilters())
}

// IndustriesResponse is the body of GET /api/v1/industries.
type IndustriesResponse struct {
	Industries []string `json:"industries"`
	Total      int      `json:"total"`
	Selected   []string `json:"selected"`
}

func (a *API) handleIndustries(w http.ResponseWriter, r *http.Request) {
	limit := a.industryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			a.writeError(w, r, NewRequestError("limit", "must be a non-negative integer", err))
			return
		}
		limit = n
	}

	all := query.Industries(a.dataset.Records())
	shown := all
	if limit > 0 && len(all) > limit {
		shown = all[:limit]
	}

	writeJSON(w, http.StatusOK, IndustriesResponse{
		Industries: shown,
		Total:      len(all),
		Selected:   a.store.Snapshot().SelectedIndustries,
	})
}

func (a *API) handleColumns(w http.ResponseWriter, r *http.Request) {
	state := a.store.Snapshot()
	ids := prospect.ToggleableColumns()
	columns := make([]Column, 0, len(ids))
	for _, id := range ids {
		f := prospect.MustField(id)
		columns = append(columns, Column{ID: f.ID, Label: f.Label, Visible: state.IsVisible(id)})
	}
	writeJSON(w, http.StatusOK, columns)
}

func (a *API) handleExport(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		exp, err := export.New(format, a.exportOptions)
		if err != nil {
			a.writeError(w, r, err)
			return
		}

		state := a.store.Snapshot()
		view := a.pipeline.Run(r.Context(), a.dataset.Records(), state)

		var buf bytes.Buffer
		err = export.Run(r.Context(), exp, view.Sorted, view.ExportColumns, &buf)
		if a.exports != nil {
			a.exports.RecordExport(format, len(view.Sorted), err)
		}
		if err != nil {
			a.writeError(w, r, err)
			return
		}

		w.Header().Set("Content-Type", exp.ContentType()+"; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", a.downloadName(format)))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(buf.Bytes())
	}
}

// downloadName swaps the configured filename's extension for format.
func (a *API) downloadName(format string) string {
	if format == "csv" {
		return a.filename
	}
	base := strings.TrimSuffix(a.filename, ".csv")
	return base + "." + format
}

func (a *API) handleDataset(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.datasetInfo())
}

func (a *API) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := a.dataset.Reload(r.Context()); err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a.datasetInfo())
}

// decodeBody decodes a JSON request body into v, rejecting unknown fields
// and trailing data.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return NewRequestError("", "request body is required", err)
		}
		return NewRequestError("", "invalid JSON body: "+err.Error(), err)
	}
	if dec.More() {
		return NewRequestError("", "request body must contain a single JSON object", nil)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
