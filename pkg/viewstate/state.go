package viewstate

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"dealscope/prospector/pkg/prospect"
)

// Score bounds. Every range filter starts out covering the full scale.
const (
	ScoreFloor   = 0.0
	ScoreCeiling = 100.0
)

// GroupBy selects how the sorted view is partitioned.
type GroupBy string

const (
	GroupNone     GroupBy = "none"
	GroupCombined GroupBy = "combined"
	GroupBoomer   GroupBy = "boomer"
	GroupIndustry GroupBy = "industry"
)

// ParseGroupBy accepts the short names above as well as the field
// identifiers the grouping is keyed on ("Combined Acquisition Score",
// "Boomer Score", "companyIndustry"). Matching is case-insensitive.
func ParseGroupBy(s string) (GroupBy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return GroupNone, nil
	case "combined", strings.ToLower(prospect.FieldCombinedAcquisitionScore):
		return GroupCombined, nil
	case "boomer", strings.ToLower(prospect.FieldBoomerScore):
		return GroupBoomer, nil
	case "industry", strings.ToLower(prospect.FieldCompanyIndustry):
		return GroupIndustry, nil
	default:
		return GroupNone, fmt.Errorf("%w: %q", ErrUnknownGroup, s)
	}
}

// Score names one of the three range-filtered scores.
type Score string

const (
	ScoreCombined Score = "combined"
	ScoreBoomer   Score = "boomer"
	ScoreBurnout  Score = "burnout"
)

// ParseScore validates a score name.
func ParseScore(s string) (Score, error) {
	switch Score(strings.ToLower(strings.TrimSpace(s))) {
	case ScoreCombined:
		return ScoreCombined, nil
	case ScoreBoomer:
		return ScoreBoomer, nil
	case ScoreBurnout:
		return ScoreBurnout, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownScore, s)
	}
}

// Range is an inclusive [Min, Max] score interval.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// FullRange returns [0, 100].
func FullRange() Range {
	return Range{Min: ScoreFloor, Max: ScoreCeiling}
}

// Contains reports whether v lies within the range, bounds included.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// IsDefault reports whether the range still spans the full scale.
func (r Range) IsDefault() bool {
	return r.Min <= ScoreFloor && r.Max >= ScoreCeiling
}

// ScoreFilters holds the three range filters.
type ScoreFilters struct {
	Combined Range `json:"combined"`
	Boomer   Range `json:"boomer"`
	Burnout  Range `json:"burnout"`
}

// DefaultScoreFilters returns filters that admit every score.
func DefaultScoreFilters() ScoreFilters {
	return ScoreFilters{Combined: FullRange(), Boomer: FullRange(), Burnout: FullRange()}
}

// Get returns the range for the named score.
func (f ScoreFilters) Get(s Score) Range {
	switch s {
	case ScoreBoomer:
		return f.Boomer
	case ScoreBurnout:
		return f.Burnout
	default:
		return f.Combined
	}
}

// State is one session's complete view configuration. It is a value: actions
// produce a new State and never mutate the one they were given.
type State struct {
	Search             string                     `json:"search"`
	SelectedIndustries []string                   `json:"selectedIndustries"`
	Scores             ScoreFilters               `json:"scoreFilters"`
	GroupBy            GroupBy                    `json:"groupBy"`
	VisibleColumns     []string                   `json:"visibleColumns"`
	Ratings            map[prospect.RatingKey]int `json:"ratings"`
}

// Default returns the state of a fresh session.
func Default() State {
	return State{
		SelectedIndustries: []string{},
		Scores:             DefaultScoreFilters(),
		GroupBy:            GroupNone,
		VisibleColumns:     prospect.DefaultVisibleColumns(),
		Ratings:            map[prospect.RatingKey]int{},
	}
}

// Clone returns a deep copy so the result shares no slices or maps with s.
func (s State) Clone() State {
	out := s
	out.SelectedIndustries = slices.Clone(s.SelectedIndustries)
	if out.SelectedIndustries == nil {
		out.SelectedIndustries = []string{}
	}
	out.VisibleColumns = slices.Clone(s.VisibleColumns)
	if out.VisibleColumns == nil {
		out.VisibleColumns = []string{}
	}
	out.Ratings = maps.Clone(s.Ratings)
	if out.Ratings == nil {
		out.Ratings = map[prospect.RatingKey]int{}
	}
	return out
}

// HasIndustry reports whether industry is in the selection.
func (s State) HasIndustry(industry string) bool {
	return slices.Contains(s.SelectedIndustries, industry)
}

// IsVisible reports whether a column is shown.
func (s State) IsVisible(column string) bool {
	return slices.Contains(s.VisibleColumns, column)
}

// Rating returns the stars given to key, or 0 when unrated.
func (s State) Rating(key prospect.RatingKey) int {
	return s.Ratings[key]
}

// DisplayColumns returns the visible columns in rendering order: the
// toggleable column order first, then any other visible fields in the order
// they were enabled.
func (s State) DisplayColumns() []string {
	out := make([]string, 0, len(s.VisibleColumns))
	known := make(map[string]bool)
	for _, id := range prospect.ToggleableColumns() {
		known[id] = true
		if s.IsVisible(id) {
			out = append(out, id)
		}
	}
	for _, id := range s.VisibleColumns {
		if !known[id] {
			out = append(out, id)
		}
	}
	return out
}

// ExportColumns returns the visible data columns in the order they were
// enabled, excluding the rating pseudo-column.
func (s State) ExportColumns() []string {
	out := make([]string, 0, len(s.VisibleColumns))
	for _, id := range s.VisibleColumns {
		if id != prospect.ColumnRating {
			out = append(out, id)
		}
	}
	return out
}

// ActiveFilterCount is the number shown on the filter badge: one per
// selected industry, plus one if the combined range is narrowed. Boomer and
// burnout ranges do not count.
func ActiveFilterCount(s State) int {
	n := len(s.SelectedIndustries)
	if !s.Scores.Combined.IsDefault() {
		n++
	}
	return n
}
