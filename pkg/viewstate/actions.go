package viewstate

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"dealscope/prospector/pkg/prospect"
)

// Action derives a new State from the current one. Actions must not mutate
// their argument.
type Action func(State) (State, error)

// Apply runs actions in order against s and returns the final state. If any
// action fails, s is returned unchanged along with the error.
func Apply(s State, actions ...Action) (State, error) {
	next := s
	for _, act := range actions {
		var err error
		next, err = act(next)
		if err != nil {
			return s, err
		}
	}
	return next, nil
}

// SetSearch replaces the search term.
func SetSearch(term string) Action {
	return func(s State) (State, error) {
		out := s.Clone()
		out.Search = term
		return out, nil
	}
}

// ToggleIndustry adds industry to the selection, or removes it if present.
func ToggleIndustry(industry string) Action {
	return func(s State) (State, error) {
		out := s.Clone()
		if i := slices.Index(out.SelectedIndustries, industry); i >= 0 {
			out.SelectedIndustries = slices.Delete(out.SelectedIndustries, i, i+1)
		} else {
			out.SelectedIndustries = append(out.SelectedIndustries, industry)
		}
		return out, nil
	}
}

// SetIndustries replaces the selection. Duplicates are dropped, keeping the
// first occurrence.
func SetIndustries(industries []string) Action {
	return func(s State) (State, error) {
		out := s.Clone()
		out.SelectedIndustries = make([]string, 0, len(industries))
		for _, ind := range industries {
			if !slices.Contains(out.SelectedIndustries, ind) {
				out.SelectedIndustries = append(out.SelectedIndustries, ind)
			}
		}
		return out, nil
	}
}

// SetRange sets one score's range. Bounds are clamped to [0, 100]; a minimum
// above the maximum is rejected.
func SetRange(score Score, min, max float64) Action {
	return func(s State) (State, error) {
		if math.IsNaN(min) || math.IsNaN(max) {
			return s, fmt.Errorf("%w: bounds must be numbers", ErrInvalidRange)
		}
		min = clamp(min)
		max = clamp(max)
		if min > max {
			return s, fmt.Errorf("%w: min %g exceeds max %g", ErrInvalidRange, min, max)
		}

		out := s.Clone()
		r := Range{Min: min, Max: max}
		switch score {
		case ScoreCombined:
			out.Scores.Combined = r
		case ScoreBoomer:
			out.Scores.Boomer = r
		case ScoreBurnout:
			out.Scores.Burnout = r
		default:
			return s, fmt.Errorf("%w: %q", ErrUnknownScore, score)
		}
		return out, nil
	}
}

// SetMin moves only the lower bound of a score's range.
func SetMin(score Score, min float64) Action {
	return func(s State) (State, error) {
		return SetRange(score, min, s.Scores.Get(score).Max)(s)
	}
}

// SetMax moves only the upper bound of a score's range.
func SetMax(score Score, max float64) Action {
	return func(s State) (State, error) {
		return SetRange(score, s.Scores.Get(score).Min, max)(s)
	}
}

func clamp(v float64) float64 {
	return math.Min(math.Max(v, ScoreFloor), ScoreCeiling)
}

// SetGroupBy changes the grouping. g may be any form ParseGroupBy accepts;
// the canonical short name is stored.
func SetGroupBy(g GroupBy) Action {
	return func(s State) (State, error) {
		parsed, err := ParseGroupBy(string(g))
		if err != nil {
			return s, err
		}
		out := s.Clone()
		out.GroupBy = parsed
		return out, nil
	}
}

// ToggleColumn shows a hidden column by appending it, or hides a visible one.
func ToggleColumn(column string) Action {
	return func(s State) (State, error) {
		if _, ok := prospect.LookupField(column); !ok {
			return s, fmt.Errorf("%w: %q", ErrUnknownColumn, column)
		}
		out := s.Clone()
		if i := slices.Index(out.VisibleColumns, column); i >= 0 {
			out.VisibleColumns = slices.Delete(out.VisibleColumns, i, i+1)
		} else {
			out.VisibleColumns = append(out.VisibleColumns, column)
		}
		return out, nil
	}
}

// SetColumns replaces the visible column list. Order is kept and duplicates
// dropped; unknown identifiers are rejected.
func SetColumns(columns []string) Action {
	return func(s State) (State, error) {
		cols := make([]string, 0, len(columns))
		var unknown []string
		for _, c := range columns {
			if _, ok := prospect.LookupField(c); !ok {
				unknown = append(unknown, c)
				continue
			}
			if !slices.Contains(cols, c) {
				cols = append(cols, c)
			}
		}
		if len(unknown) > 0 {
			return s, fmt.Errorf("%w: %s", ErrUnknownColumn, strings.Join(unknown, ", "))
		}
		out := s.Clone()
		out.VisibleColumns = cols
		return out, nil
	}
}

// SetRating records a 1-5 star rating under key.
func SetRating(key prospect.RatingKey, stars int) Action {
	return func(s State) (State, error) {
		if stars < 1 || stars > 5 {
			return s, fmt.Errorf("%w: got %d", ErrInvalidRating, stars)
		}
		out := s.Clone()
		out.Ratings[key] = stars
		return out, nil
	}
}

// ClearFilters empties the industry selection and resets all three score
// ranges. Search, grouping, columns, and ratings are left alone.
func ClearFilters() Action {
	return func(s State) (State, error) {
		out := s.Clone()
		out.SelectedIndustries = []string{}
		out.Scores = DefaultScoreFilters()
		return out, nil
	}
}
