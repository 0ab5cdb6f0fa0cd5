package main

import (
	"github.com/spf13/cobra"

	"dealscope/prospector/pkg/cli"
	"dealscope/prospector/pkg/config"
	"dealscope/prospector/pkg/viewstate"
)

// filterFlags are the view-state flags shared by query, export and browse.
type filterFlags struct {
	search     string
	industries []string
	groupBy    string
	columns    []string

	combinedMin, combinedMax float64
	boomerMin, boomerMax     float64
	burnoutMin, burnoutMax   float64
}

func addFilterFlags(cmd *cobra.Command, f *filterFlags) {
	flags := cmd.Flags()
	flags.StringVarP(&f.search, "search", "s", "", "case-insensitive search over company, contact, title and industry")
	flags.StringSliceVarP(&f.industries, "industry", "i", nil, "restrict to an industry (repeatable)")
	flags.StringVarP(&f.groupBy, "group-by", "g", "", "grouping: none, combined, boomer or industry")
	flags.StringSliceVar(&f.columns, "columns", nil, "visible columns in order (comma separated field identifiers)")

	flags.Float64Var(&f.combinedMin, "combined-min", viewstate.ScoreFloor, "minimum combined acquisition score")
	flags.Float64Var(&f.combinedMax, "combined-max", viewstate.ScoreCeiling, "maximum combined acquisition score")
	flags.Float64Var(&f.boomerMin, "boomer-min", viewstate.ScoreFloor, "minimum boomer score")
	flags.Float64Var(&f.boomerMax, "boomer-max", viewstate.ScoreCeiling, "maximum boomer score")
	flags.Float64Var(&f.burnoutMin, "burnout-min", viewstate.ScoreFloor, "minimum burnout score")
	flags.Float64Var(&f.burnoutMax, "burnout-max", viewstate.ScoreCeiling, "maximum burnout score")
}

// buildState starts from the configured initial view and applies the flags
// that were set on cmd.
func buildState(cmd *cobra.Command, cfg *config.Config, f *filterFlags) (viewstate.State, error) {
	state, err := cfg.View.InitialState()
	if err != nil {
		return viewstate.State{}, cli.WrapConfigError("view", err)
	}

	flags := cmd.Flags()
	var actions []viewstate.Action
	if f.search != "" {
		actions = append(actions, viewstate.SetSearch(f.search))
	}
	if len(f.industries) > 0 {
		actions = append(actions, viewstate.SetIndustries(f.industries))
	}
	if f.groupBy != "" {
		g, err := viewstate.ParseGroupBy(f.groupBy)
		if err != nil {
			return viewstate.State{}, cli.WrapConfigError("group-by", err)
		}
		actions = append(actions, viewstate.SetGroupBy(g))
	}
	if len(f.columns) > 0 {
		actions = append(actions, viewstate.SetColumns(f.columns))
	}

	ranges := []struct {
		score    viewstate.Score
		minFlag  string
		maxFlag  string
		min, max float64
	}{
		{viewstate.ScoreCombined, "combined-min", "combined-max", f.combinedMin, f.combinedMax},
		{viewstate.ScoreBoomer, "boomer-min", "boomer-max", f.boomerMin, f.boomerMax},
		{viewstate.ScoreBurnout, "burnout-min", "burnout-max", f.burnoutMin, f.burnoutMax},
	}
	for _, r := range ranges {
		if flags.Changed(r.minFlag) || flags.Changed(r.maxFlag) {
			actions = append(actions, viewstate.SetRange(r.score, r.min, r.max))
		}
	}

	state, err = viewstate.Apply(state, actions...)
	if err != nil {
		return viewstate.State{}, cli.WrapConfigError("filters", err)
	}
	return state, nil
}
