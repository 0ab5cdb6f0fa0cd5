package query

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"dealscope/prospector/pkg/prospect"
	"dealscope/prospector/pkg/viewstate"
)

func mk(name string, combined, boomer, burnout float64) prospect.Prospect {
	return prospect.Prospect{
		FullName:                 name,
		CompanyName:              name + " Corp",
		CombinedAcquisitionScore: prospect.Num(combined),
		BoomerScore:              prospect.Num(boomer),
		BurnoutScore:             prospect.Num(burnout),
	}
}

// sampleABC returns A(80,60,10), B(55,80,90), C(20,10,5).
func sampleABC() []prospect.Prospect {
	return []prospect.Prospect{
		mk("C", 20, 10, 5),
		mk("A", 80, 60, 10),
		mk("B", 55, 80, 90),
	}
}

func names(ps []prospect.Prospect) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.FullName
	}
	return out
}

func TestRun_NoFilters(t *testing.T) {
	view := Run(context.Background(), sampleABC(), viewstate.Default())

	if diff := cmp.Diff([]string{"A", "B", "C"}, names(view.Sorted)); diff != "" {
		t.Errorf("Sorted order mismatch (-want +got):\n%s", diff)
	}
	if view.Total != 3 {
		t.Errorf("Expected total 3, got %d", view.Total)
	}
	if view.Stats.AvgCombined != 51.7 {
		t.Errorf("Expected avg combined 51.7, got %v", view.Stats.AvgCombined)
	}
	if len(view.Groups) != 1 || view.Groups[0].Label != LabelAll {
		t.Errorf("Expected a single %q group, got %+v", LabelAll, view.Groups)
	}
}

func TestRun_GroupByCombined(t *testing.T) {
	state, _ := viewstate.Apply(viewstate.Default(), viewstate.SetGroupBy(viewstate.GroupCombined))
	view := Run(context.Background(), sampleABC(), state)

	got := make(map[string][]string)
	var order []string
	for _, g := range view.Groups {
		order = append(order, g.Label)
		got[g.Label] = names(g.Prospects)
	}

	want := map[string][]string{
		LabelExcellent: {"A"},
		LabelGood:      {"B"},
		LabelLow:       {"C"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Groups mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{LabelExcellent, LabelGood, LabelLow}, order); diff != "" {
		t.Errorf("Group order mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_CombinedMin(t *testing.T) {
	state, _ := viewstate.Apply(viewstate.Default(), viewstate.SetMin(viewstate.ScoreCombined, 50))
	view := Run(context.Background(), sampleABC(), state)

	if view.Stats.Total != 2 {
		t.Errorf("Expected 2 prospects, got %d", view.Stats.Total)
	}
	if view.Stats.AvgBoomer != 70.0 {
		t.Errorf("Expected avg boomer 70.0, got %v", view.Stats.AvgBoomer)
	}
	if view.ActiveFilters != 1 {
		t.Errorf("Expected 1 active filter, got %d", view.ActiveFilters)
	}
}

func TestRun_ClearFiltersRestoresAll(t *testing.T) {
	records := sampleABC()
	records[0].CompanyIndustry = "Tech"

	state, err := viewstate.Apply(viewstate.Default(),
		viewstate.SetIndustries([]string{"Tech"}),
		viewstate.SetMin(viewstate.ScoreCombined, 50),
	)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if got := Run(context.Background(), records, state).Stats.Total; got != 0 {
		t.Fatalf("Expected filtered set to be empty, got %d", got)
	}

	cleared, _ := viewstate.Apply(state, viewstate.ClearFilters())
	view := Run(context.Background(), records, cleared)
	if view.Stats.Total != 3 {
		t.Errorf("Expected full set of 3, got %d", view.Stats.Total)
	}
	if view.ActiveFilters != 0 {
		t.Errorf("Expected active filter count 0, got %d", view.ActiveFilters)
	}
}

func TestFilter(t *testing.T) {
	records := []prospect.Prospect{
		{FullName: "Ada Lovelace", CompanyName: "Engines Ltd", LinkedInJobTitle: "Founder", CompanyIndustry: "Tech", CombinedAcquisitionScore: prospect.Num(80)},
		{FullName: "Grace Hopper", CompanyName: "Compilers Inc", LinkedInJobTitle: "Admiral", CompanyIndustry: "Defense", CombinedAcquisitionScore: prospect.Str("65")},
		{FullName: "Alan Turing", CompanyName: "Bombe Co", LinkedInJobTitle: "CTO", CompanyIndustry: "", CombinedAcquisitionScore: prospect.Str("n/a")},
	}

	tests := []struct {
		name     string
		criteria Criteria
		expected []string
	}{
		{"empty criteria", Criteria{Scores: viewstate.DefaultScoreFilters()}, []string{"Ada Lovelace", "Grace Hopper", "Alan Turing"}},
		{"search company", Criteria{Search: "ENGINES", Scores: viewstate.DefaultScoreFilters()}, []string{"Ada Lovelace"}},
		{"search name", Criteria{Search: "hopper", Scores: viewstate.DefaultScoreFilters()}, []string{"Grace Hopper"}},
		{"search title", Criteria{Search: "cto", Scores: viewstate.DefaultScoreFilters()}, []string{"Alan Turing"}},
		{"search industry", Criteria{Search: "defen", Scores: viewstate.DefaultScoreFilters()}, []string{"Grace Hopper"}},
		{"search no match", Criteria{Search: "zzz", Scores: viewstate.DefaultScoreFilters()}, []string{}},
		{"industry membership", Criteria{Industries: []string{"Tech", "Defense"}, Scores: viewstate.DefaultScoreFilters()}, []string{"Ada Lovelace", "Grace Hopper"}},
		{"industry is exact", Criteria{Industries: []string{"tech"}, Scores: viewstate.DefaultScoreFilters()}, []string{}},
		{
			"non-numeric coerces to zero",
			Criteria{Scores: viewstate.ScoreFilters{Combined: viewstate.Range{Min: 0, Max: 0}, Boomer: viewstate.FullRange(), Burnout: viewstate.FullRange()}},
			[]string{"Alan Turing"},
		},
		{
			"string score in range",
			Criteria{Scores: viewstate.ScoreFilters{Combined: viewstate.Range{Min: 60, Max: 70}, Boomer: viewstate.FullRange(), Burnout: viewstate.FullRange()}},
			[]string{"Grace Hopper"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(records, tt.criteria)
			if diff := cmp.Diff(tt.expected, names(got)); diff != "" {
				t.Errorf("Filter mismatch (-want +got):\n%s", diff)
			}
			for i := range got {
				if !tt.criteria.Matches(&got[i]) {
					t.Errorf("Filtered prospect %q does not satisfy criteria", got[i].FullName)
				}
			}
		})
	}
}

func TestFilter_DoesNotModifyInput(t *testing.T) {
	records := sampleABC()
	before := names(records)

	_ = Filter(records, Criteria{Search: "a", Scores: viewstate.DefaultScoreFilters()})
	_ = SortByCombined(records)

	if diff := cmp.Diff(before, names(records)); diff != "" {
		t.Errorf("Input reordered (-want +got):\n%s", diff)
	}
}

func TestSortByCombined_StableOnTies(t *testing.T) {
	records := []prospect.Prospect{
		mk("first", 50, 0, 0),
		mk("top", 90, 0, 0),
		mk("second", 50, 0, 0),
		mk("missing", 0, 0, 0),
		mk("third", 50, 0, 0),
	}
	records[3].CombinedAcquisitionScore = prospect.Number{}

	got := names(SortByCombined(records))
	want := []string{"top", "first", "second", "third", "missing"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Sort mismatch (-want +got):\n%s", diff)
	}
}

func TestBucketBoundaries(t *testing.T) {
	combined := []struct {
		score    float64
		expected string
	}{
		{100, LabelExcellent},
		{70, LabelExcellent},
		{69.999, LabelGood},
		{50, LabelGood},
		{49.99, LabelFair},
		{30, LabelFair},
		{29.99, LabelLow},
		{0, LabelLow},
	}
	for _, tt := range combined {
		if got := CombinedBucket(tt.score); got != tt.expected {
			t.Errorf("CombinedBucket(%v): expected %q, got %q", tt.score, tt.expected, got)
		}
	}

	boomer := []struct {
		score    float64
		expected string
	}{
		{75, LabelHighPriority},
		{74.999, LabelMediumPriority},
		{50, LabelMediumPriority},
		{49.999, LabelLowPriority},
	}
	for _, tt := range boomer {
		if got := BoomerBucket(tt.score); got != tt.expected {
			t.Errorf("BoomerBucket(%v): expected %q, got %q", tt.score, tt.expected, got)
		}
	}
}

func TestGroupSorted_PartitionsExactly(t *testing.T) {
	records := []prospect.Prospect{
		mk("a", 95, 80, 0), mk("b", 72, 20, 0), mk("c", 60, 76, 0),
		mk("d", 55, 50, 0), mk("e", 40, 10, 0), mk("f", 10, 90, 0),
	}
	records[0].CompanyIndustry = "Tech"
	records[2].CompanyIndustry = "Retail"
	records[4].CompanyIndustry = "Tech"
	sorted := SortByCombined(records)

	for _, by := range []viewstate.GroupBy{viewstate.GroupNone, viewstate.GroupCombined, viewstate.GroupBoomer, viewstate.GroupIndustry} {
		t.Run(string(by), func(t *testing.T) {
			groups := GroupSorted(sorted, by)

			// Concatenated members must equal the sorted list as a multiset
			// with each group internally in sorted order.
			seen := make(map[string]int)
			for _, g := range groups {
				last := -1
				for _, p := range g.Prospects {
					seen[p.FullName]++
					idx := indexOf(sorted, p.FullName)
					if idx < last {
						t.Errorf("Group %q out of order at %q", g.Label, p.FullName)
					}
					last = idx
				}
			}
			for _, p := range sorted {
				if seen[p.FullName] != 1 {
					t.Errorf("Prospect %q appears %d times", p.FullName, seen[p.FullName])
				}
			}
		})
	}
}

func indexOf(ps []prospect.Prospect, name string) int {
	for i, p := range ps {
		if p.FullName == name {
			return i
		}
	}
	return -1
}

func TestGroupSorted_Industry(t *testing.T) {
	records := []prospect.Prospect{mk("a", 90, 0, 0), mk("b", 80, 0, 0), mk("c", 70, 0, 0)}
	records[0].CompanyIndustry = "Retail"
	records[2].CompanyIndustry = "Retail"

	groups := GroupSorted(records, viewstate.GroupIndustry)
	if len(groups) != 2 {
		t.Fatalf("Expected 2 groups, got %d", len(groups))
	}
	if groups[0].Label != "Retail" || groups[1].Label != LabelUnknownIndustry {
		t.Errorf("Unexpected group labels %q, %q", groups[0].Label, groups[1].Label)
	}
	if diff := cmp.Diff([]string{"a", "c"}, names(groups[0].Prospects)); diff != "" {
		t.Errorf("Retail members mismatch (-want +got):\n%s", diff)
	}
}

func TestGroupSorted_NoneOnEmpty(t *testing.T) {
	groups := GroupSorted(nil, viewstate.GroupNone)
	if len(groups) != 1 || len(groups[0].Prospects) != 0 {
		t.Errorf("Expected one empty group, got %+v", groups)
	}
	if groups := GroupSorted(nil, viewstate.GroupCombined); len(groups) != 0 {
		t.Errorf("Expected no groups, got %+v", groups)
	}
}

func TestComputeStats(t *testing.T) {
	if got := ComputeStats(nil); got != (Stats{}) {
		t.Errorf("Expected zero stats for empty set, got %+v", got)
	}

	got := ComputeStats(sampleABC())
	want := Stats{Total: 3, AvgCombined: 51.7, AvgBoomer: 50, AvgBurnout: 35}
	if got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}

func TestIndustries(t *testing.T) {
	records := []prospect.Prospect{
		{CompanyIndustry: "Tech"}, {CompanyIndustry: ""}, {CompanyIndustry: "Retail"},
		{CompanyIndustry: "Tech"}, {CompanyIndustry: "Banking"},
	}

	if diff := cmp.Diff([]string{"Banking", "Retail", "Tech"}, Industries(records)); diff != "" {
		t.Errorf("Industries mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Banking", "Retail"}, TopIndustries(records, 2)); diff != "" {
		t.Errorf("TopIndustries mismatch (-want +got):\n%s", diff)
	}
	if got := TopIndustries(records, 0); len(got) != 3 {
		t.Errorf("Expected all 3 industries with no limit, got %d", len(got))
	}
}

func TestProject(t *testing.T) {
	p := mk("Ada", 80.25, 72.5, 10)
	p.ID = "row-1"

	ratings := map[prospect.RatingKey]int{p.Key(): 4}
	row := Project(&p, []string{prospect.ColumnRating, prospect.FieldCombinedAcquisitionScore, prospect.FieldFullName, "bogus"}, ratings)

	if row.ID != "row-1" || row.Rating != 4 {
		t.Errorf("Unexpected row identity: %+v", row)
	}
	if len(row.Cells) != 3 {
		t.Fatalf("Expected 3 cells, got %d", len(row.Cells))
	}
	if row.Cells[0].Value != "★★★★☆" {
		t.Errorf("Expected 4 stars, got %q", row.Cells[0].Value)
	}
	if row.Cells[1].Value != "80.3" || row.Cells[1].Tier != prospect.TierExcellent {
		t.Errorf("Unexpected score cell %+v", row.Cells[1])
	}
	if row.Cells[2].Value != "Ada" {
		t.Errorf("Unexpected name cell %+v", row.Cells[2])
	}
}

func TestProject_CompanyContext(t *testing.T) {
	p := mk("Ada", 80, 60, 10)
	p.CompanyLinkedInURL = "https://linkedin.com/company/ada"
	p.DecisionMakerStatus1 = "Primary Decision Maker"

	row := Project(&p, []string{prospect.FieldFullName}, nil)

	if row.CompanyURL != "https://linkedin.com/company/ada" {
		t.Errorf("Expected company URL on row, got %q", row.CompanyURL)
	}
	if row.DecisionMakerStatus != "Primary Decision Maker" {
		t.Errorf("Expected decision maker status on row, got %q", row.DecisionMakerStatus)
	}
}

func TestRun_StringScoreSpellings(t *testing.T) {
	inf := mk("Inf", 0, 0, 0)
	inf.CombinedAcquisitionScore = prospect.Str("inf")
	hex := mk("Hex", 0, 0, 0)
	hex.CombinedAcquisitionScore = prospect.Str("0x10")

	view := Run(context.Background(), []prospect.Prospect{inf, hex}, viewstate.Default())

	if diff := cmp.Diff([]string{"Hex", "Inf"}, names(view.Sorted)); diff != "" {
		t.Errorf("Sorted mismatch (-want +got):\n%s", diff)
	}
	if got := view.Sorted[0].Combined(); got != 16 {
		t.Errorf("Expected 0x10 to coerce to 16, got %v", got)
	}
}

type recordingObserver struct {
	calls    int
	filtered int
}

func (r *recordingObserver) ObservePipeline(_ string, _ time.Duration, _, filtered int) {
	r.calls++
	r.filtered = filtered
}

func TestPipeline_Observer(t *testing.T) {
	obs := &recordingObserver{}
	p := NewPipeline(WithObserver(obs))

	state, _ := viewstate.Apply(viewstate.Default(), viewstate.SetMin(viewstate.ScoreCombined, 50))
	p.Run(context.Background(), sampleABC(), state)

	if obs.calls != 1 {
		t.Errorf("Expected 1 observation, got %d", obs.calls)
	}
	if obs.filtered != 2 {
		t.Errorf("Expected 2 filtered, got %d", obs.filtered)
	}
}

func TestComputeStats_RoundsHalvesUp(t *testing.T) {
	stats := ComputeStats([]prospect.Prospect{mk("A", 1.4, 0, 0), mk("B", 1.5, 0, 0)})
	if stats.AvgCombined != 1.5 {
		t.Errorf("Expected avg combined 1.5, got %v", stats.AvgCombined)
	}
}
