package query

import (
	"dealscope/prospector/pkg/prospect"
	"dealscope/prospector/pkg/viewstate"
)

// Group labels.
const (
	LabelAll = "All Prospects"

	LabelExcellent = "Excellent (70-100)"
	LabelGood      = "Good (50-69)"
	LabelFair      = "Fair (30-49)"
	LabelLow       = "Low (0-29)"

	LabelHighPriority   = "High Priority (75-100)"
	LabelMediumPriority = "Medium Priority (50-74)"
	LabelLowPriority    = "Low Priority (0-49)"

	LabelUnknownIndustry = "Unknown"
)

// Group is a labelled run of prospects.
type Group struct {
	Label     string              `json:"label"`
	Prospects []prospect.Prospect `json:"prospects"`
}

// CombinedBucket returns the combined-score group label for score.
func CombinedBucket(score float64) string {
	switch {
	case score >= 70:
		return LabelExcellent
	case score >= 50:
		return LabelGood
	case score >= 30:
		return LabelFair
	default:
		return LabelLow
	}
}

// BoomerBucket returns the boomer-score group label for score.
func BoomerBucket(score float64) string {
	switch {
	case score >= 75:
		return LabelHighPriority
	case score >= 50:
		return LabelMediumPriority
	default:
		return LabelLowPriority
	}
}

// GroupKey returns the label p falls under for the given grouping.
func GroupKey(p *prospect.Prospect, by viewstate.GroupBy) string {
	switch by {
	case viewstate.GroupCombined:
		return CombinedBucket(p.Combined())
	case viewstate.GroupBoomer:
		return BoomerBucket(p.Boomer())
	case viewstate.GroupIndustry:
		if p.CompanyIndustry == "" {
			return LabelUnknownIndustry
		}
		return p.CompanyIndustry
	default:
		return LabelAll
	}
}

// GroupSorted partitions sorted into labelled groups. Groups appear in the
// order their first member appears, and members keep their relative order.
// With GroupNone the result is a single "All Prospects" group, even when
// sorted is empty.
func GroupSorted(sorted []prospect.Prospect, by viewstate.GroupBy) []Group {
	if by == viewstate.GroupNone || by == "" {
		return []Group{{Label: LabelAll, Prospects: sorted}}
	}

	var groups []Group
	index := make(map[string]int)
	for i := range sorted {
		key := GroupKey(&sorted[i], by)
		pos, ok := index[key]
		if !ok {
			pos = len(groups)
			index[key] = pos
			groups = append(groups, Group{Label: key})
		}
		groups[pos].Prospects = append(groups[pos].Prospects, sorted[i])
	}
	return groups
}
