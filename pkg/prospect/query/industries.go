package query

import (
	"slices"

	"dealscope/prospector/pkg/prospect"
)

// DefaultIndustryLimit is how many industries the filter panel lists.
const DefaultIndustryLimit = 20

// Industries returns the distinct non-empty industries in records, sorted.
func Industries(records []prospect.Prospect) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for i := range records {
		ind := records[i].CompanyIndustry
		if ind == "" {
			continue
		}
		if _, ok := seen[ind]; ok {
			continue
		}
		seen[ind] = struct{}{}
		out = append(out, ind)
	}
	slices.Sort(out)
	return out
}

// TopIndustries returns at most limit entries of Industries. A limit of 0
// or less returns them all.
func TopIndustries(records []prospect.Prospect, limit int) []string {
	all := Industries(records)
	if limit > 0 && len(all) > limit {
		return all[:limit]
	}
	return all
}
