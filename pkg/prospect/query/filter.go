package query

import (
	"strings"

	"dealscope/prospector/pkg/prospect"
	"dealscope/prospector/pkg/viewstate"
)

// Criteria is the subset of view state that decides which prospects pass.
type Criteria struct {
	Search     string
	Industries []string
	Scores     viewstate.ScoreFilters
}

// CriteriaFrom extracts filter criteria from a view state.
func CriteriaFrom(s viewstate.State) Criteria {
	return Criteria{
		Search:     s.Search,
		Industries: s.SelectedIndustries,
		Scores:     s.Scores,
	}
}

// Matches reports whether p satisfies every predicate: search, industry
// membership, and all three score ranges.
func (c Criteria) Matches(p *prospect.Prospect) bool {
	return c.matchesSearch(p, strings.ToLower(c.Search)) &&
		c.matchesIndustry(p) &&
		c.matchesScores(p)
}

func (c Criteria) matchesSearch(p *prospect.Prospect, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.CompanyName), needle) ||
		strings.Contains(strings.ToLower(p.FullName), needle) ||
		strings.Contains(strings.ToLower(p.LinkedInJobTitle), needle) ||
		strings.Contains(strings.ToLower(p.CompanyIndustry), needle)
}

func (c Criteria) matchesIndustry(p *prospect.Prospect) bool {
	if len(c.Industries) == 0 {
		return true
	}
	for _, ind := range c.Industries {
		if ind == p.CompanyIndustry {
			return true
		}
	}
	return false
}

func (c Criteria) matchesScores(p *prospect.Prospect) bool {
	return c.Scores.Combined.Contains(p.Combined()) &&
		c.Scores.Boomer.Contains(p.Boomer()) &&
		c.Scores.Burnout.Contains(p.Burnout())
}

// Filter returns the prospects that satisfy c, in their original order.
// The input slice is not modified.
func Filter(records []prospect.Prospect, c Criteria) []prospect.Prospect {
	needle := strings.ToLower(c.Search)
	out := make([]prospect.Prospect, 0, len(records))
	for i := range records {
		p := &records[i]
		if c.matchesSearch(p, needle) && c.matchesIndustry(p) && c.matchesScores(p) {
			out = append(out, *p)
		}
	}
	return out
}
