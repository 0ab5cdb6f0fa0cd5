package query

import (
	"strconv"

	"dealscope/prospector/pkg/prospect"
)

// Cell is one rendered column of a row.
type Cell struct {
	Column string        `json:"column"`
	Label  string        `json:"label"`
	Value  string        `json:"value"`
	Raw    string        `json:"raw"`
	Tier   prospect.Tier `json:"tier,omitempty"`
}

// Row is a prospect projected onto a set of columns.
type Row struct {
	ID                  string             `json:"id"`
	Key                 prospect.RatingKey `json:"key"`
	Rating              int                `json:"rating"`
	ProfileURL          string             `json:"profileUrl,omitempty"`
	CompanyURL          string             `json:"companyUrl,omitempty"`
	DecisionMakerStatus string             `json:"decisionMakerStatus,omitempty"`
	Cells               []Cell             `json:"cells"`
}

// Project selects the given columns of p for display. Unknown column
// identifiers are skipped. The rating column reads from ratings.
func Project(p *prospect.Prospect, columns []string, ratings map[prospect.RatingKey]int) Row {
	key := p.Key()
	rating := ratings[key]
	row := Row{
		ID:                  p.ID,
		Key:                 key,
		Rating:              rating,
		ProfileURL:          p.LinkedInProfileURL,
		CompanyURL:          p.CompanyLinkedInURL,
		DecisionMakerStatus: p.DecisionMakerStatus1,
		Cells:               make([]Cell, 0, len(columns)),
	}

	for _, id := range columns {
		f, ok := prospect.LookupField(id)
		if !ok {
			continue
		}
		cell := Cell{Column: f.ID, Label: f.Label}
		switch f.Kind {
		case prospect.KindRating:
			cell.Value = prospect.Stars(rating)
			cell.Raw = strconv.Itoa(rating)
		case prospect.KindScore:
			cell.Value = f.Display(p)
			cell.Raw = f.Raw(p)
			cell.Tier = prospect.ScoreTier(f.Float(p))
		default:
			cell.Value = f.Display(p)
			cell.Raw = f.Raw(p)
		}
		row.Cells = append(row.Cells, cell)
	}
	return row
}

// ProjectAll projects every prospect in records.
func ProjectAll(records []prospect.Prospect, columns []string, ratings map[prospect.RatingKey]int) []Row {
	rows := make([]Row, len(records))
	for i := range records {
		rows[i] = Project(&records[i], columns, ratings)
	}
	return rows
}
