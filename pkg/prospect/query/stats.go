package query

import (
	"math"

	"dealscope/prospector/pkg/prospect"
)

// Stats summarises a filtered prospect set.
type Stats struct {
	Total       int     `json:"total"`
	AvgCombined float64 `json:"avgCombined"`
	AvgBoomer   float64 `json:"avgBoomer"`
	AvgBurnout  float64 `json:"avgBurnout"`
}

// ComputeStats counts records and averages the three tracked scores,
// rounding each average to one decimal place. An empty set averages to 0.
func ComputeStats(records []prospect.Prospect) Stats {
	var combined, boomer, burnout float64
	for i := range records {
		combined += records[i].Combined()
		boomer += records[i].Boomer()
		burnout += records[i].Burnout()
	}

	total := len(records)
	div := float64(max(total, 1))
	return Stats{
		Total:       total,
		AvgCombined: round1(combined / div),
		AvgBoomer:   round1(boomer / div),
		AvgBurnout:  round1(burnout / div),
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
