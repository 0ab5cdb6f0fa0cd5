package query

import (
	"slices"

	"dealscope/prospector/pkg/prospect"
)

// SortByCombined returns a copy of records ordered by Combined Acquisition
// Score, highest first. Equal scores keep their input order.
func SortByCombined(records []prospect.Prospect) []prospect.Prospect {
	out := slices.Clone(records)
	slices.SortStableFunc(out, func(a, b prospect.Prospect) int {
		sa, sb := a.Combined(), b.Combined()
		switch {
		case sa > sb:
			return -1
		case sa < sb:
			return 1
		default:
			return 0
		}
	})
	return out
}
