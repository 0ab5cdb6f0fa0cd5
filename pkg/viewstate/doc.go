// Package viewstate holds the ephemeral, per-session parameters of the
// prospect view: search term, industry selection, score ranges, grouping,
// visible columns, and star ratings.
//
// State is an immutable value. Updates are expressed as Actions that return
// a new State, and a Store swaps the whole value on each Dispatch:
//
//	store := viewstate.NewStore(viewstate.Default())
//	state, err := store.Dispatch(
//	    viewstate.SetSearch("acme"),
//	    viewstate.SetMin(viewstate.ScoreCombined, 50),
//	)
//
// Nothing here is persisted. Ratings and filters live only as long as the
// Store does.
package viewstate
