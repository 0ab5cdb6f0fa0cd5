// Package tui implements the interactive prospect browser behind the
// browse command.
//
// The browser is a bubbletea program over the same viewstate.Store and
// query.Pipeline the HTTP API uses. Every key press that changes the view
// dispatches a viewstate action and re-runs the pipeline, so the table always
// shows the derived view of the current state.
//
// Groups are shown one at a time; tab and shift+tab move between them. The
// column and industry pickers toggle entries in place, and the digit keys
// rate the selected prospect.
package tui
