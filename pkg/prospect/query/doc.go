// Package query implements the prospect query pipeline.
//
// A view is derived from a record list and a viewstate.State in four pure
// steps:
//
//  1. Filter keeps prospects matching the search term (case-insensitive
//     substring of company, contact name, title, or industry), the industry
//     selection, and all three inclusive score ranges.
//  2. SortByCombined orders them by Combined Acquisition Score, highest
//     first, keeping ties in input order.
//  3. GroupSorted partitions the sorted list by combined bucket, boomer
//     bucket, or industry. Groups appear in first-occurrence order.
//  4. ComputeStats counts the filtered set and averages its scores.
//
// Run performs all four and returns a View. Project renders a prospect onto
// the visible columns for display.
//
// Scores are coerced leniently throughout: a missing or non-numeric value
// is 0. Nothing in this package returns an error.
package query
