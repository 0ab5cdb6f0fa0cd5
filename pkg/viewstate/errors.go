package viewstate

import "errors"

var (
	// ErrInvalidRange is returned when a score range is malformed.
	ErrInvalidRange = errors.New("invalid score range")

	// ErrInvalidRating is returned when a rating is outside 1-5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")

	// ErrUnknownColumn is returned when a column identifier is not a known field.
	ErrUnknownColumn = errors.New("unknown column")

	// ErrUnknownGroup is returned for an unrecognised grouping key.
	ErrUnknownGroup = errors.New("unknown grouping")

	// ErrUnknownScore is returned for a score name other than combined, boomer, or burnout.
	ErrUnknownScore = errors.New("unknown score")
)
