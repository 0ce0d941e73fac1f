package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrInvalidAthleteID = errors.New("invalid athlete id")
	ErrInvalidSample    = errors.New("invalid sample")
)
