package routes

import "errors"

var (
	// ErrInvalidTable indicates a route table file could not be parsed.
	ErrInvalidTable = errors.New("routes: invalid table")
)
