package domain

import "errors"

var (
	// ErrInvalidParameter indicates that a report parameter is out of range.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrUnknownReport indicates that no report is registered under the given name.
	ErrUnknownReport = errors.New("unknown report")
	// ErrMalformedTable indicates that a source table could not be parsed.
	ErrMalformedTable = errors.New("malformed table")
)
