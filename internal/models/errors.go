package models

import "errors"

var (
	// ErrInvalidTestCases is returned when pasted or imported test cases are not valid JSON
	ErrInvalidTestCases = errors.New("invalid test cases")
	// ErrMissingField is returned when a required field is empty or whitespace-only
	ErrMissingField = errors.New("missing required field")
)
