package apperrors

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidClient       = errors.New("invalid client constraints")
	ErrIllegalTransition   = errors.New("illegal outreach transition")
	ErrNoMatches           = errors.New("no matching properties")
	ErrMalformedGeneration = errors.New("generation output missing required fields")
)
