package indexgen

import "errors"

var (
	ErrMissingContentDir  = errors.New("content directory is required")
	ErrInvalidFrontMatter = errors.New("invalid front matter")
	ErrUnrecognisedDate   = errors.New("unrecognised date")
)
