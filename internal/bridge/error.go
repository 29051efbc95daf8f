package bridge

import "errors"

var (
	ErrMissingBaseURL = errors.New("backend base URL is required")
	ErrEmptyCommand   = errors.New("command name is required")
)
