package sqlitedb

import "errors"

var (
	ErrMissingPath        = errors.New("sqlite store path is required")
	ErrFailedToOpenDB     = errors.New("failed to open sqlite database")
	ErrConnectionNotAlive = errors.New("sqlite database did not answer ping")
)
