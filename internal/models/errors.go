package models

import "errors"

var (
	ErrInvalidTimeEncoding  = errors.New("invalid HHMM time encoding")
	ErrInvalidInterval      = errors.New("invalid interval")
	ErrScheduleConflict     = errors.New("the specified time range conflicts with an existing record")
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrNotFound             = errors.New("not found")
)
