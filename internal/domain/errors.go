package domain

import "errors"

var (
	ErrUnknownMode     = errors.New("unknown timer mode")
	ErrInvalidDuration = errors.New("duration must be between 1 and 1440 minutes")
	ErrInvalidInterval = errors.New("long break interval must be between 1 and 100")
)
