package feature

import "errors"

var (
	ErrFlagNotFound      = errors.New("feature flag not found")
	ErrFailedToReadFlag  = errors.New("failed to read feature flag")
	ErrFailedToWriteFlag = errors.New("failed to write feature flag")
)
