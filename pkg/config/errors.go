package config

import "errors"

var (
	// ErrParsingConfig wraps env.Parse failures, typically a missing required
	// variable or an unparseable value.
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	// ErrConfigNotLoaded means the cached value disappeared between the parse
	// and the read, which should not happen in practice.
	ErrConfigNotLoaded = errors.New("configuration has not been loaded")

	// ErrNilPointer is returned when Load receives a nil destination.
	ErrNilPointer = errors.New("nil pointer provided to config loader")
)
