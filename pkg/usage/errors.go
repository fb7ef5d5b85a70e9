package usage

import "errors"

var (
	ErrSessionNotFound     = errors.New("study session not found")
	ErrFailedToRecordEvent = errors.New("failed to record usage event")
	ErrFailedToCountUsage  = errors.New("failed to count usage")
)
