package auditlog

import "errors"

var (
	ErrFailedToStoreBlock  = errors.New("failed to store block event")
	ErrFailedToQueryBlocks = errors.New("failed to query block events")
)
