package heavyuser

import "errors"

var (
	// ErrAlreadyActivatedToday is returned by ActivationStore.Record when an
	// activation already exists for the user and day.
	ErrAlreadyActivatedToday = errors.New("already activated today")

	ErrFailedToRecordActivation = errors.New("failed to record activation")
	ErrFailedToQueryActivations = errors.New("failed to query activations")
)
