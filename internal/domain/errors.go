package domain

import "errors"

// Recoverable conditions. None of them is fatal: callers log and drop the
// offending input, or buffer it for later.
var (
	ErrInvalidIndex          = errors.New("hand index out of range")
	ErrExhaustedCard         = errors.New("card is exhausted")
	ErrSelectionLocked       = errors.New("selection already submitted")
	ErrNotPlanning           = errors.New("not in planning phase")
	ErrUnknownCard           = errors.New("unknown card id")
	ErrInvalidSeat           = errors.New("seat out of range")
	ErrDuplicateSubmission   = errors.New("duplicate submission")
	ErrStaleSubmission       = errors.New("stale submission")
	ErrOutOfOrderSubmission  = errors.New("submission for a future round")
	ErrSubmissionTooFarAhead = errors.New("submission too far ahead of the current round")
)
