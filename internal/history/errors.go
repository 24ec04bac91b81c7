package history

import "errors"

var (
	ErrNotFound        = errors.New("history entry not found")
	ErrMissingOwner    = errors.New("owner is required")
	ErrInvalidAnalysis = errors.New("invalid analysis data: missing or invalid scores")
)
