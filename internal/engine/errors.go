package engine

import "errors"

var (
	// ErrInvalidInput marks missing, empty, or non-text résumé input. It is never retryable.
	ErrInvalidInput = errors.New("invalid resume text")
	// ErrAnalysisIntegrity marks a violated internal invariant, which is a programming defect.
	ErrAnalysisIntegrity = errors.New("analysis integrity violation")
)
