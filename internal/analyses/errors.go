package analyses

import "errors"

var (
	// ErrEmptyDocument is returned when an uploaded file yields no text.
	ErrEmptyDocument = errors.New("no text could be extracted from the file")
	// ErrFileTooLarge is returned when an upload exceeds the configured limit.
	ErrFileTooLarge = errors.New("file exceeds the upload size limit")
)

const (
	ErrorCodeInvalidInput     = "invalid_input"
	ErrorCodeUnsupportedMedia = "unsupported_media_type"
	ErrorCodeUnprocessable    = "unprocessable_file"
	ErrorCodeTooLarge         = "payload_too_large"
	ErrorCodeIntegrity        = "analysis_failed"
	ErrorCodeInternal         = "internal"
)
