package apperrors

import "errors"

var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrNotFound               = errors.New("not found")
	ErrAssetMissing           = errors.New("sound asset missing")
	ErrHardwareUnsupported    = errors.New("haptics hardware unsupported")
	ErrPersistenceUnavailable = errors.New("persistence unavailable")
)
