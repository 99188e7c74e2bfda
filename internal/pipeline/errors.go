package pipeline

import "errors"

// Sentinel errors for stage failures, wrapped with context at the call site.
var (
	ErrGenerator  = errors.New("generator failed")
	ErrSelection  = errors.New("file selection failed")
	ErrValidation = errors.New("validation failed")
)
