package service

import "errors"

// Sentinel errors services wrap their failures with; handlers translate them
// to HTTP statuses with errors.Is.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
)
