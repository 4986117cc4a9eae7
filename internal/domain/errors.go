package domain

import "errors"

var (
	ErrNotFound            = errors.New("entity not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrValidation          = errors.New("validation failed")
	ErrRemoteNotConfigured = errors.New("remote provider not configured")
)
