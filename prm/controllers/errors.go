package controllers

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrValidation maps to 422, ErrConflict to 409.
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("conflict")
)
