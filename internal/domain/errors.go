package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrConflict            = errors.New("resource conflict")
	ErrNoActiveSession     = errors.New("no active sleep session")
	ErrNoAnalysisAvailable = errors.New("no sleep analysis available")
	ErrInvalidInput        = errors.New("invalid input")
)
