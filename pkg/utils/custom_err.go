package utils

import "errors"

var (
	ErrValidation      = errors.New("invalid questionnaire answers")
	ErrUnknownSession  = errors.New("unknown or expired session")
	ErrEmptyCatalog    = errors.New("vehicle catalog is empty")
	ErrVehicleNotFound = errors.New("vehicle not found")
	ErrQuestionCatalog = errors.New("question catalog unavailable")
	ErrAIUnavailable   = errors.New("ai service unavailable")
	ErrDatabaseError   = errors.New("database error")
)
