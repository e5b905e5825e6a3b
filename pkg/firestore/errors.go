package firestore

import (
	"errors"
	"net/http"
)

const (
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
	ErrCodeUnavailable   = "UNAVAILABLE"
	ErrCodeServerError   = "SERVER_ERROR"
)

var (
	ErrNotFound      = errors.New(ErrCodeNotFound)
	ErrAlreadyExists = errors.New(ErrCodeAlreadyExists)
	ErrUnavailable   = errors.New(ErrCodeUnavailable)
	ErrServerError   = errors.New(ErrCodeServerError)
)

var statusErrorMap = map[int]error{
	http.StatusNotFound:           ErrNotFound,
	http.StatusConflict:           ErrAlreadyExists,
	http.StatusTooManyRequests:    ErrUnavailable,
	http.StatusServiceUnavailable: ErrUnavailable,
}

// MapStatusToError maps a non-2xx response status onto the closed error set
// callers branch on.
func MapStatusToError(statusCode int) error {
	if err, exists := statusErrorMap[statusCode]; exists {
		return err
	}

	return ErrServerError
}
