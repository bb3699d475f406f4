package errors

import (
	"fmt"
)

// AppError is the error type used across the planner and admin services.
// Errors are matched by Code via errors.Is, so wrapped or reworded
// instances still compare equal to the package sentinels below.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Err        error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is compares by code so errors.Is(err, ErrValidation) matches any
// validation error regardless of its message.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

func New(code, message string, statusCode int) *AppError {
	return &AppError{Code: code, Message: message, StatusCode: statusCode}
}

// derive builds a new instance carrying a sentinel's code and status.
func derive(base *AppError, message string, err error) *AppError {
	return &AppError{Code: base.Code, Message: message, StatusCode: base.StatusCode, Err: err}
}

func Validation(format string, args ...interface{}) *AppError {
	return derive(ErrValidation, fmt.Sprintf(format, args...), nil)
}

func Coordinate(format string, args ...interface{}) *AppError {
	return derive(ErrCoordinate, fmt.Sprintf(format, args...), nil)
}

func Index(format string, args ...interface{}) *AppError {
	return derive(ErrIndex, fmt.Sprintf(format, args...), nil)
}

func Storage(message string, err error) *AppError {
	return derive(ErrStorage, message, err)
}

func Authentication(message string) *AppError {
	return derive(ErrAuthentication, message, nil)
}

// Server reports a non-2xx, non-401 response from the sync endpoint,
// carrying the status code the server returned.
func Server(status int) *AppError {
	e := derive(ErrServer, fmt.Sprintf("server rejected request with status %d", status), nil)
	e.StatusCode = status
	return e
}

func Network(err error) *AppError {
	return derive(ErrNetwork, "request could not be completed", err)
}
