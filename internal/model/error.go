// internal/model/error.go
package model

import "errors"

// アプリケーション固有のエラー
var (
	ErrNotFound               = errors.New("resource not found")
	ErrInvalidInput           = errors.New("invalid input")
	ErrForbidden              = errors.New("forbidden")
	ErrUnauthorized           = errors.New("authentication required")
	ErrConflict               = errors.New("resource conflict") // slug の重複
	ErrTranslationUnavailable = errors.New("translation service unavailable")
	ErrRender                 = errors.New("document rendering failed")
)

// ErrorDetail is the user-visible part of an error.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

// AppError carries a user-visible detail and wraps one of the sentinels above.
type AppError struct {
	Detail ErrorDetail
	Err    error
}

func NewAppError(code, message, field string, err error) *AppError {
	return &AppError{
		Detail: ErrorDetail{Code: code, Message: message, Field: field},
		Err:    err,
	}
}

// NewValidationError names the offending field and the rule it broke
// (required, max, han).
func NewValidationError(field, reason, message string) *AppError {
	appErr := NewAppError("VALIDATION_ERROR", message, field, ErrInvalidInput)
	appErr.Detail.Reason = reason
	return appErr
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Detail.Message + ": " + e.Err.Error()
	}
	return e.Detail.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// APIErrorResponse is the JSON body written for non-HTML clients.
type APIErrorResponse struct {
	Error ErrorDetail `json:"error"`
}
