package internal

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ErrorTypeTransport  ErrorType = "TRANSPORT_ERROR"
	ErrorTypeServer     ErrorType = "SERVER_ERROR"
	ErrorTypeDecode     ErrorType = "DECODE_ERROR"
	ErrorTypeValidation ErrorType = "VALIDATION_ERROR"
	ErrorTypeAuth       ErrorType = "AUTH_ERROR"
)

type ErrorCode string

const (
	ErrCodeNoConnection     ErrorCode = "NO_CONNECTION"
	ErrCodeRequestFailed    ErrorCode = "REQUEST_FAILED"
	ErrCodeDecodeFailed     ErrorCode = "DECODE_FAILED"
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeSessionExpired     ErrorCode = "SESSION_EXPIRED"
	ErrCodeAuthFailed         ErrorCode = "AUTH_FAILED"
	ErrCodeNotAuthenticated   ErrorCode = "NOT_AUTHENTICATED"

	ErrCodeNoData         ErrorCode = "NO_DATA"
	ErrCodeDeadlinePassed ErrorCode = "DEADLINE_PASSED"
	ErrCodeInvalidDate    ErrorCode = "INVALID_DATE"
	ErrCodeMissingField   ErrorCode = "MISSING_FIELD"
	ErrCodeStorageFailed  ErrorCode = "STORAGE_FAILED"
	ErrCodeRenderFailed   ErrorCode = "RENDER_FAILED"
)

// AppError is the single error shape that crosses package boundaries.
// StatusCode is the HTTP status of the server response when Type is
// SERVER_ERROR or AUTH_ERROR, zero otherwise.
type AppError struct {
	Type       ErrorType
	Code       ErrorCode
	Message    string
	StatusCode int
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func NewTransportError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeTransport,
		Code:    ErrCodeNoConnection,
		Message: message,
		Cause:   cause,
	}
}

func NewServerError(statusCode int, message string) *AppError {
	return &AppError{
		Type:       ErrorTypeServer,
		Code:       ErrCodeRequestFailed,
		Message:    message,
		StatusCode: statusCode,
	}
}

func NewDecodeError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeDecode,
		Code:    ErrCodeDecodeFailed,
		Message: message,
		Cause:   cause,
	}
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Code:    code,
		Message: message,
	}
}

func NewAuthError(statusCode int, message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeAuth,
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

var (
	ErrNotAuthenticated = NewAuthError(0, "not authenticated", ErrCodeNotAuthenticated)
	ErrSessionExpired   = NewAuthError(0, "session expired, please log in again", ErrCodeSessionExpired)
)

func IsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Normalize maps any failure to an AppError with a user-facing message.
// Every async operation funnels its raw error through here so the
// per-operation fallback chains stay in one place.
func Normalize(err error, fallback string) *AppError {
	appErr, ok := IsAppError(err)
	if !ok {
		return NewTransportError(fallback, err)
	}

	switch appErr.Type {
	case ErrorTypeTransport:
		return NewTransportError("check your connection and try again", err)
	case ErrorTypeServer, ErrorTypeAuth:
		switch appErr.StatusCode {
		case http.StatusUnauthorized, http.StatusInternalServerError:
			// 401 and 500 map to the same user-facing class; the
			// status code is retained so callers can still branch.
			return NewAuthError(appErr.StatusCode, "authentication failed", ErrCodeAuthFailed)
		case http.StatusNotFound:
			return &AppError{
				Type:       ErrorTypeServer,
				Code:       ErrCodeNoData,
				Message:    fallback,
				StatusCode: appErr.StatusCode,
			}
		default:
			msg := appErr.Message
			if msg == "" {
				msg = fallback
			}
			return NewServerError(appErr.StatusCode, msg)
		}
	default:
		return appErr
	}
}

// StatusOf returns the HTTP status carried by err, or zero when err
// is not an AppError holding one.
func StatusOf(err error) int {
	if appErr, ok := IsAppError(err); ok {
		return appErr.StatusCode
	}
	return 0
}
