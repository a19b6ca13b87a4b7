package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode represents a unique error code
type ErrorCode int

// Common error codes
const (
	ErrNotFound ErrorCode = iota + 1000
	ErrBadRequest
	ErrRejected
	ErrUnauthorized
	ErrForbidden
	ErrConflict
	ErrInternal
)

// RejectReason identifies which booking rule turned a request down.
type RejectReason string

const (
	ReasonNoAvailability RejectReason = "no_availability"
	ReasonOutsideWindow  RejectReason = "outside_window"
	ReasonOverlap        RejectReason = "overlap"
	ReasonTimeOff        RejectReason = "timeoff"
)

// AppError represents an application error
type AppError struct {
	Code    ErrorCode    `json:"code"`
	Message string       `json:"message"`
	Reason  RejectReason `json:"reason,omitempty"`
	Err     error        `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode maps the error code to an HTTP status.
func (e *AppError) StatusCode() int {
	switch e.Code {
	case ErrNotFound:
		return http.StatusNotFound
	case ErrBadRequest, ErrRejected:
		return http.StatusBadRequest
	case ErrUnauthorized:
		return http.StatusUnauthorized
	case ErrForbidden:
		return http.StatusForbidden
	case ErrConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error constructors
func NotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Err:     err,
	}
}

func BadRequest(message string, err error) *AppError {
	return &AppError{
		Code:    ErrBadRequest,
		Message: message,
		Err:     err,
	}
}

// Rejected marks a booking request that failed a business rule. These are
// never retried automatically; the caller picks a different slot.
func Rejected(reason RejectReason, message string) *AppError {
	return &AppError{
		Code:    ErrRejected,
		Message: message,
		Reason:  reason,
	}
}

func Forbidden(message string) *AppError {
	return &AppError{
		Code:    ErrForbidden,
		Message: message,
	}
}

func Unauthorized(err error) *AppError {
	return &AppError{
		Code:    ErrUnauthorized,
		Message: "unauthorized",
		Err:     err,
	}
}

func Internal(err error) *AppError {
	return &AppError{
		Code:    ErrInternal,
		Message: "internal server error",
		Err:     err,
	}
}

// IsNotFound reports whether err is an AppError with the not-found code.
func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrNotFound
}

// IsRejected reports whether err is a business-rule rejection.
func IsRejected(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrRejected
}

// RejectedReason returns the rejection reason, or "" when err is not a rejection.
func RejectedReason(err error) RejectReason {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code == ErrRejected {
		return appErr.Reason
	}
	return ""
}
