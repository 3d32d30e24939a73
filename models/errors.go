package models

import "errors"

const (
	ErrCodeInvalidInput       = "INVALID_INPUT"
	ErrCodeInvalidStatus      = "INVALID_STATUS"
	ErrCodeInvalidTransition  = "INVALID_TRANSITION"
	ErrCodePriceMismatch      = "PRICE_MISMATCH"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeConflict           = "CONFLICT"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeUnavailable        = "SERVICE_UNAVAILABLE"
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodePaymentUnavailable = "PAYMENT_UNAVAILABLE"
)

// DomainError is a business rule violation that maps onto a client-facing
// status code.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

func InvalidInput(message string) *DomainError {
	return NewDomainError(ErrCodeInvalidInput, message)
}

var (
	ErrNotFound            = errors.New("record not found")
	ErrStatusChanged       = errors.New("status was changed concurrently")
	ErrDatabaseUnavailable = errors.New("database unavailable")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrDuplicate           = errors.New("duplicate record")

	ErrInvalidStatus     = NewDomainError(ErrCodeInvalidStatus, "Invalid status")
	ErrInvalidTransition = NewDomainError(ErrCodeInvalidTransition, "Status transition not allowed")
	ErrNotDeletable      = NewDomainError(ErrCodeConflict, "Record must be in a terminal status before it can be deleted")
	ErrPaymentDisabled   = NewDomainError(ErrCodePaymentUnavailable, "Online payment is not configured")
)
