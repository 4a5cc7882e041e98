package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
	ErrorTypeExternal     ErrorType = "EXTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidStatus    ErrorCode = "INVALID_STATUS"
	ErrCodeInvalidLabel     ErrorCode = "INVALID_LABEL"
	ErrCodeInvalidDemand    ErrorCode = "INVALID_DEMAND_TYPE"

	ErrCodeTicketNotFound    ErrorCode = "TICKET_NOT_FOUND"
	ErrCodeUserNotFound      ErrorCode = "USER_NOT_FOUND"
	ErrCodeClientNotFound    ErrorCode = "CLIENT_NOT_FOUND"
	ErrCodeAssetNotFound     ErrorCode = "ASSET_NOT_FOUND"
	ErrCodeSelfAdminRevoke   ErrorCode = "SELF_ADMIN_REVOKE"
	ErrCodeForbiddenAccess   ErrorCode = "FORBIDDEN_ACCESS"
	ErrCodeInvalidCredential ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeUserInactive      ErrorCode = "USER_INACTIVE"
	ErrCodeInvalidToken      ErrorCode = "INVALID_TOKEN"
	ErrCodeTokenExpired      ErrorCode = "TOKEN_EXPIRED"
	ErrCodeStoreUnavailable  ErrorCode = "STORE_UNAVAILABLE"
)

// AppError is the single error envelope crossing service boundaries. Handlers
// map it to an HTTP status; everything else wraps into an internal error.
type AppError struct {
	Type       ErrorType  `json:"type"`
	Code       ErrorCode  `json:"code"`
	Message    string     `json:"message"`
	Details    any        `json:"details,omitempty"`
	StatusCode int        `json:"-"`
	Cause      error      `json:"-"`
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
	clone := *e
	clone.Cause = cause
	return &clone
}

func (e *AppError) WithDetails(details any) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewForbiddenError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// NewExternalError covers connectivity failures against the backing store or
// any remote collaborator. Never retried; scoped to the triggering action.
func NewExternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeExternal,
		Code:       ErrCodeStoreUnavailable,
		Message:    message,
		StatusCode: http.StatusBadGateway,
		Cause:      cause,
	}
}

var (
	ErrTicketNotFound = NewNotFoundError("chamado not found", ErrCodeTicketNotFound)
	ErrUserNotFound   = NewNotFoundError("user not found", ErrCodeUserNotFound)
	ErrClientNotFound = NewNotFoundError("client not found", ErrCodeClientNotFound)
	ErrAssetNotFound  = NewNotFoundError("asset not found", ErrCodeAssetNotFound)

	ErrInvalidCredentials = NewUnauthorizedError("invalid email or password", ErrCodeInvalidCredential)
	ErrUserInactive       = NewForbiddenError("user account is inactive", ErrCodeUserInactive)
	ErrInvalidToken       = NewUnauthorizedError("invalid token", ErrCodeInvalidToken)
	ErrTokenExpired       = NewUnauthorizedError("token has expired", ErrCodeTokenExpired)

	ErrSelfAdminRevoke = NewValidationError("cannot revoke admin view from your own account", ErrCodeSelfAdminRevoke)
	ErrForbidden       = NewForbiddenError("insufficient permissions", ErrCodeForbiddenAccess)
)

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

type ErrorResponse struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, any) {
	return e.StatusCode, ErrorResponse{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType `json:"type"`
		Code    ErrorCode `json:"code"`
		Message string    `json:"message"`
		Details any       `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
