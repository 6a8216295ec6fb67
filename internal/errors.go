package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type ErrorType string

const (
	ErrorTypeValidation    ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound      ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized  ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden     ErrorType = "FORBIDDEN"
	ErrorTypeMalformedAuth ErrorType = "MALFORMED_AUTH_CONTEXT"
	ErrorTypeInternal      ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeMissingFields    ErrorCode = "MISSING_FIELDS"
	ErrCodeInvalidBody      ErrorCode = "INVALID_BODY"
	ErrCodeInvalidID        ErrorCode = "INVALID_ID"
	ErrCodeInvalidDate      ErrorCode = "INVALID_DATE"
	ErrCodeInvalidEnum      ErrorCode = "INVALID_ENUM"
	ErrCodeEmailTaken       ErrorCode = "EMAIL_TAKEN"
	ErrCodeUnknownReference ErrorCode = "UNKNOWN_REFERENCE"

	ErrCodeEmployeeNotFound   ErrorCode = "EMPLOYEE_NOT_FOUND"
	ErrCodeDepartmentNotFound ErrorCode = "DEPARTMENT_NOT_FOUND"
	ErrCodeVacationNotFound   ErrorCode = "VACATION_NOT_FOUND"
	ErrCodeContractNotFound   ErrorCode = "CONTRACT_NOT_FOUND"
	ErrCodeWorkHourNotFound   ErrorCode = "WORK_HOUR_NOT_FOUND"

	ErrCodeInvalidStatus     ErrorCode = "INVALID_STATUS"
	ErrCodeInvalidTransition ErrorCode = "INVALID_STATUS_TRANSITION"

	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeEmployeeInactive   ErrorCode = "EMPLOYEE_INACTIVE"
	ErrCodeMissingToken       ErrorCode = "MISSING_TOKEN"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"
	ErrCodeMissingRole        ErrorCode = "MISSING_ROLE"
	ErrCodeMalformedIdentity  ErrorCode = "MALFORMED_IDENTITY"
	ErrCodeAccessDenied       ErrorCode = "ACCESS_DENIED"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// GetDetailedMessage joins field-level messages when present, otherwise returns Message.
func (e *AppError) GetDetailedMessage() string {
	if validationErrors, ok := e.Details.(ValidationErrors); ok && len(validationErrors.Errors) > 0 {
		messages := make([]string, len(validationErrors.Errors))
		for i, err := range validationErrors.Errors {
			messages[i] = err.Message
		}
		return strings.Join(messages, "; ")
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches on Code so that sentinel AppErrors survive wrapping and WithCause copies.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.StatusCode == t.StatusCode
}

// WithCause returns a copy of e carrying cause; sentinels stay untouched.
func (e *AppError) WithCause(cause error) *AppError {
	cp := *e
	cp.Cause = cause
	return &cp
}

// WithMessage returns a copy of e with a different message.
func (e *AppError) WithMessage(message string) *AppError {
	cp := *e
	cp.Message = message
	return &cp
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewValidationFieldError(field, message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       ErrCodeValidationFailed,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Details: ValidationErrors{
			Errors: []ValidationError{
				{Field: field, Message: message, Code: string(code)},
			},
		},
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

func NewMalformedAuthError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeMalformedAuth,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
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

var (
	ErrMissingRequiredFields = NewValidationError("Missing required fields", ErrCodeMissingFields)
	ErrInvalidRequestBody    = NewValidationError("invalid request body", ErrCodeInvalidBody)
	ErrInvalidID             = NewValidationError("invalid id", ErrCodeInvalidID)
	ErrEmailTaken            = NewValidationError("email already exists", ErrCodeEmailTaken)

	ErrEmployeeNotFound   = NewNotFoundError("employee not found", ErrCodeEmployeeNotFound)
	ErrDepartmentNotFound = NewNotFoundError("department not found", ErrCodeDepartmentNotFound)
	ErrVacationNotFound   = NewNotFoundError("vacation not found", ErrCodeVacationNotFound)
	ErrContractNotFound   = NewNotFoundError("contract not found", ErrCodeContractNotFound)
	ErrWorkHourNotFound   = NewNotFoundError("work hour entry not found", ErrCodeWorkHourNotFound)

	ErrInvalidStatus     = NewValidationError("invalid status", ErrCodeInvalidStatus)
	ErrInvalidTransition = NewValidationError("invalid status transition", ErrCodeInvalidTransition)

	ErrInvalidCredentials = NewUnauthorizedError("invalid email or password", ErrCodeInvalidCredentials)
	ErrEmployeeInactive   = NewForbiddenError("account is deactivated", ErrCodeEmployeeInactive)
	ErrMissingToken       = NewUnauthorizedError("missing authorization token", ErrCodeMissingToken)
	ErrInvalidToken       = NewUnauthorizedError("invalid token", ErrCodeInvalidToken)
	ErrTokenExpired       = NewUnauthorizedError("token has expired", ErrCodeTokenExpired)
	ErrMissingRole        = NewUnauthorizedError("invalid token", ErrCodeMissingRole)
	ErrMalformedIdentity  = NewMalformedAuthError("malformed token identity", ErrCodeMalformedIdentity)
	ErrAccessDenied       = NewForbiddenError("access denied", ErrCodeAccessDenied)
	ErrHROnly             = NewForbiddenError("only HR can perform this action", ErrCodeAccessDenied)
	ErrForeignRecord      = NewForbiddenError("access to another employee's data is denied", ErrCodeAccessDenied)
)

// IsAppError unwraps err to the first *AppError in its chain.
func IsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Response is the wire shape of every error: {"error": "<message>"}.
type Response struct {
	Error string `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, Response) {
	return e.StatusCode, Response{Error: e.GetDetailedMessage()}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
