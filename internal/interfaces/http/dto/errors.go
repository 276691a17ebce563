package dto

import (
	"net/http"
	"strings"
)

// Error code constants, format ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	ErrCodeValidation = "ERR_VALIDATION"
)

// Authentication error codes
const (
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	ErrCodeForbidden    = "ERR_FORBIDDEN"
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"
)

// Resource error codes
const (
	ErrCodeNotFound      = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	ErrCodeConflict      = "ERR_CONFLICT"
)

// Business rule error codes
const (
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	ErrCodeBusinessRule = "ERR_BUSINESS_RULE"
)

// Input error codes
const (
	ErrCodeBadRequest   = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	ErrCodeInvalidJSON  = "ERR_INVALID_JSON"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation: http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,

	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,
	ErrCodeConflict:      http.StatusConflict,

	ErrCodeInvalidState: http.StatusUnprocessableEntity,
	ErrCodeBusinessRule: http.StatusUnprocessableEntity,

	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status for an error code, defaulting
// to 500 for unknown codes
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// domainErrorHTTPStatus maps domain error codes straight to HTTP status
// codes. Codes not listed here fall through to the INVALID_ prefix rule
// and finally to 500.
var domainErrorHTTPStatus = map[string]int{
	"UNAUTHORIZED":        http.StatusUnauthorized,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"INVALID_TOKEN":       http.StatusUnauthorized,

	"FORBIDDEN": http.StatusForbidden,

	"NOT_FOUND": http.StatusNotFound,

	"ALREADY_EXISTS":       http.StatusConflict,
	"READING_EXISTS":       http.StatusConflict,
	"EMAIL_TAKEN":          http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,

	"INVALID_STATE":  http.StatusUnprocessableEntity,
	"INVALID_TARGET": http.StatusUnprocessableEntity,
}

// DomainErrorHTTPStatus returns the HTTP status for a domain error code.
// Field-level INVALID_* codes map to 422 the way form validation does.
func DomainErrorHTTPStatus(code string) int {
	if status, ok := domainErrorHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
