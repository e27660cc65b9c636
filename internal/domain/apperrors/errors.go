package apperrors

import (
	"errors"
	"fmt"
)

// Code identifies the precise failure inside an error category.
type Code string

const (
	CodeInvalidFormat      Code = "INVALID_FORMAT"
	CodeWeakPassword       Code = "WEAK_PASSWORD"
	CodeAlreadyExists      Code = "ALREADY_EXISTS"
	CodeInvalidCredentials Code = "INVALID_CREDENTIALS"
	CodeAccountInactive    Code = "ACCOUNT_INACTIVE"
	CodeTokenInvalid       Code = "TOKEN_INVALID"
	CodeTokenExpired       Code = "TOKEN_EXPIRED"
	CodeTokenRevoked       Code = "TOKEN_REVOKED"
	CodeNotFound           Code = "NOT_FOUND"
)

// ValidationError reports malformed input: bad email/phone format or a
// password that fails the minimum policy.
type ValidationError struct {
	Code    Code
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation: %s: %s", e.Field, e.Message)
	}
	return "validation: " + e.Message
}

func Validation(code Code, field, message string) *ValidationError {
	return &ValidationError{Code: code, Field: field, Message: message}
}

// ConflictError reports a uniqueness violation (duplicate email).
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return "conflict: " + e.Message }

func Conflict(message string) *ConflictError { return &ConflictError{Message: message} }

// AuthenticationError reports a failed credential check. The same value is
// returned for unknown email and wrong password so callers cannot probe for
// account existence.
type AuthenticationError struct{}

func (e *AuthenticationError) Error() string { return "authentication: invalid credentials" }

func InvalidCredentials() *AuthenticationError { return &AuthenticationError{} }

// AuthorizationError reports that the account exists and the credentials
// were valid, but the account may not authenticate (suspended, pending).
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string { return "authorization: " + e.Message }

func AccountInactive(status string) *AuthorizationError {
	return &AuthorizationError{Message: "account is " + status}
}

// TokenError reports a refresh/access token failure. The Code distinguishes
// Invalid, Expired, and Revoked for logs and tests; handlers must not echo
// the subtype to untrusted clients.
type TokenError struct {
	Code Code
}

func (e *TokenError) Error() string { return "token: " + string(e.Code) }

func TokenInvalid() *TokenError { return &TokenError{Code: CodeTokenInvalid} }
func TokenExpired() *TokenError { return &TokenError{Code: CodeTokenExpired} }
func TokenRevoked() *TokenError { return &TokenError{Code: CodeTokenRevoked} }

// NotFoundError reports a missing record, e.g. a valid refresh token whose
// user has since been deleted.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

func NotFound(resource string) *NotFoundError { return &NotFoundError{Resource: resource} }

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsTokenRevoked reports whether err is a TokenError with the Revoked code.
func IsTokenRevoked(err error) bool {
	var te *TokenError
	return errors.As(err, &te) && te.Code == CodeTokenRevoked
}
