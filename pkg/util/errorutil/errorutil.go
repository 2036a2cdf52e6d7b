package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Machine-readable error codes returned to clients.
const (
	CodeNoCredential      = "NO_CREDENTIAL"
	CodeCredentialExpired = "CREDENTIAL_EXPIRED"
	CodeCredentialInvalid = "CREDENTIAL_INVALID"
	CodeIdentityGone      = "IDENTITY_GONE"
	CodeAccessRevoked     = "ACCESS_REVOKED"
	CodeUnauthenticated   = "UNAUTHENTICATED"
	CodeRoleNotPermitted  = "ROLE_NOT_PERMITTED"
	CodeStoreUnavailable  = "STORE_UNAVAILABLE"
	CodeNotFound          = "NOT_FOUND"
	CodeInternal          = "INTERNAL_ERROR"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewNoCredential() error {
	return NewDomainError(CodeNoCredential, "not authorized, no token provided", http.StatusUnauthorized, nil)
}

func NewCredentialExpired() error {
	return NewDomainError(CodeCredentialExpired, "token expired, please log in again", http.StatusUnauthorized, nil)
}

func NewCredentialInvalid() error {
	return NewDomainError(CodeCredentialInvalid, "not authorized, token is invalid", http.StatusUnauthorized, nil)
}

func NewIdentityGone() error {
	return NewDomainError(CodeIdentityGone, "account for this token no longer exists", http.StatusUnauthorized, nil)
}

func NewAccessRevoked() error {
	return NewDomainError(CodeAccessRevoked, "account is deactivated, contact an administrator", http.StatusForbidden, nil)
}

func NewUnauthenticated() error {
	return NewDomainError(CodeUnauthenticated, "not authenticated", http.StatusUnauthorized, nil)
}

// NewRoleNotPermitted reports a policy denial. When allowed is nil the response stays generic.
func NewRoleNotPermitted(role string, allowed []string) error {
	if allowed == nil {
		return NewDomainError(CodeRoleNotPermitted, "role is not permitted to access this resource", http.StatusForbidden, nil)
	}
	message := fmt.Sprintf("role '%s' is not permitted to access this resource; allowed roles: %s",
		role, strings.Join(allowed, ", "))
	return NewDomainError(CodeRoleNotPermitted, message, http.StatusForbidden, map[string]any{
		"allowed_roles": allowed,
	})
}

func NewStoreUnavailable(err error) error {
	return &DomainError{
		Code:       CodeStoreUnavailable,
		Message:    "account store unavailable, please retry",
		HTTPStatus: http.StatusServiceUnavailable,
		Err:        err,
	}
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return &DomainError{
			Code:       codeForStatus(fiberErr.Code),
			Message:    fiberErr.Message,
			HTTPStatus: fiberErr.Code,
		}
	}
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func MapError(err error) error {
	return ToDomainError(err)
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusUnauthorized:
		return CodeUnauthenticated
	}
	if status >= http.StatusInternalServerError {
		return CodeInternal
	}
	return strings.ToUpper(strings.ReplaceAll(http.StatusText(status), " ", "_"))
}
