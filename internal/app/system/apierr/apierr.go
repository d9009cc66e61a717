// Package apierr defines the JSON error responses returned by the API.
//
// Every failure leaves the server as
//
//	{ "detail": "<human readable message>" }
//
// with validation failures adding an "errors" object keyed by field name.
package apierr

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Kind classifies an Error.
type Kind string

const (
	KindValidation     Kind = "validation"
	KindAuthentication Kind = "authentication"
	KindConflict       Kind = "conflict"
	KindNotFound       Kind = "not_found"
	KindRateLimited    Kind = "rate_limited"
	KindBadRequest     Kind = "bad_request"
	KindInternal       Kind = "internal"
	KindUnavailable    Kind = "unavailable"
)

// Error is an API failure with the status code it maps to.
type Error struct {
	Kind       Kind              `json:"-"`
	StatusCode int               `json:"-"`
	Detail     string            `json:"detail"`
	Fields     map[string]string `json:"errors,omitempty"`

	// Challenge, when set, is sent as the WWW-Authenticate header.
	Challenge string `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Detail
}

// WithDetail returns a copy with a different message.
func (e *Error) WithDetail(detail string) *Error {
	cp := *e
	cp.Detail = detail
	return &cp
}

var (
	// ErrNotAuthenticated is returned when no bearer credential was presented.
	// It is a 403, matching the behaviour clients already depend on.
	ErrNotAuthenticated = &Error{
		Kind:       KindAuthentication,
		StatusCode: http.StatusForbidden,
		Detail:     "Not authenticated",
	}

	// ErrBadAuthScheme is returned when a credential is presented under a
	// scheme other than Bearer.
	ErrBadAuthScheme = &Error{
		Kind:       KindAuthentication,
		StatusCode: http.StatusForbidden,
		Detail:     "Invalid authentication credentials",
	}

	// ErrInvalidCredentials is returned for a bad, expired or unresolvable token.
	ErrInvalidCredentials = &Error{
		Kind:       KindAuthentication,
		StatusCode: http.StatusUnauthorized,
		Detail:     "Could not validate credentials",
		Challenge:  "Bearer",
	}

	// ErrBadLogin is the single response for unknown email and wrong password.
	ErrBadLogin = &Error{
		Kind:       KindAuthentication,
		StatusCode: http.StatusUnauthorized,
		Detail:     "Incorrect email or password",
		Challenge:  "Bearer",
	}

	// ErrEmailTaken is returned by registration. It stays a 400 for client
	// compatibility.
	ErrEmailTaken = &Error{
		Kind:       KindConflict,
		StatusCode: http.StatusBadRequest,
		Detail:     "Email already registered",
	}

	ErrRateLimited = &Error{
		Kind:       KindRateLimited,
		StatusCode: http.StatusTooManyRequests,
		Detail:     "Too many requests",
	}

	ErrInternal = &Error{
		Kind:       KindInternal,
		StatusCode: http.StatusInternalServerError,
		Detail:     "Internal server error",
	}
)

// NotFound builds a 404 for the named resource ("Reminder", "Todo").
func NotFound(resource string) *Error {
	return &Error{
		Kind:       KindNotFound,
		StatusCode: http.StatusNotFound,
		Detail:     resource + " not found",
	}
}

// BadRequest builds a 400 with the given message.
func BadRequest(detail string) *Error {
	return &Error{
		Kind:       KindBadRequest,
		StatusCode: http.StatusBadRequest,
		Detail:     detail,
	}
}

// Validation builds a 422 listing the offending fields.
func Validation(fields map[string]string) *Error {
	return &Error{
		Kind:       KindValidation,
		StatusCode: http.StatusUnprocessableEntity,
		Detail:     "Request validation failed",
		Fields:     fields,
	}
}

// From converts any error into an *Error. Anything that is not already an
// *Error becomes ErrInternal so store messages never reach the client.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return ErrInternal
}

// Write renders err as the JSON error body.
func Write(w http.ResponseWriter, err error) {
	e := From(err)
	if e.Challenge != "" {
		w.Header().Set("WWW-Authenticate", e.Challenge)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(e)
}

// JSON writes v with status 200 (or the given status).
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Message is the {"message": "..."} body used by mutation endpoints.
type Message struct {
	Message string `json:"message"`
}
