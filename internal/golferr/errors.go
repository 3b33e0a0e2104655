// Package golferr defines the tagged error type shared by every clawgolf command.
package golferr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// Kind classifies an error so callers can branch without inspecting messages.
type Kind string

const (
	// KindValidation is bad or missing CLI input, detected before any network call.
	KindValidation Kind = "validation"
	// KindAuthentication is a failed token issuance.
	KindAuthentication Kind = "authentication"
	// KindConflict is a 409 that carries a roundId and can be turned into a resume.
	KindConflict Kind = "conflict"
	// KindRequest is any other non-2xx response or transport failure.
	KindRequest Kind = "request"
	// KindState means the local state cannot serve the command (e.g. no active round).
	KindState Kind = "state"
)

// Error is the single error type surfaced to the command dispatcher.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Payload []byte
	Err     error
}

// Error implements the error interface. It is always a single line.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap implements the errors.Unwrap interface
func (e *Error) Unwrap() error {
	return e.Err
}

// Field returns a top-level string field of the response payload.
// The boolean reports presence, so an empty string and a missing key differ.
func (e *Error) Field(name string) (string, bool) {
	if len(e.Payload) == 0 || !gjson.ValidBytes(e.Payload) {
		return "", false
	}
	res := gjson.GetBytes(e.Payload, name)
	if !res.Exists() {
		return "", false
	}
	return res.String(), true
}

// RoundID returns the non-empty roundId carried by a conflict payload.
func (e *Error) RoundID() (string, bool) {
	id, ok := e.Field("roundId")
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// Validation creates a user input error.
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// Validationf creates a user input error with a formatted message.
func Validationf(format string, args ...any) *Error {
	return Validation(fmt.Sprintf(format, args...))
}

// State creates a local state error.
func State(msg string) *Error {
	return &Error{Kind: KindState, Message: msg}
}

// FromResponse classifies a non-2xx response.
func FromResponse(status int, body []byte) *Error {
	msg := fmt.Sprintf("Request failed (%d)", status)
	if gjson.ValidBytes(body) {
		if res := gjson.GetBytes(body, "error"); res.Exists() {
			msg = singleLine(res.String())
		}
	}

	e := &Error{
		Kind:    KindRequest,
		Status:  status,
		Message: msg,
		Payload: body,
	}
	if status == http.StatusConflict {
		if _, ok := e.RoundID(); ok {
			e.Kind = KindConflict
		}
	}
	return e
}

// Transport wraps a failure that happened before any response arrived.
func Transport(err error) *Error {
	return &Error{
		Kind:    KindRequest,
		Message: singleLine(err.Error()),
		Err:     err,
	}
}

// Authentication re-tags a token endpoint failure, keeping status and payload.
func Authentication(err error) *Error {
	var ge *Error
	if errors.As(err, &ge) {
		return &Error{
			Kind:    KindAuthentication,
			Status:  ge.Status,
			Message: "Authentication failed: " + ge.Message,
			Payload: ge.Payload,
			Err:     err,
		}
	}
	return &Error{
		Kind:    KindAuthentication,
		Message: "Authentication failed: " + singleLine(err.Error()),
		Err:     err,
	}
}

// KindOf extracts the kind from an error chain, or "" for foreign errors.
func KindOf(err error) Kind {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return ""
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// As returns the *Error in err's chain.
func As(err error) (*Error, bool) {
	var ge *Error
	ok := errors.As(err, &ge)
	return ge, ok
}

func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
