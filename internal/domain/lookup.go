package domain

import (
	"errors"
	"strings"
)

// LookupErrorKind distinguishes the two observable failure kinds of a lookup.
type LookupErrorKind string

const (
	// LookupFailed means the dictionary service reported no entry or a non-success status.
	LookupFailed LookupErrorKind = "LOOKUP_FAILED"

	// TransportFailed means the request could not be completed or the body could not be decoded.
	TransportFailed LookupErrorKind = "TRANSPORT_FAILED"
)

func (k LookupErrorKind) String() string { return string(k) }

func (k LookupErrorKind) IsValid() bool {
	switch k {
	case LookupFailed, TransportFailed:
		return true
	}
	return false
}

// Generic texts shown when the provider gives nothing better.
const (
	NotFoundTitle       = "No Definitions Found"
	NotFoundMessage     = "Sorry pal, we couldn't find definitions for the word you were looking for."
	NotFoundResolution  = "You can try the search again at later time or head to the web instead."
	TransportTitle      = "Something went wrong"
	TransportMessage    = "The dictionary service could not be reached."
	TransportResolution = "Check your connection and try again."
)

// LookupError is the error payload shown in the "not found" panel.
// It doubles as a Go error so providers can return it directly.
type LookupError struct {
	Kind       LookupErrorKind
	Title      string
	Message    string
	Resolution string

	// Status is the upstream HTTP status, zero for transport failures.
	Status int
}

func (e *LookupError) Error() string {
	if e.Message == "" {
		return "lookup: " + e.Title
	}
	return "lookup: " + e.Title + ": " + e.Message
}

func (e *LookupError) Unwrap() error {
	if e.Kind == TransportFailed {
		return ErrTransport
	}
	return ErrNotFound
}

// Details is the message and resolution joined the way the panel shows them.
func (e *LookupError) Details() string {
	return strings.TrimSpace(e.Message + " " + e.Resolution)
}

// NewNotFoundError returns the generic LookupFailed error used when the
// provider does not describe the failure itself.
func NewNotFoundError(status int) *LookupError {
	return &LookupError{
		Kind:       LookupFailed,
		Title:      NotFoundTitle,
		Message:    NotFoundMessage,
		Resolution: NotFoundResolution,
		Status:     status,
	}
}

// NewTransportError returns the generic TransportFailed error.
func NewTransportError() *LookupError {
	return &LookupError{
		Kind:       TransportFailed,
		Title:      TransportTitle,
		Message:    TransportMessage,
		Resolution: TransportResolution,
	}
}

// AsLookupError extracts a *LookupError from err.
func AsLookupError(err error) (*LookupError, bool) {
	var le *LookupError
	if errors.As(err, &le) {
		return le, true
	}
	return nil, false
}

// Result is the outcome of one lookup: exactly one of Entry or Err is set.
type Result struct {
	Word  string
	Entry *WordEntry
	Err   *LookupError

	// Canceled marks a lookup abandoned by its caller; UIs drop such results.
	Canceled bool
}

// OK reports whether the result holds a word entry.
func (r Result) OK() bool { return r.Entry != nil }

// Ok builds a successful result.
func Ok(word string, entry *WordEntry) Result {
	return Result{Word: word, Entry: entry}
}

// Fail builds a failed result.
func Fail(word string, err *LookupError) Result {
	return Result{Word: word, Err: err}
}
