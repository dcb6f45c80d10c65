// Package apperr defines the tagged error type shared by every layer of the
// API. Components return *Error values; only the HTTP boundary turns them into
// responses.
package apperr

import (
	"errors"
	"net/http"
)

// Kind is the closed set of error categories the API exposes.
type Kind int

const (
	// KindInternal is anything unanticipated. Never exposes detail to clients.
	KindInternal Kind = iota
	// KindValidation is malformed client input: bad id, bad query parameter,
	// missing required field.
	KindValidation
	// KindNotFound is a well-formed reference to a resource that does not exist.
	KindNotFound
	// KindReferential is an insert that references a nonexistent related row.
	KindReferential
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindReferential:
		return "referential"
	default:
		return "internal"
	}
}

// Status returns the HTTP status code for the kind.
func (k Kind) Status() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound, KindReferential:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Canonical client-facing messages.
const (
	MsgInvalidID       = "Invalid ID"
	MsgInvalidQuery    = "Invalid search query"
	MsgMissingColumns  = "Bad request, request missing required columns"
	MsgInvalidBody     = "Invalid request body"
	MsgInvalidIncVotes = "Invalid inc_votes"
	MsgAlreadyExists   = "Resource already exists"
	MsgNotFound        = "Not found"
	MsgInternal        = "Internal server error"

	MsgArticleNotFound = "Article not found"
	MsgCommentNotFound = "Comment not found"
	MsgTopicNotFound   = "Topic not found"
	MsgUserNotFound    = "User not found"
)

// Error is an application error carrying a kind, a client-safe message and
// an optional wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Kind.String() + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Kind.String() + ": " + e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Status returns the HTTP status code for the error.
func (e *Error) Status() int {
	return e.Kind.Status()
}

// Validation returns a KindValidation error.
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// NotFound returns a KindNotFound error.
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// Referential returns a KindReferential error wrapping cause.
func Referential(msg string, cause error) *Error {
	return &Error{Kind: KindReferential, Message: msg, Err: cause}
}

// Internal wraps cause as a KindInternal error.
func Internal(cause error) *Error {
	return &Error{Kind: KindInternal, Message: MsgInternal, Err: cause}
}

// Wrap attaches cause to a copy of e.
func (e *Error) Wrap(cause error) *Error {
	cp := *e
	cp.Err = cause
	return &cp
}

// As reports whether err carries an *Error and returns it.
func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// IsKind reports whether err carries an *Error of kind k.
func IsKind(err error, k Kind) bool {
	ae, ok := As(err)
	return ok && ae.Kind == k
}
