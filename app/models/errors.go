package models

import (
	"errors"
	"fmt"
)

// Kind classifies a recoverable failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindForbidden
	KindMalformed
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "VALIDATION"
	case KindNotFound:
		return "NOT_FOUND"
	case KindForbidden:
		return "FORBIDDEN"
	case KindMalformed:
		return "MALFORMED_REQUEST"
	default:
		return "INTERNAL"
	}
}

// Error is a tagged, recoverable failure returned to the caller.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func newError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

var (
	ErrTitleTooLong   = newError(KindValidation, "Title is too long!")
	ErrContentTooLong = newError(KindValidation, "Content is too long!")
	ErrTooManyTags    = newError(KindValidation, "Too many tags!")
	ErrInvalidTags    = newError(KindValidation, "Tags are not valid!")
	ErrTagExists      = newError(KindValidation, "Tag already exists")
	ErrTagNotFound    = newError(KindValidation, "Tag not found")

	ErrPostNotFound    = newError(KindNotFound, "Blog not found")
	ErrCommentNotFound = newError(KindNotFound, "Comment not found")

	ErrForbiddenEditPost      = newError(KindForbidden, "You can only edit your own posts.")
	ErrForbiddenDeletePost    = newError(KindForbidden, "You can only delete your own posts.")
	ErrForbiddenEditComment   = newError(KindForbidden, "You can only edit your own comments.")
	ErrForbiddenDeleteComment = newError(KindForbidden, "You can only delete your own comments.")

	ErrInvalidPayload = newError(KindMalformed, "Invalid JSON payload")
	ErrInvalidPostID  = newError(KindMalformed, "Invalid post id")
	ErrInvalidIDs     = newError(KindMalformed, "Invalid ids")
)

type detailedError struct {
	message string
	err     *Error
}

func (e *detailedError) Error() string { return e.message }
func (e *detailedError) Unwrap() error { return e.err }

// Detailf returns an error whose message is built from format while it still
// matches sentinel under errors.Is and reports sentinel's Kind.
func Detailf(sentinel *Error, format string, args ...interface{}) error {
	return &detailedError{message: fmt.Sprintf(format, args...), err: sentinel}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
