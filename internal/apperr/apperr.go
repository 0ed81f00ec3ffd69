package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error so the request boundary can map it to a status
// code without string matching.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindShapeMismatch
	KindOutOfOrder
	KindPermissionDenied
	KindInvalidState
	KindConflict
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap allows errors.Is and errors.As to work.
func (e *Error) Unwrap() error {
	return e.Err
}

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "NotFound"
	case KindShapeMismatch:
		return "ShapeMismatch"
	case KindOutOfOrder:
		return "OutOfOrder"
	case KindPermissionDenied:
		return "PermissionDenied"
	case KindInvalidState:
		return "InvalidState"
	case KindConflict:
		return "Conflict"
	default:
		return "Unknown"
	}
}

func New(kind Kind, message string) error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func NotFound(entity string) error {
	return &Error{Kind: KindNotFound, Message: entity + " not found"}
}

// KindOf reports the Kind carried by err, or KindUnknown for plain errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// MessageOf returns the client-facing message carried by err, falling back
// to err.Error() for plain errors.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

func IsNotFound(err error) bool         { return KindOf(err) == KindNotFound }
func IsShapeMismatch(err error) bool    { return KindOf(err) == KindShapeMismatch }
func IsOutOfOrder(err error) bool       { return KindOf(err) == KindOutOfOrder }
func IsPermissionDenied(err error) bool { return KindOf(err) == KindPermissionDenied }
func IsInvalidState(err error) bool     { return KindOf(err) == KindInvalidState }
func IsConflict(err error) bool         { return KindOf(err) == KindConflict }
