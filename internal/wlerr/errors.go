// Package wlerr holds the structured error type shared by every internal
// package and re-exported at the module root. It lives here, rather than at
// the root, so internal packages can construct it without importing the
// root package and creating an import cycle.
package wlerr

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Code represents the high-level error categories the core surfaces.
type Code string

const (
	CodeAlreadyExists Code = "already exists"
	CodeNotFound      Code = "not found"
	CodeInvalidArgs   Code = "invalid arguments"
	CodeInternal      Code = "internal error"
	CodeTimeout       Code = "timeout"
	CodeCanceled      Code = "canceled"
	CodeNotSupported  Code = "not supported"
)

// Error is a structured error carrying the operation, the interface it
// happened on, and the correlation id of the request involved, if any.
type Error struct {
	Op        string
	Interface int
	RequestID uuid.UUID
	Code      Code
	Msg       string
	Inner     error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = string(e.Code)
	}
	if e.Interface >= 0 {
		return fmt.Sprintf("wlancore: %s: %s (interface=%d)", e.Op, msg, e.Interface)
	}
	return fmt.Sprintf("wlancore: %s: %s", e.Op, msg)
}

func (e *Error) Unwrap() error { return e.Inner }

func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}
	if te, ok := target.(*Error); ok {
		return e.Code == te.Code
	}
	return false
}

func New(op string, code Code, msg string) *Error {
	return &Error{Op: op, Interface: -1, Code: code, Msg: msg}
}

func NewInterface(op string, bssIndex int, code Code, msg string) *Error {
	return &Error{Op: op, Interface: bssIndex, Code: code, Msg: msg}
}

func NewRequest(op string, bssIndex int, reqID uuid.UUID, code Code, msg string) *Error {
	return &Error{Op: op, Interface: bssIndex, RequestID: reqID, Code: code, Msg: msg}
}

func Wrap(op string, inner error) *Error {
	if inner == nil {
		return nil
	}
	var we *Error
	if errors.As(inner, &we) {
		return &Error{
			Op:        op,
			Interface: we.Interface,
			RequestID: we.RequestID,
			Code:      we.Code,
			Msg:       we.Msg,
			Inner:     we,
		}
	}
	return &Error{Op: op, Interface: -1, Code: CodeInternal, Msg: inner.Error(), Inner: inner}
}

func IsCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}
