package wlancore

import (
	"github.com/google/uuid"

	"github.com/nxpfmac/wlancore/internal/wlerr"
)

// ErrorCode represents the high-level error categories the core surfaces to
// its callers.
type ErrorCode = wlerr.Code

const (
	ErrCodeAlreadyExists = wlerr.CodeAlreadyExists
	ErrCodeNotFound      = wlerr.CodeNotFound
	ErrCodeInvalidArgs   = wlerr.CodeInvalidArgs
	ErrCodeInternal      = wlerr.CodeInternal
	ErrCodeTimeout       = wlerr.CodeTimeout
	ErrCodeCanceled      = wlerr.CodeCanceled
	ErrCodeNotSupported  = wlerr.CodeNotSupported
)

// Error is a structured error carrying the operation, the interface it
// happened on, and the correlation id of the request involved, if any.
type Error = wlerr.Error

// NewError creates a structured error with no interface or request context.
func NewError(op string, code ErrorCode, msg string) *Error {
	return wlerr.New(op, code, msg)
}

// NewInterfaceError creates a structured error scoped to a bss index.
func NewInterfaceError(op string, bssIndex int, code ErrorCode, msg string) *Error {
	return wlerr.NewInterface(op, bssIndex, code, msg)
}

// NewRequestError creates a structured error tied to a specific in-flight
// request's correlation id.
func NewRequestError(op string, bssIndex int, reqID uuid.UUID, code ErrorCode, msg string) *Error {
	return wlerr.NewRequest(op, bssIndex, reqID, code, msg)
}

// WrapError wraps an existing error under a new operation name, preserving
// its code and context when the inner error is itself structured.
func WrapError(op string, inner error) *Error {
	return wlerr.Wrap(op, inner)
}

// IsCode reports whether err is a structured Error carrying the given code.
func IsCode(err error, code ErrorCode) bool {
	return wlerr.IsCode(err, code)
}
