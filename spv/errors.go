// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package spv

import "fmt"

// ErrorKind categorizes SPIR-V decoding and reflection errors.
type ErrorKind uint8

const (
	// ErrOther indicates a semantically fatal condition outside the
	// other categories, e.g. an unsupported execution model.
	ErrOther ErrorKind = iota

	// ErrInvalidHeader indicates a missing or malformed module header.
	ErrInvalidHeader

	// ErrInvalidOp indicates malformed instruction framing: a truncated
	// stream, a missing operand, an unterminated string, or an
	// out-of-range word count.
	ErrInvalidOp

	// ErrInvalidID indicates a required type or constant reference that
	// was not declared earlier in the stream.
	ErrInvalidID

	// ErrStringFormat indicates an embedded string that is not valid UTF-8.
	ErrStringFormat
)

// String returns a human-readable error kind name.
func (k ErrorKind) String() string {
	switch k {
	case ErrOther:
		return "Other"
	case ErrInvalidHeader:
		return "InvalidHeader"
	case ErrInvalidOp:
		return "InvalidOp"
	case ErrInvalidID:
		return "InvalidId"
	case ErrStringFormat:
		return "StringFormat"
	default:
		return "Unknown"
	}
}

// Error represents a SPIR-V decoding or reflection error.
type Error struct {
	// Kind categorizes the error.
	Kind ErrorKind

	// Message provides details about the error.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("spirv %s: %s", e.Kind, e.Message)
}

// NewError creates a new SPIR-V error.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{
		Kind:    kind,
		Message: message,
	}
}

// NewErrorf creates a new SPIR-V error with a formatted message.
func NewErrorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// IsInvalidHeader returns true if the error is ErrInvalidHeader.
func (e *Error) IsInvalidHeader() bool {
	return e.Kind == ErrInvalidHeader
}

// IsInvalidOp returns true if the error is ErrInvalidOp.
func (e *Error) IsInvalidOp() bool {
	return e.Kind == ErrInvalidOp
}

// IsInvalidID returns true if the error is ErrInvalidID.
func (e *Error) IsInvalidID() bool {
	return e.Kind == ErrInvalidID
}
