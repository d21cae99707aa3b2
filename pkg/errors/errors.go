// Package errors provides the unified error type and factory functions for
// MolForge. Every layer (domain, application, infrastructure, interfaces) uses
// AppError as the single carrier for structured error information so that HTTP
// responses, CLI output and logs stay consistent.
package errors

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// stackDepth is the maximum number of frames captured per error.
const stackDepth = 32

// captureStack returns a formatted call stack starting two frames above the
// caller (skipping captureStack itself and New/Wrap).
func captureStack(skip int) string {
	pcs := make([]uintptr, stackDepth)
	n := runtime.Callers(skip+2, pcs)
	if n == 0 {
		return ""
	}
	frames := runtime.CallersFrames(pcs[:n])
	var sb strings.Builder
	for {
		f, more := frames.Next()
		if !strings.Contains(f.File, "runtime/") {
			fmt.Fprintf(&sb, "\n\t%s:%d %s", f.File, f.Line, f.Function)
		}
		if !more {
			break
		}
	}
	return sb.String()
}

// ─────────────────────────────────────────────────────────────────────────────
// AppError
// ─────────────────────────────────────────────────────────────────────────────

// AppError is the structured error type used throughout MolForge. It supports
// errors.Is / errors.As / errors.Unwrap across layers.
//
// Usage:
//
//	return errors.New(errors.CodeMoleculeInvalidSMILES, "Invalid SMILES notation.")
//	return errors.Wrap(err, errors.ErrCodeChemBackendFailed, "structure generation failed")
type AppError struct {
	// Code identifies the failure category.
	Code ErrorCode

	// Message is the human-readable description returned to callers.
	Message string

	// Detail carries supplementary context that aids debugging.
	Detail string

	// Cause is the underlying error, if any.
	Cause error

	// Stack is the call stack captured at creation. It is not part of Error().
	Stack string
}

// Error implements the error interface.
// Format: "[<code>] <message>: <detail>". The detail segment is omitted when empty.
func (e *AppError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Detail)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithDetail returns a copy of the receiver with Detail set.
// It is safe to call on a nil pointer.
func (e *AppError) WithDetail(detail string) *AppError {
	if e == nil {
		return nil
	}
	clone := *e
	clone.Detail = detail
	return &clone
}

// WithCause returns a copy of the receiver with Cause set to err.
func (e *AppError) WithCause(err error) *AppError {
	if e == nil {
		return nil
	}
	clone := *e
	clone.Cause = err
	return &clone
}

// HTTPStatus returns the HTTP status mapped to the error's code.
func (e *AppError) HTTPStatus() int {
	return HTTPStatusForCode(e.Code)
}

// ─────────────────────────────────────────────────────────────────────────────
// Factories
// ─────────────────────────────────────────────────────────────────────────────

// New constructs an AppError with the given code and message.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Stack:   captureStack(1),
	}
}

// Newf is New with a formatted message.
func Newf(code ErrorCode, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Stack:   captureStack(1),
	}
}

// Wrap constructs an AppError that wraps err. It returns nil when err is nil.
//
// When code is CodeUnknown and err already carries an AppError, the original
// code is kept.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	if code == CodeUnknown {
		var ae *AppError
		if errors.As(err, &ae) {
			code = ae.Code
		} else {
			code = CodeInternal
		}
	}
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
		Stack:   captureStack(1),
	}
}

// NotFound is a shorthand for New(CodeNotFound, message).
func NotFound(message string) *AppError {
	return &AppError{Code: CodeNotFound, Message: message, Stack: captureStack(1)}
}

// InvalidParam is a shorthand for New(CodeInvalidParam, message).
func InvalidParam(message string) *AppError {
	return &AppError{Code: CodeInvalidParam, Message: message, Stack: captureStack(1)}
}

// Internal is a shorthand for New(CodeInternal, message).
func Internal(message string) *AppError {
	return &AppError{Code: CodeInternal, Message: message, Stack: captureStack(1)}
}

// Unavailable is a shorthand for New(CodeUnavailable, message).
func Unavailable(message string) *AppError {
	return &AppError{Code: CodeUnavailable, Message: message, Stack: captureStack(1)}
}

// NewValidationError builds a CodeValidation error naming the offending field.
func NewValidationError(field, message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
		Detail:  "field=" + field,
		Stack:   captureStack(1),
	}
}

// InvalidSMILES builds the Invalid Input error for a submission that cannot be
// parsed into a molecule.
func InvalidSMILES(detail string) *AppError {
	return &AppError{
		Code:    ErrCodeMoleculeInvalidSMILES,
		Message: DefaultMessageForCode(ErrCodeMoleculeInvalidSMILES),
		Detail:  detail,
		Stack:   captureStack(1),
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Error-chain inspection
// ─────────────────────────────────────────────────────────────────────────────

// IsCode reports whether any error in err's chain is an *AppError with code.
func IsCode(err error, code ErrorCode) bool {
	for err != nil {
		var ae *AppError
		if !errors.As(err, &ae) {
			return false
		}
		if ae.Code == code {
			return true
		}
		err = ae.Cause
	}
	return false
}

// IsNotFound reports whether err carries a not-found code.
func IsNotFound(err error) bool {
	return IsCode(err, CodeNotFound) || IsCode(err, ErrCodeStructureNotFound)
}

// IsValidation reports whether err carries a validation or bad-request code.
func IsValidation(err error) bool {
	return IsCode(err, CodeValidation) || IsCode(err, CodeInvalidParam)
}

// IsInvalidSMILES reports whether err is the Invalid Input error.
func IsInvalidSMILES(err error) bool {
	return IsCode(err, ErrCodeMoleculeInvalidSMILES)
}

// GetCode returns the code of the outermost AppError in err's chain.
// It returns CodeOK for nil and CodeInternal for foreign errors.
func GetCode(err error) ErrorCode {
	if err == nil {
		return CodeOK
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return CodeInternal
}

// Is, As and Unwrap re-export the standard library helpers so callers need a
// single errors import.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
)

//Personal.AI order the ending
