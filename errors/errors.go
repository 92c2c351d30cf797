package errors

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"
)

// AppError is the unified querykit error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// --- Constructors ---

// TypeMismatch creates an error for a value whose runtime type is not accepted.
// accepted may be empty when the failure is about a missing type descriptor.
func TypeMismatch(what string, value any, accepted ...reflect.Type) *AppError {
	names := make([]string, 0, len(accepted))
	for _, t := range accepted {
		names = append(names, typeName(t))
	}
	got := typeName(reflect.TypeOf(value))
	msg := fmt.Sprintf("%s has type %s", what, got)
	if len(names) > 0 {
		msg = fmt.Sprintf("%s must be one of [%s], got %s", what, strings.Join(names, ", "), got)
	}
	return &AppError{
		Code: ErrCodeTypeMismatch, Message: msg,
		Details: map[string]any{"accepted": names, "got": got},
	}
}

// InvalidArgument creates an error for a structurally invalid argument.
func InvalidArgument(arg, reason string) *AppError {
	details := make(map[string]any)
	if arg != "" {
		details["argument"] = arg
	}
	return &AppError{
		Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid argument %s: %s", arg, reason),
		Details: details,
	}
}

// Validation creates an invalid-argument error carrying a preformatted message.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeInvalidArgument, Message: message}
}

// EmptySequence creates an error for an aggregate evaluated over no items.
func EmptySequence(operation string) *AppError {
	return &AppError{
		Code: ErrCodeEmptySequence, Message: fmt.Sprintf("%s of an empty sequence", operation),
		Details: map[string]any{"operation": operation},
	}
}

// NotFound creates an error for a key that is not present.
func NotFound(resource, key string) *AppError {
	details := map[string]any{"resource": resource}
	if key != "" {
		details["key"] = key
	}
	return &AppError{
		Code: ErrCodeNotFound, Message: fmt.Sprintf("%s %q not found", resource, key),
		Details: details,
	}
}

// ReadOnly creates an error for a mutation attempted on a read-only collection.
func ReadOnly(operation string) *AppError {
	return &AppError{
		Code: ErrCodeReadOnly, Message: "collection is read-only",
		Details: map[string]any{"operation": operation},
	}
}

// --- Inspection ---

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Is reports whether err carries the given code anywhere in its chain.
func Is(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "nil"
	}
	return t.String()
}
