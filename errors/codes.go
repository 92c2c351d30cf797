package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Argument errors
const (
	// ErrCodeTypeMismatch indicates a value or descriptor of the wrong type.
	ErrCodeTypeMismatch ErrorCode = "TYPE_MISMATCH"
	// ErrCodeInvalidArgument indicates a structurally invalid argument.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// ErrCodeEmptySequence indicates an aggregate that needs at least one item got none.
	ErrCodeEmptySequence ErrorCode = "EMPTY_SEQUENCE"
)

// Collection errors
const (
	// ErrCodeNotFound indicates the requested key was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeReadOnly indicates a mutation attempt on a read-only collection.
	ErrCodeReadOnly ErrorCode = "READ_ONLY"
)

// argumentCodes are the codes that describe caller misuse of an argument.
var argumentCodes = map[ErrorCode]bool{
	ErrCodeTypeMismatch:    true,
	ErrCodeInvalidArgument: true,
	ErrCodeEmptySequence:   true,
}

// IsArgumentCode returns true if the code describes an invalid argument of some kind.
func IsArgumentCode(code ErrorCode) bool {
	return argumentCodes[code]
}
