package errors

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func TestAppError_New_Success(t *testing.T) {
	err := New(ErrCodeNotFound, "not found")
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeNotFound, err.Code)
	}
	if err.Message != "not found" {
		t.Errorf("expected message 'not found', got %q", err.Message)
	}
	if err.Error() != "NOT_FOUND: not found" {
		t.Errorf("unexpected Error(): %q", err.Error())
	}
}

func TestTypeMismatch_ListsAcceptedTypes(t *testing.T) {
	err := TypeMismatch("element", 3.5, reflect.TypeOf(""), reflect.TypeOf(0))
	if err.Code != ErrCodeTypeMismatch {
		t.Fatalf("expected TYPE_MISMATCH, got %s", err.Code)
	}
	if !strings.Contains(err.Message, "[string, int]") {
		t.Errorf("expected accepted types in message, got %q", err.Message)
	}
	if err.Details["got"] != "float64" {
		t.Errorf("expected got=float64, got %v", err.Details["got"])
	}
}

func TestTypeMismatch_NilValue(t *testing.T) {
	err := TypeMismatch("type descriptor", nil)
	if err.Details["got"] != "nil" {
		t.Errorf("expected got=nil, got %v", err.Details["got"])
	}
	if !strings.Contains(err.Message, "has type nil") {
		t.Errorf("unexpected message %q", err.Message)
	}
}

func TestInvalidArgument_Success(t *testing.T) {
	err := InvalidArgument("count", "must not be negative")
	if err.Code != ErrCodeInvalidArgument {
		t.Errorf("expected INVALID_ARGUMENT, got %s", err.Code)
	}
	if err.Details["argument"] != "count" {
		t.Errorf("expected argument=count, got %v", err.Details["argument"])
	}
}

func TestInvalidArgument_EmptyArg(t *testing.T) {
	err := InvalidArgument("", "bad")
	if _, ok := err.Details["argument"]; ok {
		t.Error("expected no 'argument' key in details when arg is empty")
	}
}

func TestNotFound_Success(t *testing.T) {
	err := NotFound("key", "apple")
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected NOT_FOUND, got %s", err.Code)
	}
	if err.Details["key"] != "apple" {
		t.Errorf("expected key=apple, got %v", err.Details["key"])
	}
}

func TestReadOnly_Message(t *testing.T) {
	err := ReadOnly("append")
	if err.Message != "collection is read-only" {
		t.Errorf("unexpected message %q", err.Message)
	}
	if err.Details["operation"] != "append" {
		t.Errorf("expected operation=append, got %v", err.Details["operation"])
	}
}

func TestEmptySequence_IsArgumentCode(t *testing.T) {
	err := EmptySequence("max")
	if !IsArgumentCode(err.Code) {
		t.Error("EMPTY_SEQUENCE should be an argument code")
	}
	if IsArgumentCode(ErrCodeReadOnly) {
		t.Error("READ_ONLY should not be an argument code")
	}
}

func TestAppError_WithCause(t *testing.T) {
	cause := fmt.Errorf("comparator failed")
	err := InvalidArgument("comparer", "failed").WithCause(cause)
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
	if !strings.Contains(err.Error(), "cause: comparator failed") {
		t.Errorf("expected cause in message, got %q", err.Error())
	}
}

func TestAppError_WithDetails(t *testing.T) {
	err := New(ErrCodeInvalidArgument, "x").WithDetails(map[string]any{"a": 1}).WithDetail("b", 2)
	if err.Details["a"] != 1 || err.Details["b"] != 2 {
		t.Errorf("unexpected details %v", err.Details)
	}
}

func TestIs_WrappedError(t *testing.T) {
	wrapped := fmt.Errorf("loading: %w", NotFound("key", "k"))
	if !Is(wrapped, ErrCodeNotFound) {
		t.Error("expected Is to see through wrapping")
	}
	if Is(wrapped, ErrCodeReadOnly) {
		t.Error("expected Is to reject other codes")
	}
	if Is(stderrors.New("plain"), ErrCodeNotFound) {
		t.Error("plain errors carry no code")
	}
}

func TestAsAppError(t *testing.T) {
	if _, ok := AsAppError(stderrors.New("plain")); ok {
		t.Error("expected plain error not to convert")
	}
	appErr, ok := AsAppError(fmt.Errorf("wrap: %w", ReadOnly("set")))
	if !ok || appErr.Code != ErrCodeReadOnly {
		t.Errorf("expected READ_ONLY AppError, got %v", appErr)
	}
	if !IsAppError(appErr) {
		t.Error("expected IsAppError to be true")
	}
}
