package collection

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/querykit/errors"
	"github.com/kbukum/querykit/query"
)

var (
	intType    = reflect.TypeFor[int]()
	stringType = reflect.TypeFor[string]()
)

func requireCode(t *testing.T, err error, code errors.ErrorCode) *errors.AppError {
	t.Helper()
	require.Error(t, err)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok, "expected an AppError, got %T", err)
	assert.Equal(t, code, appErr.Code)
	return appErr
}

func TestTypedList_AcceptsDeclaredTypes(t *testing.T) {
	l, err := NewTypedList[any](intType, stringType)
	require.NoError(t, err)

	require.NoError(t, l.Append(1, "two", 3))
	assert.Equal(t, 3, l.Len())

	v, err := l.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "two", v)
}

func TestTypedList_RejectsOtherTypes(t *testing.T) {
	l, err := NewTypedList[any](intType, stringType)
	require.NoError(t, err)

	appErr := requireCode(t, l.Append(1, 2.5), errors.ErrCodeTypeMismatch)
	assert.Equal(t, "element must be one of [int, string], got float64", appErr.Message)
	assert.Equal(t, "float64", appErr.Details["got"])
	assert.Zero(t, l.Len(), "a rejected batch adds nothing")

	requireCode(t, l.Append(nil), errors.ErrCodeTypeMismatch)

	require.NoError(t, l.Append(1))
	requireCode(t, l.Set(0, []int{1}), errors.ErrCodeTypeMismatch)
	requireCode(t, l.Insert(0, false), errors.ErrCodeTypeMismatch)
}

func TestTypedList_InterfaceTypes(t *testing.T) {
	l, err := NewTypedList[any](reflect.TypeFor[fmt.Stringer]())
	require.NoError(t, err)

	require.NoError(t, l.Append(&strings.Builder{}))
	requireCode(t, l.Append("plain"), errors.ErrCodeTypeMismatch)
}

func TestTypedList_DefaultsToStaticType(t *testing.T) {
	l, err := NewTypedList[int]()
	require.NoError(t, err)
	require.NoError(t, l.Append(1, 2))
	assert.Equal(t, 2, l.Len())
}

func TestTypedList_NilDescriptor(t *testing.T) {
	_, err := NewTypedList[any](intType, nil)
	requireCode(t, err, errors.ErrCodeTypeMismatch)
}

func TestTypedList_Mutations(t *testing.T) {
	l, err := NewTypedList[int]()
	require.NoError(t, err)
	require.NoError(t, l.Append(1, 3))

	require.NoError(t, l.Insert(1, 2))
	require.NoError(t, l.Insert(3, 4))
	require.NoError(t, l.Set(0, 0))
	require.NoError(t, l.RemoveAt(3))

	items, err := query.From[int](l).ToSlice()
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 3}, items)

	requireCode(t, l.Set(5, 1), errors.ErrCodeInvalidArgument)
	requireCode(t, l.RemoveAt(-1), errors.ErrCodeInvalidArgument)
	requireCode(t, l.Insert(9, 1), errors.ErrCodeInvalidArgument)
	_, err = l.Get(3)
	requireCode(t, err, errors.ErrCodeInvalidArgument)

	require.NoError(t, l.Clear())
	assert.Zero(t, l.Len())
}

func TestTypedList_EnumerateSnapshots(t *testing.T) {
	l, err := NewTypedList[int]()
	require.NoError(t, err)
	require.NoError(t, l.Append(1, 2))

	pull := l.Enumerate()
	require.NoError(t, l.Append(3))

	var got []int
	for v, ok := pull(); ok; v, ok = pull() {
		got = append(got, v)
	}
	assert.Equal(t, []int{1, 2}, got)
}

func TestTypedList_QueryOverList(t *testing.T) {
	l, err := NewTypedList[any](intType, stringType)
	require.NoError(t, err)
	require.NoError(t, l.Append(3, "x", 1, "y", 2))

	ints, err := query.OfType[int](query.From[any](l)).OrderBy(func(a, b int) int { return a - b }).ToSlice()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, ints)
}

func TestReadOnlyList(t *testing.T) {
	src := []string{"a", "b"}
	ro := NewReadOnlyList(src)
	src[0] = "changed"

	v, err := ro.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "a", v, "the list holds its own copy")
	assert.Equal(t, 2, ro.Len())

	var list List[string] = ro
	for name, err := range map[string]error{
		"append": list.Append("c"),
		"set":    list.Set(0, "z"),
		"remove": list.RemoveAt(0),
		"clear":  list.Clear(),
	} {
		appErr := requireCode(t, err, errors.ErrCodeReadOnly)
		assert.Equal(t, "collection is read-only", appErr.Message, name)
	}

	items, err := query.From[string](ro).ToSlice()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, items)
}

func TestTypedList_ReadOnlyView(t *testing.T) {
	l, err := NewTypedList[int]()
	require.NoError(t, err)
	require.NoError(t, l.Append(1))

	ro := l.ReadOnly()
	require.NoError(t, l.Append(2))
	assert.Equal(t, 1, ro.Len())
}

func TestTypedMap(t *testing.T) {
	m, err := NewTypedMap[string, any](nil, []reflect.Type{intType})
	require.NoError(t, err)

	require.NoError(t, m.Put("b", 2))
	require.NoError(t, m.Put("a", 1))
	require.NoError(t, m.Put("b", 20))

	appErr := requireCode(t, m.Put("c", "three"), errors.ErrCodeTypeMismatch)
	assert.Contains(t, appErr.Message, "value must be one of [int], got string")

	assert.Equal(t, []string{"b", "a"}, m.Keys(), "replacing keeps position")
	v, ok := m.Get("b")
	assert.True(t, ok)
	assert.Equal(t, 20, v)

	got, err := query.ToPairsMap(query.From[query.Pair[string, any]](m), true)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": 1, "b": 20}, got)
}

func TestTypedMap_KeyTypes(t *testing.T) {
	m, err := NewTypedMap[any, string]([]reflect.Type{stringType, intType}, nil)
	require.NoError(t, err)
	require.NoError(t, m.Put(1, "one"))
	require.NoError(t, m.Put("k", "v"))

	appErr := requireCode(t, m.Put(1.5, "x"), errors.ErrCodeTypeMismatch)
	assert.Equal(t, "key must be one of [string, int], got float64", appErr.Message)
}

func TestTypedMap_Delete(t *testing.T) {
	m, err := NewTypedMap[string, int](nil, nil)
	require.NoError(t, err)
	require.NoError(t, m.Put("x", 1))
	require.NoError(t, m.Put("y", 2))

	require.NoError(t, m.Delete("x"))
	assert.Equal(t, []string{"y"}, m.Keys())

	appErr := requireCode(t, m.Delete("x"), errors.ErrCodeNotFound)
	assert.Equal(t, "x", appErr.Details["key"])

	require.NoError(t, m.Clear())
	assert.Zero(t, m.Len())
}

func TestTypedMap_Arity(t *testing.T) {
	m, err := NewTypedMap[string, int](nil, nil)
	require.NoError(t, err)
	require.NoError(t, m.Put("a", 1))

	q := query.From[query.Pair[string, int]](m)
	assert.Equal(t, 2, q.Arity())

	var keys []any
	require.NoError(t, q.ForEachN(2, func(args ...any) { keys = append(keys, args[0]) }))
	assert.Equal(t, []any{"a"}, keys)
}

func TestReadOnlyMap(t *testing.T) {
	ro := NewReadOnlyMap(map[string]int{"a": 1, "b": 2})
	assert.Equal(t, 2, ro.Len())
	assert.ElementsMatch(t, []string{"a", "b"}, ro.Keys())

	v, ok := ro.Get("b")
	assert.True(t, ok)
	assert.Equal(t, 2, v)
	_, ok = ro.Get("z")
	assert.False(t, ok)

	var m Map[string, int] = ro
	requireCode(t, m.Put("c", 3), errors.ErrCodeReadOnly)
	requireCode(t, m.Delete("a"), errors.ErrCodeReadOnly)
	requireCode(t, m.Clear(), errors.ErrCodeReadOnly)
	assert.Equal(t, 2, ro.Len())
}

func TestTypedMap_ReadOnlyView(t *testing.T) {
	m, err := NewTypedMap[string, int](nil, nil)
	require.NoError(t, err)
	require.NoError(t, m.Put("b", 2))
	require.NoError(t, m.Put("a", 1))

	ro := m.ReadOnly()
	require.NoError(t, m.Put("c", 3))

	assert.Equal(t, []string{"b", "a"}, ro.Keys())
	v, ok := ro.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
}
