package collection

import (
	"fmt"
	"reflect"

	"github.com/kbukum/querykit/errors"
	"github.com/kbukum/querykit/query"
)

// List is the behaviour shared by TypedList and ReadOnlyList.
type List[T any] interface {
	query.Enumerable[T]
	Len() int
	Get(i int) (T, error)
	Append(items ...T) error
	Set(i int, item T) error
	RemoveAt(i int) error
	Clear() error
}

// Map is the behaviour shared by TypedMap and ReadOnlyMap.
type Map[K comparable, V any] interface {
	query.Enumerable[query.Pair[K, V]]
	Len() int
	Get(key K) (V, bool)
	Keys() []K
	Put(key K, value V) error
	Delete(key K) error
	Clear() error
}

var _ List[any] = (*TypedList[any])(nil)

var _ List[any] = (*ReadOnlyList[any])(nil)

var _ Map[string, any] = (*TypedMap[string, any])(nil)

var _ Map[string, any] = (*ReadOnlyMap[string, any])(nil)

// typeSet is a list of accepted runtime types.
type typeSet []reflect.Type

// newTypeSet falls back to the static type T when no types are given.
func newTypeSet[T any](accepted []reflect.Type) (typeSet, error) {
	if len(accepted) == 0 {
		return typeSet{reflect.TypeFor[T]()}, nil
	}
	for i, t := range accepted {
		if t == nil {
			return nil, errors.TypeMismatch(fmt.Sprintf("accepted type %d", i), nil)
		}
	}
	return typeSet(accepted), nil
}

// admits reports whether v's dynamic type is accepted. An interface type
// admits every value that implements it, including nil.
func (s typeSet) admits(v any) bool {
	vt := reflect.TypeOf(v)
	for _, t := range s {
		if vt == t {
			return true
		}
		if t.Kind() == reflect.Interface && (vt == nil || vt.Implements(t)) {
			return true
		}
	}
	return false
}

// check returns a TYPE_MISMATCH error when v is not admitted.
func (s typeSet) check(what string, v any) error {
	if s.admits(v) {
		return nil
	}
	return errors.TypeMismatch(what, v, s...)
}

func indexError(i, n int) error {
	return errors.InvalidArgument("index", fmt.Sprintf("index %d out of range [0, %d)", i, n))
}
