package collection

import (
	"reflect"
	"slices"

	"github.com/kbukum/querykit/errors"
	"github.com/kbukum/querykit/query"
)

// TypedList is a list whose elements must have one of a fixed set of
// runtime types.
type TypedList[T any] struct {
	accepted typeSet
	items    []T
}

// NewTypedList creates an empty list accepting the given types. With no
// types, only values whose dynamic type is exactly T are accepted.
func NewTypedList[T any](accepted ...reflect.Type) (*TypedList[T], error) {
	types, err := newTypeSet[T](accepted)
	if err != nil {
		return nil, err
	}
	return &TypedList[T]{accepted: types}, nil
}

// Len returns the number of elements.
func (l *TypedList[T]) Len() int { return len(l.items) }

// Get returns the element at index i.
func (l *TypedList[T]) Get(i int) (T, error) {
	if i < 0 || i >= len(l.items) {
		var zero T
		return zero, indexError(i, len(l.items))
	}
	return l.items[i], nil
}

// Append adds items at the end. Nothing is added if any item is rejected.
func (l *TypedList[T]) Append(items ...T) error {
	for _, item := range items {
		if err := l.accepted.check("element", item); err != nil {
			return err
		}
	}
	l.items = append(l.items, items...)
	return nil
}

// Insert places item before index i; i == Len appends.
func (l *TypedList[T]) Insert(i int, item T) error {
	if i < 0 || i > len(l.items) {
		return indexError(i, len(l.items)+1)
	}
	if err := l.accepted.check("element", item); err != nil {
		return err
	}
	l.items = slices.Insert(l.items, i, item)
	return nil
}

// Set replaces the element at index i.
func (l *TypedList[T]) Set(i int, item T) error {
	if i < 0 || i >= len(l.items) {
		return indexError(i, len(l.items))
	}
	if err := l.accepted.check("element", item); err != nil {
		return err
	}
	l.items[i] = item
	return nil
}

// RemoveAt deletes the element at index i.
func (l *TypedList[T]) RemoveAt(i int) error {
	if i < 0 || i >= len(l.items) {
		return indexError(i, len(l.items))
	}
	l.items = slices.Delete(l.items, i, i+1)
	return nil
}

// Clear removes every element.
func (l *TypedList[T]) Clear() error {
	l.items = nil
	return nil
}

// Enumerate implements query.Enumerable over a snapshot of the elements.
func (l *TypedList[T]) Enumerate() query.PullFunc[T] {
	return query.Slice[T](slices.Clone(l.items)).Enumerate()
}

// ReadOnly returns a read-only copy of the list.
func (l *TypedList[T]) ReadOnly() *ReadOnlyList[T] {
	return NewReadOnlyList(l.items)
}

// ReadOnlyList serves reads and rejects every mutation.
type ReadOnlyList[T any] struct {
	items []T
}

// NewReadOnlyList copies items into a read-only list.
func NewReadOnlyList[T any](items []T) *ReadOnlyList[T] {
	return &ReadOnlyList[T]{items: slices.Clone(items)}
}

// Len returns the number of elements.
func (l *ReadOnlyList[T]) Len() int { return len(l.items) }

// Get returns the element at index i.
func (l *ReadOnlyList[T]) Get(i int) (T, error) {
	if i < 0 || i >= len(l.items) {
		var zero T
		return zero, indexError(i, len(l.items))
	}
	return l.items[i], nil
}

// Append always fails.
func (l *ReadOnlyList[T]) Append(...T) error { return errors.ReadOnly("append") }

// Set always fails.
func (l *ReadOnlyList[T]) Set(int, T) error { return errors.ReadOnly("set") }

// RemoveAt always fails.
func (l *ReadOnlyList[T]) RemoveAt(int) error { return errors.ReadOnly("remove") }

// Clear always fails.
func (l *ReadOnlyList[T]) Clear() error { return errors.ReadOnly("clear") }

// Enumerate implements query.Enumerable.
func (l *ReadOnlyList[T]) Enumerate() query.PullFunc[T] {
	return query.Slice[T](l.items).Enumerate()
}
