package query

import "fmt"

// Tuple is an item that carries more than one value per pull step.
type Tuple interface {
	// Arity is the number of values in the tuple.
	Arity() int
	// Field returns the i-th value.
	Field(i int) any
}

// Pair is the two-value item produced by key/value sources.
type Pair[K, V any] struct {
	Key   K
	Value V
}

// PairOf builds a Pair.
func PairOf[K, V any](k K, v V) Pair[K, V] {
	return Pair[K, V]{Key: k, Value: v}
}

// Arity implements Tuple.
func (Pair[K, V]) Arity() int { return 2 }

// Field implements Tuple.
func (p Pair[K, V]) Field(i int) any {
	switch i {
	case 0:
		return p.Key
	case 1:
		return p.Value
	}
	panic(fmt.Sprintf("query: pair field %d out of range", i))
}

// Unpack returns the key and value.
func (p Pair[K, V]) Unpack() (K, V) { return p.Key, p.Value }

// Group is the item GroupBy emits: a key and the members that share it.
type Group[K comparable, T any] = Pair[K, []T]

// spread turns an item into its positional values: a Tuple yields its fields,
// anything else is a single value. Every place that unpacks items goes
// through here.
func spread(v any) []any {
	t, ok := v.(Tuple)
	if !ok {
		return []any{v}
	}
	args := make([]any, t.Arity())
	for i := range args {
		args[i] = t.Field(i)
	}
	return args
}

// arityOf reports the number of values carried by items of type T.
func arityOf[T any]() int {
	var zero T
	if t, ok := any(zero).(Tuple); ok {
		return t.Arity()
	}
	return 1
}

// as converts an engine value back to T. A nil interface becomes T's zero value.
func as[T any](v any) T {
	t, _ := v.(T)
	return t
}
