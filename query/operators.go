package query

import (
	"reflect"

	"github.com/kbukum/querykit/errors"
)

// Where keeps only items that satisfy pred.
func (q *Query[T]) Where(pred func(T) bool) *Query[T] {
	return q.register(func(v any) Step[any] {
		if pred(as[T](v)) {
			return Yield(v)
		}
		return skipStep
	})
}

// WhereType keeps only items whose dynamic type is t, or implements t when t
// is an interface type. A nil t is a type mismatch recorded on the query.
func (q *Query[T]) WhereType(t reflect.Type) *Query[T] {
	if t == nil {
		q.eng.fail(errors.TypeMismatch("type descriptor", nil))
		return q
	}
	return q.register(func(v any) Step[any] {
		if v == nil {
			return skipStep
		}
		vt := reflect.TypeOf(v)
		if vt == t || (t.Kind() == reflect.Interface && vt.Implements(t)) {
			return Yield(v)
		}
		return skipStep
	})
}

// OfType keeps only items whose dynamic type is U and yields them as U.
func OfType[U, T any](q *Query[T]) *Query[U] {
	q.register(func(v any) Step[any] {
		if _, ok := v.(U); ok {
			return Yield(v)
		}
		return skipStep
	})
	return retype[T, U](q)
}

// Select replaces every item with fn's result. It is the operator that may
// change the item type and its arity, e.g. collapse a Pair into one value.
func Select[T, U any](q *Query[T], fn func(T) U) *Query[U] {
	q.register(func(v any) Step[any] {
		return Yield[any](fn(as[T](v)))
	})
	return retype[T, U](q)
}

// SelectMany drains q immediately, calls fn once per item and concatenates
// the items of every returned Enumerable into one buffer. Returning nil skips
// the item. The result is a new query over that buffer with no stages.
func SelectMany[T, U any](q *Query[T], fn func(T) Enumerable[U]) *Query[U] {
	items, err := drain(q)
	if err != nil {
		return failed[U](err)
	}
	var out []U
	for _, item := range items {
		inner := fn(item)
		if inner == nil {
			continue
		}
		part, err := collect(inner)
		if err != nil {
			return failed[U](err)
		}
		out = append(out, part...)
	}
	res := FromSlice(out)
	logMaterialized(res.eng, "select_many", len(out))
	return res
}

// Skip drops the first n items. A negative n is recorded as an invalid argument.
func (q *Query[T]) Skip(n int) *Query[T] {
	if n < 0 {
		q.eng.fail(errors.InvalidArgument("count", "skip count must not be negative"))
		return q
	}
	seen := 0
	return q.register(func(v any) Step[any] {
		if seen < n {
			seen++
			return skipStep
		}
		return Yield(v)
	})
}

// SkipWhile drops items while cond holds. From the first item that fails
// cond on, every item passes.
func (q *Query[T]) SkipWhile(cond func(T) bool) *Query[T] {
	skipping := true
	return q.register(func(v any) Step[any] {
		if skipping && cond(as[T](v)) {
			return skipStep
		}
		skipping = false
		return Yield(v)
	})
}

// Take passes the first n items and ends the query on the next one.
// A negative n is recorded as an invalid argument.
func (q *Query[T]) Take(n int) *Query[T] {
	if n < 0 {
		q.eng.fail(errors.InvalidArgument("count", "take count must not be negative"))
		return q
	}
	taken := 0
	return q.register(func(v any) Step[any] {
		if taken >= n {
			return endStep
		}
		taken++
		return Yield(v)
	})
}

// TakeWhile passes items while cond holds and ends the query on the first
// item that fails it.
func (q *Query[T]) TakeWhile(cond func(T) bool) *Query[T] {
	return q.register(func(v any) Step[any] {
		if cond(as[T](v)) {
			return Yield(v)
		}
		return endStep
	})
}

// Concat returns a new query that yields q's items followed by the items of
// each other source in turn.
func (q *Query[T]) Concat(others ...Enumerable[T]) *Query[T] {
	sources := append([]Enumerable[T]{q}, others...)
	return From[T](NewChain(sources...))
}

// drain pulls every remaining item of q.
func drain[T any](q *Query[T]) ([]T, error) {
	var items []T
	for {
		v, ok := q.Pull()
		if !ok {
			return items, q.Err()
		}
		items = append(items, v)
	}
}

// collect pulls every item of src, reporting its error if it has one.
func collect[T any](src Enumerable[T]) ([]T, error) {
	if q, ok := src.(*Query[T]); ok {
		return drain(q)
	}
	var items []T
	pull := src.Enumerate()
	for {
		v, ok := pull()
		if !ok {
			break
		}
		items = append(items, v)
	}
	if es, ok := src.(errSource); ok {
		return items, es.Err()
	}
	return items, nil
}
