package query

import (
	"context"
	"iter"
)

// PullFunc yields the next item of a sequence. ok is false once exhausted,
// and stays false on later calls.
type PullFunc[T any] func() (item T, ok bool)

// Enumerate makes a pull function usable wherever an Enumerable is expected.
func (f PullFunc[T]) Enumerate() PullFunc[T] { return f }

// Enumerable is anything that can hand out a pull function over its items.
// Query, Chain, the collection types and the trie all implement it.
type Enumerable[T any] interface {
	Enumerate() PullFunc[T]
}

// Iterator is a context-bound pull source such as a database cursor or a
// stream client. Next returns (zero, false, nil) when exhausted.
type Iterator[T any] interface {
	Next(ctx context.Context) (T, bool, error)
	Close() error
}

// errSource is implemented by sources that can fail while being drained.
type errSource interface {
	Err() error
}

// rawSource is the engine's view of an upstream: untyped, fallible.
type rawSource func() (any, bool, error)

// Slice adapts a slice to Enumerable. Each Enumerate call starts from the
// beginning, so a Slice can be enumerated many times.
type Slice[T any] []T

// Enumerate implements Enumerable.
func (s Slice[T]) Enumerate() PullFunc[T] {
	i := 0
	return func() (T, bool) {
		if i >= len(s) {
			var zero T
			return zero, false
		}
		v := s[i]
		i++
		return v, true
	}
}

func sliceSource[T any](items []T) rawSource {
	i := 0
	return func() (any, bool, error) {
		if i >= len(items) {
			return nil, false, nil
		}
		v := items[i]
		i++
		return v, true, nil
	}
}

// enumerableSource defers Enumerate to the first pull so that building a
// query never touches its source.
func enumerableSource[T any](src Enumerable[T]) rawSource {
	var pull PullFunc[T]
	return func() (any, bool, error) {
		if pull == nil {
			pull = src.Enumerate()
		}
		v, ok := pull()
		if ok {
			return v, true, nil
		}
		if es, isErr := src.(errSource); isErr {
			return nil, false, es.Err()
		}
		return nil, false, nil
	}
}

// --- Constructors ---

// From creates a query over any Enumerable.
func From[T any](src Enumerable[T]) *Query[T] {
	q := newQuery[T](enumerableSource(src), arityOf[T]())
	if es, ok := src.(errSource); ok {
		q.eng.err = es.Err()
	}
	return q
}

// FromSlice creates a query over a slice.
func FromSlice[T any](items []T) *Query[T] {
	return newQuery[T](sliceSource(items), arityOf[T]())
}

// Of creates a query over the given values.
func Of[T any](items ...T) *Query[T] {
	return FromSlice(items)
}

// FromFunc creates a query over a raw pull function.
func FromFunc[T any](pull PullFunc[T]) *Query[T] {
	return From[T](pull)
}

// FromMap creates a key/value query over a map. Iteration order is the
// map's own, which Go leaves unspecified.
func FromMap[K comparable, V any](m map[K]V) *Query[Pair[K, V]] {
	return FromSeq2(func(yield func(K, V) bool) {
		for k, v := range m {
			if !yield(k, v) {
				return
			}
		}
	})
}

// FromSeq creates a query over a range-over-func sequence. The sequence is
// resumed one item per pull; Close releases it if the query is abandoned
// before exhaustion.
func FromSeq[T any](seq iter.Seq[T]) *Query[T] {
	var (
		next    func() (T, bool)
		stopSeq func()
	)
	q := newQuery[T](func() (any, bool, error) {
		if next == nil {
			next, stopSeq = iter.Pull(seq)
		}
		v, ok := next()
		if !ok {
			return nil, false, nil
		}
		return v, true, nil
	}, arityOf[T]())
	q.eng.closer = func() error {
		if stopSeq != nil {
			stopSeq()
		}
		return nil
	}
	return q
}

// FromSeq2 creates a key/value query over a two-value sequence.
func FromSeq2[K, V any](seq iter.Seq2[K, V]) *Query[Pair[K, V]] {
	return FromSeq(func(yield func(Pair[K, V]) bool) {
		for k, v := range seq {
			if !yield(Pair[K, V]{Key: k, Value: v}) {
				return
			}
		}
	})
}

// FromIterator creates a query over a context-bound Iterator. An error from
// Next becomes the query's error and ends it. The iterator is closed when it
// is exhausted, when it fails, or when the query is closed.
func FromIterator[T any](ctx context.Context, it Iterator[T]) *Query[T] {
	closed := false
	closeOnce := func() error {
		if closed {
			return nil
		}
		closed = true
		return it.Close()
	}
	q := newQuery[T](func() (any, bool, error) {
		if closed {
			return nil, false, nil
		}
		v, ok, err := it.Next(ctx)
		if err != nil || !ok {
			if cerr := closeOnce(); err == nil {
				err = cerr
			}
			return nil, false, err
		}
		return v, true, nil
	}, arityOf[T]())
	q.eng.closer = closeOnce
	return q
}
