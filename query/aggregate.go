package query

import (
	"cmp"
	"fmt"

	"github.com/kbukum/querykit/errors"
)

// ToSlice drains the query into a slice.
func (q *Query[T]) ToSlice() ([]T, error) {
	items, err := drain(q)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Count drains the query and returns the number of items.
func (q *Query[T]) Count() (int, error) {
	n := 0
	for range q.All() {
		n++
	}
	return n, q.Err()
}

// Any reports whether some item satisfies cond, stopping at the first one.
// A nil cond matches any item, so Any(nil) reports whether the query is non-empty.
func (q *Query[T]) Any(cond func(T) bool) (bool, error) {
	for v := range q.All() {
		if cond == nil || cond(v) {
			return true, nil
		}
	}
	return false, q.Err()
}

// AllMatch reports whether every item satisfies cond, stopping at the first
// violation. It is true for an empty query.
func (q *Query[T]) AllMatch(cond func(T) bool) (bool, error) {
	for v := range q.All() {
		if !cond(v) {
			return false, nil
		}
	}
	return true, q.Err()
}

// Contains reports whether some item equals value, using the same equality
// as Distinct.
func (q *Query[T]) Contains(value T) (bool, error) {
	var cmpErr error
	found, err := q.Any(func(v T) bool {
		eq, err := equal(v, value)
		if err != nil {
			cmpErr = err
			return true
		}
		return eq
	})
	if cmpErr != nil {
		return false, cmpErr
	}
	return found, err
}

// First returns the first item. An empty query is an EmptySequence error.
func (q *Query[T]) First() (T, error) {
	v, ok := q.Pull()
	if !ok {
		if err := q.Err(); err != nil {
			return v, err
		}
		return v, errors.EmptySequence("first")
	}
	return v, nil
}

// Last drains the query and returns its final item.
func (q *Query[T]) Last() (T, error) {
	var (
		last T
		seen bool
	)
	for v := range q.All() {
		last, seen = v, true
	}
	if err := q.Err(); err != nil {
		return last, err
	}
	if !seen {
		return last, errors.EmptySequence("last")
	}
	return last, nil
}

// ElementAt returns the item at index i.
func (q *Query[T]) ElementAt(i int) (T, error) {
	var zero T
	if i < 0 {
		return zero, errors.InvalidArgument("index", "index must not be negative")
	}
	v, err := q.Skip(i).First()
	if errors.Is(err, errors.ErrCodeEmptySequence) {
		return zero, errors.InvalidArgument("index", fmt.Sprintf("index %d is past the end", i))
	}
	return v, err
}

// ForEach drains the query, calling action for every item.
func (q *Query[T]) ForEach(action func(T)) error {
	for v := range q.All() {
		action(v)
	}
	return q.Err()
}

// ForEachN drains the query, unpacking every item into n positional
// arguments: a Tuple yields its fields, any other item is one argument. An
// item whose arity differs from n is an invalid argument.
func (q *Query[T]) ForEachN(n int, action func(args ...any)) error {
	for v := range q.All() {
		args := spread(v)
		if len(args) != n {
			return errors.InvalidArgument("bindings",
				fmt.Sprintf("item carries %d values but %d bindings were given", len(args), n))
		}
		action(args...)
	}
	return q.Err()
}

// ForEachPair drains a key/value query, calling action with each key and value.
func ForEachPair[K, V any](q *Query[Pair[K, V]], action func(K, V)) error {
	return q.ForEach(func(p Pair[K, V]) { action(p.Key, p.Value) })
}

// Aggregate folds the items of q into one result, starting from seed.
func Aggregate[T, R any](q *Query[T], seed R, fn func(R, T) R) (R, error) {
	acc := seed
	for v := range q.All() {
		acc = fn(acc, v)
	}
	return acc, q.Err()
}

// ToMap drains q into a map using mapper. With strict set, a repeated key is
// an invalid argument; otherwise later items overwrite earlier ones.
func ToMap[T any, K comparable, V any](q *Query[T], mapper func(T) (K, V), strict bool) (map[K]V, error) {
	m := make(map[K]V)
	for item := range q.All() {
		k, v := mapper(item)
		if _, dup := m[k]; dup && strict {
			return nil, errors.InvalidArgument("key", fmt.Sprintf("duplicate key %v", k))
		}
		m[k] = v
	}
	if err := q.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

// ToPairsMap drains a key/value query into a map.
func ToPairsMap[K comparable, V any](q *Query[Pair[K, V]], strict bool) (map[K]V, error) {
	return ToMap(q, Pair[K, V].Unpack, strict)
}

// --- Numeric aggregates ---

// Max returns the largest item. An empty query is an EmptySequence error.
func Max[T cmp.Ordered](q *Query[T]) (T, error) {
	return extremum(q, "max", func(a, b T) bool { return a > b })
}

// Min returns the smallest item. An empty query is an EmptySequence error.
func Min[T cmp.Ordered](q *Query[T]) (T, error) {
	return extremum(q, "min", func(a, b T) bool { return a < b })
}

func extremum[T any](q *Query[T], op string, better func(a, b T) bool) (T, error) {
	best, err := q.First()
	if err != nil {
		if errors.Is(err, errors.ErrCodeEmptySequence) {
			err = errors.EmptySequence(op)
		}
		return best, err
	}
	for v := range q.All() {
		if better(v, best) {
			best = v
		}
	}
	return best, q.Err()
}

// MaxBy returns the item with the largest getter value, in one pass.
// On ties the first such item wins.
// The first item seeds the running best, so no sentinel of N is needed.
func MaxBy[T any, N cmp.Ordered](q *Query[T], getter func(T) N) (T, error) {
	return extremumBy(q, "max_by", getter, func(a, b N) bool { return a > b })
}

// MinBy returns the item with the smallest getter value, in one pass.
// On ties the first such item wins.
// The first item seeds the running best, so no sentinel of N is needed.
func MinBy[T any, N cmp.Ordered](q *Query[T], getter func(T) N) (T, error) {
	return extremumBy(q, "min_by", getter, func(a, b N) bool { return a < b })
}

func extremumBy[T any, N cmp.Ordered](q *Query[T], op string, getter func(T) N, better func(a, b N) bool) (T, error) {
	var (
		bestItem T
		bestVal  N
		seen     bool
	)
	for v := range q.All() {
		if val := getter(v); !seen || better(val, bestVal) {
			bestItem, bestVal, seen = v, val, true
		}
	}
	if err := q.Err(); err != nil {
		return bestItem, err
	}
	if !seen {
		return bestItem, errors.EmptySequence(op)
	}
	return bestItem, nil
}

// Sum adds up every item. An empty query sums to zero.
func Sum[N Number](q *Query[N]) (N, error) {
	return Aggregate(q, N(0), func(acc, v N) N { return acc + v })
}

// Mean returns the arithmetic mean in one pass.
func Mean[N Number](q *Query[N]) (float64, error) {
	var (
		sum float64
		n   int
	)
	for v := range q.All() {
		sum += float64(v)
		n++
	}
	if err := q.Err(); err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, errors.EmptySequence("mean")
	}
	return sum / float64(n), nil
}

// Median sorts the items with OrderBy and returns the middle one, or the
// mean of the two middle ones for an even count.
func Median[N Number](q *Query[N]) (float64, error) {
	sorted, err := q.OrderBy(cmp.Compare[N]).ToSlice()
	if err != nil {
		return 0, err
	}
	n := len(sorted)
	if n == 0 {
		return 0, errors.EmptySequence("median")
	}
	if n%2 == 1 {
		return float64(sorted[n/2]), nil
	}
	return (float64(sorted[n/2-1]) + float64(sorted[n/2])) / 2, nil
}
