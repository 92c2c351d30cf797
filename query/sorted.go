package query

// Comparer orders two items: negative when a comes first, zero when they
// tie, positive when b comes first.
type Comparer[T any] func(a, b T) int

// Sorted is the query returned by OrderBy. Until it is first pulled, ThenBy
// can add tie-break comparators; any other operator returns a plain Query.
type Sorted[T any] struct {
	*Query[T]
	chain []Comparer[T]
}

// OrderBy sorts the items of q by cmp. q is drained and sorted on the first
// pull. The sort is a quicksort and is not stable: items the comparator
// chain considers equal may change their relative order.
func (q *Query[T]) OrderBy(cmp Comparer[T]) *Sorted[T] {
	s := &Sorted[T]{chain: []Comparer[T]{cmp}}
	s.Query = materialize(q, "sort", func(items []T) ([]T, error) {
		quickSort(items, s.compare)
		return items, nil
	})
	return s
}

// OrderByDescending sorts the items of q by cmp, largest first.
func (q *Query[T]) OrderByDescending(cmp Comparer[T]) *Sorted[T] {
	return q.OrderBy(descending(cmp))
}

// ThenBy adds a comparator consulted only when every earlier one ties.
func (s *Sorted[T]) ThenBy(cmp Comparer[T]) *Sorted[T] {
	s.chain = append(s.chain, cmp)
	return s
}

// ThenByDescending adds a reversed tie-break comparator.
func (s *Sorted[T]) ThenByDescending(cmp Comparer[T]) *Sorted[T] {
	return s.ThenBy(descending(cmp))
}

// compare runs the comparator chain; the first nonzero result decides.
func (s *Sorted[T]) compare(a, b T) int {
	for _, cmp := range s.chain {
		if c := cmp(a, b); c != 0 {
			return c
		}
	}
	return 0
}

func descending[T any](cmp Comparer[T]) Comparer[T] {
	return func(a, b T) int { return cmp(b, a) }
}

// quickSort sorts items in place using Lomuto partitioning around the last
// element. It recurses into the smaller side and loops on the larger one to
// bound stack depth.
func quickSort[T any](items []T, cmp func(a, b T) int) {
	lo, hi := 0, len(items)-1
	for lo < hi {
		p := partition(items, lo, hi, cmp)
		if p-lo < hi-p {
			quickSort(items[lo:p], cmp)
			lo = p + 1
		} else {
			quickSort(items[p+1:hi+1], cmp)
			hi = p - 1
		}
	}
}

// partition moves every element that compares <= the pivot to the front,
// in scan order, then places the pivot after them and returns its index.
func partition[T any](items []T, lo, hi int, cmp func(a, b T) int) int {
	pivot := items[hi]
	i := lo
	for j := lo; j < hi; j++ {
		if cmp(items[j], pivot) <= 0 {
			items[i], items[j] = items[j], items[i]
			i++
		}
	}
	items[i], items[hi] = items[hi], items[i]
	return i
}
