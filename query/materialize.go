package query

import (
	"github.com/kbukum/querykit/errors"
)

// materialize returns a new query whose source drains q on its first pull,
// passes the items to build, and then serves build's result. Nothing is read
// from q before that first pull. A registration error already on q carries
// over to the new query.
func materialize[T, U any](q *Query[T], kind string, build func([]T) ([]U, error)) *Query[U] {
	var (
		buf  []U
		pos  int
		done bool
	)
	res := newQuery[U](nil, arityOf[U]())
	res.eng.source = func() (any, bool, error) {
		if !done {
			done = true
			items, err := drain(q)
			if err != nil {
				return nil, false, err
			}
			if buf, err = build(items); err != nil {
				return nil, false, err
			}
			logMaterialized(res.eng, kind, len(buf))
		}
		if pos >= len(buf) {
			return nil, false, nil
		}
		v := buf[pos]
		pos++
		return v, true, nil
	}
	res.eng.closer = q.eng.close
	res.eng.inherit(q.eng)
	return res
}

// Reverse yields the items of q in reverse order. q is drained on the first pull.
func (q *Query[T]) Reverse() *Query[T] {
	return materialize(q, "reverse", func(items []T) ([]T, error) {
		for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
			items[i], items[j] = items[j], items[i]
		}
		return items, nil
	})
}

// Chunk groups consecutive items of q into slices of size items. Each pull
// reads up to size items from q; the last chunk may be shorter. A size below
// one is recorded as an invalid argument.
func Chunk[T any](q *Query[T], size int) *Query[[]T] {
	if size <= 0 {
		res := failed[[]T](errors.InvalidArgument("size", "chunk size must be positive"))
		res.eng.closer = q.eng.close
		return res
	}
	res := newQuery[[]T](func() (any, bool, error) {
		var chunk []T
		for len(chunk) < size {
			v, ok := q.Pull()
			if !ok {
				break
			}
			chunk = append(chunk, v)
		}
		if err := q.Err(); err != nil {
			return nil, false, err
		}
		if len(chunk) == 0 {
			return nil, false, nil
		}
		return chunk, true, nil
	}, 1)
	res.eng.closer = q.eng.close
	res.eng.inherit(q.eng)
	return res
}

// GroupBy drains q on the first pull and groups its items by key. Groups
// are emitted in the order their key was first seen; members keep their
// encounter order. Every group is a Pair of key and members, so the result
// has arity 2.
func GroupBy[T any, K comparable](q *Query[T], key func(T) K) *Query[Group[K, T]] {
	return materialize(q, "group", func(items []T) ([]Group[K, T], error) {
		index := make(map[K]int)
		var groups []Group[K, T]
		for _, item := range items {
			k := key(item)
			i, ok := index[k]
			if !ok {
				i = len(groups)
				index[k] = i
				groups = append(groups, Group[K, T]{Key: k})
			}
			groups[i].Value = append(groups[i].Value, item)
		}
		return groups, nil
	})
}
