package query

import (
	"reflect"

	"github.com/mitchellh/hashstructure/v2"

	"github.com/kbukum/querykit/errors"
)

// Equality decides whether two items count as the same for the *By set
// operators. The first argument is the item already seen (or from the other
// source), the second is the candidate.
type Equality[T any] func(existing, candidate T) bool

// structKey stands in for values whose dynamic type cannot be a map key.
type structKey struct {
	typ reflect.Type
	sum uint64
}

// keyOf maps a value to something usable as a map key. Values that are
// hashable all the way down are their own key. Slices, maps and structs
// holding them are keyed by a structural hash when the hash sees every part
// of the value. Anything else reports keyed == false and is compared with
// reflect.DeepEqual instead.
func keyOf(v any) (key any, keyed bool, err error) {
	if v == nil {
		return nil, true, nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Struct, reflect.Array, reflect.Slice, reflect.Map, reflect.Func:
	default:
		return v, true, nil
	}
	hashable, hashSafe := inspect(rv)
	switch {
	case hashable:
		return v, true, nil
	case !hashSafe:
		return nil, false, nil
	}
	sum, err := hashstructure.Hash(v, hashstructure.FormatV2, nil)
	if err != nil {
		return nil, false, errors.TypeMismatch("set member", v).WithCause(err)
	}
	return structKey{typ: rv.Type(), sum: sum}, true, nil
}

// inspect walks v. hashable reports whether v can be a map key, following
// interface fields to their dynamic values. hashSafe reports whether a
// structural hash covers all of v: unexported fields, nested interfaces,
// pointers and funcs are invisible or ambiguous to it.
func inspect(v reflect.Value) (hashable, hashSafe bool) {
	switch v.Kind() {
	case reflect.Invalid:
		return true, true
	case reflect.Interface:
		if v.IsNil() {
			return true, false
		}
		h, _ := inspect(v.Elem())
		return h, false
	case reflect.Struct:
		hashable, hashSafe = true, true
		t := v.Type()
		for i := range v.NumField() {
			h, s := inspect(v.Field(i))
			hashable = hashable && h
			hashSafe = hashSafe && s && t.Field(i).IsExported()
		}
		return hashable, hashSafe
	case reflect.Array:
		hashable, hashSafe = true, true
		for i := range v.Len() {
			h, s := inspect(v.Index(i))
			hashable, hashSafe = hashable && h, hashSafe && s
		}
		return hashable, hashSafe
	case reflect.Slice:
		hashSafe = true
		for i := range v.Len() {
			_, s := inspect(v.Index(i))
			hashSafe = hashSafe && s
		}
		return false, hashSafe
	case reflect.Map:
		hashSafe = true
		iter := v.MapRange()
		for iter.Next() {
			_, ks := inspect(iter.Key())
			_, vs := inspect(iter.Value())
			hashSafe = hashSafe && ks && vs
		}
		return false, hashSafe
	case reflect.Func:
		return false, false
	case reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		return true, v.IsNil()
	default:
		return true, true
	}
}

// equal compares two values the way the set operators do.
func equal(a, b any) (bool, error) {
	ka, keyedA, err := keyOf(a)
	if err != nil {
		return false, err
	}
	kb, keyedB, err := keyOf(b)
	if err != nil {
		return false, err
	}
	if keyedA && keyedB {
		return ka == kb, nil
	}
	return reflect.DeepEqual(a, b), nil
}

// memberSet holds keyed values in a map and the rest in a slice that is
// scanned with reflect.DeepEqual.
type memberSet struct {
	keys  map[any]struct{}
	loose []any
}

func newMemberSet() *memberSet {
	return &memberSet{keys: make(map[any]struct{})}
}

// contains reports whether v is a member.
func (s *memberSet) contains(v any) (bool, error) {
	k, keyed, err := keyOf(v)
	if err != nil {
		return false, err
	}
	if keyed {
		_, found := s.keys[k]
		return found, nil
	}
	for _, m := range s.loose {
		if reflect.DeepEqual(m, v) {
			return true, nil
		}
	}
	return false, nil
}

// add inserts v and reports whether it was not already a member.
func (s *memberSet) add(v any) (bool, error) {
	found, err := s.contains(v)
	if err != nil || found {
		return false, err
	}
	k, keyed, _ := keyOf(v)
	if keyed {
		s.keys[k] = struct{}{}
	} else {
		s.loose = append(s.loose, v)
	}
	return true, nil
}

// keySet builds the lookup set for Except and Intersect.
func keySet[T any](src Enumerable[T]) (*memberSet, error) {
	items, err := collect(src)
	if err != nil {
		return nil, err
	}
	set := newMemberSet()
	for _, item := range items {
		if _, err := set.add(item); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// Distinct drops every item equal to one already yielded.
func (q *Query[T]) Distinct() *Query[T] {
	seen := newMemberSet()
	return q.register(func(v any) Step[any] {
		added, err := seen.add(v)
		if err != nil {
			q.eng.fail(err)
			return endStep
		}
		if !added {
			return skipStep
		}
		return Yield(v)
	})
}

// DistinctBy drops every item that eq matches against an item already
// yielded. Each candidate is compared with all accepted items in turn.
func (q *Query[T]) DistinctBy(eq Equality[T]) *Query[T] {
	var accepted []T
	return q.register(func(v any) Step[any] {
		candidate := as[T](v)
		for _, existing := range accepted {
			if eq(existing, candidate) {
				return skipStep
			}
		}
		accepted = append(accepted, candidate)
		return Yield(v)
	})
}

// Union yields the distinct items of q followed by those of other.
func (q *Query[T]) Union(other Enumerable[T]) *Query[T] {
	return q.Concat(other).Distinct()
}

// UnionBy is Union with a caller-supplied equality.
func (q *Query[T]) UnionBy(other Enumerable[T], eq Equality[T]) *Query[T] {
	return q.Concat(other).DistinctBy(eq)
}

// Except drops items present in other. other is read in full right away.
func (q *Query[T]) Except(other Enumerable[T]) *Query[T] {
	return q.filterBySet(other, false)
}

// Intersect keeps only items present in other. other is read in full right away.
func (q *Query[T]) Intersect(other Enumerable[T]) *Query[T] {
	return q.filterBySet(other, true)
}

func (q *Query[T]) filterBySet(other Enumerable[T], keep bool) *Query[T] {
	set, err := keySet(other)
	if err != nil {
		q.eng.fail(err)
		return q
	}
	return q.register(func(v any) Step[any] {
		found, err := set.contains(v)
		if err != nil {
			q.eng.fail(err)
			return endStep
		}
		if found == keep {
			return Yield(v)
		}
		return skipStep
	})
}

// ExceptBy drops items that eq matches against any item of other. other is
// read once, on the first pull, and scanned in full for every candidate.
func (q *Query[T]) ExceptBy(other Enumerable[T], eq Equality[T]) *Query[T] {
	return q.filterByScan(other, eq, false)
}

// IntersectBy keeps only items that eq matches against some item of other.
func (q *Query[T]) IntersectBy(other Enumerable[T], eq Equality[T]) *Query[T] {
	return q.filterByScan(other, eq, true)
}

func (q *Query[T]) filterByScan(other Enumerable[T], eq Equality[T], keep bool) *Query[T] {
	var (
		others []T
		loaded bool
	)
	return q.register(func(v any) Step[any] {
		if !loaded {
			items, err := collect(other)
			if err != nil {
				q.eng.fail(err)
				return endStep
			}
			others, loaded = items, true
		}
		candidate := as[T](v)
		found := false
		for _, o := range others {
			if eq(o, candidate) {
				found = true
				break
			}
		}
		if found == keep {
			return Yield(v)
		}
		return skipStep
	})
}
