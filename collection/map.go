package collection

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/kbukum/querykit/errors"
	"github.com/kbukum/querykit/query"
)

// TypedMap is an insertion-ordered map whose keys and values must have one of
// a fixed set of runtime types each.
type TypedMap[K comparable, V any] struct {
	keyTypes   typeSet
	valueTypes typeSet
	order      []K
	entries    map[K]V
}

// NewTypedMap creates an empty map. Empty type lists fall back to K and V.
func NewTypedMap[K comparable, V any](keyTypes, valueTypes []reflect.Type) (*TypedMap[K, V], error) {
	kt, err := newTypeSet[K](keyTypes)
	if err != nil {
		return nil, err
	}
	vt, err := newTypeSet[V](valueTypes)
	if err != nil {
		return nil, err
	}
	return &TypedMap[K, V]{keyTypes: kt, valueTypes: vt, entries: make(map[K]V)}, nil
}

// Len returns the number of entries.
func (m *TypedMap[K, V]) Len() int { return len(m.order) }

// Get returns the value stored under key.
func (m *TypedMap[K, V]) Get(key K) (V, bool) {
	v, ok := m.entries[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (m *TypedMap[K, V]) Keys() []K { return slices.Clone(m.order) }

// Put stores value under key. Replacing a value keeps the key's position.
func (m *TypedMap[K, V]) Put(key K, value V) error {
	if err := m.keyTypes.check("key", key); err != nil {
		return err
	}
	if err := m.valueTypes.check("value", value); err != nil {
		return err
	}
	if _, exists := m.entries[key]; !exists {
		m.order = append(m.order, key)
	}
	m.entries[key] = value
	return nil
}

// Delete removes key. An absent key is a NOT_FOUND error.
func (m *TypedMap[K, V]) Delete(key K) error {
	if _, ok := m.entries[key]; !ok {
		return errors.NotFound("key", keyString(key))
	}
	delete(m.entries, key)
	m.order = slices.DeleteFunc(m.order, func(k K) bool { return k == key })
	return nil
}

// Clear removes every entry.
func (m *TypedMap[K, V]) Clear() error {
	m.order = nil
	clear(m.entries)
	return nil
}

// Enumerate implements query.Enumerable over a snapshot of the entries.
func (m *TypedMap[K, V]) Enumerate() query.PullFunc[query.Pair[K, V]] {
	return query.Slice[query.Pair[K, V]](m.pairs()).Enumerate()
}

func (m *TypedMap[K, V]) pairs() []query.Pair[K, V] {
	pairs := make([]query.Pair[K, V], len(m.order))
	for i, k := range m.order {
		pairs[i] = query.PairOf(k, m.entries[k])
	}
	return pairs
}

// ReadOnly returns a read-only copy of the map.
func (m *TypedMap[K, V]) ReadOnly() *ReadOnlyMap[K, V] {
	return &ReadOnlyMap[K, V]{pairs: m.pairs(), index: positions(m.order)}
}

// ReadOnlyMap serves reads and rejects every mutation.
type ReadOnlyMap[K comparable, V any] struct {
	pairs []query.Pair[K, V]
	index map[K]int
}

// NewReadOnlyMap copies m into a read-only map. Its order is the order in
// which ranging over m produced the entries.
func NewReadOnlyMap[K comparable, V any](m map[K]V) *ReadOnlyMap[K, V] {
	ro := &ReadOnlyMap[K, V]{index: make(map[K]int, len(m))}
	for k, v := range m {
		ro.index[k] = len(ro.pairs)
		ro.pairs = append(ro.pairs, query.PairOf(k, v))
	}
	return ro
}

// Len returns the number of entries.
func (m *ReadOnlyMap[K, V]) Len() int { return len(m.pairs) }

// Get returns the value stored under key.
func (m *ReadOnlyMap[K, V]) Get(key K) (V, bool) {
	i, ok := m.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	return m.pairs[i].Value, true
}

// Keys returns the keys in order.
func (m *ReadOnlyMap[K, V]) Keys() []K {
	keys := make([]K, len(m.pairs))
	for i, p := range m.pairs {
		keys[i] = p.Key
	}
	return keys
}

// Put always fails.
func (m *ReadOnlyMap[K, V]) Put(K, V) error { return errors.ReadOnly("put") }

// Delete always fails.
func (m *ReadOnlyMap[K, V]) Delete(K) error { return errors.ReadOnly("delete") }

// Clear always fails.
func (m *ReadOnlyMap[K, V]) Clear() error { return errors.ReadOnly("clear") }

// Enumerate implements query.Enumerable.
func (m *ReadOnlyMap[K, V]) Enumerate() query.PullFunc[query.Pair[K, V]] {
	return query.Slice[query.Pair[K, V]](m.pairs).Enumerate()
}

// positions maps each key to its index.
func positions[K comparable](keys []K) map[K]int {
	index := make(map[K]int, len(keys))
	for i, k := range keys {
		index[k] = i
	}
	return index
}

func keyString(key any) string {
	if s, ok := key.(string); ok {
		return s
	}
	return fmt.Sprint(key)
}
