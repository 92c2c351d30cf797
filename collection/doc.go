// Package collection provides guarded list and map wrappers.
//
// TypedList and TypedMap check every element, key and value against a set of
// accepted runtime types and reject the rest with a TYPE_MISMATCH error that
// names the accepted types and the offending one. ReadOnlyList and
// ReadOnlyMap serve reads and answer every mutation with a READ_ONLY error.
//
// All four implement query.Enumerable, so a query can be built over them
// directly:
//
//	names, _ := collection.NewTypedList[any](reflect.TypeFor[string]())
//	_ = names.Append("ada", "grace")
//	upper, err := query.Select(query.From[any](names), strings.ToUpper).ToSlice()
//
// Lists enumerate in index order, maps in insertion order as query.Pair items.
package collection
