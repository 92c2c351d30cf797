// Package query provides deferred, composable queries over enumerable sources.
//
// A Query holds an upstream pull source and an ordered list of stages. Adding
// an operator only registers a stage; no work happens until the query is
// driven by Pull, All, or a terminal such as ToSlice or Count. Each pull feeds
// one upstream item through every stage in order. A stage may replace the
// item, drop it (Skip), or stop the whole query for good (End).
//
// Operators that need the whole input before producing anything (OrderBy,
// GroupBy, Reverse) wrap the query in a new one whose source drains the old
// one on its first pull. They stay lazy with respect to everything chained
// after them. SelectMany is the exception: it drains immediately.
//
// # Arity
//
// Plain sequences carry one value per pull. Key/value sources (maps, Seq2,
// GroupBy results) carry a Pair; Pair implements Tuple, and Arity reports the
// number of values per item. ForEachN and ForEachPair unpack tuples into
// separate arguments.
//
// # Errors
//
// Invalid arguments (Skip(-1), Chunk(0), a Range that never reaches its end)
// are recorded on the query when the operator is registered. From then on
// the query yields nothing and every terminal returns the error. Failures
// that depend on data, such as a duplicate key in a strict ToMap, are
// returned by the terminal that hit them.
//
// # Usage
//
//	evens, err := query.FromSlice([]int{5, 2, 8, 1, 4}).
//	    Where(func(n int) bool { return n%2 == 0 }).
//	    OrderBy(cmp.Compare[int]).
//	    ToSlice()
//	// evens == [2 4 8]
//
// Queries are single-threaded and not restartable: once drained, a query
// over a one-shot source stays empty.
package query
