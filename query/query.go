package query

import (
	"iter"

	"github.com/google/uuid"
)

// engine is the untyped core shared by every typed view of one query.
// Stages are appended only before the first pull.
type engine struct {
	id     string
	source rawSource
	stages []stage
	arity  int
	ended  bool
	err    error
	closer func() error
}

func newEngine(src rawSource, arity int) *engine {
	return &engine{
		id:     uuid.NewString(),
		source: src,
		arity:  arity,
	}
}

// pull drives one upstream item through all stages. It returns false once
// the source is exhausted, a stage ends the query, or an error is recorded.
// A stage that fails records the error with fail and returns End.
func (e *engine) pull() (any, bool) {
	if e.ended || e.err != nil {
		return nil, false
	}
next:
	for {
		v, ok, err := e.source()
		if err != nil {
			e.fail(err)
			return nil, false
		}
		if !ok {
			return nil, false
		}
		for _, st := range e.stages {
			step := st(v)
			switch step.Signal {
			case End:
				e.ended = true
				if err := e.close(); err != nil {
					e.fail(err)
				}
				return nil, false
			case Skip:
				continue next
			}
			v = step.Value
		}
		return v, true
	}
}

// fail records the first error; later errors are dropped.
func (e *engine) fail(err error) {
	if e.err != nil || err == nil {
		return
	}
	e.err = err
	logFailure(e, err)
}

// inherit copies an error already recorded upstream without reporting it again.
func (e *engine) inherit(up *engine) {
	if e.err == nil {
		e.err = up.err
	}
}

func (e *engine) close() error {
	if e.closer == nil {
		return nil
	}
	closer := e.closer
	e.closer = nil
	return closer()
}

// Query is a deferred, composable query yielding items of type T.
//
// Operators that keep the item type are methods and register a stage on the
// same query, returning it for chaining. Operators that change the item type
// (Select, OfType, Chunk, GroupBy) are package functions.
type Query[T any] struct {
	eng *engine
}

func newQuery[T any](src rawSource, arity int) *Query[T] {
	return &Query[T]{eng: newEngine(src, arity)}
}

// failed returns an empty query already carrying err.
func failed[T any](err error) *Query[T] {
	q := newQuery[T](func() (any, bool, error) { return nil, false, nil }, arityOf[T]())
	q.eng.fail(err)
	return q
}

// retype returns a view of the same engine with a new item type.
func retype[T, U any](q *Query[T]) *Query[U] {
	q.eng.arity = arityOf[U]()
	return &Query[U]{eng: q.eng}
}

// register appends a stage and returns the query.
func (q *Query[T]) register(st stage) *Query[T] {
	q.eng.stages = append(q.eng.stages, st)
	return q
}

// Pull returns the next item. ok is false once the query is exhausted, ended
// by a stage, or failed; it then stays false.
func (q *Query[T]) Pull() (item T, ok bool) {
	v, ok := q.eng.pull()
	if !ok {
		var zero T
		return zero, false
	}
	return as[T](v), true
}

// Enumerate implements Enumerable, so a query can feed another query or a Chain.
func (q *Query[T]) Enumerate() PullFunc[T] { return q.Pull }

// All returns the query as a range-over-func sequence.
func (q *Query[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, ok := q.Pull()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// Err returns the error recorded on the query, if any.
func (q *Query[T]) Err() error { return q.eng.err }

// ID returns the query's unique identifier, used to correlate log lines.
func (q *Query[T]) ID() string { return q.eng.id }

// Arity returns the number of values each item carries.
func (q *Query[T]) Arity() int { return q.eng.arity }

// Close releases the upstream source early. Queries over slices and other
// in-memory sources hold nothing and need no Close.
func (q *Query[T]) Close() error { return q.eng.close() }

// Transform registers a custom stage. fn returns Yield to pass an item on,
// Drop to skip it, or Stop to end the query.
func Transform[T, U any](q *Query[T], fn func(T) Step[U]) *Query[U] {
	q.register(func(v any) Step[any] {
		step := fn(as[T](v))
		return Step[any]{Value: step.Value, Signal: step.Signal}
	})
	return retype[T, U](q)
}
