package query

// Chain enumerates its sources one after another: the first to exhaustion,
// then the second, and so on. It only moves forward; a drained Chain stays
// drained.
type Chain[T any] struct {
	sources []Enumerable[T]
	current PullFunc[T]
	index   int
	err     error
}

// NewChain creates a Chain over the given sources.
func NewChain[T any](sources ...Enumerable[T]) *Chain[T] {
	return &Chain[T]{sources: sources}
}

// Pull returns the next item of the current source, advancing past
// exhausted sources.
func (c *Chain[T]) Pull() (T, bool) {
	for c.err == nil && c.index < len(c.sources) {
		src := c.sources[c.index]
		if c.current == nil {
			c.current = src.Enumerate()
		}
		if v, ok := c.current(); ok {
			return v, true
		}
		if es, ok := src.(errSource); ok && es.Err() != nil {
			c.err = es.Err()
			break
		}
		c.current = nil
		c.index++
	}
	var zero T
	return zero, false
}

// Enumerate implements Enumerable.
func (c *Chain[T]) Enumerate() PullFunc[T] { return c.Pull }

// Err returns the first error reported by a source, including errors a
// source query already carries before it is pulled.
func (c *Chain[T]) Err() error {
	if c.err != nil {
		return c.err
	}
	for _, src := range c.sources[c.index:] {
		if es, ok := src.(errSource); ok && es.Err() != nil {
			return es.Err()
		}
	}
	return nil
}
