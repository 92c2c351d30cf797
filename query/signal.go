package query

// Signal tells the engine what to do with the item a stage just handled.
type Signal uint8

const (
	// Emit passes the stage's value on to the next stage.
	Emit Signal = iota
	// Skip drops the current item; the engine pulls the next one from upstream.
	Skip
	// End stops the query. Every later pull reports exhaustion.
	End
)

func (s Signal) String() string {
	switch s {
	case Emit:
		return "emit"
	case Skip:
		return "skip"
	case End:
		return "end"
	default:
		return "unknown"
	}
}

// Step is the result of running one item through a stage. The signal is
// carried beside the value, so no user value can be mistaken for a marker.
type Step[T any] struct {
	Value  T
	Signal Signal
}

// Yield returns a step that passes v on.
func Yield[T any](v T) Step[T] { return Step[T]{Value: v} }

// Drop returns a step that skips the current item.
func Drop[T any]() Step[T] { return Step[T]{Signal: Skip} }

// Stop returns a step that ends the query.
func Stop[T any]() Step[T] { return Step[T]{Signal: End} }

// stage is the untyped form every registered operator is stored as.
type stage func(v any) Step[any]

var (
	skipStep = Step[any]{Signal: Skip}
	endStep  = Step[any]{Signal: End}
)
