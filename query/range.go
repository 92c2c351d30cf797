package query

import (
	"fmt"

	"github.com/kbukum/querykit/errors"
)

// Number is the set of types the arithmetic operators accept.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// Range yields start, start+step, ... up to and including end. A zero step,
// one whose sign moves away from end, or a NaN bound or step is recorded as
// an invalid argument because the sequence would never finish.
func Range[N Number](start, end, step N) *Query[N] {
	var zero N
	switch {
	case start != start, end != end, step != step:
		return failed[N](errors.InvalidArgument("step",
			fmt.Sprintf("range %v to %v by %v has no order", start, end, step)))
	case step == zero:
		return failed[N](errors.InvalidArgument("step", "step must not be zero"))
	case start < end && step < zero, start > end && step > zero:
		return failed[N](errors.InvalidArgument("step",
			fmt.Sprintf("step %v cannot reach %v from %v", step, end, start)))
	}

	// Items are computed as start + i*step so float steps do not drift.
	var (
		i    int
		prev N
		done bool
	)
	up := step > zero
	return newQuery[N](func() (any, bool, error) {
		if done {
			return nil, false, nil
		}
		v := start + N(i)*step
		overflowed := i > 0 && ((up && v <= prev) || (!up && v >= prev))
		if overflowed || (up && v > end) || (!up && v < end) {
			done = true
			return nil, false, nil
		}
		i++
		prev = v
		return v, true, nil
	}, 1)
}
