package query

import (
	"context"
	stderrors "errors"
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/querykit/errors"
)

// counting returns a pull function over items that counts how many items it
// has handed out.
func counting[T any](items []T, produced *int) PullFunc[T] {
	i := 0
	return func() (T, bool) {
		if i >= len(items) {
			var zero T
			return zero, false
		}
		v := items[i]
		i++
		*produced++
		return v, true
	}
}

func requireCode(t *testing.T, err error, code errors.ErrorCode) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, code), "expected %s, got %v", code, err)
}

func TestQuery_RegistrationIsLazy(t *testing.T) {
	produced := 0
	q := FromFunc(counting([]int{1, 2, 3, 4}, &produced)).
		Where(func(n int) bool { return n > 1 }).
		Skip(1).
		Take(5).
		Distinct()
	sorted := q.OrderBy(func(a, b int) int { return b - a })
	_ = Chunk(sorted.Reverse(), 2)
	_ = GroupBy(FromFunc(counting([]int{1}, &produced)), func(n int) int { return n })

	assert.Equal(t, 0, produced)
}

func TestQuery_PullThroughStages(t *testing.T) {
	q := Of(1, 2, 3, 4, 5, 6).
		Where(func(n int) bool { return n%2 == 0 }).
		Skip(1)

	v, ok := q.Pull()
	require.True(t, ok)
	assert.Equal(t, 4, v)

	v, ok = q.Pull()
	require.True(t, ok)
	assert.Equal(t, 6, v)

	_, ok = q.Pull()
	assert.False(t, ok)
	_, ok = q.Pull()
	assert.False(t, ok, "an exhausted query stays exhausted")
}

func TestQuery_EmptyIsIdempotent(t *testing.T) {
	q := FromSlice([]string{})

	first, err := q.ToSlice()
	require.NoError(t, err)
	second, err := q.ToSlice()
	require.NoError(t, err)

	assert.Empty(t, first)
	assert.Empty(t, second)
	assert.NotNil(t, first)
}

func TestQuery_EndIsSticky(t *testing.T) {
	produced := 0
	q := FromFunc(counting([]int{1, 2, 3, 4}, &produced)).
		TakeWhile(func(n int) bool { return n < 2 })

	items, err := q.ToSlice()
	require.NoError(t, err)
	assert.Equal(t, []int{1}, items)

	_, ok := q.Pull()
	assert.False(t, ok)
	assert.Equal(t, 2, produced, "no pulls after End")
}

func TestQuery_IDAndArity(t *testing.T) {
	a, b := Of(1), Of(2)
	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, 1, a.Arity())
	assert.Equal(t, 2, FromMap(map[string]int{"a": 1}).Arity())
}

func TestQuery_AllStopsEarly(t *testing.T) {
	produced := 0
	q := FromFunc(counting([]int{1, 2, 3, 4}, &produced))

	var got []int
	for v := range q.All() {
		got = append(got, v)
		if v == 2 {
			break
		}
	}
	assert.Equal(t, []int{1, 2}, got)
	assert.Equal(t, 2, produced)
}

func TestQuery_FeedsAnotherQuery(t *testing.T) {
	inner := Of(3, 1, 2).Where(func(n int) bool { return n != 1 })
	items, err := Select(From[int](inner), func(n int) int { return n * 10 }).ToSlice()
	require.NoError(t, err)
	assert.Equal(t, []int{30, 20}, items)
}

func TestTransform_Signals(t *testing.T) {
	q := Transform(Of(1, 2, 3, 4, 5), func(n int) Step[string] {
		switch {
		case n == 2:
			return Drop[string]()
		case n == 4:
			return Stop[string]()
		}
		return Yield(string(rune('a' + n - 1)))
	})

	items, err := q.ToSlice()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, items)
}

func TestTransform_MarkerShapedValuesPass(t *testing.T) {
	q := Transform(Of(Skip, End, Emit), func(s Signal) Step[Signal] { return Yield(s) })

	items, err := q.ToSlice()
	require.NoError(t, err)
	assert.Equal(t, []Signal{Skip, End, Emit}, items)
}

func TestSignal_String(t *testing.T) {
	assert.Equal(t, "emit", Emit.String())
	assert.Equal(t, "skip", Skip.String())
	assert.Equal(t, "end", End.String())
	assert.Equal(t, "unknown", Signal(9).String())
}

// --- Sources ---

func TestSlice_ReEnumerable(t *testing.T) {
	s := Slice[int]{1, 2}
	for range 2 {
		items, err := From[int](s).ToSlice()
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2}, items)
	}
}

func TestFromMap_YieldsPairs(t *testing.T) {
	m := map[string]int{"a": 1, "b": 2, "c": 3}
	got, err := ToPairsMap(FromMap(m), true)
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

func TestFromSeq(t *testing.T) {
	items, err := FromSeq(func(yield func(int) bool) {
		for i := range 3 {
			if !yield(i) {
				return
			}
		}
	}).ToSlice()
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, items)
}

func TestFromSeq_CloseReleasesSequence(t *testing.T) {
	released := false
	var seq iter.Seq[int] = func(yield func(int) bool) {
		defer func() { released = true }()
		for i := 0; ; i++ {
			if !yield(i) {
				return
			}
		}
	}
	q := FromSeq(seq)
	v, ok := q.Pull()
	require.True(t, ok)
	assert.Equal(t, 0, v)

	require.NoError(t, q.Close())
	assert.True(t, released)
}

func TestFromSeq_TakeReleasesSequence(t *testing.T) {
	released := false
	q := FromSeq(func(yield func(int) bool) {
		defer func() { released = true }()
		for i := 0; ; i++ {
			if !yield(i) {
				return
			}
		}
	}).Take(2)

	items, err := q.ToSlice()
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, items)
	assert.True(t, released)
}

func TestFromSeq2(t *testing.T) {
	var keys []string
	var sum int
	err := ForEachPair(FromSeq2(func(yield func(string, int) bool) {
		_ = yield("x", 1) && yield("y", 2)
	}), func(k string, v int) {
		keys = append(keys, k)
		sum += v
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, keys)
	assert.Equal(t, 3, sum)
}

type sliceIterator struct {
	items  []int
	failAt int
	pos    int
	closed int
}

func (it *sliceIterator) Next(context.Context) (int, bool, error) {
	if it.failAt >= 0 && it.pos == it.failAt {
		return 0, false, stderrors.New("stream broken")
	}
	if it.pos >= len(it.items) {
		return 0, false, nil
	}
	v := it.items[it.pos]
	it.pos++
	return v, true, nil
}

func (it *sliceIterator) Close() error {
	it.closed++
	return nil
}

func TestFromIterator_ClosesOnExhaustion(t *testing.T) {
	it := &sliceIterator{items: []int{1, 2, 3}, failAt: -1}
	q := FromIterator[int](context.Background(), it)

	items, err := q.ToSlice()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, items)
	require.NoError(t, q.Close())
	assert.Equal(t, 1, it.closed)
}

func TestFromIterator_ErrorIsSticky(t *testing.T) {
	it := &sliceIterator{items: []int{1, 2, 3}, failAt: 2}
	q := FromIterator[int](context.Background(), it)

	items, err := q.ToSlice()
	require.EqualError(t, err, "stream broken")
	assert.Nil(t, items)
	assert.Equal(t, 1, it.closed)

	_, ok := q.Pull()
	assert.False(t, ok)
	assert.Error(t, q.Err())
}

func TestFromIterator_TakeClosesEarly(t *testing.T) {
	it := &sliceIterator{items: []int{1, 2, 3, 4}, failAt: -1}
	items, err := FromIterator[int](context.Background(), it).Take(1).ToSlice()
	require.NoError(t, err)
	assert.Equal(t, []int{1}, items)
	assert.Equal(t, 1, it.closed)
}

// --- Chain ---

func TestChain_AdvancesThroughSources(t *testing.T) {
	c := NewChain[int](Slice[int]{1, 2}, Slice[int]{}, Of(3), Slice[int]{4})

	items, err := From[int](c).ToSlice()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, items)

	_, ok := c.Pull()
	assert.False(t, ok, "a drained chain stays drained")
}

func TestChain_Empty(t *testing.T) {
	items, err := From[string](NewChain[string]()).ToSlice()
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestChain_CarriesSourceError(t *testing.T) {
	bad := Of(1, 2).Skip(-1)
	c := NewChain[int](Slice[int]{0}, bad)
	requireCode(t, c.Err(), errors.ErrCodeInvalidArgument)

	_, err := From[int](c).ToSlice()
	requireCode(t, err, errors.ErrCodeInvalidArgument)
}

func TestConcat(t *testing.T) {
	items, err := Of(1, 2).Concat(Slice[int]{3}, Of(4, 5).Take(1)).ToSlice()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, items)
}
