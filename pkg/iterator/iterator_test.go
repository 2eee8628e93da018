package iterator_test

import (
	"errors"
	"iter"
	"slices"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/Pallinder/go-randomdata"
	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"
	"go.llib.dev/testcase/random"

	"go.llib.dev/seqkit/pkg/contract"
	"go.llib.dev/seqkit/pkg/iterator"
	"go.llib.dev/seqkit/pkg/iterator/iteratorcontract"
)

// Spy counts how many times the wrapped Iterator is advanced.
type Spy[T any] struct {
	iterator.Iterator[T]
	NextCalls int
}

func (s *Spy[T]) Next() bool {
	s.NextCalls++
	return s.Iterator.Next()
}

func (s *Spy[T]) Start() iterator.Iterator[T] {
	if !s.HasStarted() {
		s.Next()
	}
	return s
}

func randomInts(t *testcase.T) []int {
	return random.Slice(t.Random.IntBetween(0, 7), func() int {
		return t.Random.IntBetween(-100, 100)
	})
}

func assertPreCondition(tb testing.TB, blk func()) *contract.PreConditionError {
	tb.Helper()
	out := assert.Panic(tb, blk)
	err, ok := out.(*contract.PreConditionError)
	assert.True(tb, ok, assert.Message("expected a precondition violation"))
	return err
}

func TestSlice(t *testing.T) {
	iteratorcontract.Indexable[int](func(tb testing.TB) iteratorcontract.Subject[int] {
		vs := randomInts(testcase.ToT(&tb))
		return iteratorcontract.Subject[int]{Iterator: iterator.Slice(vs), Values: vs}
	}, func(it iterator.Iterator[int]) int {
		return it.(iterator.Indexable[int]).CurrentIndex()
	}).Test(t)
}

func TestSliceCursor_CurrentIndex(t *testing.T) {
	c := iterator.Of("a", "b", "c")
	assertPreCondition(t, func() { c.CurrentIndex() })

	c.Start()
	assert.Equal(t, 0, c.CurrentIndex())
	assert.Equal(t, "a", c.Current())
	assert.True(t, c.Next())
	assert.Equal(t, 1, c.CurrentIndex())
	assert.True(t, c.Next())
	assert.Equal(t, 2, c.CurrentIndex())
	assert.False(t, c.Next())
	assertPreCondition(t, func() { c.CurrentIndex() })
}

func TestEmpty(t *testing.T) {
	it := iterator.Empty[string]()
	assert.False(t, iterator.Any[string](it))
	assert.True(t, it.HasStarted())
	assert.Equal(t, []string{}, iterator.Collect[string](it))
}

func TestChars(t *testing.T) {
	iteratorcontract.Indexable[rune](func(tb testing.TB) iteratorcontract.Subject[rune] {
		text := randomdata.SillyName()
		return iteratorcontract.Subject[rune]{Iterator: iterator.Chars(text), Values: []rune(text)}
	}, func(it iterator.Iterator[rune]) int {
		return it.(iterator.Indexable[rune]).CurrentIndex()
	}).Test(t)

	s := testcase.NewSpec(t)

	s.Test("multi byte runes are yielded whole", func(t *testcase.T) {
		c := iterator.Chars("héllo, 世界")
		assert.Equal(t, []rune("héllo, 世界"), iterator.Collect[rune](c))
	})

	s.Test("byte offsets follow the encoded width of the runes", func(t *testcase.T) {
		c := iterator.Chars("aé世b")
		var offsets, indexes []int
		for c.Start(); c.HasCurrent(); c.Next() {
			offsets = append(offsets, c.ByteOffset())
			indexes = append(indexes, c.CurrentIndex())
		}
		assert.Equal(t, []int{0, 1, 3, 6}, offsets)
		assert.Equal(t, []int{0, 1, 2, 3}, indexes)
	})

	s.Test("invalid bytes are yielded as replacement runes", func(t *testcase.T) {
		c := iterator.Chars("a\xffb")
		assert.Equal(t, []rune{'a', utf8.RuneError, 'b'}, iterator.Collect[rune](c))
	})

	s.Test("an empty string has no runes", func(t *testcase.T) {
		c := iterator.Chars("")
		assert.False(t, c.Next())
		assertPreCondition(t, func() { c.ByteOffset() })
	})
}

func TestFromPull(t *testing.T) {
	iteratorcontract.Protocol[int](func(tb testing.TB) iteratorcontract.Subject[int] {
		vs := randomInts(testcase.ToT(&tb))
		next, stop := iter.Pull(slices.Values(vs))
		tb.Cleanup(stop)
		return iteratorcontract.Subject[int]{Iterator: iterator.FromPull(next), Values: vs}
	}).Test(t)

	s := testcase.NewSpec(t)

	s.Test("the pull function is not called before the first advance", func(t *testcase.T) {
		var calls int
		it := iterator.FromPull(func() (int, bool) {
			calls++
			return calls, calls <= 2
		})
		assert.Equal(t, 0, calls)
		it.Start()
		assert.Equal(t, 1, calls)
		it.Start()
		assert.Equal(t, 1, calls)
	})

	s.Test("the pull function is not called again after the end", func(t *testcase.T) {
		var calls int
		it := iterator.FromPull(func() (int, bool) {
			calls++
			return 0, false
		})
		assert.False(t, it.Next())
		assert.False(t, it.Next())
		assert.False(t, it.Next())
		assert.Equal(t, 1, calls)
	})

	s.Test("stop functions run once on exhaustion", func(t *testcase.T) {
		var stops int
		next, stop := iter.Pull(slices.Values([]int{1, 2}))
		it := iterator.FromPull(next, stop, func() { stops++ })
		assert.Equal(t, []int{1, 2}, iterator.Collect[int](it))
		assert.Equal(t, 1, stops)
		assert.NoError(t, it.Close())
		assert.Equal(t, 1, stops)
	})

	s.Test("Close releases an abandoned iterator", func(t *testcase.T) {
		var stops int
		it := iterator.FromPull(func() (int, bool) { return 42, true }, func() { stops++ })
		it.Start()
		assert.Equal(t, 42, it.Current())
		assert.NoError(t, it.Close())
		assert.Equal(t, 1, stops)
		assert.True(t, it.HasStarted())
		assert.False(t, it.HasCurrent())
		assert.False(t, it.Next())
	})

	s.Test("nil pull function", func(t *testcase.T) {
		assertPreCondition(t, func() { iterator.FromPull[int](nil) })
	})
}

func TestFromSeq(t *testing.T) {
	iteratorcontract.Protocol[int](func(tb testing.TB) iteratorcontract.Subject[int] {
		vs := randomInts(testcase.ToT(&tb))
		it := iterator.FromSeq(slices.Values(vs))
		tb.Cleanup(func() { _ = it.Close() })
		return iteratorcontract.Subject[int]{Iterator: it, Values: vs}
	}).Test(t)

	t.Run("the sequence is entered lazily", func(t *testing.T) {
		var entered bool
		it := iterator.FromSeq(func(yield func(int) bool) {
			entered = true
			yield(1)
		})
		defer it.Close()
		assert.False(t, entered)
		assert.True(t, iterator.Any[int](it))
		assert.True(t, entered)
	})
}

func TestToPull(t *testing.T) {
	it := iterator.Of(1, 2)
	next := iterator.ToPull[int](it)
	assert.False(t, it.HasStarted())

	v, ok := next()
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	v, ok = next()
	assert.True(t, ok)
	assert.Equal(t, 2, v)
	v, ok = next()
	assert.False(t, ok)
	assert.Equal(t, 0, v)
	_, ok = next()
	assert.False(t, ok)
}

func TestToSeq(t *testing.T) {
	s := testcase.NewSpec(t)

	s.Test("range over the elements", func(t *testcase.T) {
		vs := randomInts(t)
		got := []int{}
		for v := range iterator.ToSeq[int](iterator.Slice(vs)) {
			got = append(got, v)
		}
		assert.Equal(t, vs, got)
	})

	s.Test("it is single use", func(t *testcase.T) {
		seq := iterator.ToSeq[int](iterator.Of(1, 2, 3))
		for v := range seq {
			assert.Equal(t, 1, v)
			break
		}
		assert.Equal(t, []int{2, 3}, slices.Collect(seq))
		assert.Empty(t, slices.Collect(seq))
	})

	s.Test("round trip through the native adapters", func(t *testcase.T) {
		vs := randomInts(t)
		it := iterator.FromSeq(iterator.ToSeq[int](iterator.Slice(vs)))
		defer it.Close()
		assert.Equal(t, vs, iterator.Collect[int](it))
	})
}

func TestMap(t *testing.T) {
	iteratorcontract.Protocol[string](func(tb testing.TB) iteratorcontract.Subject[string] {
		vs := randomInts(testcase.ToT(&tb))
		var exp = []string{}
		for _, v := range vs {
			exp = append(exp, strings.Repeat("x", v+100))
		}
		it := iterator.Map(iterator.Iterator[int](iterator.Slice(vs)), func(v int) string {
			return strings.Repeat("x", v+100)
		})
		return iteratorcontract.Subject[string]{Iterator: it, Values: exp}
	}).Test(t)

	s := testcase.NewSpec(t)

	calls := testcase.LetValue(s, 0)
	subject := testcase.Let(s, func(t *testcase.T) iterator.Iterator[int] {
		return iterator.Map[int, int](iterator.Of(1, 2, 3), func(v int) int {
			calls.Set(t, calls.Get(t)+1)
			return v * 2
		})
	})

	s.Test("construction does not call the function", func(t *testcase.T) {
		subject.Get(t)
		assert.Equal(t, 0, calls.Get(t))
	})

	s.Test("advancing does not call the function", func(t *testcase.T) {
		it := subject.Get(t)
		it.Start()
		it.Next()
		assert.Equal(t, 0, calls.Get(t))
	})

	s.Test("the function is applied on every read", func(t *testcase.T) {
		it := subject.Get(t).Start()
		assert.Equal(t, 2, it.Current())
		assert.Equal(t, 2, it.Current())
		assert.Equal(t, 2, calls.Get(t))
	})

	s.Test("collecting applies the function once per element", func(t *testcase.T) {
		assert.Equal(t, []int{2, 4, 6}, iterator.Collect(subject.Get(t)))
		assert.Equal(t, 3, calls.Get(t))
	})

	s.Test("nil arguments", func(t *testcase.T) {
		assertPreCondition(t, func() { iterator.Map[int, int](nil, func(v int) int { return v }) })
		assertPreCondition(t, func() { iterator.Map[int, int](iterator.Of(1), nil) })
	})
}

func TestWhere(t *testing.T) {
	even := func(v int) bool { return v%2 == 0 }

	iteratorcontract.Protocol[int](func(tb testing.TB) iteratorcontract.Subject[int] {
		vs := randomInts(testcase.ToT(&tb))
		exp := []int{}
		for _, v := range vs {
			if even(v) {
				exp = append(exp, v)
			}
		}
		return iteratorcontract.Subject[int]{Iterator: iterator.Where[int](iterator.Slice(vs), even), Values: exp}
	}).Test(t)

	s := testcase.NewSpec(t)

	s.Test("no failing element is ever current", func(t *testcase.T) {
		it := iterator.Where[int](iterator.Of(1, 3, 4, 5, 6, 7), even)
		for it.Start(); it.HasCurrent(); it.Next() {
			assert.True(t, even(it.Current()))
		}
	})

	s.Test("nothing matches", func(t *testcase.T) {
		it := iterator.Where[int](iterator.Of(1, 3, 5), even)
		assert.False(t, iterator.Any(it))
		assert.True(t, it.HasStarted())
	})

	s.Test("the inner iterator is not touched before the first advance", func(t *testcase.T) {
		spy := &Spy[int]{Iterator: iterator.Of(1, 2)}
		it := iterator.Where[int](spy, even)
		assert.False(t, it.HasStarted())
		assert.Equal(t, 0, spy.NextCalls)
		assert.True(t, it.Next())
		assert.Equal(t, 2, it.Current())
	})
}

func TestOfType(t *testing.T) {
	it := iterator.OfType[string, any](iterator.Of[any](1, "a", 2.0, "b", nil))
	assert.Equal(t, []string{"a", "b"}, iterator.Collect(it))
}

func TestWhereType(t *testing.T) {
	it := iterator.WhereType(iterator.Iterator[error](iterator.Of[error](
		&iterator.NotFoundError{Message: "a"},
		&iterator.EmptyError{Message: "b"},
		&iterator.NotFoundError{Message: "c"},
	)), func(err error) (*iterator.NotFoundError, bool) {
		var target *iterator.NotFoundError
		return target, errors.As(err, &target)
	})
	var msgs []string
	for v := range iterator.ToSeq(it) {
		msgs = append(msgs, v.Message)
	}
	assert.Equal(t, []string{"a", "c"}, msgs)
}

func TestSkip(t *testing.T) {
	iteratorcontract.Protocol[int](func(tb testing.TB) iteratorcontract.Subject[int] {
		tc := testcase.ToT(&tb)
		vs := randomInts(tc)
		n := tc.Random.IntBetween(0, 8)
		exp := []int{}
		if n < len(vs) {
			exp = vs[n:]
		}
		return iteratorcontract.Subject[int]{Iterator: iterator.Skip[int](iterator.Slice(vs), n), Values: exp}
	}).Test(t)

	s := testcase.NewSpec(t)

	s.Test("more than available", func(t *testcase.T) {
		assert.Equal(t, []int{}, iterator.Collect(iterator.Skip[int](iterator.Empty[int](), 5)))
		assert.Equal(t, []int{}, iterator.Collect(iterator.Skip[int](iterator.Of(1, 2), 5)))
	})

	s.Test("zero is the identity", func(t *testcase.T) {
		vs := randomInts(t)
		assert.Equal(t, iterator.Collect[int](iterator.Slice(vs)), iterator.Collect(iterator.Skip[int](iterator.Slice(vs), 0)))
	})

	s.Test("the skipped elements are consumed on start only", func(t *testcase.T) {
		spy := &Spy[int]{Iterator: iterator.Of(1, 2, 3, 4)}
		it := iterator.Skip[int](spy, 2)
		assert.Equal(t, 0, spy.NextCalls)
		it.Start()
		assert.Equal(t, 3, spy.NextCalls)
		assert.Equal(t, 3, it.Current())
	})

	s.Test("negative count", func(t *testcase.T) {
		err := assertPreCondition(t, func() { iterator.Skip[int](iterator.Of(1), -1*t.Random.IntBetween(1, 10)) })
		assert.Equal(t, "maximumToSkip", err.Expression)
		assert.True(t, errors.Is(err, contract.ErrPreCondition))
	})
}

func TestTake(t *testing.T) {
	iteratorcontract.Protocol[int](func(tb testing.TB) iteratorcontract.Subject[int] {
		tc := testcase.ToT(&tb)
		vs := randomInts(tc)
		n := tc.Random.IntBetween(0, 8)
		exp := vs[:min(n, len(vs))]
		return iteratorcontract.Subject[int]{Iterator: iterator.Take[int](iterator.Slice(vs), n), Values: exp}
	}).Test(t)

	s := testcase.NewSpec(t)

	s.Test("the inner iterator is not advanced past the limit", func(t *testcase.T) {
		inner := iterator.Of(1, 2, 3, 4)
		assert.Equal(t, []int{1, 2}, iterator.Collect(iterator.Take[int](inner, 2)))
		assert.True(t, inner.HasCurrent())
		assert.Equal(t, 2, inner.Current())
		inner.Next()
		assert.Equal(t, []int{3, 4}, iterator.Collect[int](inner))
	})

	s.Test("zero takes nothing", func(t *testcase.T) {
		spy := &Spy[int]{Iterator: iterator.Of(1, 2, 3)}
		it := iterator.Take[int](spy, 0)
		assert.False(t, it.Next())
		assert.False(t, it.Next())
		assert.Equal(t, 1, spy.NextCalls)
	})

	s.Test("limit beyond the available elements", func(t *testcase.T) {
		assert.Equal(t, []int{1, 2}, iterator.Collect(iterator.Take[int](iterator.Of(1, 2), 10)))
	})

	s.Test("negative count", func(t *testcase.T) {
		err := assertPreCondition(t, func() { iterator.Take[int](iterator.Of(1), -1) })
		assert.Equal(t, "maximumToTake", err.Expression)
	})
}

func TestSkipThenTake(t *testing.T) {
	it := iterator.Take(iterator.Skip[int](iterator.Of(1, 2, 3), 1), 1)
	assert.Equal(t, []int{2}, iterator.Collect(it))
}

func TestIndexed(t *testing.T) {
	iteratorcontract.Indexable[string](func(tb testing.TB) iteratorcontract.Subject[string] {
		tc := testcase.ToT(&tb)
		vs := random.Slice(tc.Random.IntBetween(0, 5), func() string { return tc.Random.String() })
		src := iterator.FromSeq(slices.Values(vs))
		tb.Cleanup(func() { _ = src.Close() })
		it := iterator.Indexed[string](src)
		return iteratorcontract.Subject[string]{Iterator: it, Values: vs}
	}, func(it iterator.Iterator[string]) int {
		return it.(iterator.Indexable[string]).CurrentIndex()
	}).Test(t)

	t.Run("positions are counted after filtering", func(t *testing.T) {
		it := iterator.Indexed(iterator.Where[int](iterator.Of(1, 2, 3, 4, 5, 6), func(v int) bool { return v > 3 }))
		var got [][2]int
		for it.Start(); it.HasCurrent(); it.Next() {
			got = append(got, [2]int{it.CurrentIndex(), it.Current()})
		}
		assert.Equal(t, [][2]int{{0, 4}, {1, 5}, {2, 6}}, got)
		assertPreCondition(t, func() { it.CurrentIndex() })
	})
}

func TestAny(t *testing.T) {
	s := testcase.NewSpec(t)

	s.Test("it does not advance past the first element", func(t *testcase.T) {
		it := iterator.Of(1, 2, 3)
		assert.True(t, iterator.Any[int](it))
		assert.Equal(t, 1, it.Current())
		assert.True(t, iterator.Any[int](it))
		assert.Equal(t, 1, it.Current())
	})

	s.Test("empty", func(t *testcase.T) {
		assert.False(t, iterator.Any[int](iterator.Empty[int]()))
	})

	s.Test("nil iterator", func(t *testcase.T) {
		assertPreCondition(t, func() { iterator.Any[int](nil) })
	})
}

func TestCount(t *testing.T) {
	s := testcase.NewSpec(t)

	s.Test("it counts every element", func(t *testcase.T) {
		vs := randomInts(t)
		assert.Equal(t, len(vs), iterator.Count[int](iterator.Slice(vs)))
	})

	s.Test("it counts what is left", func(t *testcase.T) {
		it := iterator.Of(1, 2, 3, 4)
		it.Start()
		it.Next()
		assert.Equal(t, 3, iterator.Count[int](it))
		assert.Equal(t, 0, iterator.Count[int](it))
	})
}

func TestCollect(t *testing.T) {
	assert.NotNil(t, iterator.Collect[int](iterator.Empty[int]()))
	assert.Equal(t, []int{}, iterator.Collect[int](iterator.Empty[int]()))
}

func TestFirst(t *testing.T) {
	s := testcase.NewSpec(t)

	s.Test("the first element", func(t *testcase.T) {
		got, err := iterator.First[int](iterator.Of(7, 8)).Await()
		assert.NoError(t, err)
		assert.Equal(t, 7, got)
	})

	s.Test("the iterator is touched only on await", func(t *testcase.T) {
		it := iterator.Of(1)
		r := iterator.First[int](it)
		assert.False(t, it.HasStarted())
		_, _ = r.Await()
		assert.True(t, it.HasStarted())
	})

	s.Test("empty", func(t *testcase.T) {
		_, err := iterator.First[int](iterator.Empty[int]()).Await()
		assert.ErrorIs(t, iterator.ErrNotFound, err)
		assert.Equal(t, "No value was found in the Iterator.", err.Error())
		var nf *iterator.NotFoundError
		assert.True(t, errors.As(err, &nf))
		assert.False(t, errors.Is(err, iterator.ErrEmpty))
	})
}

func TestFirstWhere(t *testing.T) {
	s := testcase.NewSpec(t)

	s.Test("the first matching element", func(t *testcase.T) {
		it := iterator.Of(1, 2, 3, 4)
		got, err := iterator.FirstWhere[int](it, func(v int) bool { return v > 2 }).Await()
		assert.NoError(t, err)
		assert.Equal(t, 3, got)
		assert.Equal(t, 3, it.Current())
	})

	s.Test("no match", func(t *testcase.T) {
		_, err := iterator.FirstWhere[int](iterator.Of(1, 2), func(v int) bool { return v > 2 }).Await()
		assert.ErrorIs(t, iterator.ErrNotFound, err)
		assert.Equal(t, "No value was found in the Iterator that matched the provided condition.", err.Error())
	})

	s.Test("nil condition", func(t *testcase.T) {
		assertPreCondition(t, func() { iterator.FirstWhere[int](iterator.Of(1), nil) })
	})
}

func TestLast(t *testing.T) {
	s := testcase.NewSpec(t)

	s.Test("the last element", func(t *testcase.T) {
		vs := randomInts(t)
		if len(vs) == 0 {
			vs = append(vs, t.Random.Int())
		}
		got, err := iterator.Last[int](iterator.Slice(vs)).Await()
		assert.NoError(t, err)
		assert.Equal(t, vs[len(vs)-1], got)
	})

	s.Test("empty", func(t *testcase.T) {
		_, err := iterator.Last[int](iterator.Empty[int]()).Await()
		assert.ErrorIs(t, iterator.ErrEmpty, err)
		assert.Equal(t, "Can't get the last value of an empty Iterator.", err.Error())
	})
}

func TestMax(t *testing.T) {
	s := testcase.NewSpec(t)

	s.Test("the greatest element", func(t *testcase.T) {
		vs := randomInts(t)
		if len(vs) == 0 {
			vs = append(vs, t.Random.Int())
		}
		got, err := iterator.Max[int](iterator.Slice(vs)).Await()
		assert.NoError(t, err)
		assert.Equal(t, slices.Max(vs), got)
	})

	s.Test("the earliest element wins a tie", func(t *testcase.T) {
		type rec struct{ key, pos int }
		it := iterator.Of(rec{1, 0}, rec{3, 1}, rec{2, 2}, rec{3, 3})
		got, err := iterator.MaxFunc[rec](it, func(a, b rec) int { return a.key - b.key }).Await()
		assert.NoError(t, err)
		assert.Equal(t, rec{3, 1}, got)
	})

	s.Test("empty", func(t *testcase.T) {
		_, err := iterator.Max[int](iterator.Empty[int]()).Await()
		assert.ErrorIs(t, iterator.ErrEmpty, err)
		assert.Equal(t, "Can't find the maximum of an empty Iterator.", err.Error())
	})
}

func TestPipeline(t *testing.T) {
	words := iterator.Chars("the quick brown fox")
	upper := iterator.Map(iterator.Where[rune](words, func(r rune) bool { return r != ' ' }), func(r rune) string {
		return strings.ToUpper(string(r))
	})
	got := strings.Join(iterator.Collect(iterator.Take(iterator.Skip(upper, 3), 5)), "")
	assert.Equal(t, "QUICK", got)
}
