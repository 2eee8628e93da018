// Package iteratorcontract holds the behavioural contract every Iterator implementation is expected to pass.
package iteratorcontract

import (
	"go.llib.dev/frameless/port/contract"
	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"

	"go.llib.dev/seqkit/pkg/iterator"
)

// Subject is an Iterator under test together with the elements it must yield.
type Subject[T any] struct {
	Iterator iterator.Iterator[T]
	Values   []T
}

// Protocol checks the state machine of an Iterator:
// not started on creation, lazily started, single-pass, and stuck once exhausted.
func Protocol[T any](mk contract.Make[Subject[T]]) contract.Contract {
	s := testcase.NewSpec(nil)

	subject := testcase.Let(s, func(t *testcase.T) Subject[T] {
		return mk(t)
	})

	s.Test("it is not started on creation", func(t *testcase.T) {
		it := subject.Get(t).Iterator
		assert.False(t, it.HasStarted())
		assert.False(t, it.HasCurrent())
	})

	s.Test("reading the current element before starting is a precondition violation", func(t *testcase.T) {
		it := subject.Get(t).Iterator
		assert.Panic(t, func() { it.Current() })
	})

	s.Test("it yields the expected elements in order", func(t *testcase.T) {
		sub := subject.Get(t)
		got := iterator.Collect(sub.Iterator)
		if len(sub.Values) == 0 {
			assert.Empty(t, got)
			return
		}
		assert.Equal(t, sub.Values, got)
	})

	s.Test("Start is idempotent", func(t *testcase.T) {
		sub := subject.Get(t)
		sub.Iterator.Start()
		sub.Iterator.Start()
		assert.True(t, sub.Iterator.HasStarted())
		assert.Equal(t, len(sub.Values) > 0, sub.Iterator.HasCurrent())
		if 0 < len(sub.Values) {
			assert.Equal(t, sub.Values[0], sub.Iterator.Current())
		}
	})

	s.Test("Current can be read repeatedly without advancing", func(t *testcase.T) {
		sub := subject.Get(t)
		if len(sub.Values) == 0 {
			t.Skip("no elements to read")
		}
		sub.Iterator.Start()
		assert.Equal(t, sub.Iterator.Current(), sub.Iterator.Current())
		assert.Equal(t, sub.Values, iterator.Collect(sub.Iterator))
	})

	s.Test("an exhausted iterator stays exhausted", func(t *testcase.T) {
		it := subject.Get(t).Iterator
		iterator.Collect(it)
		assert.True(t, it.HasStarted())
		t.Random.Repeat(1, 5, func() {
			assert.False(t, it.Next())
			assert.False(t, it.HasCurrent())
		})
		assert.Panic(t, func() { it.Current() })
		assert.Equal(t, 0, iterator.Count(it))
	})

	s.Test("Next reports the presence of a current element", func(t *testcase.T) {
		sub := subject.Get(t)
		var n int
		for sub.Iterator.Next() {
			assert.True(t, sub.Iterator.HasCurrent())
			n++
		}
		assert.Equal(t, len(sub.Values), n)
	})

	return s.AsSuite("iterator.Protocol")
}

// Indexable extends Protocol with the position of the current element.
func Indexable[T any](mk contract.Make[Subject[T]], index func(iterator.Iterator[T]) int) contract.Contract {
	s := testcase.NewSpec(nil)
	testcase.RunSuite(s, Protocol(mk))

	s.Test("positions count up from zero", func(t *testcase.T) {
		sub := mk(t)
		var got []int
		for sub.Iterator.Start(); sub.Iterator.HasCurrent(); sub.Iterator.Next() {
			got = append(got, index(sub.Iterator))
		}
		for i, pos := range got {
			assert.Equal(t, i, pos)
		}
		assert.Equal(t, len(sub.Values), len(got))
	})

	return s.AsSuite("iterator.Indexable")
}
