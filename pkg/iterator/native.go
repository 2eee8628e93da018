package iterator

import (
	"iter"

	"go.llib.dev/seqkit/pkg/contract"
)

// Native adapts a Go pull function to the Iterator protocol.
//
// It buffers the most recent outcome of the pull function,
// and never calls the pull function again once it reported the end of the sequence.
type Native[T any] struct {
	next  func() (T, bool)
	stops []func()

	value   T
	started bool
	done    bool
}

// FromPull makes an Iterator out of a pull function, as returned by iter.Pull.
// The stop functions run once, either on exhaustion or on Close.
func FromPull[T any](next func() (T, bool), stops ...func()) *Native[T] {
	contract.Pre.NotNil(next, contract.Expression("next"))
	return &Native[T]{next: next, stops: stops}
}

// FromSeq makes an Iterator out of a push style sequence.
// The sequence is not entered before the first advance.
// Close the Iterator when it is abandoned before exhaustion.
func FromSeq[T any](seq iter.Seq[T]) *Native[T] {
	contract.Pre.NotNil(seq, contract.Expression("seq"))
	next, stop := iter.Pull(seq)
	return FromPull(next, stop)
}

func (i *Native[T]) HasStarted() bool { return i.started }

func (i *Native[T]) HasCurrent() bool { return i.started && !i.done }

func (i *Native[T]) Current() T {
	contract.Pre.True(i.HasCurrent(), contract.Expression("HasCurrent()"))
	return i.value
}

func (i *Native[T]) Next() bool {
	i.started = true
	if i.done {
		return false
	}
	v, ok := i.next()
	if !ok {
		i.finish()
		return false
	}
	i.value = v
	return true
}

func (i *Native[T]) Start() Iterator[T] {
	if !i.started {
		i.Next()
	}
	return i
}

// Close exhausts the Iterator and releases the underlying sequence.
// Calling it more than once is fine.
func (i *Native[T]) Close() error {
	i.started = true
	i.finish()
	return nil
}

func (i *Native[T]) finish() {
	var zero T
	i.value = zero
	i.done = true
	stops := i.stops
	i.stops = nil
	for _, stop := range stops {
		stop()
	}
}

// ToPull turns an Iterator into a Go pull function.
// The first call starts the Iterator, later calls advance it.
func ToPull[T any](it Iterator[T]) func() (T, bool) {
	contract.Pre.NotNil(it, contract.Expression("it"))
	var pulled bool
	return func() (T, bool) {
		if pulled {
			it.Next()
		} else {
			pulled = true
			it.Start()
		}
		if !it.HasCurrent() {
			var zero T
			return zero, false
		}
		return it.Current(), true
	}
}

// ToSeq turns an Iterator into a single-use push sequence for range loops.
// Elements consumed by an earlier range loop are not yielded again.
func ToSeq[T any](it Iterator[T]) iter.Seq[T] {
	next := ToPull(it)
	return func(yield func(T) bool) {
		for {
			v, ok := next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}
