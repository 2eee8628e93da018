package iterator

import "go.llib.dev/seqkit/pkg/contract"

// Take returns an Iterator of at most the first n elements of it.
// A negative n is a precondition violation.
//
// The inner Iterator is never advanced past the n-th element,
// so the remaining elements can still be read from it.
func Take[T any](it Iterator[T], n int) Iterator[T] {
	contract.Pre.NotNil(it, contract.Expression("it"))
	contract.Pre.GreaterOrEqual(n, 0, contract.Expression("maximumToTake"))
	return &takeIter[T]{inner: it, limit: n}
}

type takeIter[T any] struct {
	inner   Iterator[T]
	limit   int
	taken   int
	started bool
}

func (i *takeIter[T]) HasStarted() bool { return i.started }

func (i *takeIter[T]) HasCurrent() bool {
	return i.started && i.taken <= i.limit && i.inner.HasCurrent()
}

func (i *takeIter[T]) Current() T {
	contract.Pre.True(i.HasCurrent(), contract.Expression("HasCurrent()"))
	return i.inner.Current()
}

func (i *takeIter[T]) Next() bool {
	switch {
	case !i.started:
		i.started = true
		i.inner.Start()
		i.taken = 1
	case i.taken <= i.limit:
		if i.taken < i.limit {
			i.inner.Next()
		}
		i.taken++
	}
	return i.HasCurrent()
}

func (i *takeIter[T]) Start() Iterator[T] {
	if !i.started {
		i.Next()
	}
	return i
}
