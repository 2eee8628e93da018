package iterator

import "go.llib.dev/seqkit/pkg/contract"

// Skip returns an Iterator that omits the first n elements of it.
// A negative n is a precondition violation.
func Skip[T any](it Iterator[T], n int) Iterator[T] {
	contract.Pre.NotNil(it, contract.Expression("it"))
	contract.Pre.GreaterOrEqual(n, 0, contract.Expression("maximumToSkip"))
	return &skipIter[T]{inner: it, toSkip: n}
}

type skipIter[T any] struct {
	inner   Iterator[T]
	toSkip  int
	started bool
}

func (i *skipIter[T]) HasStarted() bool { return i.started }

func (i *skipIter[T]) HasCurrent() bool { return i.started && i.inner.HasCurrent() }

func (i *skipIter[T]) Current() T {
	contract.Pre.True(i.HasCurrent(), contract.Expression("HasCurrent()"))
	return i.inner.Current()
}

func (i *skipIter[T]) Next() bool {
	if i.started {
		return i.inner.Next()
	}
	i.started = true
	i.inner.Start()
	for n := 0; n < i.toSkip && i.inner.HasCurrent(); n++ {
		i.inner.Next()
	}
	return i.inner.HasCurrent()
}

func (i *skipIter[T]) Start() Iterator[T] {
	if !i.started {
		i.Next()
	}
	return i
}
