package iterator

import "go.llib.dev/seqkit/pkg/contract"

// Indexed decorates it with the zero based position of its elements.
// Positions are counted from the point where the decorator starts.
func Indexed[T any](it Iterator[T]) Indexable[T] {
	contract.Pre.NotNil(it, contract.Expression("it"))
	return &indexedIter[T]{inner: it}
}

type indexedIter[T any] struct {
	inner   Iterator[T]
	index   int
	started bool
}

func (i *indexedIter[T]) HasStarted() bool { return i.started }

func (i *indexedIter[T]) HasCurrent() bool { return i.started && i.inner.HasCurrent() }

func (i *indexedIter[T]) Current() T {
	contract.Pre.True(i.HasCurrent(), contract.Expression("HasCurrent()"))
	return i.inner.Current()
}

func (i *indexedIter[T]) CurrentIndex() int {
	contract.Pre.True(i.HasCurrent(), contract.Expression("HasCurrent()"))
	return i.index
}

func (i *indexedIter[T]) Next() bool {
	if !i.started {
		i.started = true
		i.inner.Start()
		return i.inner.HasCurrent()
	}
	if !i.inner.HasCurrent() {
		return false
	}
	if i.inner.Next() {
		i.index++
		return true
	}
	return false
}

func (i *indexedIter[T]) Start() Iterator[T] {
	if !i.started {
		i.Next()
	}
	return i
}
