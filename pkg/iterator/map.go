package iterator

import "go.llib.dev/seqkit/pkg/contract"

// Map returns an Iterator that yields transform applied to each element of it.
//
// transform is called lazily, on every Current call,
// so an element that is never looked at is never transformed.
func Map[To any, From any](it Iterator[From], transform func(From) To) Iterator[To] {
	contract.Pre.NotNil(it, contract.Expression("it"))
	contract.Pre.NotNil(transform, contract.Expression("transform"))
	return &mapIter[From, To]{inner: it, transform: transform}
}

type mapIter[From, To any] struct {
	inner     Iterator[From]
	transform func(From) To
}

func (i *mapIter[From, To]) HasStarted() bool { return i.inner.HasStarted() }

func (i *mapIter[From, To]) HasCurrent() bool { return i.inner.HasCurrent() }

func (i *mapIter[From, To]) Current() To {
	contract.Pre.True(i.HasCurrent(), contract.Expression("HasCurrent()"))
	return i.transform(i.inner.Current())
}

func (i *mapIter[From, To]) Next() bool { return i.inner.Next() }

func (i *mapIter[From, To]) Start() Iterator[To] {
	i.inner.Start()
	return i
}
