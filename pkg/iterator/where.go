package iterator

import "go.llib.dev/seqkit/pkg/contract"

// Where returns an Iterator of the elements of it that satisfy cond.
func Where[T any](it Iterator[T], cond func(T) bool) Iterator[T] {
	contract.Pre.NotNil(it, contract.Expression("it"))
	contract.Pre.NotNil(cond, contract.Expression("cond"))
	return &whereIter[T]{inner: it, cond: cond}
}

type whereIter[T any] struct {
	inner   Iterator[T]
	cond    func(T) bool
	started bool
}

func (i *whereIter[T]) HasStarted() bool { return i.started }

func (i *whereIter[T]) HasCurrent() bool { return i.started && i.inner.HasCurrent() }

func (i *whereIter[T]) Current() T {
	contract.Pre.True(i.HasCurrent(), contract.Expression("HasCurrent()"))
	return i.inner.Current()
}

func (i *whereIter[T]) Next() bool {
	if i.started {
		i.inner.Next()
	} else {
		i.started = true
		i.inner.Start()
	}
	for i.inner.HasCurrent() && !i.cond(i.inner.Current()) {
		i.inner.Next()
	}
	return i.inner.HasCurrent()
}

func (i *whereIter[T]) Start() Iterator[T] {
	if !i.started {
		i.Next()
	}
	return i
}

// WhereType narrows an Iterator with a type guard.
// Elements for which guard reports false are dropped,
// the rest are yielded in their converted form.
//
// guard is called again whenever the current element is read, so it should be free of side effects.
func WhereType[To any, From any](it Iterator[From], guard func(From) (To, bool)) Iterator[To] {
	contract.Pre.NotNil(guard, contract.Expression("guard"))
	matching := Where(it, func(v From) bool {
		_, ok := guard(v)
		return ok
	})
	return Map(matching, func(v From) To {
		out, _ := guard(v)
		return out
	})
}

// OfType keeps the elements whose dynamic type is To.
//
//	strs := iterator.OfType[string](iterator.Of[any](1, "a", 2.0, "b"))
func OfType[To any, From any](it Iterator[From]) Iterator[To] {
	return WhereType(it, func(v From) (To, bool) {
		out, ok := any(v).(To)
		return out, ok
	})
}
