// Package iterator implements a lazy, single-pass cursor protocol.
//
// # Summary
//
// An Iterator walks a sequence of elements exactly once.
// A freshly made Iterator is not started, it does not look at its source until Start or Next is called.
// After the first advance it either has a current element or it is exhausted,
// and once exhausted it stays exhausted.
//
// Decorators such as Map, Where, Skip, Take and Indexed wrap an inner Iterator
// and share its progress. Advancing a decorator advances the inner Iterator,
// so the inner Iterator should not be used directly once it is decorated.
//
// The terminal functions (Any, Count, Collect, First, Last, Max) consume the Iterator they are given.
//
// An Iterator is owned by one goroutine and it is not safe for concurrent use.
package iterator

// Iterator is a single-pass cursor over elements of T.
//
//	NotStarted: !HasStarted()
//	Current:    HasStarted() && HasCurrent()
//	Exhausted:  HasStarted() && !HasCurrent()
type Iterator[T any] interface {
	// HasStarted reports whether the Iterator was advanced at least once.
	HasStarted() bool
	// HasCurrent reports whether there is a current element.
	// It is false before the first advance.
	HasCurrent() bool
	// Current returns the current element.
	// Calling it without a current element is a precondition violation.
	Current() T
	// Next advances the Iterator and reports whether it has a current element afterwards.
	// Calling Next on an exhausted Iterator is a no-op that returns false.
	Next() bool
	// Start advances a not yet started Iterator once, and does nothing otherwise.
	Start() Iterator[T]
}

// Indexable is an Iterator that also knows the zero based position of its current element.
type Indexable[T any] interface {
	Iterator[T]
	// CurrentIndex returns the position of the current element.
	// Calling it without a current element is a precondition violation.
	CurrentIndex() int
}
