package iterator

import (
	"cmp"

	"go.llib.dev/seqkit/pkg/contract"
	"go.llib.dev/seqkit/pkg/result"
)

// Any reports whether the Iterator has at least one element.
// It starts the Iterator but never advances past the first element.
func Any[T any](it Iterator[T]) bool {
	contract.Pre.NotNil(it, contract.Expression("it"))
	it.Start()
	return it.HasCurrent()
}

// Count consumes the Iterator and returns the number of elements it had left.
func Count[T any](it Iterator[T]) int {
	contract.Pre.NotNil(it, contract.Expression("it"))
	var n int
	for it.Start(); it.HasCurrent(); it.Next() {
		n++
	}
	return n
}

// Collect consumes the Iterator into a slice.
// The returned slice is never nil.
func Collect[T any](it Iterator[T]) []T {
	contract.Pre.NotNil(it, contract.Expression("it"))
	vs := make([]T, 0)
	for it.Start(); it.HasCurrent(); it.Next() {
		vs = append(vs, it.Current())
	}
	return vs
}

// First returns a Result of the first element.
// The Iterator is only touched when the Result is awaited,
// and it fails with a NotFoundError when there is no element.
func First[T any](it Iterator[T]) *result.Result[T] {
	contract.Pre.NotNil(it, contract.Expression("it"))
	return result.Create(func() (T, error) {
		it.Start()
		if !it.HasCurrent() {
			var zero T
			return zero, &NotFoundError{Message: msgFirstNotFound}
		}
		return it.Current(), nil
	})
}

// FirstWhere returns a Result of the first element that satisfies cond.
// The Iterator stays on the matching element.
func FirstWhere[T any](it Iterator[T], cond func(T) bool) *result.Result[T] {
	contract.Pre.NotNil(it, contract.Expression("it"))
	contract.Pre.NotNil(cond, contract.Expression("cond"))
	return result.Create(func() (T, error) {
		for it.Start(); it.HasCurrent(); it.Next() {
			if v := it.Current(); cond(v) {
				return v, nil
			}
		}
		var zero T
		return zero, &NotFoundError{Message: msgFirstWhereNotFound}
	})
}

// Last returns a Result of the final element.
// Awaiting the Result consumes the Iterator,
// and it fails with an EmptyError when there is no element.
func Last[T any](it Iterator[T]) *result.Result[T] {
	contract.Pre.NotNil(it, contract.Expression("it"))
	return result.Create(func() (T, error) {
		var last T
		if it.Start(); !it.HasCurrent() {
			return last, &EmptyError{Message: msgLastOfEmpty}
		}
		for ; it.HasCurrent(); it.Next() {
			last = it.Current()
		}
		return last, nil
	})
}

// Max returns a Result of the greatest element.
// Among equal elements the earliest one wins.
func Max[T cmp.Ordered](it Iterator[T]) *result.Result[T] {
	return MaxFunc(it, cmp.Compare[T])
}

// MaxFunc is Max with a custom ordering.
// compare returns a positive number when a is greater than b.
func MaxFunc[T any](it Iterator[T], compare func(a, b T) int) *result.Result[T] {
	contract.Pre.NotNil(it, contract.Expression("it"))
	contract.Pre.NotNil(compare, contract.Expression("compare"))
	return result.Create(func() (T, error) {
		var greatest T
		if it.Start(); !it.HasCurrent() {
			return greatest, &EmptyError{Message: msgMaxOfEmpty}
		}
		greatest = it.Current()
		for it.Next() {
			if v := it.Current(); compare(v, greatest) > 0 {
				greatest = v
			}
		}
		return greatest, nil
	})
}
