// Package result provides a deferred value-or-error container.
//
// A Result wraps an action and runs it at most once, on the first Await.
// The outcome, either the value or the error, is cached,
// so every later Await returns the same value or the same error without running the action again.
//
// Combinators such as Then, Catch or ConvertError never realize their parent.
// They return a new Result, which realizes the parent only when it is awaited itself.
// A whole chain stays lazy until the last link is awaited.
//
// A Result has a single owner, and it is not safe for concurrent use.
package result

import (
	"github.com/go-softwarelab/common/pkg/types"
	"go.llib.dev/seqkit/pkg/contract"
)

// Result is a deferred computation that either yields a value of T or fails with an error.
//
// Pending:  action != nil && outcome == nil
// Realized: outcome holds a value
// Failed:   outcome holds an error
type Result[T any] struct {
	action  func() (T, error)
	outcome *types.Result[T]
}

// Create makes a pending Result out of the action.
// The action is not executed until the Result is awaited.
func Create[T any](action func() (T, error)) *Result[T] {
	contract.Pre.NotNil(action, contract.Expression("action"))
	return &Result[T]{action: action}
}

// Value makes a Result that yields v.
func Value[T any](v T) *Result[T] {
	return Create(func() (T, error) { return v, nil })
}

// Error makes a Result that fails with err.
func Error[T any](err error) *Result[T] {
	contract.Pre.NotNil(err, contract.Expression("err"))
	return Create(func() (T, error) {
		var zero T
		return zero, err
	})
}

// Await realizes the Result.
//
// The first call runs the action and caches its outcome.
// Later calls return the cached value, or the cached error every time.
func (r *Result[T]) Await() (T, error) {
	if r.outcome == nil {
		r.realize()
	}
	return r.outcome.Get()
}

func (r *Result[T]) realize() {
	action := r.action
	if action == nil {
		contract.Post.Fail("a realized outcome", "an interrupted realization",
			contract.Message("the action of this Result panicked during an earlier Await"))
	}
	r.action = nil
	value, err := action()
	r.outcome = types.ResultOf(value, err)
}

// IsRealized reports whether the action already ran.
func (r *Result[T]) IsRealized() bool {
	return r.outcome != nil
}

// Then returns a Result that applies fn to the value of r.
// When r fails, its error is passed through and fn is not called.
// An error returned by fn becomes the error of the new Result.
func Then[To, From any](r *Result[From], fn func(From) (To, error)) *Result[To] {
	contract.Pre.NotNil(r, contract.Expression("r"))
	contract.Pre.NotNil(fn, contract.Expression("fn"))
	return Create(func() (To, error) {
		v, err := r.Await()
		if err != nil {
			var zero To
			return zero, err
		}
		return fn(v)
	})
}

// OnValue runs fn with the value of r as a side effect, and keeps the value.
// An error returned by fn becomes the error of the new Result.
func (r *Result[T]) OnValue(fn func(T) error) *Result[T] {
	contract.Pre.NotNil(fn, contract.Expression("fn"))
	return Create(func() (T, error) {
		v, err := r.Await()
		if err != nil {
			return v, err
		}
		if err := fn(v); err != nil {
			var zero T
			return zero, err
		}
		return v, nil
	})
}

// Catch recovers from a matching error of r with the outcome of fn.
// Without matchers every error matches.
// Non matching errors are passed through unchanged.
func (r *Result[T]) Catch(fn func(error) (T, error), match ...Matcher) *Result[T] {
	contract.Pre.NotNil(fn, contract.Expression("fn"))
	m := anyOf(match)
	return Create(func() (T, error) {
		v, err := r.Await()
		if err == nil || !m(err) {
			return v, err
		}
		return fn(err)
	})
}

// OnError runs fn with a matching error of r as a side effect.
// The error is never recovered, the new Result fails with it as well.
func (r *Result[T]) OnError(fn func(error), match ...Matcher) *Result[T] {
	contract.Pre.NotNil(fn, contract.Expression("fn"))
	m := anyOf(match)
	return Create(func() (T, error) {
		v, err := r.Await()
		if err != nil && m(err) {
			fn(err)
		}
		return v, err
	})
}

// ConvertError replaces a matching error of r with the error returned by fn.
// When fn returns nil, the original error is kept.
// Values and non matching errors are passed through unchanged.
func (r *Result[T]) ConvertError(fn func(error) error, match ...Matcher) *Result[T] {
	contract.Pre.NotNil(fn, contract.Expression("fn"))
	m := anyOf(match)
	return Create(func() (T, error) {
		v, err := r.Await()
		if err == nil || !m(err) {
			return v, err
		}
		if converted := fn(err); converted != nil {
			return v, converted
		}
		return v, err
	})
}
