package result

import (
	"errors"

	"go.llib.dev/seqkit/pkg/contract"
)

// Matcher selects the errors a Catch, OnError or ConvertError combinator reacts to.
type Matcher func(err error) bool

// AnyError matches every error.
func AnyError() Matcher {
	return func(error) bool { return true }
}

// Is matches errors that are target, or wrap it, according to errors.Is.
func Is(target error) Matcher {
	contract.Pre.NotNil(target, contract.Expression("target"))
	return func(err error) bool { return errors.Is(err, target) }
}

// As matches errors that are an E, or wrap one, according to errors.As.
//
// The match is nominal: an error of a narrower type which unwraps to an E matches,
// but an E never matches a narrower type parameter.
func As[E error]() Matcher {
	return func(err error) bool {
		var target E
		return errors.As(err, &target)
	}
}

func anyOf(ms []Matcher) Matcher {
	if len(ms) == 0 {
		return AnyError()
	}
	for _, m := range ms {
		contract.Pre.NotNil(m, contract.Expression("match"))
	}
	return func(err error) bool {
		for _, m := range ms {
			if m(err) {
				return true
			}
		}
		return false
	}
}

func as[E error](err error) E {
	var target E
	errors.As(err, &target)
	return target
}

// CatchAs is the typed form of Result.Catch, reacting to errors that are an E.
func CatchAs[E error, T any](r *Result[T], fn func(E) (T, error)) *Result[T] {
	contract.Pre.NotNil(fn, contract.Expression("fn"))
	return r.Catch(func(err error) (T, error) { return fn(as[E](err)) }, As[E]())
}

// OnErrorAs is the typed form of Result.OnError, reacting to errors that are an E.
func OnErrorAs[E error, T any](r *Result[T], fn func(E)) *Result[T] {
	contract.Pre.NotNil(fn, contract.Expression("fn"))
	return r.OnError(func(err error) { fn(as[E](err)) }, As[E]())
}

// ConvertErrorAs is the typed form of Result.ConvertError, reacting to errors that are an E.
func ConvertErrorAs[E error, T any](r *Result[T], fn func(E) error) *Result[T] {
	contract.Pre.NotNil(fn, contract.Expression("fn"))
	return r.ConvertError(func(err error) error { return fn(as[E](err)) }, As[E]())
}
