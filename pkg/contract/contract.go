// Package contract implements the precondition and postcondition checks used by seqkit.
//
// A failed check is a programming error on the caller's side,
// so it panics right away with a *PreConditionError or a *PostConditionError.
// Contract violations are never deferred into a result.Result.
//
//	contract.Pre.NotNil(inner, contract.Expression("inner"))
//	contract.Pre.GreaterOrEqual(n, 0, contract.Expression("maximumToSkip"))
package contract

import (
	"fmt"
	"reflect"
	"strings"

	"go.llib.dev/frameless/pkg/errorkit"
	"go.llib.dev/frameless/pkg/reflectkit"
	"go.llib.dev/frameless/port/option"
)

const (
	ErrPreCondition  errorkit.Error = "ErrPreCondition"
	ErrPostCondition errorkit.Error = "ErrPostCondition"
)

// PreConditionError reports that the input contract of an operation was broken by its caller.
type PreConditionError struct {
	Message    string
	Expression string
	Expected   string
	Actual     string
}

func (err *PreConditionError) Error() string {
	return format(err.Message, err.Expression, err.Expected, err.Actual)
}

func (err *PreConditionError) Is(target error) bool {
	return target == ErrPreCondition
}

// PostConditionError reports that an operation could not hold its own output contract.
type PostConditionError struct {
	Message    string
	Expression string
	Expected   string
	Actual     string
}

func (err *PostConditionError) Error() string {
	return format(err.Message, err.Expression, err.Expected, err.Actual)
}

func (err *PostConditionError) Is(target error) bool {
	return target == ErrPostCondition
}

func format(message, expression, expected, actual string) string {
	var lines []string
	if message != "" {
		lines = append(lines, "Message: "+message)
	}
	if expression != "" {
		lines = append(lines, "Expression: "+expression)
	}
	lines = append(lines, "Expected: "+expected, "Actual: "+actual)
	return strings.Join(lines, "\n")
}

// Details are the optional parts of a violation report.
type Details struct {
	Message    string
	Expression string
}

type Option option.Option[Details]

// Expression names the checked expression in the violation report.
func Expression(expr string) Option {
	return option.Func[Details](func(d *Details) { d.Expression = expr })
}

// Message adds a human readable explanation to the violation report.
func Message(msg string) Option {
	return option.Func[Details](func(d *Details) { d.Message = msg })
}

type kind int

const (
	pre kind = iota
	post
)

// Checker is a family of assertions that raise one kind of contract error.
type Checker struct{ kind kind }

var (
	// Pre checks the caller's side of a contract and panics with *PreConditionError.
	Pre = Checker{kind: pre}
	// Post checks the callee's side of a contract and panics with *PostConditionError.
	Post = Checker{kind: post}
)

// NotNil checks that value is neither nil nor a typed nil pointer, slice, map, chan or func.
func (c Checker) NotNil(value any, opts ...Option) {
	if isNil(value) {
		c.Fail("not nil", "nil", opts...)
	}
}

// True checks that condition holds.
func (c Checker) True(condition bool, opts ...Option) {
	if !condition {
		c.Fail("true", "false", opts...)
	}
}

// False checks that condition does not hold.
func (c Checker) False(condition bool, opts ...Option) {
	if condition {
		c.Fail("false", "true", opts...)
	}
}

// GreaterOrEqual checks that lowerBound <= value.
func (c Checker) GreaterOrEqual(value, lowerBound int, opts ...Option) {
	if value < lowerBound {
		c.Fail(fmt.Sprintf("greater than or equal to %d", lowerBound), fmt.Sprint(value), opts...)
	}
}

// Between checks that lowerBound <= value <= upperBound.
func (c Checker) Between(value, lowerBound, upperBound int, opts ...Option) {
	if value < lowerBound || upperBound < value {
		c.Fail(fmt.Sprintf("between %d and %d", lowerBound, upperBound), fmt.Sprint(value), opts...)
	}
}

// Fail raises the checker's contract error unconditionally.
func (c Checker) Fail(expected, actual string, opts ...Option) {
	d := option.ToConfig[Details](opts)
	switch c.kind {
	case post:
		panic(&PostConditionError{
			Message:    d.Message,
			Expression: d.Expression,
			Expected:   expected,
			Actual:     actual,
		})
	default:
		panic(&PreConditionError{
			Message:    d.Message,
			Expression: d.Expression,
			Expected:   expected,
			Actual:     actual,
		})
	}
}

func isNil(value any) bool {
	return value == nil || reflectkit.IsNil(reflect.ValueOf(value))
}
