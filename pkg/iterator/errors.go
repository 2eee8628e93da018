package iterator

import "go.llib.dev/frameless/pkg/errorkit"

const (
	// ErrNotFound is matched by every NotFoundError.
	ErrNotFound errorkit.Error = "ErrNotFound"
	// ErrEmpty is matched by every EmptyError.
	ErrEmpty errorkit.Error = "ErrEmpty"
)

const (
	msgFirstNotFound      = "No value was found in the Iterator."
	msgFirstWhereNotFound = "No value was found in the Iterator that matched the provided condition."
	msgLastOfEmpty        = "Can't get the last value of an empty Iterator."
	msgMaxOfEmpty         = "Can't find the maximum of an empty Iterator."
)

// NotFoundError means that no element qualified for a lookup.
type NotFoundError struct {
	Message string
}

func (err *NotFoundError) Error() string {
	return err.Message
}

func (err *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// EmptyError means that an operation needed at least one element.
type EmptyError struct {
	Message string
}

func (err *EmptyError) Error() string {
	return err.Message
}

func (err *EmptyError) Is(target error) bool {
	return target == ErrEmpty
}
