package iterator

import (
	"unicode/utf8"

	"go.llib.dev/seqkit/pkg/contract"
)

// SliceCursor walks a slice by position.
type SliceCursor[T any] struct {
	values  []T
	index   int
	started bool
}

// Slice makes an Indexable cursor over vs.
// The slice is not copied.
func Slice[T any](vs []T) *SliceCursor[T] {
	return &SliceCursor[T]{values: vs}
}

// Of makes a cursor over the given values.
func Of[T any](vs ...T) *SliceCursor[T] {
	return Slice(vs)
}

// Empty makes a cursor without elements.
func Empty[T any]() *SliceCursor[T] {
	return Slice[T](nil)
}

func (c *SliceCursor[T]) HasStarted() bool { return c.started }

func (c *SliceCursor[T]) HasCurrent() bool { return c.started && c.index < len(c.values) }

func (c *SliceCursor[T]) Current() T {
	contract.Pre.True(c.HasCurrent(), contract.Expression("HasCurrent()"))
	return c.values[c.index]
}

func (c *SliceCursor[T]) CurrentIndex() int {
	contract.Pre.True(c.HasCurrent(), contract.Expression("HasCurrent()"))
	return c.index
}

func (c *SliceCursor[T]) Next() bool {
	if !c.started {
		c.started = true
	} else if c.index < len(c.values) {
		c.index++
	}
	return c.HasCurrent()
}

func (c *SliceCursor[T]) Start() Iterator[T] {
	if !c.started {
		c.Next()
	}
	return c
}

// CharCursor walks the runes of a string.
// CurrentIndex is the rune position, ByteOffset is where the rune starts in the string.
type CharCursor struct {
	text    string
	offset  int
	width   int
	index   int
	current rune
	started bool
}

// Chars makes an Indexable cursor over the runes of text.
// Invalid UTF-8 bytes are yielded one by one as utf8.RuneError.
func Chars(text string) *CharCursor {
	return &CharCursor{text: text}
}

func (c *CharCursor) HasStarted() bool { return c.started }

func (c *CharCursor) HasCurrent() bool { return c.started && c.offset < len(c.text) }

func (c *CharCursor) Current() rune {
	contract.Pre.True(c.HasCurrent(), contract.Expression("HasCurrent()"))
	return c.current
}

func (c *CharCursor) CurrentIndex() int {
	contract.Pre.True(c.HasCurrent(), contract.Expression("HasCurrent()"))
	return c.index
}

// ByteOffset returns the byte position of the current rune.
func (c *CharCursor) ByteOffset() int {
	contract.Pre.True(c.HasCurrent(), contract.Expression("HasCurrent()"))
	return c.offset
}

func (c *CharCursor) Next() bool {
	if !c.started {
		c.started = true
	} else if c.offset < len(c.text) {
		c.offset += c.width
		c.index++
	}
	if c.offset < len(c.text) {
		c.current, c.width = utf8.DecodeRuneInString(c.text[c.offset:])
		contract.Post.GreaterOrEqual(c.width, 1, contract.Expression("rune width"))
	}
	return c.HasCurrent()
}

func (c *CharCursor) Start() Iterator[rune] {
	if !c.started {
		c.Next()
	}
	return c
}
