package result

import "context"

// Promise is the channel-friendly view of a realized Result.
//
// It is the only place where a Result meets select based, asynchronous code.
// The Result is realized synchronously when the Promise is made,
// so Done is closed by the time the caller receives the Promise.
type Promise[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Promise realizes r and settles a Promise with its outcome.
func (r *Result[T]) Promise() *Promise[T] {
	p := &Promise[T]{done: make(chan struct{})}
	p.value, p.err = r.Await()
	close(p.done)
	return p
}

// Done is closed once the Promise is settled.
func (p *Promise[T]) Done() <-chan struct{} {
	return p.done
}

// Wait returns the settled outcome.
// A Promise is settled by the time it is made, so Wait never blocks
// and ctx is never consulted; it is accepted to fit context aware call sites.
func (p *Promise[T]) Wait(ctx context.Context) (T, error) {
	<-p.done
	return p.value, p.err
}
