package transport

import (
	"context"

	"github.com/usenativ/nativ-go/pkg/codec"
)

// Async is the suspending adapter. Each call runs on its own goroutine and
// only the goroutine awaiting the result waits for the network round-trip.
// Many calls may be outstanding on one Async and share its connection pool.
type Async struct {
	t *Transport
}

// NewAsync creates an Async with its own connection pool.
func NewAsync(cfg Config) *Async {
	return &Async{t: New(cfg)}
}

// BaseURL returns the resolved API root.
func (a *Async) BaseURL() string {
	return a.t.BaseURL()
}

// Go starts req and returns immediately. Cancelling ctx aborts the request.
func (a *Async) Go(ctx context.Context, req Request) *Call {
	c := &Call{done: make(chan struct{})}
	go func() {
		defer close(c.done)
		c.obj, c.err = a.t.Do(ctx, req)
	}()
	return c
}

// Close releases idle pooled connections. Outstanding calls complete.
func (a *Async) Close() error {
	return a.t.Close()
}

// Call is an outstanding request started by Async.Go.
type Call struct {
	done chan struct{}
	obj  codec.Object
	err  error
}

// Done is closed once the response has been received and classified.
func (c *Call) Done() <-chan struct{} {
	return c.done
}

// Result returns the outcome. It must only be called after Done is closed.
func (c *Call) Result() (codec.Object, error) {
	return c.obj, c.err
}

// Await suspends until the call completes or ctx is done. Giving up on
// ctx does not cancel the request itself; cancel the context passed to Go
// for that.
func (c *Call) Await(ctx context.Context) (codec.Object, error) {
	select {
	case <-c.done:
		return c.obj, c.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
