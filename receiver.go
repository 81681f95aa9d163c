package flowq

import (
	"context"
	"sync"

	"github.com/995933447/flowq/internal/util"
)

// Receiver is the single, non-cloneable consumer-side handle.
type Receiver[T any] struct {
	core      *core
	codec     Codec[T]
	closeOnce sync.Once
}

// Recv blocks until a payload is available or the channel is disconnected.
// ctx is passed through to logging only; cancelling it does not end the
// wait. It returns *Error wrapping CodeDisconnected, CodeDecode,
// CodeChannelCorrupt, or CodeIO.
func (r *Receiver[T]) Recv(ctx context.Context) (T, error) {
	return r.recv(ctx, true)
}

// TryRecv returns immediately with *Error wrapping CodeEmpty if no payload
// is currently available, instead of waiting for one.
func (r *Receiver[T]) TryRecv(ctx context.Context) (T, error) {
	return r.recv(ctx, false)
}

func (r *Receiver[T]) recv(ctx context.Context, blocking bool) (T, error) {
	var zero T

	body, err := r.core.coord.Recv(ctx, blocking)
	if err != nil {
		return zero, wrapEngineErr(err)
	}

	v, err := r.codec.Decode(body)
	if err != nil {
		// DecodeError is fatal to the channel per spec §7: further
		// receives fail once a frame cannot be decoded.
		r.core.coord.MarkCorrupt()
		return zero, &Error{Code: CodeDecode, Err: err}
	}
	return v, nil
}

// Iter returns a channel of decoded payloads that is closed once Recv
// returns an error (Disconnected, once drained), the Go-idiomatic analogue
// of the "hopper" crate's Receiver::iter. Cancelling ctx also closes it
// while a payload is waiting to be delivered, but does not interrupt a Recv
// that is still waiting for a payload to arrive.
func (r *Receiver[T]) Iter(ctx context.Context) <-chan T {
	out := make(chan T)
	go func() {
		defer util.StackRecover()
		defer close(out)
		for {
			v, err := r.Recv(ctx)
			if err != nil {
				return
			}
			select {
			case out <- v:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Close drops the consumer handle. Subsequent Sender.Send calls fail with
// CodeDisconnected. Once every Sender clone has also closed, the channel
// directory is deleted. Closing twice is a no-op beyond the first.
func (r *Receiver[T]) Close() {
	r.closeOnce.Do(r.core.dropConsumer)
}
