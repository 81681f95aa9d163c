package flowq

import (
	"context"
	"sync"
)

// Sender is the producer-side handle. It is cloneable: each clone shares
// the same underlying channel state and increments producers_alive so the
// channel cannot be torn down while any clone is still live.
type Sender[T any] struct {
	core      *core
	codec     Codec[T]
	closeOnce sync.Once
}

// Send encodes v and enqueues it, using the memory tier while it is safe to
// do so and spilling to disk otherwise (§4.6). It returns *Error wrapping
// CodeDiskFull, CodeDisconnected, CodeChannelCorrupt, CodeEncode, or
// CodeIO.
func (s *Sender[T]) Send(ctx context.Context, v T) error {
	body, err := s.codec.Encode(v)
	if err != nil {
		return &Error{Code: CodeEncode, Err: err}
	}
	if err := s.core.coord.Send(ctx, body); err != nil {
		return wrapEngineErr(err)
	}
	return nil
}

// Clone returns a new Sender sharing this one's channel state, mirroring
// the "hopper" crate's Sender::clone: no new files are opened, only the
// live-producer count changes.
func (s *Sender[T]) Clone() *Sender[T] {
	s.core.coord.AddProducer()
	return &Sender[T]{core: s.core, codec: s.codec}
}

// Close drops this handle. Once every Sender clone and the Receiver have
// been closed, the channel directory is deleted. Closing twice is a no-op
// beyond the first, matching the spec's drop-is-idempotent guarantee.
func (s *Sender[T]) Close() {
	s.closeOnce.Do(s.core.dropProducer)
}
