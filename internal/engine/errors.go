package engine

import "errors"

// Sentinel errors surfaced by the engine's byte-level layer. flowq.Error
// wraps these at the handle boundary with a Code so callers of the public
// package never need to import internal/engine directly.
var (
	// ErrEndOfStream means a frame read started exactly on a clean
	// boundary with nothing left to read.
	ErrEndOfStream = errors.New("flowq/engine: end of stream")
	// ErrCorruptFrame means a frame read began but its bytes were
	// incomplete or failed checksum verification.
	ErrCorruptFrame = errors.New("flowq/engine: corrupt frame")
	// ErrEmpty means no frame is currently available; try again later.
	ErrEmpty = errors.New("flowq/engine: empty")
	// ErrDiskFull means the channel-wide disk quota would be exceeded.
	ErrDiskFull = errors.New("flowq/engine: disk quota exceeded")
	// ErrChannelCorrupt means a structural invariant was violated (e.g. a
	// segment file that should not exist already does).
	ErrChannelCorrupt = errors.New("flowq/engine: channel directory corrupt")
	// ErrDisconnected means the opposite side of the channel is gone and
	// no buffered data remains.
	ErrDisconnected = errors.New("flowq/engine: disconnected")
)
