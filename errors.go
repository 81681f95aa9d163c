package flowq

import (
	"errors"
	"fmt"

	"github.com/995933447/flowq/internal/engine"
)

// Code classifies an Error the way bucketmq's pkg/rpc/errs.ErrCode classifies
// an RPCError, minus the gRPC status mapping this package has no use for.
type Code int

const (
	CodeIO Code = iota + 1
	CodeDiskFull
	CodeEncode
	CodeDecode
	CodeDisconnected
	CodeChannelCorrupt
	CodeEmpty
)

func (c Code) String() string {
	switch c {
	case CodeIO:
		return "io_error"
	case CodeDiskFull:
		return "disk_full"
	case CodeEncode:
		return "encode_error"
	case CodeDecode:
		return "decode_error"
	case CodeDisconnected:
		return "disconnected"
	case CodeChannelCorrupt:
		return "channel_corrupt"
	case CodeEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// Error is the only error type a caller of this package needs to inspect
// directly; internal/engine's sentinel errors never escape a Sender or
// Receiver method.
type Error struct {
	Code Code
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("flowq: %s: %v", e.Code, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrDisconnected reports whether err is (or wraps) the disconnected state:
// the opposite handle is gone and no buffered data remains.
func ErrDisconnected(err error) bool {
	var fqErr *Error
	return errors.As(err, &fqErr) && fqErr.Code == CodeDisconnected
}

// ErrDiskFull reports whether err is (or wraps) a quota-exceeded Send
// failure.
func ErrDiskFull(err error) bool {
	var fqErr *Error
	return errors.As(err, &fqErr) && fqErr.Code == CodeDiskFull
}

// ErrEmpty reports whether err is (or wraps) TryRecv's no-payload-available
// result. Unlike Recv, TryRecv never waits for one to appear.
func ErrEmpty(err error) bool {
	var fqErr *Error
	return errors.As(err, &fqErr) && fqErr.Code == CodeEmpty
}

func wrapEngineErr(err error) error {
	if err == nil {
		return nil
	}
	switch err {
	case engine.ErrDiskFull:
		return &Error{Code: CodeDiskFull, Err: err}
	case engine.ErrDisconnected:
		return &Error{Code: CodeDisconnected, Err: err}
	case engine.ErrChannelCorrupt:
		return &Error{Code: CodeChannelCorrupt, Err: err}
	case engine.ErrEmpty:
		return &Error{Code: CodeEmpty, Err: err}
	default:
		return &Error{Code: CodeIO, Err: err}
	}
}
