package engine

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/995933447/flowq/internal/util"
)

// DiskTier is an append-only FIFO of frames persisted under dir, split into
// segment files capped at segmentMaxBytes and, optionally, bounded overall
// by totalDiskBytes. It owns dir exclusively for the lifetime of the
// channel: no restart recovery is attempted, matching spec's non-goal of
// durability across process restarts.
type DiskTier struct {
	dir             string
	segmentMaxBytes uint64
	totalDiskBytes  uint64 // 0 means unbounded

	writeMu  sync.Mutex
	writeSet bool
	writeID  uint64
	writeFp  *os.File
	writeSz  uint64

	readMu  sync.Mutex
	readSet bool
	readID  uint64
	readFp  *os.File
	readOff uint64
}

// NewDiskTier creates dir if needed and returns a tier with empty writer
// and reader cursors.
func NewDiskTier(dir string, segmentMaxBytes, totalDiskBytes uint64) (*DiskTier, error) {
	if err := util.MkdirIfNotExist(dir); err != nil {
		return nil, err
	}
	if segmentMaxBytes == 0 {
		segmentMaxBytes = 1
	}
	return &DiskTier{
		dir:             dir,
		segmentMaxBytes: segmentMaxBytes,
		totalDiskBytes:  totalDiskBytes,
	}, nil
}

// Write appends one frame holding body, rolling the open segment first if
// the frame would overflow it, and sealing & replacing it right after the
// append if it has overflowed (the oversized-frame case: a frame larger than
// segmentMaxBytes is still written whole into its own segment).
func (t *DiskTier) Write(ctx context.Context, body []byte) error {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	frameLen := uint64(FrameHeaderBytes + len(body))

	if t.totalDiskBytes > 0 {
		used, err := t.diskUsedBytesLocked()
		if err != nil {
			util.Logger.Error(ctx, err)
			return err
		}
		if used+frameLen > t.totalDiskBytes {
			return ErrDiskFull
		}
	}

	if !t.writeSet {
		if err := t.openWriteTailLocked(); err != nil {
			util.Logger.Error(ctx, err)
			return err
		}
	}

	if t.writeSz > 0 && t.writeSz+frameLen > t.segmentMaxBytes {
		if err := t.rollWriteSegmentLocked(); err != nil {
			util.Logger.Error(ctx, err)
			return err
		}
	}

	n, err := WriteFrame(t.writeFp, body)
	if err != nil {
		util.Logger.Error(ctx, err)
		return err
	}
	t.writeSz += uint64(n)

	if t.writeSz > t.segmentMaxBytes {
		if err := t.rollWriteSegmentLocked(); err != nil {
			util.Logger.Error(ctx, err)
			return err
		}
	}
	return nil
}

// Read returns the next frame body, or ErrEmpty if none is currently
// available (either the backlog is genuinely empty, or the open segment's
// tail does not yet hold a complete frame).
func (t *DiskTier) Read(ctx context.Context) ([]byte, error) {
	t.readMu.Lock()
	defer t.readMu.Unlock()

	for {
		if !t.readSet {
			ids, err := listSegments(t.dir)
			if err != nil {
				return nil, err
			}
			if len(ids) == 0 {
				return nil, ErrEmpty
			}
			if err := t.openReadHeadLocked(ids[0]); err != nil {
				return nil, err
			}
		}

		if _, err := t.readFp.Seek(int64(t.readOff), io.SeekStart); err != nil {
			return nil, err
		}

		body, n, err := ReadFrame(t.readFp)
		if err == nil {
			t.readOff += uint64(n)
			return body, nil
		}

		if err == ErrEndOfStream {
			sealed, sErr := isSegmentSealed(t.dir, t.readID)
			if sErr != nil {
				return nil, sErr
			}
			size, sErr := segmentSize(t.dir, t.readID)
			if sErr != nil {
				return nil, sErr
			}
			if sealed && t.readOff == size {
				if err := t.advancePastReadSegmentLocked(); err != nil {
					return nil, err
				}
				continue
			}
			return nil, ErrEmpty
		}

		if err == ErrCorruptFrame {
			sealed, sErr := isSegmentSealed(t.dir, t.readID)
			if sErr != nil {
				return nil, sErr
			}
			if sealed {
				util.Logger.Warn(ctx, "flowq: discarding corrupt tail of sealed segment")
				if err := t.advancePastReadSegmentLocked(); err != nil {
					return nil, err
				}
				continue
			}
			// Open segment: the writer may be mid-append. Retry later.
			return nil, ErrEmpty
		}

		util.Logger.Error(ctx, err)
		return nil, err
	}
}

// Close releases the writer and reader file handles without touching the
// segment files themselves.
func (t *DiskTier) Close() {
	t.writeMu.Lock()
	if t.writeFp != nil {
		_ = t.writeFp.Close()
	}
	t.writeMu.Unlock()

	t.readMu.Lock()
	if t.readFp != nil {
		_ = t.readFp.Close()
	}
	t.readMu.Unlock()
}

func (t *DiskTier) openWriteTailLocked() error {
	ids, err := listSegments(t.dir)
	if err != nil {
		return err
	}

	if len(ids) == 0 {
		return t.createWriteSegmentLocked(0)
	}

	tailID := ids[len(ids)-1]
	sealed, err := isSegmentSealed(t.dir, tailID)
	if err != nil {
		return err
	}
	if sealed {
		nextID, err := nextSegmentID(t.dir)
		if err != nil {
			return err
		}
		return t.createWriteSegmentLocked(nextID)
	}

	fp, err := openSegmentForAppend(t.dir, tailID)
	if err != nil {
		return err
	}
	sz, err := segmentSize(t.dir, tailID)
	if err != nil {
		_ = fp.Close()
		return err
	}

	t.writeID = tailID
	t.writeFp = fp
	t.writeSz = sz
	t.writeSet = true
	return nil
}

func (t *DiskTier) createWriteSegmentLocked(id uint64) error {
	fp, err := createSegment(t.dir, id)
	if err != nil {
		if os.IsExist(err) {
			return ErrChannelCorrupt
		}
		return err
	}
	t.writeID = id
	t.writeFp = fp
	t.writeSz = 0
	t.writeSet = true
	return nil
}

func (t *DiskTier) rollWriteSegmentLocked() error {
	if err := sealSegment(t.writeFp, t.dir, t.writeID); err != nil {
		return err
	}
	return t.createWriteSegmentLocked(t.writeID + 1)
}

func (t *DiskTier) openReadHeadLocked(id uint64) error {
	fp, err := openSegmentForRead(t.dir, id)
	if err != nil {
		return err
	}
	t.readID = id
	t.readFp = fp
	t.readOff = 0
	t.readSet = true
	return nil
}

func (t *DiskTier) advancePastReadSegmentLocked() error {
	if err := t.readFp.Close(); err != nil {
		return err
	}
	if err := deleteSegment(t.dir, t.readID); err != nil {
		return err
	}
	t.readSet = false
	t.readOff = 0
	return nil
}

// diskUsedBytesLocked sums the byte size of every live segment, using the
// writer's own counter for the currently open segment since its on-disk
// size may lag an in-flight write.
func (t *DiskTier) diskUsedBytesLocked() (uint64, error) {
	ids, err := listSegments(t.dir)
	if err != nil {
		return 0, err
	}

	var total uint64
	for _, id := range ids {
		if t.writeSet && id == t.writeID {
			total += t.writeSz
			continue
		}
		sz, err := segmentSize(t.dir, id)
		if err != nil {
			return 0, err
		}
		total += sz
	}
	return total, nil
}
