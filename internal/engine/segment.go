package engine

import (
	"os"
	"path/filepath"
	"strconv"
)

// segmentPath returns the file path for segment id under dir. Segment names
// are the decimal representation of a monotonically increasing id, per
// spec: the on-disk layout is a flat run of numbered files.
func segmentPath(dir string, id uint64) string {
	return filepath.Join(dir, strconv.FormatUint(id, 10))
}

// createSegment creates and opens segment id for append. It fails if the
// file already exists — a signal that another writer already claimed this
// id, which the disk tier treats as ErrChannelCorrupt.
func createSegment(dir string, id uint64) (*os.File, error) {
	return os.OpenFile(segmentPath(dir, id), os.O_CREATE|os.O_EXCL|os.O_WRONLY|os.O_APPEND, 0644)
}

// openSegmentForAppend reopens an existing, not-yet-sealed segment so the
// writer can resume appending to it.
func openSegmentForAppend(dir string, id uint64) (*os.File, error) {
	return os.OpenFile(segmentPath(dir, id), os.O_WRONLY|os.O_APPEND, 0644)
}

// openSegmentForRead opens segment id for sequential reading.
func openSegmentForRead(dir string, id uint64) (*os.File, error) {
	return os.OpenFile(segmentPath(dir, id), os.O_RDONLY, 0)
}

// sealSegment flushes fp to the OS, closes it, and marks the file
// read-only — the filesystem bit this design uses as the Sealed marker.
func sealSegment(fp *os.File, dir string, id uint64) error {
	if err := fp.Sync(); err != nil {
		return err
	}
	if err := fp.Close(); err != nil {
		return err
	}
	return os.Chmod(segmentPath(dir, id), 0444)
}

// isSegmentSealed reports whether id's read-only bit is set.
func isSegmentSealed(dir string, id uint64) (bool, error) {
	info, err := os.Stat(segmentPath(dir, id))
	if err != nil {
		return false, err
	}
	return info.Mode().Perm()&0200 == 0, nil
}

// segmentSize returns the byte length of segment id.
func segmentSize(dir string, id uint64) (uint64, error) {
	info, err := os.Stat(segmentPath(dir, id))
	if err != nil {
		return 0, err
	}
	return uint64(info.Size()), nil
}

// deleteSegment removes segment id's file. Unix unlink does not consult the
// file's permission bits, so this works equally on an Open or Sealed
// segment; the disk tier only ever calls it on Sealed ones.
func deleteSegment(dir string, id uint64) error {
	return os.Remove(segmentPath(dir, id))
}
