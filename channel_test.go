package flowq

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

func intCodec() Codec[int] {
	return Codec[int]{
		Encode: func(v int) ([]byte, error) {
			b := make([]byte, 8)
			binary.LittleEndian.PutUint64(b, uint64(v))
			return b, nil
		},
		Decode: func(b []byte) (int, error) {
			return int(binary.LittleEndian.Uint64(b)), nil
		},
	}
}

func TestChannelMemoryOnly(t *testing.T) {
	ctx := context.Background()
	sender, receiver, err := NewChannelWithExplicitCapacity[int]("mem-only", t.TempDir(), 8, 1<<20, 0, intCodec())
	if err != nil {
		t.Fatalf("NewChannelWithExplicitCapacity: %v", err)
	}

	for i := 1; i <= 5; i++ {
		if err := sender.Send(ctx, i); err != nil {
			t.Fatalf("Send(%d): %v", i, err)
		}
	}
	for i := 1; i <= 5; i++ {
		got, err := receiver.Recv(ctx)
		if err != nil {
			t.Fatalf("Recv(%d): %v", i, err)
		}
		if got != i {
			t.Fatalf("Recv(%d) = %d, want %d", i, got, i)
		}
	}

	sender.Close()
	receiver.Close()
}

func TestChannelSpillAndDrainPreservesOrder(t *testing.T) {
	ctx := context.Background()
	sender, receiver, err := NewChannelWithExplicitCapacity[int]("spill", t.TempDir(), 2, 64, 0, intCodec())
	if err != nil {
		t.Fatalf("NewChannelWithExplicitCapacity: %v", err)
	}

	for i := 1; i <= 10; i++ {
		if err := sender.Send(ctx, i); err != nil {
			t.Fatalf("Send(%d): %v", i, err)
		}
	}
	for i := 1; i <= 10; i++ {
		got, err := receiver.Recv(ctx)
		if err != nil {
			t.Fatalf("Recv(%d): %v", i, err)
		}
		if got != i {
			t.Fatalf("Recv(%d) = %d, want %d", i, got, i)
		}
	}

	sender.Close()
	receiver.Close()
}

func TestChannelDirectoryDeletedAfterBothHandlesClose(t *testing.T) {
	ctx := context.Background()
	dataDir := t.TempDir()
	sender, receiver, err := NewChannelWithExplicitCapacity[int]("teardown", dataDir, 8, 1<<20, 0, intCodec())
	if err != nil {
		t.Fatalf("NewChannelWithExplicitCapacity: %v", err)
	}

	if err := sender.Send(ctx, 1); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if _, err := receiver.Recv(ctx); err != nil {
		t.Fatalf("Recv: %v", err)
	}

	dir := filepath.Join(dataDir, "teardown")
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("channel directory missing before close: %v", err)
	}

	sender.Close()
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("channel directory disappeared before consumer closed: %v", err)
	}

	receiver.Close()
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatalf("channel directory still present after both handles closed: %v", err)
	}
}

func TestChannelCloseIsIdempotent(t *testing.T) {
	dataDir := t.TempDir()
	sender, receiver, err := NewChannelWithExplicitCapacity[int]("idempotent-close", dataDir, 8, 1<<20, 0, intCodec())
	if err != nil {
		t.Fatalf("NewChannelWithExplicitCapacity: %v", err)
	}

	sender.Close()
	sender.Close() // must not double-decrement producers_alive
	receiver.Close()
	receiver.Close()

	dir := filepath.Join(dataDir, "idempotent-close")
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatalf("channel directory still present: %v", err)
	}
}

func TestChannelProducerCloneKeepsChannelAlive(t *testing.T) {
	ctx := context.Background()
	dataDir := t.TempDir()
	sender, receiver, err := NewChannelWithExplicitCapacity[int]("clone", dataDir, 8, 1<<20, 0, intCodec())
	if err != nil {
		t.Fatalf("NewChannelWithExplicitCapacity: %v", err)
	}

	clone := sender.Clone()
	sender.Close() // original handle gone, clone still live

	if err := clone.Send(ctx, 1); err != nil {
		t.Fatalf("Send from clone after original closed: %v", err)
	}
	if _, err := receiver.Recv(ctx); err != nil {
		t.Fatalf("Recv: %v", err)
	}

	dir := filepath.Join(dataDir, "clone")
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("channel directory missing while clone is still live: %v", err)
	}

	clone.Close()
	receiver.Close()
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatalf("channel directory still present: %v", err)
	}
}

func TestChannelDiskFullWrapsErrDiskFull(t *testing.T) {
	ctx := context.Background()
	sender, receiver, err := NewChannelWithExplicitCapacity[int]("quota", t.TempDir(), 1, 1<<20, 2*(8+12), intCodec())
	if err != nil {
		t.Fatalf("NewChannelWithExplicitCapacity: %v", err)
	}
	defer sender.Close()
	defer receiver.Close()

	for i := 1; i <= 3; i++ {
		if err := sender.Send(ctx, i); err != nil {
			t.Fatalf("Send(%d): %v", i, err)
		}
	}
	if err := sender.Send(ctx, 4); !ErrDiskFull(err) {
		t.Fatalf("Send(4) = %v, want ErrDiskFull", err)
	}
}

func TestChannelRejectsNonEmptyExistingDirectory(t *testing.T) {
	dataDir := t.TempDir()
	dir := filepath.Join(dataDir, "occupied")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "stray"), []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	_, _, err := NewChannelWithExplicitCapacity[int]("occupied", dataDir, 8, 1<<20, 0, intCodec())
	fqErr, ok := err.(*Error)
	if !ok || fqErr.Code != CodeChannelCorrupt {
		t.Fatalf("got %v, want *Error{Code: CodeChannelCorrupt}", err)
	}
}

func TestReceiverIterDrainsUntilDisconnected(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sender, receiver, err := NewChannelWithExplicitCapacity[int]("iter", t.TempDir(), 8, 1<<20, 0, intCodec())
	if err != nil {
		t.Fatalf("NewChannelWithExplicitCapacity: %v", err)
	}

	for i := 1; i <= 3; i++ {
		if err := sender.Send(ctx, i); err != nil {
			t.Fatalf("Send(%d): %v", i, err)
		}
	}
	sender.Close()

	var got []int
	for v := range receiver.Iter(ctx) {
		got = append(got, v)
	}
	receiver.Close()

	if len(got) != 3 {
		t.Fatalf("got %v, want 3 values", got)
	}
	for i, v := range got {
		if v != i+1 {
			t.Fatalf("got[%d] = %d, want %d", i, v, i+1)
		}
	}
}
