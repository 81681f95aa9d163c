package flowq

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/995933447/flowq/internal/engine"
	"github.com/995933447/flowq/internal/registry"
	"github.com/995933447/flowq/internal/syscfg"
	"github.com/995933447/flowq/internal/util"
)

// Codec gives a channel the byte encoding for payload type T. Encode and
// Decode must round-trip: Decode(Encode(v)) == v for every v the caller
// sends.
type Codec[T any] struct {
	Encode func(v T) ([]byte, error)
	Decode func(body []byte) (T, error)
}

// core is the single heap-resident state record shared by every Sender
// clone and the one Receiver for a channel, matching spec's "shared
// ownership with interior mutability" design note. It outlives neither the
// longest-living handle nor the channel directory it owns.
type core struct {
	dir   string
	disk  *engine.DiskTier
	coord *engine.Coordinator

	teardownOnce sync.Once
}

func (c *core) dropProducer() {
	c.coord.DropProducer()
	c.maybeTeardown()
}

func (c *core) dropConsumer() {
	c.coord.DropConsumer()
	c.maybeTeardown()
}

// maybeTeardown deletes the channel directory once both producers_alive
// reaches 0 and the consumer handle is gone, matching the lifecycle spec
// describes: destroyed when all handles are dropped.
func (c *core) maybeTeardown() {
	if c.coord.ProducersAlive() != 0 || c.coord.ConsumerAlive() {
		return
	}
	c.teardownOnce.Do(func() {
		c.disk.Close()
		if err := os.RemoveAll(c.dir); err != nil {
			util.Logger.Error(nil, err)
		}
	})
}

// NewChannel creates a channel named name under dataDir using the
// process-wide defaults (optionally set via syscfg.Init), and returns a
// Sender/Receiver pair over payload type T using codec.
func NewChannel[T any](name, dataDir string, codec Codec[T]) (*Sender[T], *Receiver[T], error) {
	cfg := syscfg.MustCfg()

	segmentMaxBytes, err := util.ParseMemSizeStrToBytes(cfg.SegmentMaxSize)
	if err != nil {
		return nil, nil, wrapEngineErr(err)
	}

	var totalDiskBytes uint64
	if cfg.TotalDiskSize != "" {
		diskBytes, err := util.ParseMemSizeStrToBytes(cfg.TotalDiskSize)
		if err != nil {
			return nil, nil, wrapEngineErr(err)
		}
		totalDiskBytes = uint64(diskBytes)
	}

	return NewChannelWithExplicitCapacity[T](name, dataDir, cfg.MemCapacity, uint64(segmentMaxBytes), totalDiskBytes, codec)
}

// NewChannelWithExplicitCapacity creates a channel with explicit tier
// sizing. totalDiskBytes of 0 means unbounded disk usage.
func NewChannelWithExplicitCapacity[T any](
	name, dataDir string,
	memCapacity uint32,
	segmentMaxBytes, totalDiskBytes uint64,
	codec Codec[T],
) (*Sender[T], *Receiver[T], error) {
	dir := filepath.Join(dataDir, name)

	unlock := registry.Lock(dir)
	defer unlock()

	notEmpty, err := util.DirExistsAndNotEmpty(dir)
	if err != nil {
		return nil, nil, wrapEngineErr(err)
	}
	if notEmpty {
		return nil, nil, &Error{Code: CodeChannelCorrupt, Err: engine.ErrChannelCorrupt}
	}
	if err := util.MkdirIfNotExist(dir); err != nil {
		return nil, nil, wrapEngineErr(err)
	}

	disk, err := engine.NewDiskTier(dir, segmentMaxBytes, totalDiskBytes)
	if err != nil {
		return nil, nil, wrapEngineErr(err)
	}
	mem := engine.NewMemTier(memCapacity)
	coord := engine.NewCoordinator(mem, disk)

	c := &core{dir: dir, disk: disk, coord: coord}
	return &Sender[T]{core: c, codec: codec}, &Receiver[T]{core: c, codec: codec}, nil
}
