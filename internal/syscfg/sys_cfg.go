package syscfg

import (
	"sync"
	"time"

	"github.com/995933447/confloader"
)

// Cfg holds the process-wide defaults applied to a channel constructed
// through flowq.NewChannel instead of flowq.NewChannelWithExplicitCapacity.
// SegmentMaxSize and TotalDiskSize are human-readable size strings (e.g.
// "8MB") the same way bucketmq's Cfg.DataFileMaxSize is — parsed via
// util.ParseMemSizeStrToBytes at the point of use rather than as raw byte
// counts here.
type Cfg struct {
	MemCapacity    uint32 `json:"mem_capacity"`
	SegmentMaxSize string `json:"segment_max_size"`
	TotalDiskSize  string `json:"total_disk_size"`
}

const (
	// DefaultMemCapacity is the number of frames the memory tier holds
	// before a channel starts spilling to disk.
	DefaultMemCapacity = 1024
	// DefaultSegmentMaxSize is the rollover threshold for a single
	// segment file: a few MB, as spec'd.
	DefaultSegmentMaxSize = "8MB"
)

var (
	cfg       = &Cfg{MemCapacity: DefaultMemCapacity, SegmentMaxSize: DefaultSegmentMaxSize}
	initCfgMu sync.RWMutex
	inited    bool
)

// Init loads defaults from a JSON file and keeps them hot-reloaded every 10
// seconds, the same convention bucketmq's syscfg.Init uses. Calling Init is
// optional: a channel built without ever calling Init uses the built-in
// defaults above. Unlike bucketmq, which falls back to a mandatory
// defaultCfgFilePath when none is given, flowq has no required boot file —
// an empty cfgFilePath just keeps the built-in defaults and skips loading.
func Init(cfgFilePath string) error {
	initCfgMu.Lock()
	defer initCfgMu.Unlock()
	if inited {
		return nil
	}
	if cfgFilePath == "" {
		inited = true
		return nil
	}

	cfgLoader := confloader.NewLoader(cfgFilePath, time.Second*10, cfg)
	if err := cfgLoader.Load(); err != nil {
		return err
	}

	inited = true
	return nil
}

// MustCfg returns the current defaults, initialized or not.
func MustCfg() *Cfg {
	initCfgMu.RLock()
	defer initCfgMu.RUnlock()
	return cfg
}
