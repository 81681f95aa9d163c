// Package registry guards channel directory creation against races between
// goroutines opening a channel of the same name concurrently. It is the
// in-process analogue of the "two processes pointed at the same directory"
// detection spec.md calls out for the segment directory manager: within one
// process we can actually prevent it instead of merely detecting it.
package registry

import (
	"github.com/995933447/runtimeutil"
)

var muFactory = runtimeutil.NewMulElemMuFactory()

// Lock acquires the creation lock for a channel directory key (typically
// filepath.Join(dataDir, name)) and returns the unlock func.
func Lock(key string) func() {
	mu := muFactory.MakeOrGetSpecElemMu(key)
	mu.Lock()
	return mu.Unlock
}
