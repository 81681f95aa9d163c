package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/995933447/flowq"
	"github.com/995933447/flowq/internal/syscfg"
	"github.com/995933447/flowq/internal/util"
)

func main() {
	var (
		cfgFilePath = flag.String("cfg", "", "path to a JSON config file overriding the default tier sizing")
		dataDir     = flag.String("data-dir", "", "directory the demo channel's files are created under")
		producers   = flag.Int("producers", 4, "number of concurrent producer goroutines")
		perProducer = flag.Int("per-producer", 1000, "messages sent by each producer")
	)
	flag.Parse()

	if *cfgFilePath != "" {
		if err := syscfg.Init(*cfgFilePath); err != nil {
			panic(err)
		}
	}

	dir := *dataDir
	if dir == "" {
		tmp, err := os.MkdirTemp("", "flowqdemo-")
		if err != nil {
			panic(err)
		}
		dir = tmp
	}

	sender, receiver, err := flowq.NewChannel[string]("demo", dir, flowq.Codec[string]{
		Encode: func(v string) ([]byte, error) { return []byte(v), nil },
		Decode: func(b []byte) (string, error) { return string(b), nil },
	})
	if err != nil {
		panic(err)
	}

	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(*producers)
	for p := 0; p < *producers; p++ {
		producer := sender.Clone()
		go func(id int) {
			defer wg.Done()
			defer producer.Close()
			for i := 0; i < *perProducer; i++ {
				msg := fmt.Sprintf("producer-%d-msg-%d", id, i)
				if err := producer.Send(ctx, msg); err != nil {
					util.Logger.Error(ctx, err)
					return
				}
			}
		}(p)
	}
	sender.Close() // the constructor's own handle; clones above keep producers_alive above zero

	start := time.Now()
	var got int
	for {
		_, err := receiver.Recv(ctx)
		if flowq.ErrDisconnected(err) {
			break
		}
		if err != nil {
			util.Logger.Error(ctx, err)
			break
		}
		got++
	}
	receiver.Close()
	wg.Wait()

	util.Logger.Debug(ctx, fmt.Sprintf("received %d messages in %s", got, time.Since(start)))
}
