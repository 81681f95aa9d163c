// Package flowq implements a hybrid in-memory / on-disk FIFO channel:
// multiple producers and a single consumer, bounded resident memory, and
// unbounded logical capacity via a segmented, checksummed append-only log
// on disk.
//
// A typical producer/consumer pair:
//
//	sender, receiver, err := flowq.NewChannel("orders", "/var/lib/myapp/queues", flowq.Codec[Order]{
//		Encode: func(o Order) ([]byte, error) { return json.Marshal(o) },
//		Decode: func(b []byte) (Order, error) { var o Order; return o, json.Unmarshal(b, &o) },
//	})
//	if err != nil {
//		return err
//	}
//	defer sender.Close()
//	defer receiver.Close()
//
// Sends never drop items; once the memory tier is full they spill to disk
// and stream back into memory for consumption, preserving the order in
// which sends completed.
package flowq
