package ingest

import (
	"sync/atomic"

	"mdreceiver/internal/core"
)

// batchSize is the number of frames requested per ReceiveBatch call,
// matching the reference receiver's fixed batch size.
const batchSize = 8

// Ingest is the producer side of the pipeline: it owns the one goroutine
// permitted to call Source.ReceiveBatch and Ring.TryPush, per the
// single-producer constraint on core.Ring.
type Ingest struct {
	source Source
	ring   *core.Ring

	running atomic.Bool

	messagesReceived atomic.Uint64
	bytesReceived    atomic.Uint64
	pushFailures     atomic.Uint64
}

// New creates an Ingest reading from source and pushing into ring.
func New(source Source, ring *core.Ring) *Ingest {
	return &Ingest{source: source, ring: ring}
}

// Run drives the receive loop until Stop is called. An error from the
// source ends the loop only once Stop has cleared the running flag (Close
// makes the source return one); an error while still running, transient
// or not, is retried at once and does not end the loop. It is meant to run
// on its own goroutine and returns when the loop exits.
func (in *Ingest) Run() {
	in.running.Store(true)

	frames := make([]core.RawFrame, batchSize)
	for in.running.Load() {
		n, err := in.source.ReceiveBatch(frames)
		if err != nil {
			if !in.running.Load() {
				return
			}
			continue
		}

		for i := 0; i < n; i++ {
			frames[i].ArrivalTsNs = core.NowNs()

			if !in.ring.TryPush(&frames[i]) {
				in.pushFailures.Add(1)
				continue
			}

			in.messagesReceived.Add(1)
			in.bytesReceived.Add(uint64(frames[i].Len))
		}
	}
}

// Stop signals Run to exit and closes the underlying source, unblocking
// any in-flight ReceiveBatch call.
func (in *Ingest) Stop() {
	in.running.Store(false)
	in.source.Close()
}

// MessagesReceived returns the number of datagrams successfully pushed
// into the ring. A datagram dropped for backpressure counts only toward
// PushFailures, never here.
func (in *Ingest) MessagesReceived() uint64 { return in.messagesReceived.Load() }

// BytesReceived returns the total payload bytes of datagrams successfully
// pushed into the ring.
func (in *Ingest) BytesReceived() uint64 { return in.bytesReceived.Load() }

// PushFailures returns the number of datagrams dropped because the ring
// buffer was full (backpressure).
func (in *Ingest) PushFailures() uint64 { return in.pushFailures.Load() }
