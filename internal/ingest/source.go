// Package ingest owns the single multicast producer thread: it reads
// datagrmas off the wire, timestamps their arrival against the monotonic
// clock, and pushes them into the shared ring buffer for the processing
// thread to drain. Grounded on the reference implementation's UDPReceiver,
// restructured around Go's net package instead of raw socket syscalls
// wherever an ecosystem package (golang.org/x/net/ipv4, golang.org/x/sys/unix)
// already covers the platform-specific parts.
package ingest

import "mdreceiver/internal/core"

// Source is anything that can fill a batch of RawFrames from datagrams
// arriving on a socket. It exists as an interface, rather than a concrete
// UDP type, so the producer loop can be exercised in tests with an
// injected fake in place of a real socket.
type Source interface {
	// ReceiveBatch blocks until at least one datagram is available (or the
	// source is closed), fills as many of frames as are immediately
	// available up to len(frames), and returns the count filled. Each
	// filled frame has its Len and Bytes set; ArrivalTsNs is left for the
	// caller to stamp, since only the caller can guarantee it is read
	// immediately after the batch returns.
	ReceiveBatch(frames []core.RawFrame) (int, error)

	// Close releases the underlying socket. ReceiveBatch calls in flight
	// return an error once Close has been called.
	Close() error
}
