package ingest

import (
	"errors"
	"sync"
	"testing"
	"time"

	"mdreceiver/internal/core"
)

// fakeSource is an injected stand-in for a real multicast socket, used to
// drive the producer loop deterministically in tests without opening any
// network resources.
type fakeSource struct {
	mu     sync.Mutex
	frames [][]byte
	closed bool
}

func newFakeSource(frames ...[]byte) *fakeSource {
	return &fakeSource{frames: frames}
}

func (f *fakeSource) ReceiveBatch(out []core.RawFrame) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return 0, errors.New("source closed")
	}
	if len(f.frames) == 0 {
		return 0, nil
	}

	n := 0
	for n < len(out) && len(f.frames) > 0 {
		copy(out[n].Bytes[:], f.frames[0])
		out[n].Len = len(f.frames[0])
		f.frames = f.frames[1:]
		n++
	}
	return n, nil
}

func (f *fakeSource) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func TestIngestPushesReceivedFramesIntoRing(t *testing.T) {
	src := newFakeSource([]byte("abc"), []byte("defg"))
	ring := core.NewRing(8)
	in := New(src, ring)

	done := make(chan struct{})
	go func() {
		in.Run()
		close(done)
	}()

	deadline := time.Now().Add(time.Second)
	for in.MessagesReceived() < 2 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	in.Stop()
	<-done

	if got := in.MessagesReceived(); got != 2 {
		t.Fatalf("expected 2 messages received, got %d", got)
	}
	if got := in.BytesReceived(); got != 7 {
		t.Fatalf("expected 7 bytes received, got %d", got)
	}

	var frame core.RawFrame
	if !ring.TryPop(&frame) {
		t.Fatal("expected first frame in ring")
	}
	if string(frame.Payload()) != "abc" {
		t.Fatalf("unexpected first frame payload: %q", frame.Payload())
	}
	if frame.ArrivalTsNs == 0 {
		t.Fatal("expected arrival timestamp to be stamped")
	}
}

func TestIngestCountsPushFailuresUnderBackpressure(t *testing.T) {
	frames := make([][]byte, 0, 10)
	for i := 0; i < 10; i++ {
		frames = append(frames, []byte{byte(i)})
	}
	src := newFakeSource(frames...)
	ring := core.NewRing(4) // capacity 3 usable slots

	in := New(src, ring)
	done := make(chan struct{})
	go func() {
		in.Run()
		close(done)
	}()

	// Nobody drains the ring, so only its 3 usable slots (capacity 4, one
	// slot always empty) can ever be pushed successfully; the remaining 7
	// datagrams are dropped as push failures. Wait for all 10 attempts to
	// be accounted for one way or the other.
	deadline := time.Now().Add(time.Second)
	for in.MessagesReceived()+in.PushFailures() < 10 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	in.Stop()
	<-done

	if got := in.MessagesReceived(); got != 3 {
		t.Fatalf("expected 3 messages successfully pushed, got %d", got)
	}
	if got := in.PushFailures(); got != 7 {
		t.Fatalf("expected 7 push failures once the ring filled, got %d", got)
	}
}
