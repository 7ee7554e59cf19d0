package core

import "testing"

func TestRingPushPopRoundTrip(t *testing.T) {
	r := NewRing(8)

	var in RawFrame
	in.Len = 3
	copy(in.Bytes[:], []byte{1, 2, 3})

	if !r.TryPush(&in) {
		t.Fatal("push into empty ring should succeed")
	}

	var out RawFrame
	if !r.TryPop(&out) {
		t.Fatal("pop from non-empty ring should succeed")
	}

	if out.Len != in.Len || out.Bytes[:out.Len][0] != 1 {
		t.Fatalf("popped frame does not match pushed frame: %+v", out)
	}
}

func TestRingFIFOOrder(t *testing.T) {
	r := NewRing(8)

	for i := 0; i < 5; i++ {
		var f RawFrame
		f.Len = 1
		f.Bytes[0] = byte(i)
		if !r.TryPush(&f) {
			t.Fatalf("push %d should succeed", i)
		}
	}

	for i := 0; i < 5; i++ {
		var out RawFrame
		if !r.TryPop(&out) {
			t.Fatalf("pop %d should succeed", i)
		}
		if out.Bytes[0] != byte(i) {
			t.Fatalf("expected value %d, got %d", i, out.Bytes[0])
		}
	}
}

func TestRingFillsUnderBurst(t *testing.T) {
	// Effective capacity of a size-8 ring is 7.
	r := NewRing(8)

	succeeded := 0
	for i := 0; i < 8; i++ {
		var f RawFrame
		f.Len = 1
		if r.TryPush(&f) {
			succeeded++
		}
	}

	if succeeded != 7 {
		t.Fatalf("expected 7 successful pushes into an 8-slot ring, got %d", succeeded)
	}

	if r.TryPush(&RawFrame{}) {
		t.Fatal("push into full ring should fail")
	}
}

func TestRingEmptyPopFails(t *testing.T) {
	r := NewRing(4)
	var out RawFrame
	if r.TryPop(&out) {
		t.Fatal("pop from empty ring should fail")
	}
}

func TestRingSizeNeverExceedsCapacityMinusOne(t *testing.T) {
	r := NewRing(4)
	for i := 0; i < 10; i++ {
		r.TryPush(&RawFrame{Len: 1})
	}
	if r.Size() > 3 {
		t.Fatalf("ring size %d exceeds N-1", r.Size())
	}
}

func TestNewRingPanicsOnNonPowerOfTwo(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for non-power-of-two size")
		}
	}()
	NewRing(7)
}

func BenchmarkRingPushPop(b *testing.B) {
	r := NewRing(DefaultRingSize)
	f := RawFrame{Len: 1}
	var out RawFrame

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		r.TryPush(&f)
		r.TryPop(&out)
	}
}
