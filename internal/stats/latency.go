// Package stats tracks end-to-end latency (arrival timestamp to processing
// timestamp) in a bounded circular reservoir, grounded on the reference
// implementation's LatencyStats: streaming min/avg/max kept exactly, with
// percentiles computed from a sorted snapshot copy of the reservoir rather
// than an online estimator.
package stats

import "sort"

// DefaultReservoirSize is the default number of most-recent samples kept
// for percentile computation.
const DefaultReservoirSize = 1_000_000

// reserveHint bounds the up-front allocation for the reservoir backing
// array: large capacities still grow it lazily via append rather than
// paying for the full capacity up front.
const reserveHint = 16384

// histogramBoundsNs are the upper (exclusive) bounds, in nanoseconds, of
// the first four latency buckets. Samples at or above the last bound fall
// into the fifth, unbounded bucket.
var histogramBoundsNs = [4]uint64{500, 1000, 2000, 5000}

const histogramBuckets = 5

// Stats accumulates latency samples. It is single-threaded state: exactly
// one goroutine (the processing thread) may call Record.
type Stats struct {
	reservoir []uint64
	capacity  int
	next      int

	count     uint64
	sumNs     uint64
	minNs     uint64
	maxNs     uint64
	histogram [histogramBuckets]uint64
}

// New creates a Stats with the given reservoir capacity. A capacity <= 0
// uses DefaultReservoirSize. Only min(capacity, reserveHint) is allocated
// up front; the backing array grows lazily via append toward the full
// capacity as samples arrive.
func New(capacity int) *Stats {
	if capacity <= 0 {
		capacity = DefaultReservoirSize
	}
	hint := capacity
	if hint > reserveHint {
		hint = reserveHint
	}
	return &Stats{reservoir: make([]uint64, 0, hint), capacity: capacity}
}

// Record adds one latency sample, in nanoseconds.
func (s *Stats) Record(ns uint64) {
	s.count++
	s.sumNs += ns

	if s.count == 1 || ns < s.minNs {
		s.minNs = ns
	}
	if ns > s.maxNs {
		s.maxNs = ns
	}

	s.histogram[bucketFor(ns)]++

	if len(s.reservoir) < s.capacity {
		s.reservoir = append(s.reservoir, ns)
		return
	}
	s.reservoir[s.next] = ns
	s.next = (s.next + 1) % s.capacity
}

func bucketFor(ns uint64) int {
	for i, bound := range histogramBoundsNs {
		if ns < bound {
			return i
		}
	}
	return histogramBuckets - 1
}

// Snapshot is a point-in-time summary of everything recorded since the last
// Reset.
type Snapshot struct {
	SampleCount uint64
	AvgNs       float64
	MinNs       uint64
	MaxNs       uint64
	P50Ns       uint64
	P95Ns       uint64
	P99Ns       uint64
	P999Ns      uint64
	Histogram   [histogramBuckets]uint64
}

// Snapshot computes a Snapshot. Percentiles are computed by sorting a copy
// of the current reservoir contents, so this call is O(n log n) in the
// reservoir size and safe to call from the reporting path without
// disturbing ongoing Record calls (it never runs concurrently with them:
// both happen on the processing thread, reporting between batches).
func (s *Stats) Snapshot() Snapshot {
	recorded := uint64(len(s.reservoir))

	out := Snapshot{
		SampleCount: recorded,
		MinNs:       s.minNs,
		MaxNs:       s.maxNs,
		Histogram:   s.histogram,
	}
	if s.count > 0 {
		out.AvgNs = float64(s.sumNs) / float64(s.count)
	}

	if len(s.reservoir) == 0 {
		return out
	}

	sorted := make([]uint64, len(s.reservoir))
	copy(sorted, s.reservoir)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	out.P50Ns = percentile(sorted, 0.50)
	out.P95Ns = percentile(sorted, 0.95)
	out.P99Ns = percentile(sorted, 0.99)
	out.P999Ns = percentile(sorted, 0.999)

	return out
}

// percentile returns the value at fraction p (0..1) of a sorted, non-empty
// slice, using nearest-rank with the rank clamped to the last index.
func percentile(sorted []uint64, p float64) uint64 {
	idx := int(p * float64(len(sorted)))
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// Reset clears all counters and reservoir contents, as the pipeline driver
// does at the start of every reporting interval.
func (s *Stats) Reset() {
	s.reservoir = s.reservoir[:0]
	s.next = 0
	s.count = 0
	s.sumNs = 0
	s.minNs = 0
	s.maxNs = 0
	s.histogram = [histogramBuckets]uint64{}
}
