package pipeline

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// priceScale is the assumed number of implied decimal digits in a wire
// price: an int64 of 1_500_000 displays as 150.0000. This affects only the
// human-readable report line; book and parser logic never divide by it.
const priceScale = 4

func formatPrice(raw int64) string {
	return decimal.New(raw, -priceScale).StringFixed(priceScale)
}

// report emits the periodic telemetry snapshot: best bid/ask/spread from
// the book, the interval's message count and rate, a latency snapshot, and
// the parser's sequence-gap and invalid-message counts for the interval.
// The book is left untouched; the parser and the
// latency stats are reset immediately after so each report describes only
// the interval that just elapsed.
func (d *Driver) report() {
	now := time.Now()
	elapsed := now.Sub(d.lastReport)
	d.lastReport = now

	count := d.processedThisInterval.Swap(0)
	rate := float64(count)
	if elapsed > 0 {
		rate = float64(count) / elapsed.Seconds()
	}

	bidPrice, bidSize, hasBid := d.book.BestBid()
	askPrice, askSize, hasAsk := d.book.BestAsk()
	spread, hasSpread := d.book.Spread()

	snap := d.stats.Snapshot()
	gaps := d.parser.SequenceGaps()
	invalid := d.parser.InvalidMessages()

	d.logger.Info("interval report",
		"interval_count", count,
		"interval_rate_per_sec", rate,
		"best_bid_price", bidPrice,
		"best_bid_size", bidSize,
		"has_bid", hasBid,
		"best_ask_price", askPrice,
		"best_ask_size", askSize,
		"has_ask", hasAsk,
		"spread", spread,
		"has_spread", hasSpread,
		"latency_sample_count", snap.SampleCount,
		"latency_avg_ns", snap.AvgNs,
		"latency_min_ns", snap.MinNs,
		"latency_max_ns", snap.MaxNs,
		"latency_p50_ns", snap.P50Ns,
		"latency_p95_ns", snap.P95Ns,
		"latency_p99_ns", snap.P99Ns,
		"latency_p999_ns", snap.P999Ns,
		"sequence_gaps", gaps,
		"invalid_messages", invalid,
	)

	fmt.Printf("--- %s ---\n", now.Format("15:04:05.000"))
	if hasBid && hasAsk {
		fmt.Printf("best bid %s x %d | best ask %s x %d | spread %s\n",
			formatPrice(bidPrice), bidSize, formatPrice(askPrice), askSize, formatPrice(spread))
	} else {
		fmt.Printf("best bid/ask: unavailable (bid=%v ask=%v)\n", hasBid, hasAsk)
	}
	fmt.Printf("interval: %d msgs (%.1f/s)  latency avg=%.0fns p50=%dns p95=%dns p99=%dns p99.9=%dns\n",
		count, rate, snap.AvgNs, snap.P50Ns, snap.P95Ns, snap.P99Ns, snap.P999Ns)
	fmt.Printf("histogram (ns): <500=%d <1000=%d <2000=%d <5000=%d >=5000=%d\n",
		snap.Histogram[0], snap.Histogram[1], snap.Histogram[2], snap.Histogram[3], snap.Histogram[4])
	fmt.Printf("sequence gaps=%d invalid=%d\n", gaps, invalid)

	d.parser.Reset()
	d.stats.Reset()
}

// finalSummary reads the ingest counters once the ingest and processing
// goroutines have both exited, and prints/logs a final block covering the
// whole run. It runs exactly once, after Run's shutdown sequence has
// already drained the ring.
func (d *Driver) finalSummary() {
	received := d.in.MessagesReceived()
	bytes := d.in.BytesReceived()
	dropped := d.in.PushFailures()

	d.logger.Info("final summary",
		"messages_received", received,
		"bytes_received", bytes,
		"push_failures", dropped,
	)

	fmt.Println("=== final summary ===")
	fmt.Printf("messages received=%d bytes received=%d push failures=%d\n", received, bytes, dropped)
}
