// Package pipeline wires the ring buffer, parser, order book, and latency
// stats into the three-thread pipeline described by the reference
// implementation's main loop: one goroutine ingesting, one goroutine
// processing, and the driver itself ticking a periodic report and owning
// shutdown.
package pipeline

import (
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"mdreceiver/internal/book"
	"mdreceiver/internal/core"
	"mdreceiver/internal/ingest"
	"mdreceiver/internal/parser"
	"mdreceiver/internal/stats"
	"mdreceiver/internal/wire"
)

const reportInterval = time.Second

// Driver owns the ring buffer, the parser, the order book, and the latency
// stats, and drives their lifecycle: it starts the ingest goroutine, runs
// the processing loop, and ticks a report once per second.
type Driver struct {
	logger *slog.Logger

	ring   *core.Ring
	in     *ingest.Ingest
	parser *parser.Parser
	book   *book.Book
	stats  *stats.Stats

	running atomic.Bool

	processedThisInterval atomic.Uint64
	lastReport            time.Time
}

// New creates a Driver over an already-opened ingest source.
func New(logger *slog.Logger, ring *core.Ring, in *ingest.Ingest) *Driver {
	return &Driver{
		logger: logger,
		ring:   ring,
		in:     in,
		parser: parser.New(),
		book:   book.New(),
		stats:  stats.New(stats.DefaultReservoirSize),
	}
}

// Run starts the ingest and processing goroutines and blocks, reporting
// once per second, until stop is closed. It drains any frames left in the
// ring before stopping the ingest source, so packets already accepted off
// the wire are not silently discarded on shutdown.
func (d *Driver) Run(stop <-chan struct{}) {
	d.running.Store(true)
	d.lastReport = time.Now()

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		d.in.Run()
	}()

	processorDone := make(chan struct{})
	go func() {
		defer wg.Done()
		defer close(processorDone)
		d.processLoop()
	}()

	ticker := time.NewTicker(reportInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			d.running.Store(false)
			<-processorDone
			d.in.Stop()
			wg.Wait()
			d.finalSummary()
			return
		case <-ticker.C:
			d.report()
		}
	}
}

// processLoop pops frames off the ring, validates and sequences them
// through the parser, records end-to-end latency, and applies them to the
// order book. It keeps running past running==false until the ring reports
// empty, draining whatever ingest already accepted.
func (d *Driver) processLoop() {
	var frame core.RawFrame
	for {
		if !d.ring.TryPop(&frame) {
			if !d.running.Load() {
				return
			}
			runtime.Gosched()
			continue
		}
		d.handleFrame(&frame)
	}
}

func (d *Driver) handleFrame(frame *core.RawFrame) {
	header, payload, ok := d.parser.Parse(frame)
	if !ok {
		return
	}

	now := core.NowNs()
	if now > frame.ArrivalTsNs {
		d.stats.Record(now - frame.ArrivalTsNs)
	}
	d.processedThisInterval.Add(1)

	switch header.MsgType {
	case wire.MsgQuote:
		q := wire.AsQuote(payload)
		d.book.OnQuote(q.BidPrice, q.BidSize, q.AskPrice, q.AskSize)
	case wire.MsgOrderAdd:
		a := wire.AsOrderAdd(payload)
		d.book.OnOrderAdd(a.OrderID, a.SymbolID, a.Price, a.Size, a.Side)
	case wire.MsgOrderCancel:
		c := wire.AsOrderCancel(payload)
		d.book.OnOrderCancel(c.OrderID)
	case wire.MsgTrade:
		// Observed only: trades do not mutate resting book state.
	default:
		// Unknown types are dispatched here only if a future wire revision
		// adds one the parser doesn't yet reject; silently ignored.
	}
}
