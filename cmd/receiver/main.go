// Command receiver runs the market data ingest pipeline: it joins a
// multicast group, validates and sequences incoming frames, applies them
// to an in-memory order book, and reports latency and book telemetry once
// per second until stopped.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mdreceiver/internal/config"
	"mdreceiver/internal/core"
	"mdreceiver/internal/ingest"
	"mdreceiver/internal/logging"
	"mdreceiver/internal/pipeline"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.Load(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, "receiver: config:", err)
		return 1
	}

	logger := logging.New(logging.Options{LogFile: cfg.LogFile, Debug: cfg.Debug})

	source, err := ingest.OpenMulticast(cfg.Multicast, cfg.Port, cfg.Interface)
	if err != nil {
		logger.Error("failed to open multicast source", "error", err)
		return 1
	}

	ring := core.NewRing(core.DefaultRingSize)
	in := ingest.New(source, ring)
	driver := pipeline.New(logger, ring, in)

	logger.Info("receiver starting",
		"multicast", cfg.Multicast,
		"port", cfg.Port,
		"duration_sec", cfg.DurationSec,
		"symbols", cfg.Symbols,
	)

	stop := make(chan struct{})
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	var timer *time.Timer
	var timerCh <-chan time.Time
	if cfg.DurationSec > 0 {
		timer = time.NewTimer(time.Duration(cfg.DurationSec) * time.Second)
		timerCh = timer.C
	}

	go func() {
		select {
		case sig := <-sigCh:
			logger.Info("received shutdown signal", "signal", sig.String())
		case <-timerCh:
			logger.Info("configured duration elapsed, shutting down")
		}
		close(stop)
	}()

	driver.Run(stop)
	if timer != nil {
		timer.Stop()
	}

	logger.Info("receiver stopped")
	return 0
}
