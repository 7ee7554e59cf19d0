package core

import "time"

// processStart anchors NowNs to a steady, monotonic reference point, the
// same way std::chrono::steady_clock is used for now_ns() in the reference
// implementation: the absolute value carries no meaning, only deltas do.
var processStart = time.Now()

// NowNs returns nanoseconds elapsed on the monotonic clock since process
// start. time.Since always reads the monotonic component of a time.Time
// created by time.Now, so this never observes wall-clock adjustments.
func NowNs() uint64 {
	return uint64(time.Since(processStart).Nanoseconds())
}
