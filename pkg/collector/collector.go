// Package collector gathers host-level metrics the standard library and
// gopsutil can't portably express: disk busy ratio, file-descriptor
// totals, socket state histograms, context-switch counters, and
// per-process network rates. Each capability is polymorphic over platform;
// exactly one implementation is compiled in per build, selected by file
// build tags (linux.go, darwin.go, stub.go).
//
// Every capability returns ok=false instead of an error when the platform
// can't supply it — callers render dashes, never error text.
package collector

import "github.com/rshzrh/sitrep/pkg/model"

// Collector is called synchronously from the System monitor's update, on
// the main goroutine. Implementations must return within tens of
// milliseconds and must not spawn background goroutines of their own.
type Collector interface {
	// DiskBusy reports the percentage of time each mounted disk spent
	// servicing I/O since the previous call.
	DiskBusy() (map[string]float64, bool)

	// FDTotals reports system-wide open file-descriptor count and the
	// per-process top-N consumers.
	FDTotals(topN int) (model.FDStats, bool)

	// SocketOverview reports a TCP connection-state histogram and the
	// per-process top-N by connection count.
	SocketOverview(topN int) (model.SocketStats, bool)

	// CtxSwitchTotals reports system-wide involuntary context switches
	// and the per-process top-N.
	CtxSwitchTotals(topN int) (model.CtxSwitchStats, bool)

	// PerProcessNetRates reports upload/download byte rates keyed by pid,
	// computed against the previous call's counters.
	PerProcessNetRates() (map[int]NetRate, bool)
}

// NetRate is one process's network throughput since the previous sample.
type NetRate struct {
	UpBPS   float64
	DownBPS float64
}

// New returns the platform Collector selected at build time.
func New() Collector {
	return newPlatformCollector()
}
