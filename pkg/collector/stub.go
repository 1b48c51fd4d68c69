//go:build !linux && !darwin

package collector

import "github.com/rshzrh/sitrep/pkg/model"

// stubCollector backs unsupported build targets; every capability is
// unavailable.
type stubCollector struct{}

func newPlatformCollector() Collector {
	return stubCollector{}
}

func (stubCollector) DiskBusy() (map[string]float64, bool) { return nil, false }

func (stubCollector) FDTotals(topN int) (model.FDStats, bool) { return model.FDStats{}, false }

func (stubCollector) SocketOverview(topN int) (model.SocketStats, bool) {
	return model.SocketStats{}, false
}

func (stubCollector) CtxSwitchTotals(topN int) (model.CtxSwitchStats, bool) {
	return model.CtxSwitchStats{}, false
}

func (stubCollector) PerProcessNetRates() (map[int]NetRate, bool) { return nil, false }
