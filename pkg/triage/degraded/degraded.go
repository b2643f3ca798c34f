package degraded

// Detector decides whether a case should run on the reduced "lite" path.
// Pure and total: no side effects, no failure mode.
type Detector struct {
	LowBatteryPct    int // lite when battery_pct <= this
	MinBandwidthKbps int // lite when bandwidth_kbps < this
}

// Detect returns true when either resource signal crosses its threshold.
// Absent signals never trigger lite mode.
func (d Detector) Detect(batteryPct, bandwidthKbps *int) bool {
	if batteryPct != nil && *batteryPct <= d.LowBatteryPct {
		return true
	}
	if bandwidthKbps != nil && *bandwidthKbps < d.MinBandwidthKbps {
		return true
	}
	return false
}
