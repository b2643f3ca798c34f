package degraded

import "testing"

func intPtr(v int) *int { return &v }

func TestDetect(t *testing.T) {
	d := Detector{LowBatteryPct: 20, MinBandwidthKbps: 64}

	tests := []struct {
		name          string
		batteryPct    *int
		bandwidthKbps *int
		want          bool
	}{
		{"no signals", nil, nil, false},
		{"healthy signals", intPtr(80), intPtr(1000), false},
		{"battery at threshold", intPtr(20), nil, true},
		{"battery below threshold", intPtr(5), nil, true},
		{"battery just above threshold", intPtr(21), nil, false},
		{"bandwidth below threshold", nil, intPtr(63), true},
		{"bandwidth at threshold", nil, intPtr(64), false},
		{"battery ok but bandwidth low", intPtr(90), intPtr(10), true},
		{"bandwidth ok but battery low", intPtr(10), intPtr(5000), true},
		{"zero bandwidth", nil, intPtr(0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.Detect(tt.batteryPct, tt.bandwidthKbps)
			if got != tt.want {
				t.Errorf("Detect(%v, %v) = %v, want %v", tt.batteryPct, tt.bandwidthKbps, got, tt.want)
			}
		})
	}
}
