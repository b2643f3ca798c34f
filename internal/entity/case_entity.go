package entity

import "time"

// CaseType is the classification assigned to a citizen report.
type CaseType string

const (
	CaseTypeHealth   CaseType = "health"
	CaseTypeCrime    CaseType = "crime"
	CaseTypeDisaster CaseType = "disaster"
	CaseTypeUnknown  CaseType = "unknown"
)

// ParseCaseType maps free text to a CaseType. Anything that is not an exact
// token is reported as invalid so callers can default to CaseTypeUnknown.
func ParseCaseType(s string) (CaseType, bool) {
	switch CaseType(s) {
	case CaseTypeHealth, CaseTypeCrime, CaseTypeDisaster, CaseTypeUnknown:
		return CaseType(s), true
	}
	return CaseTypeUnknown, false
}

// Urgency is assigned by a specialist resolver; low when none runs.
type Urgency string

const (
	UrgencyLow      Urgency = "low"
	UrgencyMedium   Urgency = "medium"
	UrgencyHigh     Urgency = "high"
	UrgencyCritical Urgency = "critical"
)

func ParseUrgency(s string) (Urgency, bool) {
	switch Urgency(s) {
	case UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyCritical:
		return Urgency(s), true
	}
	return UrgencyLow, false
}

// GeoPoint is a latitude/longitude pair. Both components are always present;
// a request with only one coordinate is treated as having none.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// CaseRecord is the durable projection of one processed case.
type CaseRecord struct {
	CaseId        string     `json:"case_id"`
	CreatedAt     time.Time  `json:"created_at"`
	CaseType      CaseType   `json:"case_type"`
	Urgency       Urgency    `json:"urgency"`
	Lite          bool       `json:"lite"`
	Target        *Facility  `json:"target,omitempty"`
	Booking       *Booking   `json:"booking,omitempty"`
	Confirmation  string     `json:"confirmation"`
	UserMessage   string     `json:"user_message"`
	Location      *GeoPoint  `json:"location,omitempty"`
	BatteryPct    *int       `json:"battery_pct,omitempty"`
	BandwidthKbps *int       `json:"bandwidth_kbps,omitempty"`
	CitizenPhone  *string    `json:"citizen_phone,omitempty"`
	Lang          string     `json:"lang"`
}
