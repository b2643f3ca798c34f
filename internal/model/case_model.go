package model

import (
	"time"

	"gorm.io/datatypes"
)

// Case is the storage row for one processed citizen report. Structured
// pipeline outputs (target facility, booking, location) are kept as jsonb so
// the row survives schema evolution of those payloads.
type Case struct {
	CaseId        string         `gorm:"type:varchar(16);primaryKey" json:"case_id"`
	CaseType      string         `gorm:"type:varchar(16);not null;index:idx_cases_type_created,priority:1" json:"case_type"`
	Urgency       string         `gorm:"type:varchar(16);not null;index:idx_cases_urgency" json:"urgency"`
	Lite          bool           `gorm:"default:false" json:"lite"`
	Target        datatypes.JSON `gorm:"type:jsonb" json:"target,omitempty"`
	Booking       datatypes.JSON `gorm:"type:jsonb" json:"booking,omitempty"`
	Confirmation  string         `gorm:"type:text;not null" json:"confirmation"`
	UserMessage   string         `gorm:"type:text;not null" json:"user_message"`
	Location      datatypes.JSON `gorm:"type:jsonb" json:"location,omitempty"`
	BatteryPct    *int           `json:"battery_pct,omitempty"`
	BandwidthKbps *int           `json:"bandwidth_kbps,omitempty"`
	CitizenPhone  *string        `gorm:"type:varchar(32)" json:"citizen_phone,omitempty"`
	Lang          string         `gorm:"type:varchar(8);default:'en'" json:"lang"`
	CreatedAt     time.Time      `gorm:"default:CURRENT_TIMESTAMP;index:idx_cases_type_created,priority:2" json:"created_at"`
}

func (Case) TableName() string {
	return "cases"
}
