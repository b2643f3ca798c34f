package dto

import (
	"frontline-citizen-be/internal/entity"
)

// CreateCaseRequest is the intake payload for a citizen report. Only the
// message is mandatory; everything else is best-effort device telemetry.
type CreateCaseRequest struct {
	UserMessage   string   `json:"user_message" validate:"required,min=1,max=4000"`
	Lat           *float64 `json:"lat" validate:"omitempty,gte=-90,lte=90"`
	Lon           *float64 `json:"lon" validate:"omitempty,gte=-180,lte=180"`
	BatteryPct    *int     `json:"battery_pct" validate:"omitempty,gte=0,lte=100"`
	BandwidthKbps *int     `json:"bandwidth_kbps" validate:"omitempty,gte=0"`
	CitizenPhone  *string  `json:"citizen_phone" validate:"omitempty,max=32"`
	Lang          string   `json:"lang" validate:"omitempty,max=8"`
}

// CaseResponse is returned for every intake, fallback terminals included.
// Stored is false only when even the fallback record could not be persisted.
type CaseResponse struct {
	CaseId       string             `json:"case_id"`
	Confirmation string             `json:"confirmation"`
	Stored       bool               `json:"stored"`
	Record       *entity.CaseRecord `json:"record"`
}

// PublishCaseNotifyMessage is the in-process bus payload handed to the
// notification dispatcher after a case reaches a terminal.
type PublishCaseNotifyMessage struct {
	Record *entity.CaseRecord `json:"record"`
}

type ListCasesRequest struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

type ListCasesResponse struct {
	Cases []*entity.CaseRecord `json:"cases"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}
