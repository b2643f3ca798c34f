package dto

import (
	"frontline-citizen-be/internal/pkg/logger"
	"frontline-citizen-be/internal/repository/contract"
)

type MetricsRequest struct {
	SinceHours *int `query:"since_hours" validate:"omitempty,gte=1,lte=720"`
}

// MetricsResponse is the operator dashboard aggregate.
type MetricsResponse struct {
	TotalCases   int64                    `json:"total_cases"`
	LiteCases    int64                    `json:"lite_cases"`
	ByType       []contract.CaseTypeCount `json:"by_type"`
	TopDistricts []contract.DistrictCount `json:"top_districts"`
	SinceHours   *int                     `json:"since_hours,omitempty"`
}

type DailySummaryResponse struct {
	Summary   string `json:"summary"`
	Generated bool   `json:"generated"`
}

type AdminLogsRequest struct {
	Level  string `query:"level"`
	Limit  int    `query:"limit"`
	Offset int    `query:"offset"`
}

type AdminLogsResponse struct {
	Logs []logger.LogEntry `json:"logs"`
}
