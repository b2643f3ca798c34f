package events

import (
	"time"

	"frontline-citizen-be/internal/entity"
)

const (
	TypeCaseProcessed = "CASE_PROCESSED"
	TypeCaseFallback  = "CASE_FALLBACK"
)

// NewCaseProcessedEvent is emitted after a case reaches a terminal and its
// record is persisted. Downstream consumers (dashboards, district feeds) key
// on case_type and urgency.
func NewCaseProcessedEvent(record *entity.CaseRecord) Event {
	data := map[string]interface{}{
		"case_id":   record.CaseId,
		"case_type": string(record.CaseType),
		"urgency":   string(record.Urgency),
		"lite":      record.Lite,
	}
	if record.Target != nil {
		data["facility"] = record.Target.Name
		data["district"] = record.Target.District
	}
	if record.Booking != nil {
		data["slot_iso"] = record.Booking.SlotAt.Format(time.RFC3339)
	}
	return BaseEvent{
		Type:       TypeCaseProcessed,
		Data:       data,
		OccurredAt: record.CreatedAt,
	}
}

// NewCaseFallbackEvent is emitted when the pipeline took the safe terminal,
// so operators can spot backend degradation from the event stream alone.
func NewCaseFallbackEvent(record *entity.CaseRecord) Event {
	return BaseEvent{
		Type: TypeCaseFallback,
		Data: map[string]interface{}{
			"case_id": record.CaseId,
		},
		OccurredAt: record.CreatedAt,
	}
}
