package state

import (
	"strings"
	"time"

	"frontline-citizen-be/internal/entity"

	"github.com/google/uuid"
)

// Session is the single mutable record threaded through the pipeline for one
// case. It is exclusively owned by the pipeline execution processing that
// case; nothing else may read or write it while the pipeline runs.
//
// Input fields (CaseId through Lang) are immutable after New. Pipeline fields
// are each written by exactly one stage: Lite by the degraded-mode detector,
// CaseType by the classifier, Urgency/Target by a specialist resolver,
// Booking by the reservation stage, Confirmation by the response composer.
type Session struct {
	CaseId        string
	UserMessage   string
	Location      *entity.GeoPoint
	BatteryPct    *int
	BandwidthKbps *int
	CitizenPhone  *string
	Lang          string

	Lite         bool
	CaseType     entity.CaseType
	Urgency      entity.Urgency
	Target       *entity.Facility
	Booking      *entity.Booking
	Confirmation string
}

// Input carries the sanitized request fields into a fresh session.
type Input struct {
	Message       string
	Location      *entity.GeoPoint
	BatteryPct    *int
	BandwidthKbps *int
	CitizenPhone  *string
	Lang          string
}

// New creates the session for one incoming case with a fresh case id.
// CaseType and Urgency start at their documented defaults so a run that
// never reaches a classifier or resolver still projects a valid record.
func New(in Input) *Session {
	lang := in.Lang
	if lang == "" {
		lang = "en"
	}
	return &Session{
		CaseId:        NewCaseId(),
		UserMessage:   in.Message,
		Location:      in.Location,
		BatteryPct:    in.BatteryPct,
		BandwidthKbps: in.BandwidthKbps,
		CitizenPhone:  in.CitizenPhone,
		Lang:          lang,

		CaseType: entity.CaseTypeUnknown,
		Urgency:  entity.UrgencyLow,
	}
}

// NewCaseId mints a citizen-facing case identifier, e.g. "FC-3A9F01B2".
func NewCaseId() string {
	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "FC-" + strings.ToUpper(hex[:8])
}

// Record projects the session into its durable case record. Called exactly
// once, after the pipeline has reached a terminal.
func (s *Session) Record(createdAt time.Time) *entity.CaseRecord {
	return &entity.CaseRecord{
		CaseId:        s.CaseId,
		CreatedAt:     createdAt,
		CaseType:      s.CaseType,
		Urgency:       s.Urgency,
		Lite:          s.Lite,
		Target:        s.Target,
		Booking:       s.Booking,
		Confirmation:  s.Confirmation,
		UserMessage:   s.UserMessage,
		Location:      s.Location,
		BatteryPct:    s.BatteryPct,
		BandwidthKbps: s.BandwidthKbps,
		CitizenPhone:  s.CitizenPhone,
		Lang:          s.Lang,
	}
}
