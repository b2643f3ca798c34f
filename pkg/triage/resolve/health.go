package resolve

import (
	"context"
	"strings"

	"frontline-citizen-be/internal/entity"
	"frontline-citizen-be/pkg/directory"
	"frontline-citizen-be/pkg/triage/state"
)

// Acute symptoms escalate straight to critical.
var acuteSymptomTerms = []string{
	"chest pain", "shortness of breath", "breathing difficulty",
	"can't breathe", "cannot breathe", "stroke", "unconscious",
}

// Severe-vitals language needs immediate evaluation but below critical.
var severeVitalsTerms = []string{
	"blood pressure", "hypertension", "high bp",
}

// HealthResolver triages health complaints and selects the nearest medical
// facility.
type HealthResolver struct {
	directory *directory.Directory
}

func NewHealthResolver(dir *directory.Directory) *HealthResolver {
	return &HealthResolver{directory: dir}
}

var _ Strategy = &HealthResolver{}

func (r *HealthResolver) Resolve(_ context.Context, sess *state.Session) error {
	sess.Urgency = TriageHealthUrgency(sess.UserMessage)
	sess.Target = nearestTo(r.directory, entity.FacilityMedical, sess)
	return nil
}

// TriageHealthUrgency applies the deterministic escalation ladder:
// medium by default, high for severe-vitals language, critical for acute
// symptoms. Shared with the generative resolver as its parse fallback.
func TriageHealthUrgency(message string) entity.Urgency {
	text := strings.ToLower(message)
	for _, term := range acuteSymptomTerms {
		if strings.Contains(text, term) {
			return entity.UrgencyCritical
		}
	}
	for _, term := range severeVitalsTerms {
		if strings.Contains(text, term) {
			return entity.UrgencyHigh
		}
	}
	return entity.UrgencyMedium
}

func nearestTo(dir *directory.Directory, kind entity.FacilityKind, sess *state.Session) *entity.Facility {
	var lat, lon *float64
	if sess.Location != nil {
		lat, lon = &sess.Location.Lat, &sess.Location.Lon
	}
	return dir.Nearest(kind, lat, lon)
}
