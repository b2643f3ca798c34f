package compose

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"frontline-citizen-be/internal/constant"
	"frontline-citizen-be/internal/entity"
	"frontline-citizen-be/pkg/triage/state"
)

// LiteMaxLen is the hard ceiling for lite-mode confirmations.
const LiteMaxLen = 260

// Composer renders the terminal confirmation text for a case. The returned
// text is always usable: it is non-empty and carries the case id verbatim.
// A non-nil error only reports that a generative backend degraded and the
// deterministic rendering was used instead.
type Composer interface {
	Compose(ctx context.Context, sess *state.Session) (string, error)
}

// TemplateComposer is the deterministic composer. It also serves as the
// safety net for the generative one.
type TemplateComposer struct{}

func NewTemplateComposer() *TemplateComposer {
	return &TemplateComposer{}
}

var _ Composer = &TemplateComposer{}

func (c *TemplateComposer) Compose(_ context.Context, sess *state.Session) (string, error) {
	if sess.Lite {
		return LiteLine(sess), nil
	}
	return fullMessage(sess), nil
}

func fullMessage(sess *state.Session) string {
	if sess.Booking != nil && sess.Booking.Confirmed {
		return fmt.Sprintf("Appointment booked: %s at %s. Bring your ID card. Case ID: %s",
			sess.Booking.Place, sess.Booking.SlotHuman, sess.CaseId)
	}
	return fmt.Sprintf("Your request is recorded. We'll notify next steps. Case ID: %s", sess.CaseId)
}

// LiteLine renders the single-line degraded confirmation: case type, one
// critical action, key location if available, case id. Never exceeds
// LiteMaxLen and never drops the case id.
func LiteLine(sess *state.Session) string {
	var parts []string
	parts = append(parts, fmt.Sprintf("%s: %s", liteLabel(sess.CaseType), liteAction(sess.CaseType)))
	if sess.Target != nil {
		parts = append(parts, "Nearest: "+sess.Target.Name)
	} else if sess.Location != nil {
		parts = append(parts, fmt.Sprintf("Loc: %.3f,%.3f", sess.Location.Lat, sess.Location.Lon))
	}
	body := strings.Join(parts, ". ")
	return ClampLite(body, sess.CaseId)
}

// ClampLite appends the case id suffix and truncates the body if the line
// would exceed the ceiling. The case id always survives truncation and the
// cut never splits a multi-byte rune.
func ClampLite(body, caseId string) string {
	suffix := ". Case ID: " + caseId
	if len(body)+len(suffix) > LiteMaxLen {
		keep := LiteMaxLen - len(suffix)
		if keep < 0 {
			keep = 0
		}
		for keep > 0 && !utf8.RuneStart(body[keep]) {
			keep--
		}
		body = body[:keep]
	}
	return body + suffix
}

func liteLabel(t entity.CaseType) string {
	switch t {
	case entity.CaseTypeHealth:
		return "Health"
	case entity.CaseTypeCrime:
		return "Crime"
	case entity.CaseTypeDisaster:
		return "Disaster"
	default:
		return "Case"
	}
}

func liteAction(t entity.CaseType) string {
	switch t {
	case entity.CaseTypeHealth:
		return constant.LiteActionHealth
	case entity.CaseTypeCrime:
		return constant.LiteActionCrime
	case entity.CaseTypeDisaster:
		return constant.LiteActionDisaster
	default:
		return constant.LiteActionUnknown
	}
}
