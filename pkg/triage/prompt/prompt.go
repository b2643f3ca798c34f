package prompt

import (
	"fmt"
	"strings"

	"frontline-citizen-be/pkg/triage/state"
)

// StateBlock serializes the session for a generative backend as the
// role-labelled context the specialist prompts expect. Only fields a stage
// is allowed to read are rendered; the confirmation text never is.
func StateBlock(sess *state.Session) string {
	var b strings.Builder
	b.WriteString("STATE:\n")
	fmt.Fprintf(&b, "case_id: %s\n", sess.CaseId)
	fmt.Fprintf(&b, "user_message: %s\n", sess.UserMessage)
	if sess.Location != nil {
		fmt.Fprintf(&b, "location: lat=%.4f lon=%.4f\n", sess.Location.Lat, sess.Location.Lon)
	} else {
		b.WriteString("location: none\n")
	}
	if sess.BatteryPct != nil {
		fmt.Fprintf(&b, "battery_pct: %d\n", *sess.BatteryPct)
	}
	if sess.BandwidthKbps != nil {
		fmt.Fprintf(&b, "bandwidth_kbps: %d\n", *sess.BandwidthKbps)
	}
	fmt.Fprintf(&b, "lite: %t\n", sess.Lite)
	if sess.CaseType != "" {
		fmt.Fprintf(&b, "case_type: %s\n", sess.CaseType)
	}
	if sess.Target != nil {
		fmt.Fprintf(&b, "target: %s, %s (%s)\n", sess.Target.Name, sess.Target.District, sess.Target.Phone)
	}
	if sess.Booking != nil {
		fmt.Fprintf(&b, "booking: %s at %s\n", sess.Booking.Place, sess.Booking.SlotHuman)
	}
	return b.String()
}

// FirstToken lowercases the model output and extracts the first word-like
// token, tolerating markdown fences and punctuation the model may add.
func FirstToken(raw string) string {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.ToLower(strings.TrimSpace(cleaned))

	fields := strings.FieldsFunc(cleaned, func(r rune) bool {
		return !(r >= 'a' && r <= 'z')
	})
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
