package resolve

import (
	"context"

	"frontline-citizen-be/pkg/triage/state"
)

// Strategy is a case-type-specific specialist: it assigns urgency and picks
// a target facility through the directory. Resolvers never abort the
// pipeline; a directory miss simply leaves the target absent, and a non-nil
// error only reports a degraded generative backend (the session is still left
// in a consumable shape).
//
// Only health and crime have resolvers. Disaster triage is deliberately not
// modelled; those cases keep urgency low and no target.
type Strategy interface {
	Resolve(ctx context.Context, sess *state.Session) error
}
