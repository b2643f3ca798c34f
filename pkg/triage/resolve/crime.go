package resolve

import (
	"context"

	"frontline-citizen-be/internal/entity"
	"frontline-citizen-be/pkg/directory"
	"frontline-citizen-be/pkg/triage/state"
)

// CrimeResolver routes crime reports to the nearest law-enforcement
// facility. Urgency is fixed at medium; severity grading of crimes is out
// of scope for the desk.
type CrimeResolver struct {
	directory *directory.Directory
}

func NewCrimeResolver(dir *directory.Directory) *CrimeResolver {
	return &CrimeResolver{directory: dir}
}

var _ Strategy = &CrimeResolver{}

func (r *CrimeResolver) Resolve(_ context.Context, sess *state.Session) error {
	sess.Urgency = entity.UrgencyMedium
	sess.Target = nearestTo(r.directory, entity.FacilityLawEnforcement, sess)
	return nil
}
