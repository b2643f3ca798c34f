package classify

import (
	"context"

	"frontline-citizen-be/internal/entity"
	"frontline-citizen-be/pkg/triage/state"
)

// Strategy maps the citizen's free-text report to a case type. The
// deterministic and generative implementations must agree on the set of
// reachable classifications, not on every specific message.
//
// A non-nil error means the backing capability failed; the caller decides
// whether that defaults the classification or aborts the run. Unparseable
// output from a generative backend is NOT an error here: it is reported as
// CaseTypeUnknown per the pipeline's degradation rules.
type Strategy interface {
	Classify(ctx context.Context, sess *state.Session) (entity.CaseType, error)
}
