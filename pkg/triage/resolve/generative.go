package resolve

import (
	"context"
	"fmt"

	"frontline-citizen-be/internal/entity"
	"frontline-citizen-be/pkg/directory"
	"frontline-citizen-be/pkg/llm"
	"frontline-citizen-be/pkg/triage/prompt"
	"frontline-citizen-be/pkg/triage/state"
)

const healthTriageInstruction = `You triage health complaints for a citizen
service desk. Guidelines:
- chest pain / shortness of breath / stroke => critical
- very high blood pressure / hypertension => high
- fever or other routine complaints => medium
Answer with EXACTLY ONE of: low, medium, high, critical. Nothing else.`

// GenerativeHealthResolver asks the generative backend for an urgency grade.
// Facility selection stays with the directory (the resolver's tool), so both
// strategies populate the session identically in structure. An unparseable or
// failed grading falls back to the deterministic ladder.
type GenerativeHealthResolver struct {
	provider  llm.LLMProvider
	directory *directory.Directory
}

func NewGenerativeHealthResolver(provider llm.LLMProvider, dir *directory.Directory) *GenerativeHealthResolver {
	return &GenerativeHealthResolver{provider: provider, directory: dir}
}

var _ Strategy = &GenerativeHealthResolver{}

func (r *GenerativeHealthResolver) Resolve(ctx context.Context, sess *state.Session) error {
	// Target first: it must be set whether or not the backend cooperates.
	sess.Target = nearestTo(r.directory, entity.FacilityMedical, sess)

	history := []llm.Message{
		{Role: "system", Content: healthTriageInstruction + "\n\n" + prompt.StateBlock(sess)},
		{Role: "user", Content: sess.UserMessage},
	}
	reply, err := r.provider.Chat(ctx, history,
		llm.WithTemperature(0.2),
		llm.WithMaxTokens(8),
	)
	if err != nil {
		sess.Urgency = TriageHealthUrgency(sess.UserMessage)
		return fmt.Errorf("generative health triage: %w", err)
	}

	urgency, ok := entity.ParseUrgency(prompt.FirstToken(reply))
	if !ok {
		urgency = TriageHealthUrgency(sess.UserMessage)
	}
	sess.Urgency = urgency
	return nil
}

// GenerativeCrimeResolver mirrors the deterministic crime resolver; the
// backend contributes nothing to structure here (urgency is fixed by policy),
// so no call is made. Kept as a separate type so the engine wires one
// strategy pair per mode.
type GenerativeCrimeResolver struct {
	directory *directory.Directory
}

func NewGenerativeCrimeResolver(dir *directory.Directory) *GenerativeCrimeResolver {
	return &GenerativeCrimeResolver{directory: dir}
}

var _ Strategy = &GenerativeCrimeResolver{}

func (r *GenerativeCrimeResolver) Resolve(_ context.Context, sess *state.Session) error {
	sess.Urgency = entity.UrgencyMedium
	sess.Target = nearestTo(r.directory, entity.FacilityLawEnforcement, sess)
	return nil
}
