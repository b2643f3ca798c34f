package classify

import (
	"context"
	"fmt"

	"frontline-citizen-be/internal/entity"
	"frontline-citizen-be/pkg/llm"
	"frontline-citizen-be/pkg/triage/prompt"
	"frontline-citizen-be/pkg/triage/state"
)

const routerInstruction = `You are the main router for a citizen service desk.
Read the STATE block and the USER message, then answer with EXACTLY ONE of
these words and nothing else: health, crime, disaster, unknown.`

// GenerativeClassifier delegates classification to the generative backend.
// The backend is constrained to emit one of the four case-type tokens; any
// other output is a contract violation of that backend and is reported as
// CaseTypeUnknown rather than as a failure.
type GenerativeClassifier struct {
	provider llm.LLMProvider
}

func NewGenerativeClassifier(provider llm.LLMProvider) *GenerativeClassifier {
	return &GenerativeClassifier{provider: provider}
}

var _ Strategy = &GenerativeClassifier{}

func (c *GenerativeClassifier) Classify(ctx context.Context, sess *state.Session) (entity.CaseType, error) {
	history := []llm.Message{
		{Role: "system", Content: routerInstruction + "\n\n" + prompt.StateBlock(sess)},
		{Role: "user", Content: sess.UserMessage},
	}

	reply, err := c.provider.Chat(ctx, history,
		llm.WithTemperature(0),
		llm.WithMaxTokens(8),
	)
	if err != nil {
		return entity.CaseTypeUnknown, fmt.Errorf("generative classification: %w", err)
	}

	caseType, ok := entity.ParseCaseType(prompt.FirstToken(reply))
	if !ok {
		// Contract violation by the backend, not by this component.
		return entity.CaseTypeUnknown, nil
	}
	return caseType, nil
}
