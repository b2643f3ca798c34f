package compose

import (
	"context"
	"fmt"
	"strings"

	"frontline-citizen-be/pkg/llm"
	"frontline-citizen-be/pkg/triage/prompt"
	"frontline-citizen-be/pkg/triage/state"
)

const liteComposeInstruction = `Generate a very brief response for a
low-bandwidth citizen. Include: case type, the single most critical action,
key location if available, and the case id.
Constraints:
- Under 260 characters.
- Exactly one line. No greetings, no markdown, no emojis.
- End with "Case ID: <id>" using the case_id from STATE.`

const fullComposeInstruction = `You are the final response generator for a
citizen service desk. Based on the STATE block, write a short multi-line
confirmation:
- Start with the most critical information for this case type.
- Name the booked facility and slot when a booking exists.
- Remind the citizen to bring their ID card when an appointment is booked.
- End the message with "Case ID: <id>" using the case_id from STATE.
Plain text only, no markdown.`

// GenerativeComposer lets the backend phrase the confirmation. Output that
// violates the contract (empty, missing case id, or over the lite ceiling)
// is discarded for the deterministic rendering, so callers always receive a
// valid confirmation; the error return only reports the degradation.
type GenerativeComposer struct {
	provider llm.LLMProvider
	fallback *TemplateComposer
}

func NewGenerativeComposer(provider llm.LLMProvider) *GenerativeComposer {
	return &GenerativeComposer{
		provider: provider,
		fallback: NewTemplateComposer(),
	}
}

var _ Composer = &GenerativeComposer{}

func (c *GenerativeComposer) Compose(ctx context.Context, sess *state.Session) (string, error) {
	instruction := fullComposeInstruction
	maxTokens := 400
	temperature := 0.3
	if sess.Lite {
		instruction = liteComposeInstruction
		maxTokens = 100
		temperature = 0.1
	}

	history := []llm.Message{
		{Role: "system", Content: instruction + "\n\n" + prompt.StateBlock(sess)},
		{Role: "user", Content: sess.UserMessage},
	}
	reply, err := c.provider.Chat(ctx, history,
		llm.WithTemperature(temperature),
		llm.WithMaxTokens(maxTokens),
	)
	if err != nil {
		text, _ := c.fallback.Compose(ctx, sess)
		return text, fmt.Errorf("generative compose: %w", err)
	}

	text := strings.TrimSpace(reply)
	if !validConfirmation(text, sess) {
		fallbackText, _ := c.fallback.Compose(ctx, sess)
		return fallbackText, nil
	}
	return text, nil
}

func validConfirmation(text string, sess *state.Session) bool {
	if text == "" || !strings.Contains(text, sess.CaseId) {
		return false
	}
	if sess.Lite && (len(text) > LiteMaxLen || strings.Contains(text, "\n")) {
		return false
	}
	return true
}
