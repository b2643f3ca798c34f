package classify

import (
	"context"
	"strings"

	"frontline-citizen-be/internal/entity"
	"frontline-citizen-be/pkg/triage/state"
)

// Crime vocabulary is checked before the health one, so a report mentioning
// both ("stabbed, bleeding") files as crime.
var crimeTerms = []string{
	"robbery", "theft", "chori", "fir", "violence", "harassment",
	"snatched", "stolen", "wallet", "mobile",
}

var healthTerms = []string{
	"fever", "bukhar", "chest pain", "blood", "vaccine", "medicine",
	"stroke", "pain", "sick", "hospital", "health", "emergency",
}

// KeywordClassifier is the deterministic strategy: a case-insensitive
// substring membership test against fixed vocabularies. It never suspends
// and never fails.
type KeywordClassifier struct{}

func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{}
}

var _ Strategy = &KeywordClassifier{}

func (c *KeywordClassifier) Classify(_ context.Context, sess *state.Session) (entity.CaseType, error) {
	text := strings.ToLower(sess.UserMessage)
	if containsAny(text, crimeTerms) {
		return entity.CaseTypeCrime, nil
	}
	if containsAny(text, healthTerms) {
		return entity.CaseTypeHealth, nil
	}
	return entity.CaseTypeUnknown, nil
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}
