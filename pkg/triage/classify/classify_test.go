package classify

import (
	"context"
	"errors"
	"testing"

	"frontline-citizen-be/internal/entity"
	"frontline-citizen-be/pkg/llm"
	"frontline-citizen-be/pkg/triage/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	reply string
	err   error
}

func (f *fakeProvider) Chat(_ context.Context, _ []llm.Message, _ ...llm.Option) (string, error) {
	return f.reply, f.err
}

func (f *fakeProvider) Generate(_ context.Context, _ string, _ ...llm.Option) (string, error) {
	return f.reply, f.err
}

func sessionFor(message string) *state.Session {
	return state.New(state.Input{Message: message})
}

func TestKeywordClassifier(t *testing.T) {
	c := NewKeywordClassifier()

	tests := []struct {
		name    string
		message string
		want    entity.CaseType
	}{
		{"health fever urdu", "Mujhe tez bukhar hai aur sar dard", entity.CaseTypeHealth},
		{"health chest pain", "chest pain and can't breathe properly", entity.CaseTypeHealth},
		{"crime snatching", "Mera mobile chori ho gaya, FIR karni hai", entity.CaseTypeCrime},
		{"crime wallet", "Someone snatched my wallet near the market", entity.CaseTypeCrime},
		{"crime wins over health terms", "He was violent, I am in pain and bleeding", entity.CaseTypeCrime},
		{"no vocabulary match", "I want to renew my driving licence", entity.CaseTypeUnknown},
		{"case insensitive", "THEFT at my shop", entity.CaseTypeCrime},
		{"empty message", "", entity.CaseTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Classify(context.Background(), sessionFor(tt.message))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerativeClassifier(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		err     error
		want    entity.CaseType
		wantErr bool
	}{
		{"clean token", "health", nil, entity.CaseTypeHealth, false},
		{"token with noise", "  Crime.\n", nil, entity.CaseTypeCrime, false},
		{"fenced token", "```\ndisaster\n```", nil, entity.CaseTypeDisaster, false},
		{"off-contract output", "I think this is a medical case", nil, entity.CaseTypeUnknown, false},
		{"empty output", "", nil, entity.CaseTypeUnknown, false},
		{"backend failure", "", errors.New("boom"), entity.CaseTypeUnknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewGenerativeClassifier(&fakeProvider{reply: tt.reply, err: tt.err})
			got, err := c.Classify(context.Background(), sessionFor("something happened"))
			assert.Equal(t, tt.want, got)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
