package resolve

import (
	"context"
	"errors"
	"testing"

	"frontline-citizen-be/internal/entity"
	"frontline-citizen-be/pkg/directory"
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

func testDirectory() *directory.Directory {
	return directory.New([]entity.Facility{
		{Kind: entity.FacilityMedical, Name: "City Hospital", District: "Central", Lat: 24.86, Lon: 67.00},
		{Kind: entity.FacilityMedical, Name: "North Clinic", District: "North", Lat: 25.50, Lon: 67.00},
		{Kind: entity.FacilityLawEnforcement, Name: "Central Police Station", District: "Central", Lat: 24.85, Lon: 67.01},
	})
}

func sessionAt(message string, lat, lon float64) *state.Session {
	return state.New(state.Input{
		Message:  message,
		Location: &entity.GeoPoint{Lat: lat, Lon: lon},
	})
}

func TestTriageHealthUrgency(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    entity.Urgency
	}{
		{"routine fever", "mujhe bukhar hai", entity.UrgencyMedium},
		{"chest pain is critical", "sudden chest pain since morning", entity.UrgencyCritical},
		{"breathing difficulty is critical", "shortness of breath after walking", entity.UrgencyCritical},
		{"stroke is critical", "I think my father had a stroke", entity.UrgencyCritical},
		{"blood pressure is high", "my blood pressure is 190", entity.UrgencyHigh},
		{"hypertension is high", "severe hypertension episode", entity.UrgencyHigh},
		{"acute wins over vitals", "chest pain and high blood pressure", entity.UrgencyCritical},
		{"empty message", "", entity.UrgencyMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TriageHealthUrgency(tt.message))
		})
	}
}

func TestHealthResolver(t *testing.T) {
	r := NewHealthResolver(testDirectory())

	t.Run("sets urgency and nearest medical facility", func(t *testing.T) {
		sess := sessionAt("chest pain", 24.87, 67.00)
		require.NoError(t, r.Resolve(context.Background(), sess))
		assert.Equal(t, entity.UrgencyCritical, sess.Urgency)
		require.NotNil(t, sess.Target)
		assert.Equal(t, "City Hospital", sess.Target.Name)
		assert.Equal(t, entity.FacilityMedical, sess.Target.Kind)
	})

	t.Run("missing location falls back to first facility", func(t *testing.T) {
		sess := state.New(state.Input{Message: "fever"})
		require.NoError(t, r.Resolve(context.Background(), sess))
		require.NotNil(t, sess.Target)
		assert.Equal(t, "City Hospital", sess.Target.Name)
		assert.Equal(t, entity.UrgencyMedium, sess.Urgency)
	})
}

func TestCrimeResolver(t *testing.T) {
	r := NewCrimeResolver(testDirectory())

	sess := sessionAt("mobile snatched", 24.85, 67.01)
	require.NoError(t, r.Resolve(context.Background(), sess))
	assert.Equal(t, entity.UrgencyMedium, sess.Urgency)
	require.NotNil(t, sess.Target)
	assert.Equal(t, "Central Police Station", sess.Target.Name)
	assert.Equal(t, entity.FacilityLawEnforcement, sess.Target.Kind)
}

func TestGenerativeHealthResolver(t *testing.T) {
	t.Run("uses backend grade", func(t *testing.T) {
		r := NewGenerativeHealthResolver(&fakeProvider{reply: "high"}, testDirectory())
		sess := sessionAt("feeling unwell", 24.86, 67.00)
		require.NoError(t, r.Resolve(context.Background(), sess))
		assert.Equal(t, entity.UrgencyHigh, sess.Urgency)
		require.NotNil(t, sess.Target)
	})

	t.Run("unparseable grade falls back to deterministic ladder", func(t *testing.T) {
		r := NewGenerativeHealthResolver(&fakeProvider{reply: "urgent-ish maybe"}, testDirectory())
		sess := sessionAt("chest pain", 24.86, 67.00)
		require.NoError(t, r.Resolve(context.Background(), sess))
		assert.Equal(t, entity.UrgencyCritical, sess.Urgency)
	})

	t.Run("backend failure still resolves target and urgency", func(t *testing.T) {
		r := NewGenerativeHealthResolver(&fakeProvider{err: errors.New("down")}, testDirectory())
		sess := sessionAt("fever", 24.86, 67.00)
		err := r.Resolve(context.Background(), sess)
		assert.Error(t, err)
		assert.Equal(t, entity.UrgencyMedium, sess.Urgency)
		require.NotNil(t, sess.Target)
		assert.Equal(t, "City Hospital", sess.Target.Name)
	})
}

func TestGenerativeCrimeResolver(t *testing.T) {
	r := NewGenerativeCrimeResolver(testDirectory())
	sess := sessionAt("theft", 24.85, 67.01)
	require.NoError(t, r.Resolve(context.Background(), sess))
	assert.Equal(t, entity.UrgencyMedium, sess.Urgency)
	require.NotNil(t, sess.Target)
	assert.Equal(t, "Central Police Station", sess.Target.Name)
}
