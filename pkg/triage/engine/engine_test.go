package engine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"frontline-citizen-be/internal/entity"
	"frontline-citizen-be/internal/pkg/logger"
	"frontline-citizen-be/pkg/directory"
	"frontline-citizen-be/pkg/triage/classify"
	"frontline-citizen-be/pkg/triage/compose"
	"frontline-citizen-be/pkg/triage/degraded"
	"frontline-citizen-be/pkg/triage/reserve"
	"frontline-citizen-be/pkg/triage/resolve"
	"frontline-citizen-be/pkg/triage/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }
func (nopLogger) GetLogs(string, int, int) ([]logger.LogEntry, error) {
	return nil, nil
}

type stubClassifier struct {
	caseType entity.CaseType
	err      error
	panics   bool
}

func (s stubClassifier) Classify(_ context.Context, _ *state.Session) (entity.CaseType, error) {
	if s.panics {
		panic("classifier exploded")
	}
	return s.caseType, s.err
}

type stubResolver struct {
	err error
}

func (s stubResolver) Resolve(_ context.Context, sess *state.Session) error {
	sess.Urgency = entity.UrgencyMedium
	return s.err
}

type stubComposer struct {
	text string
	err  error
}

func (s stubComposer) Compose(_ context.Context, _ *state.Session) (string, error) {
	return s.text, s.err
}

func testDirectory() *directory.Directory {
	return directory.New([]entity.Facility{
		{Kind: entity.FacilityMedical, Name: "City Hospital", District: "Central", Lat: 24.86, Lon: 67.00},
		{Kind: entity.FacilityLawEnforcement, Name: "Central Police Station", District: "Central", Lat: 24.85, Lon: 67.01},
	})
}

func deterministicEngine() *Engine {
	dir := testDirectory()
	return New(
		degraded.Detector{LowBatteryPct: 20, MinBandwidthKbps: 64},
		classify.NewKeywordClassifier(),
		map[entity.CaseType]resolve.Strategy{
			entity.CaseTypeHealth: resolve.NewHealthResolver(dir),
			entity.CaseTypeCrime:  resolve.NewCrimeResolver(dir),
		},
		reserve.NewDesk(),
		compose.NewTemplateComposer(),
		nopLogger{},
	)
}

func intPtr(v int) *int { return &v }

func TestRunHealthFlow(t *testing.T) {
	sess := state.New(state.Input{
		Message:  "Mujhe tez bukhar hai",
		Location: &entity.GeoPoint{Lat: 24.87, Lon: 67.00},
	})

	result := deterministicEngine().Run(context.Background(), sess)

	assert.Equal(t, PhaseDone, result.Terminal)
	got := result.Session
	assert.False(t, got.Lite)
	assert.Equal(t, entity.CaseTypeHealth, got.CaseType)
	assert.Equal(t, entity.UrgencyMedium, got.Urgency)
	require.NotNil(t, got.Target)
	assert.Equal(t, "City Hospital", got.Target.Name)
	require.NotNil(t, got.Booking)
	assert.True(t, got.Booking.Confirmed)
	assert.Equal(t, "City Hospital", got.Booking.Place)
	assert.Contains(t, got.Confirmation, "Case ID: "+got.CaseId)
	assert.Contains(t, got.Confirmation, "Bring your ID card")
}

func TestRunCrimeFlow(t *testing.T) {
	sess := state.New(state.Input{
		Message:  "Mera wallet chori ho gaya",
		Location: &entity.GeoPoint{Lat: 24.85, Lon: 67.01},
	})

	result := deterministicEngine().Run(context.Background(), sess)

	assert.Equal(t, PhaseDone, result.Terminal)
	got := result.Session
	assert.Equal(t, entity.CaseTypeCrime, got.CaseType)
	assert.Equal(t, entity.UrgencyMedium, got.Urgency)
	require.NotNil(t, got.Target)
	assert.Equal(t, "Central Police Station", got.Target.Name)
	require.NotNil(t, got.Booking)
}

func TestRunUnknownSkipsResolveAndBooking(t *testing.T) {
	sess := state.New(state.Input{Message: "I want to renew my driving licence"})

	result := deterministicEngine().Run(context.Background(), sess)

	assert.Equal(t, PhaseDone, result.Terminal)
	got := result.Session
	assert.Equal(t, entity.CaseTypeUnknown, got.CaseType)
	assert.Equal(t, entity.UrgencyLow, got.Urgency)
	assert.Nil(t, got.Target)
	assert.Nil(t, got.Booking)
	assert.Contains(t, got.Confirmation, "Case ID: "+got.CaseId)
}

func TestRunLiteShortCircuits(t *testing.T) {
	tests := []struct {
		name string
		in   state.Input
	}{
		{"low battery", state.Input{Message: "tez bukhar", BatteryPct: intPtr(10)}},
		{"low bandwidth", state.Input{Message: "tez bukhar", BandwidthKbps: intPtr(32)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := deterministicEngine().Run(context.Background(), state.New(tt.in))

			assert.Equal(t, PhaseDone, result.Terminal)
			got := result.Session
			assert.True(t, got.Lite)
			assert.Equal(t, entity.CaseTypeHealth, got.CaseType)
			assert.Nil(t, got.Target)
			assert.Nil(t, got.Booking)
			assert.LessOrEqual(t, len(got.Confirmation), compose.LiteMaxLen)
			assert.NotContains(t, got.Confirmation, "\n")
			assert.Contains(t, got.Confirmation, got.CaseId)
		})
	}
}

func TestRunClassifierErrorContinuesAsUnknown(t *testing.T) {
	eng := New(
		degraded.Detector{LowBatteryPct: 20, MinBandwidthKbps: 64},
		stubClassifier{err: errors.New("backend down")},
		map[entity.CaseType]resolve.Strategy{},
		reserve.NewDesk(),
		compose.NewTemplateComposer(),
		nopLogger{},
	)

	sess := state.New(state.Input{Message: "anything"})
	result := eng.Run(context.Background(), sess)

	assert.Equal(t, PhaseDone, result.Terminal)
	assert.Equal(t, entity.CaseTypeUnknown, result.Session.CaseType)
	assert.Contains(t, result.Session.Confirmation, result.Session.CaseId)
}

func TestRunResolverErrorContinues(t *testing.T) {
	eng := New(
		degraded.Detector{LowBatteryPct: 20, MinBandwidthKbps: 64},
		stubClassifier{caseType: entity.CaseTypeHealth},
		map[entity.CaseType]resolve.Strategy{
			entity.CaseTypeHealth: stubResolver{err: errors.New("grading failed")},
		},
		reserve.NewDesk(),
		compose.NewTemplateComposer(),
		nopLogger{},
	)

	result := eng.Run(context.Background(), state.New(state.Input{Message: "fever"}))

	assert.Equal(t, PhaseDone, result.Terminal)
	assert.Equal(t, entity.UrgencyMedium, result.Session.Urgency)
}

func TestRunComposerContractGuard(t *testing.T) {
	t.Run("empty confirmation replaced", func(t *testing.T) {
		eng := New(
			degraded.Detector{},
			stubClassifier{caseType: entity.CaseTypeUnknown},
			nil,
			reserve.NewDesk(),
			stubComposer{text: ""},
			nopLogger{},
		)
		result := eng.Run(context.Background(), state.New(state.Input{Message: "x"}))
		assert.Equal(t, PhaseDone, result.Terminal)
		assert.Contains(t, result.Session.Confirmation, result.Session.CaseId)
	})

	t.Run("confirmation without case id replaced", func(t *testing.T) {
		eng := New(
			degraded.Detector{},
			stubClassifier{caseType: entity.CaseTypeUnknown},
			nil,
			reserve.NewDesk(),
			stubComposer{text: "thanks, bye"},
			nopLogger{},
		)
		result := eng.Run(context.Background(), state.New(state.Input{Message: "x"}))
		assert.Contains(t, result.Session.Confirmation, result.Session.CaseId)
	})
}

func TestRunCancelledContextTakesFallback(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sess := state.New(state.Input{Message: "tez bukhar"})
	result := deterministicEngine().Run(ctx, sess)

	assertFallback(t, result, sess.CaseId)
}

func TestRunPanicTakesFallback(t *testing.T) {
	eng := New(
		degraded.Detector{LowBatteryPct: 20, MinBandwidthKbps: 64},
		stubClassifier{panics: true},
		nil,
		reserve.NewDesk(),
		compose.NewTemplateComposer(),
		nopLogger{},
	)

	sess := state.New(state.Input{Message: "anything"})
	result := eng.Run(context.Background(), sess)

	assertFallback(t, result, sess.CaseId)
}

func assertFallback(t *testing.T, result *Result, caseId string) {
	t.Helper()
	require.NotNil(t, result)
	assert.Equal(t, PhaseFallback, result.Terminal)

	got := result.Session
	assert.Equal(t, caseId, got.CaseId)
	assert.True(t, got.Lite)
	assert.Equal(t, entity.CaseTypeUnknown, got.CaseType)
	assert.Equal(t, entity.UrgencyLow, got.Urgency)
	assert.Nil(t, got.Target)
	assert.Nil(t, got.Booking)
	assert.True(t, strings.Contains(got.Confirmation, caseId))
	assert.NotEmpty(t, got.Confirmation)
}
