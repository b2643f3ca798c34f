package service

import (
	"context"
	"testing"
	"time"

	"frontline-citizen-be/internal/dto"
	"frontline-citizen-be/internal/entity"
	"frontline-citizen-be/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCases(t *testing.T, svc ICaseService) {
	t.Helper()
	reqs := []dto.CreateCaseRequest{
		{UserMessage: "tez bukhar", Lat: floatPtr(24.87), Lon: floatPtr(67.00)},
		{UserMessage: "chest pain", Lat: floatPtr(24.86), Lon: floatPtr(67.00)},
		{UserMessage: "wallet chori ho gaya", Lat: floatPtr(24.85), Lon: floatPtr(67.01)},
		{UserMessage: "random request", BatteryPct: intPtr(10)},
	}
	for _, req := range reqs {
		r := req
		_, err := svc.Create(context.Background(), &r)
		require.NoError(t, err)
	}
}

func TestMetrics(t *testing.T) {
	repo := memory.NewCaseRepository()
	seedCases(t, newTestCaseService(repo))

	admin := NewAdminService(repo, nil, nil, "", nopLogger{})

	res, err := admin.Metrics(context.Background(), &dto.MetricsRequest{})
	require.NoError(t, err)

	assert.Equal(t, int64(4), res.TotalCases)
	assert.Equal(t, int64(1), res.LiteCases)

	byType := map[string]int64{}
	for _, row := range res.ByType {
		byType[row.CaseType] = row.Count
	}
	assert.Equal(t, int64(2), byType[string(entity.CaseTypeHealth)])
	assert.Equal(t, int64(1), byType[string(entity.CaseTypeCrime)])
	assert.Equal(t, int64(1), byType[string(entity.CaseTypeUnknown)])

	require.NotEmpty(t, res.TopDistricts)
	assert.Equal(t, "Central", res.TopDistricts[0].District)
}

func TestMetricsCacheServesRepeatCalls(t *testing.T) {
	repo := memory.NewCaseRepository()
	caseSvc := newTestCaseService(repo)
	seedCases(t, caseSvc)

	admin := NewAdminService(repo, nil, nil, "", nopLogger{})

	first, err := admin.Metrics(context.Background(), &dto.MetricsRequest{})
	require.NoError(t, err)

	// New cases within the TTL do not show up until the cache expires.
	_, err = caseSvc.Create(context.Background(), &dto.CreateCaseRequest{UserMessage: "tez bukhar"})
	require.NoError(t, err)

	second, err := admin.Metrics(context.Background(), &dto.MetricsRequest{})
	require.NoError(t, err)
	assert.Equal(t, first.TotalCases, second.TotalCases)
}

func TestDailySummaryDeterministic(t *testing.T) {
	repo := memory.NewCaseRepository()
	seedCases(t, newTestCaseService(repo))

	admin := NewAdminService(repo, nil, nil, "", nopLogger{})

	res, err := admin.DailySummary(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Generated)
	assert.Contains(t, res.Summary, "health: 2")
	assert.Contains(t, res.Summary, "Busiest districts")
}

func TestDailySummarySinceWindow(t *testing.T) {
	repo := memory.NewCaseRepository()
	old := &entity.CaseRecord{
		CaseId:    "FC-OLDOLD01",
		CaseType:  entity.CaseTypeHealth,
		Urgency:   entity.UrgencyMedium,
		CreatedAt: time.Now().UTC().Add(-48 * time.Hour),
		Lang:      "en",
	}
	require.NoError(t, repo.Save(context.Background(), old))

	admin := NewAdminService(repo, nil, nil, "", nopLogger{})
	hours := 24
	res, err := admin.Metrics(context.Background(), &dto.MetricsRequest{SinceHours: &hours})
	require.NoError(t, err)

	// Total counts everything; windowed aggregates exclude the old case.
	assert.Equal(t, int64(1), res.TotalCases)
	assert.Empty(t, res.ByType)
}

func TestEmailDailySummaryDispatchesDigest(t *testing.T) {
	repo := memory.NewCaseRepository()
	seedCases(t, newTestCaseService(repo))

	mailer := &fakeEmailService{}
	admin := NewAdminService(repo, nil, mailer, "ops@example.com", nopLogger{})

	require.NoError(t, admin.EmailDailySummary(context.Background()))

	require.Len(t, mailer.summaries, 1)
	assert.Equal(t, "ops@example.com", mailer.summaries[0].to)
	assert.Contains(t, mailer.summaries[0].body, "health: 2")
}

func TestEmailDailySummarySkipsWithoutMailer(t *testing.T) {
	repo := memory.NewCaseRepository()
	admin := NewAdminService(repo, nil, nil, "", nopLogger{})

	assert.NoError(t, admin.EmailDailySummary(context.Background()))
}
