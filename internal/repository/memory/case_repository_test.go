package memory

import (
	"context"
	"testing"
	"time"

	"frontline-citizen-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(id string, caseType entity.CaseType, lite bool, district string, createdAt time.Time) *entity.CaseRecord {
	rec := &entity.CaseRecord{
		CaseId:    id,
		CaseType:  caseType,
		Urgency:   entity.UrgencyMedium,
		Lite:      lite,
		CreatedAt: createdAt,
		Lang:      "en",
	}
	if district != "" {
		rec.Target = &entity.Facility{Name: "F-" + district, District: district}
	}
	return rec
}

func TestSaveIsIdempotentUpsert(t *testing.T) {
	repo := NewCaseRepository()
	ctx := context.Background()
	now := time.Now().UTC()

	first := record("FC-AAAA0001", entity.CaseTypeHealth, false, "Central", now)
	require.NoError(t, repo.Save(ctx, first))

	overwrite := record("FC-AAAA0001", entity.CaseTypeUnknown, true, "", now)
	require.NoError(t, repo.Save(ctx, overwrite))

	got, err := repo.FindById(ctx, "FC-AAAA0001")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entity.CaseTypeUnknown, got.CaseType)
	assert.True(t, got.Lite)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestFindByIdMissing(t *testing.T) {
	repo := NewCaseRepository()
	got, err := repo.FindById(context.Background(), "FC-NOPE0000")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFindAllOrdersNewestFirst(t *testing.T) {
	repo := NewCaseRepository()
	ctx := context.Background()
	base := time.Date(2026, time.March, 14, 9, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Save(ctx, record("FC-AAAA0001", entity.CaseTypeHealth, false, "Central", base)))
	require.NoError(t, repo.Save(ctx, record("FC-AAAA0002", entity.CaseTypeCrime, false, "North", base.Add(time.Hour))))
	require.NoError(t, repo.Save(ctx, record("FC-AAAA0003", entity.CaseTypeUnknown, true, "", base.Add(2*time.Hour))))

	page, err := repo.FindAll(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "FC-AAAA0003", page[0].CaseId)
	assert.Equal(t, "FC-AAAA0002", page[1].CaseId)

	rest, err := repo.FindAll(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, "FC-AAAA0001", rest[0].CaseId)

	empty, err := repo.FindAll(ctx, 10, 5)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestAggregations(t *testing.T) {
	repo := NewCaseRepository()
	ctx := context.Background()
	base := time.Date(2026, time.March, 14, 9, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Save(ctx, record("FC-AAAA0001", entity.CaseTypeHealth, false, "Central", base)))
	require.NoError(t, repo.Save(ctx, record("FC-AAAA0002", entity.CaseTypeHealth, true, "Central", base.Add(time.Hour))))
	require.NoError(t, repo.Save(ctx, record("FC-AAAA0003", entity.CaseTypeCrime, false, "North", base.Add(2*time.Hour))))
	require.NoError(t, repo.Save(ctx, record("FC-AAAA0004", entity.CaseTypeUnknown, true, "", base.Add(3*time.Hour))))

	t.Run("count by type", func(t *testing.T) {
		rows, err := repo.CountByType(ctx, nil)
		require.NoError(t, err)

		byType := map[string]int64{}
		for _, row := range rows {
			byType[row.CaseType] = row.Count
		}
		assert.Equal(t, int64(2), byType["health"])
		assert.Equal(t, int64(1), byType["crime"])
		assert.Equal(t, int64(1), byType["unknown"])
	})

	t.Run("count by type since cutoff", func(t *testing.T) {
		since := base.Add(90 * time.Minute)
		rows, err := repo.CountByType(ctx, &since)
		require.NoError(t, err)

		var total int64
		for _, row := range rows {
			total += row.Count
		}
		assert.Equal(t, int64(2), total)
	})

	t.Run("lite count", func(t *testing.T) {
		count, err := repo.CountLite(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("top districts skip unresolved cases", func(t *testing.T) {
		rows, err := repo.TopDistricts(ctx, nil, 5)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "Central", rows[0].District)
		assert.Equal(t, int64(2), rows[0].Count)
	})
}
