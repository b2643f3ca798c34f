package memory

import (
	"context"
	"sort"
	"time"

	"frontline-citizen-be/internal/entity"
	"frontline-citizen-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

// CaseRepository is the in-process fallback store used when no database is
// configured. Records never expire; the cache is the keyed map plus its
// janitor machinery, not a TTL store here.
type CaseRepository struct {
	cache *cache.Cache
}

func NewCaseRepository() contract.CaseRepository {
	return &CaseRepository{
		cache: cache.New(cache.NoExpiration, 10*time.Minute),
	}
}

func (r *CaseRepository) Save(_ context.Context, record *entity.CaseRecord) error {
	clone := *record
	r.cache.Set(record.CaseId, &clone, cache.NoExpiration)
	return nil
}

func (r *CaseRepository) FindById(_ context.Context, caseId string) (*entity.CaseRecord, error) {
	if x, found := r.cache.Get(caseId); found {
		clone := *x.(*entity.CaseRecord)
		return &clone, nil
	}
	return nil, nil
}

func (r *CaseRepository) FindAll(_ context.Context, limit, offset int) ([]*entity.CaseRecord, error) {
	all := r.snapshot(nil)
	if offset >= len(all) {
		return []*entity.CaseRecord{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *CaseRepository) Count(_ context.Context) (int64, error) {
	return int64(r.cache.ItemCount()), nil
}

func (r *CaseRepository) CountByType(_ context.Context, since *time.Time) ([]contract.CaseTypeCount, error) {
	counts := map[string]int64{}
	for _, rec := range r.snapshot(since) {
		counts[string(rec.CaseType)]++
	}
	rows := make([]contract.CaseTypeCount, 0, len(counts))
	for caseType, count := range counts {
		rows = append(rows, contract.CaseTypeCount{CaseType: caseType, Count: count})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Count > rows[j].Count })
	return rows, nil
}

func (r *CaseRepository) CountLite(_ context.Context, since *time.Time) (int64, error) {
	var count int64
	for _, rec := range r.snapshot(since) {
		if rec.Lite {
			count++
		}
	}
	return count, nil
}

func (r *CaseRepository) TopDistricts(_ context.Context, since *time.Time, limit int) ([]contract.DistrictCount, error) {
	counts := map[string]int64{}
	for _, rec := range r.snapshot(since) {
		if rec.Target != nil {
			counts[rec.Target.District]++
		}
	}
	rows := make([]contract.DistrictCount, 0, len(counts))
	for district, count := range counts {
		rows = append(rows, contract.DistrictCount{District: district, Count: count})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Count > rows[j].Count })
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

// snapshot copies current records, optionally filtered, newest first.
func (r *CaseRepository) snapshot(since *time.Time) []*entity.CaseRecord {
	items := r.cache.Items()
	records := make([]*entity.CaseRecord, 0, len(items))
	for _, item := range items {
		rec := item.Object.(*entity.CaseRecord)
		if since != nil && rec.CreatedAt.Before(*since) {
			continue
		}
		clone := *rec
		records = append(records, &clone)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records
}
