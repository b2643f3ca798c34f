package contract

import (
	"context"
	"time"

	"frontline-citizen-be/internal/entity"
)

type CaseTypeCount struct {
	CaseType string `json:"case_type"`
	Count    int64  `json:"count"`
}

type DistrictCount struct {
	District string `json:"district"`
	Count    int64  `json:"count"`
}

// CaseRepository persists terminal case records. Save is an idempotent
// upsert keyed by case id: reprocessing a case overwrites its previous row.
type CaseRepository interface {
	Save(ctx context.Context, record *entity.CaseRecord) error
	FindById(ctx context.Context, caseId string) (*entity.CaseRecord, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.CaseRecord, error)
	Count(ctx context.Context) (int64, error)
	CountByType(ctx context.Context, since *time.Time) ([]CaseTypeCount, error)
	CountLite(ctx context.Context, since *time.Time) (int64, error)
	TopDistricts(ctx context.Context, since *time.Time, limit int) ([]DistrictCount, error)
}
