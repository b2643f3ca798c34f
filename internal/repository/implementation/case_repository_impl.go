package implementation

import (
	"context"
	"errors"
	"time"

	"frontline-citizen-be/internal/entity"
	"frontline-citizen-be/internal/mapper"
	"frontline-citizen-be/internal/model"
	"frontline-citizen-be/internal/repository/contract"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CaseRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CaseMapper
}

func NewCaseRepository(db *gorm.DB) contract.CaseRepository {
	return &CaseRepositoryImpl{
		db:     db,
		mapper: mapper.NewCaseMapper(),
	}
}

func (r *CaseRepositoryImpl) Save(ctx context.Context, record *entity.CaseRecord) error {
	m := r.mapper.ToModel(record)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "case_id"}},
			UpdateAll: true,
		}).
		Create(m).Error
}

func (r *CaseRepositoryImpl) FindById(ctx context.Context, caseId string) (*entity.CaseRecord, error) {
	var m model.Case
	if err := r.db.WithContext(ctx).Where("case_id = ?", caseId).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *CaseRepositoryImpl) FindAll(ctx context.Context, limit, offset int) ([]*entity.CaseRecord, error) {
	var models []*model.Case
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *CaseRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Case{}).Count(&count).Error
	return count, err
}

func (r *CaseRepositoryImpl) CountByType(ctx context.Context, since *time.Time) ([]contract.CaseTypeCount, error) {
	var rows []contract.CaseTypeCount
	query := r.db.WithContext(ctx).
		Model(&model.Case{}).
		Select("case_type, COUNT(*) as count").
		Group("case_type")
	if since != nil {
		query = query.Where("created_at >= ?", *since)
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *CaseRepositoryImpl) CountLite(ctx context.Context, since *time.Time) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&model.Case{}).Where("lite = ?", true)
	if since != nil {
		query = query.Where("created_at >= ?", *since)
	}
	err := query.Count(&count).Error
	return count, err
}

// TopDistricts groups on the district embedded in the target jsonb; cases
// without a resolved facility fall outside the ranking.
func (r *CaseRepositoryImpl) TopDistricts(ctx context.Context, since *time.Time, limit int) ([]contract.DistrictCount, error) {
	var rows []contract.DistrictCount
	query := r.db.WithContext(ctx).
		Model(&model.Case{}).
		Select("target->>'district' as district, COUNT(*) as count").
		Where("target IS NOT NULL").
		Group("target->>'district'").
		Order("count DESC").
		Limit(limit)
	if since != nil {
		query = query.Where("created_at >= ?", *since)
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
