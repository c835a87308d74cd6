package implementation

import (
	"context"
	"errors"

	"agentcity-be/internal/entity"
	"agentcity-be/internal/mapper"
	"agentcity-be/internal/model"
	"agentcity-be/internal/repository/contract"
	"agentcity-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DispatchPlanRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DispatchMapper
}

func NewDispatchPlanRepository(db *gorm.DB) contract.DispatchPlanRepository {
	return &DispatchPlanRepositoryImpl{
		db:     db,
		mapper: mapper.NewDispatchMapper(),
	}
}

func (r *DispatchPlanRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *DispatchPlanRepositoryImpl) Create(ctx context.Context, plan *entity.DispatchPlanRecord) error {
	m := r.mapper.PlanToModel(plan)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*plan = *r.mapper.PlanToEntity(m)
	return nil
}

func (r *DispatchPlanRepositoryImpl) FindByUser(ctx context.Context, userId uuid.UUID, specs ...specification.Specification) ([]*entity.DispatchPlanRecord, error) {
	var models []*model.DispatchPlan
	query := r.db.WithContext(ctx).Where("user_id = ?", userId)
	query = r.applySpecifications(query, specs...)

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	return r.mapper.PlansToEntities(models), nil
}

func (r *DispatchPlanRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DispatchPlanRecord, error) {
	var m model.DispatchPlan
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.PlanToEntity(&m), nil
}

func (r *DispatchPlanRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.DispatchPlan{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
