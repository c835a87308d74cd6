package implementation

import (
	"context"

	"agentcity-be/internal/entity"
	"agentcity-be/internal/mapper"
	"agentcity-be/internal/model"
	"agentcity-be/internal/repository/contract"
	"agentcity-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PlanningTurnRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DispatchMapper
}

func NewPlanningTurnRepository(db *gorm.DB) contract.PlanningTurnRepository {
	return &PlanningTurnRepositoryImpl{
		db:     db,
		mapper: mapper.NewDispatchMapper(),
	}
}

func (r *PlanningTurnRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PlanningTurnRepositoryImpl) Create(ctx context.Context, turn *entity.PlanningTurn) error {
	m := r.mapper.TurnToModel(turn)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*turn = *r.mapper.TurnToEntity(m)
	return nil
}

func (r *PlanningTurnRepositoryImpl) FindByUser(ctx context.Context, userId uuid.UUID, specs ...specification.Specification) ([]*entity.PlanningTurn, error) {
	var models []*model.PlanningTurn
	query := r.db.WithContext(ctx).Where("user_id = ?", userId)
	query = r.applySpecifications(query, specs...)

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	return r.mapper.TurnsToEntities(models), nil
}
