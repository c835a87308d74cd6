package contract

import (
	"context"

	"agentcity-be/internal/entity"
	"agentcity-be/internal/repository/specification"

	"github.com/google/uuid"
)

type DispatchPlanRepository interface {
	Create(ctx context.Context, plan *entity.DispatchPlanRecord) error
	FindByUser(ctx context.Context, userId uuid.UUID, specs ...specification.Specification) ([]*entity.DispatchPlanRecord, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DispatchPlanRecord, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
