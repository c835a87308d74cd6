package contract

import (
	"context"

	"agentcity-be/internal/entity"
	"agentcity-be/internal/repository/specification"

	"github.com/google/uuid"
)

type PlanningTurnRepository interface {
	Create(ctx context.Context, turn *entity.PlanningTurn) error
	FindByUser(ctx context.Context, userId uuid.UUID, specs ...specification.Specification) ([]*entity.PlanningTurn, error)
}
