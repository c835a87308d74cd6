package unitofwork

import (
	"context"

	"agentcity-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	TransactionRepository() contract.TransactionRepository
	DispatchPlanRepository() contract.DispatchPlanRepository
	PlanningTurnRepository() contract.PlanningTurnRepository
}
