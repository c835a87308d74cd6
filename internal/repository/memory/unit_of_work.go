package memory

import (
	"context"

	"agentcity-be/internal/repository/contract"
	"agentcity-be/internal/repository/unitofwork"
)

// UnitOfWork over the in-memory repositories. Begin/Commit/Rollback are
// no-ops; every write is immediately visible.
type UnitOfWork struct {
	Users        contract.UserRepository
	Transactions *TransactionRepository
	Plans        *DispatchPlanRepository
	Turns        *PlanningTurnRepository
}

func NewUnitOfWork() *UnitOfWork {
	return &UnitOfWork{
		Transactions: NewTransactionRepository(),
		Plans:        NewDispatchPlanRepository(),
		Turns:        NewPlanningTurnRepository(),
	}
}

func (u *UnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *UnitOfWork) Commit() error                   { return nil }
func (u *UnitOfWork) Rollback() error                 { return nil }

func (u *UnitOfWork) UserRepository() contract.UserRepository {
	return u.Users
}

func (u *UnitOfWork) TransactionRepository() contract.TransactionRepository {
	return u.Transactions
}

func (u *UnitOfWork) DispatchPlanRepository() contract.DispatchPlanRepository {
	return u.Plans
}

func (u *UnitOfWork) PlanningTurnRepository() contract.PlanningTurnRepository {
	return u.Turns
}

// Factory hands the same unit of work to every caller so tests can
// assert on the shared repositories afterwards.
type Factory struct {
	UoW *UnitOfWork
}

func NewFactory() *Factory {
	return &Factory{UoW: NewUnitOfWork()}
}

func (f *Factory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.UoW
}

var _ unitofwork.RepositoryFactory = (*Factory)(nil)
