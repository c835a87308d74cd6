package service

import (
	"context"
	"fmt"

	"agentcity-be/internal/dto"
	"agentcity-be/internal/repository/specification"
	"agentcity-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IPlanService interface {
	GetPlans(ctx context.Context, userId uuid.UUID, query dto.PlanQuery) ([]dto.PlanHistoryItem, error)
	GetTransactions(ctx context.Context, userId uuid.UUID, query dto.TransactionQuery) ([]dto.TransactionItem, error)
}

type planService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewPlanService(uowFactory unitofwork.RepositoryFactory) IPlanService {
	return &planService{
		uowFactory: uowFactory,
	}
}

func (s *planService) GetPlans(ctx context.Context, userId uuid.UUID, query dto.PlanQuery) ([]dto.PlanHistoryItem, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if query.Location != "" {
		specs = append(specs, specification.Filter("location", query.Location))
	}
	if query.Limit > 0 {
		specs = append(specs, specification.Pagination{Limit: query.Limit, Offset: query.Offset})
	}

	plans, err := uow.DispatchPlanRepository().FindByUser(ctx, userId, specs...)
	if err != nil {
		return nil, fmt.Errorf("fetch plans: %w", err)
	}

	items := make([]dto.PlanHistoryItem, 0, len(plans))
	for _, p := range plans {
		items = append(items, dto.PlanHistoryItem{
			Id:           p.Id,
			ActivityList: p.ActivityList,
			Location:     p.Location,
			Budget:       p.Budget,
			StartTime:    p.StartTime,
			EndTime:      p.EndTime,
			Preferences:  p.Preferences,
			AgentsToCall: p.AgentsToCall,
			Notes:        p.Notes,
			CreatedAt:    p.CreatedAt,
		})
	}
	return items, nil
}

func (s *planService) GetTransactions(ctx context.Context, userId uuid.UUID, query dto.TransactionQuery) ([]dto.TransactionItem, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OrderBy{Field: "occurred_at", Desc: true},
	}
	if query.Category != "" {
		specs = append(specs, specification.ByCategory{Category: query.Category})
	}
	if query.Location != "" {
		specs = append(specs, specification.ByLocation{Location: query.Location})
	}
	if query.Since != nil {
		specs = append(specs, specification.OccurredAfter{Since: *query.Since})
	}
	if query.Limit > 0 {
		specs = append(specs, specification.Pagination{Limit: query.Limit, Offset: query.Offset})
	}

	txns, err := uow.TransactionRepository().FindByUser(ctx, userId, specs...)
	if err != nil {
		return nil, fmt.Errorf("fetch transactions: %w", err)
	}

	items := make([]dto.TransactionItem, 0, len(txns))
	for _, t := range txns {
		items = append(items, dto.TransactionItem{
			Id:         t.Id,
			Activity:   t.Activity,
			Category:   t.Category,
			Amount:     t.Amount,
			Location:   t.Location,
			OccurredAt: t.OccurredAt,
		})
	}
	return items, nil
}
