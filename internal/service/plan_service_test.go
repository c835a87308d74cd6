package service

import (
	"context"
	"testing"
	"time"

	"agentcity-be/internal/dto"
	"agentcity-be/internal/entity"
	"agentcity-be/internal/repository/memory"
	"agentcity-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPlanFixture(t *testing.T) (*memory.Factory, uuid.UUID) {
	t.Helper()
	factory := memory.NewFactory()
	userId := uuid.New()
	ctx := context.Background()

	require.NoError(t, factory.UoW.Transactions.Create(ctx, &entity.Transaction{
		UserId: userId, Activity: "warung dinner", Category: "food", Amount: 12, Location: "Bali",
	}))
	require.NoError(t, factory.UoW.Plans.Create(ctx, &entity.DispatchPlanRecord{
		UserId: userId, ActivityList: []string{"eat"}, Location: "Bali",
	}))
	return factory, userId
}

func TestGetTransactionsAppliesHistoryFilters(t *testing.T) {
	factory, userId := seedPlanFixture(t)
	svc := NewPlanService(factory)

	since := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	items, err := svc.GetTransactions(context.Background(), userId, dto.TransactionQuery{
		Category: "food",
		Location: "Bali",
		Since:    &since,
		Limit:    10,
		Offset:   5,
	})

	require.NoError(t, err)
	assert.Len(t, items, 1)

	specs := factory.UoW.Transactions.LastSpecs
	assert.Contains(t, specs, specification.OrderBy{Field: "occurred_at", Desc: true})
	assert.Contains(t, specs, specification.ByCategory{Category: "food"})
	assert.Contains(t, specs, specification.ByLocation{Location: "Bali"})
	assert.Contains(t, specs, specification.OccurredAfter{Since: since})
	assert.Contains(t, specs, specification.Pagination{Limit: 10, Offset: 5})
}

func TestGetTransactionsWithoutQueryOnlyOrders(t *testing.T) {
	factory, userId := seedPlanFixture(t)
	svc := NewPlanService(factory)

	_, err := svc.GetTransactions(context.Background(), userId, dto.TransactionQuery{})

	require.NoError(t, err)
	assert.Equal(t, []specification.Specification{
		specification.OrderBy{Field: "occurred_at", Desc: true},
	}, factory.UoW.Transactions.LastSpecs)
}

func TestGetPlansAppliesLocationFilterAndPaging(t *testing.T) {
	factory, userId := seedPlanFixture(t)
	svc := NewPlanService(factory)

	items, err := svc.GetPlans(context.Background(), userId, dto.PlanQuery{
		Location: "Bali",
		Limit:    20,
	})

	require.NoError(t, err)
	assert.Len(t, items, 1)

	specs := factory.UoW.Plans.LastSpecs
	assert.Contains(t, specs, specification.OrderBy{Field: "created_at", Desc: true})
	assert.Contains(t, specs, specification.Filter("location", "Bali"))
	assert.Contains(t, specs, specification.Pagination{Limit: 20, Offset: 0})
}
