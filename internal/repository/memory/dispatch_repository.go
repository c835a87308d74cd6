package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"agentcity-be/internal/entity"
	"agentcity-be/internal/repository/contract"
	"agentcity-be/internal/repository/specification"
)

// In-memory repositories backing cmd/simulation and the service tests.
// Specifications are gorm-bound, so these cannot apply them; they record
// what the caller passed instead so tests can assert on the query shape.

type TransactionRepository struct {
	mu        sync.RWMutex
	rows      []*entity.Transaction
	LastSpecs []specification.Specification
}

func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{}
}

func (r *TransactionRepository) Create(ctx context.Context, txn *entity.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if txn.Id == uuid.Nil {
		txn.Id = uuid.New()
	}
	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = time.Now()
	}
	copied := *txn
	r.rows = append(r.rows, &copied)
	return nil
}

func (r *TransactionRepository) CreateBatch(ctx context.Context, txns []*entity.Transaction) error {
	for _, t := range txns {
		if err := r.Create(ctx, t); err != nil {
			return err
		}
	}
	return nil
}

func (r *TransactionRepository) FindByUser(ctx context.Context, userId uuid.UUID, specs ...specification.Specification) ([]*entity.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.LastSpecs = specs
	var out []*entity.Transaction
	for _, t := range r.rows {
		if t.UserId == userId {
			copied := *t
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *TransactionRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.rows)), nil
}

type DispatchPlanRepository struct {
	mu        sync.RWMutex
	rows      []*entity.DispatchPlanRecord
	LastSpecs []specification.Specification
}

func NewDispatchPlanRepository() *DispatchPlanRepository {
	return &DispatchPlanRepository{}
}

func (r *DispatchPlanRepository) Create(ctx context.Context, plan *entity.DispatchPlanRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if plan.Id == uuid.Nil {
		plan.Id = uuid.New()
	}
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = time.Now()
	}
	copied := *plan
	r.rows = append(r.rows, &copied)
	return nil
}

func (r *DispatchPlanRepository) FindByUser(ctx context.Context, userId uuid.UUID, specs ...specification.Specification) ([]*entity.DispatchPlanRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.LastSpecs = specs
	var out []*entity.DispatchPlanRecord
	for _, p := range r.rows {
		if p.UserId == userId {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *DispatchPlanRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DispatchPlanRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.rows) == 0 {
		return nil, nil
	}
	copied := *r.rows[0]
	return &copied, nil
}

func (r *DispatchPlanRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.rows)), nil
}

type PlanningTurnRepository struct {
	mu   sync.RWMutex
	rows []*entity.PlanningTurn
}

func NewPlanningTurnRepository() *PlanningTurnRepository {
	return &PlanningTurnRepository{}
}

func (r *PlanningTurnRepository) Create(ctx context.Context, turn *entity.PlanningTurn) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if turn.Id == uuid.Nil {
		turn.Id = uuid.New()
	}
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now()
	}
	copied := *turn
	r.rows = append(r.rows, &copied)
	return nil
}

func (r *PlanningTurnRepository) FindByUser(ctx context.Context, userId uuid.UUID, specs ...specification.Specification) ([]*entity.PlanningTurn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*entity.PlanningTurn
	for _, t := range r.rows {
		if t.UserId == userId {
			copied := *t
			out = append(out, &copied)
		}
	}
	return out, nil
}

var (
	_ contract.TransactionRepository  = (*TransactionRepository)(nil)
	_ contract.DispatchPlanRepository = (*DispatchPlanRepository)(nil)
	_ contract.PlanningTurnRepository = (*PlanningTurnRepository)(nil)
)
