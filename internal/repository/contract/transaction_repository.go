package contract

import (
	"context"

	"agentcity-be/internal/entity"
	"agentcity-be/internal/repository/specification"

	"github.com/google/uuid"
)

// TransactionRepository is read-mostly: the dispatcher only queries, the
// seeder only inserts.
type TransactionRepository interface {
	Create(ctx context.Context, txn *entity.Transaction) error
	CreateBatch(ctx context.Context, txns []*entity.Transaction) error
	FindByUser(ctx context.Context, userId uuid.UUID, specs ...specification.Specification) ([]*entity.Transaction, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
