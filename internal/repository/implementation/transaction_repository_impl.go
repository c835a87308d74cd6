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

type TransactionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TransactionMapper
}

func NewTransactionRepository(db *gorm.DB) contract.TransactionRepository {
	return &TransactionRepositoryImpl{
		db:     db,
		mapper: mapper.NewTransactionMapper(),
	}
}

func (r *TransactionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *TransactionRepositoryImpl) Create(ctx context.Context, txn *entity.Transaction) error {
	m := r.mapper.ToModel(txn)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*txn = *r.mapper.ToEntity(m)
	return nil
}

func (r *TransactionRepositoryImpl) CreateBatch(ctx context.Context, txns []*entity.Transaction) error {
	if len(txns) == 0 {
		return nil
	}
	models := make([]*model.Transaction, len(txns))
	for i, t := range txns {
		models[i] = r.mapper.ToModel(t)
	}
	return r.db.WithContext(ctx).CreateInBatches(models, 100).Error
}

func (r *TransactionRepositoryImpl) FindByUser(ctx context.Context, userId uuid.UUID, specs ...specification.Specification) ([]*entity.Transaction, error) {
	var models []*model.Transaction
	query := r.db.WithContext(ctx).Where("user_id = ?", userId)
	query = r.applySpecifications(query, specs...)

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(models), nil
}

func (r *TransactionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Transaction{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
