package mapper

import (
	"agentcity-be/internal/entity"
	"agentcity-be/internal/model"
)

type TransactionMapper struct{}

func NewTransactionMapper() *TransactionMapper {
	return &TransactionMapper{}
}

func (m *TransactionMapper) ToEntity(t *model.Transaction) *entity.Transaction {
	if t == nil {
		return nil
	}
	return &entity.Transaction{
		Id:         t.Id,
		UserId:     t.UserId,
		Activity:   t.Activity,
		Category:   t.Category,
		Amount:     t.Amount,
		Location:   t.Location,
		OccurredAt: t.OccurredAt,
		CreatedAt:  t.CreatedAt,
	}
}

func (m *TransactionMapper) ToModel(t *entity.Transaction) *model.Transaction {
	if t == nil {
		return nil
	}
	return &model.Transaction{
		Id:         t.Id,
		UserId:     t.UserId,
		Activity:   t.Activity,
		Category:   t.Category,
		Amount:     t.Amount,
		Location:   t.Location,
		OccurredAt: t.OccurredAt,
		CreatedAt:  t.CreatedAt,
	}
}

func (m *TransactionMapper) ToEntities(txns []*model.Transaction) []*entity.Transaction {
	entities := make([]*entity.Transaction, len(txns))
	for i, t := range txns {
		entities[i] = m.ToEntity(t)
	}
	return entities
}
