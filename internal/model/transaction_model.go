package model

import (
	"time"

	"github.com/google/uuid"
)

type Transaction struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId     uuid.UUID `gorm:"type:uuid;not null;index"`
	Activity   string    `gorm:"type:varchar(255);not null"`
	Category   string    `gorm:"type:varchar(100);not null;index"`
	Amount     float64   `gorm:"type:numeric(12,2);not null"`
	Location   string    `gorm:"type:varchar(255)"`
	OccurredAt time.Time `gorm:"not null;index"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (Transaction) TableName() string {
	return "transactions"
}
