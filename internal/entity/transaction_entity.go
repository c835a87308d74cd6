package entity

import (
	"time"

	"github.com/google/uuid"
)

// Transaction is one historical activity purchase. The dispatcher reads
// these to infer what a user likes doing; this service never writes them
// outside of seeding.
type Transaction struct {
	Id         uuid.UUID
	UserId     uuid.UUID
	Activity   string
	Category   string
	Amount     float64
	Location   string
	OccurredAt time.Time
	CreatedAt  time.Time
}
