package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type DispatchPlan struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId       uuid.UUID      `gorm:"type:uuid;not null;index"`
	ActivityList datatypes.JSON `gorm:"type:jsonb;not null"`
	Location     string         `gorm:"type:varchar(255);not null"`
	Budget       *float64       `gorm:"type:numeric(12,2)"`
	StartTime    *string        `gorm:"type:varchar(100)"`
	EndTime      *string        `gorm:"type:varchar(100)"`
	Preferences  datatypes.JSON `gorm:"type:jsonb"`
	AgentsToCall datatypes.JSON `gorm:"type:jsonb"`
	Notes        string         `gorm:"type:text"`
	CreatedAt    time.Time      `gorm:"autoCreateTime;index"`
}

func (DispatchPlan) TableName() string {
	return "dispatch_plans"
}

type PlanningTurn struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId       uuid.UUID `gorm:"type:uuid;not null;index"`
	Role         string    `gorm:"type:varchar(20);not null"`
	Content      string    `gorm:"type:text;not null"`
	ResponseType string    `gorm:"type:varchar(50)"`
	CreatedAt    time.Time `gorm:"autoCreateTime;index"`
}

func (PlanningTurn) TableName() string {
	return "planning_turns"
}
