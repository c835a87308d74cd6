package entity

import (
	"time"

	"github.com/google/uuid"
)

type TurnRole string

const (
	TurnRoleUser      TurnRole = "user"
	TurnRoleAssistant TurnRole = "assistant"
)

// DispatchPlanRecord is a finalized plan persisted for the plan-history
// endpoint and the map UI.
type DispatchPlanRecord struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	ActivityList []string
	Location     string
	Budget       *float64
	StartTime    *string
	EndTime      *string
	Preferences  []string
	AgentsToCall []string
	Notes        string
	CreatedAt    time.Time
}

// PlanningTurn records one message of the planning conversation, inbound
// or outbound, so the chat can be replayed.
type PlanningTurn struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	Role         TurnRole
	Content      string
	ResponseType string
	CreatedAt    time.Time
}
