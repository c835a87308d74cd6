package dto

import (
	"time"

	"github.com/google/uuid"
)

// TurnRequest is one inbound dispatcher turn. The sender identity comes
// from the JWT, never from the body.
type TurnRequest struct {
	UserRequest string `json:"user_request" validate:"required,min=1"`
}

// TurnResponse is the envelope for the three possible outcomes of a
// turn. Exactly one of Plan / Clarification is set, matching Type.
type TurnResponse struct {
	Type          string                 `json:"type"` // "dispatch_plan" | "clarification_needed" | "error"
	Plan          *DispatchPlanResponse  `json:"plan,omitempty"`
	Clarification *ClarificationResponse `json:"clarification,omitempty"`
	Message       string                 `json:"message,omitempty"`
}

type DispatchPlanResponse struct {
	ActivityList []string            `json:"activity_list"`
	Constraints  ConstraintsResponse `json:"constraints"`
	AgentsToCall []string            `json:"agents_to_call"`
	Notes        string              `json:"notes,omitempty"`
}

type ConstraintsResponse struct {
	Location    string   `json:"location"`
	Budget      *float64 `json:"budget"`
	StartTime   *string  `json:"start_time"`
	EndTime     *string  `json:"end_time"`
	Preferences []string `json:"preferences"`
}

type ClarificationResponse struct {
	Prompt     string             `json:"prompt"`
	Categories []CategoryResponse `json:"categories"`
}

type CategoryResponse struct {
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Examples    []string `json:"examples"`
}

type PlanHistoryItem struct {
	Id           uuid.UUID `json:"id"`
	ActivityList []string  `json:"activity_list"`
	Location     string    `json:"location"`
	Budget       *float64  `json:"budget"`
	StartTime    *string   `json:"start_time"`
	EndTime      *string   `json:"end_time"`
	Preferences  []string  `json:"preferences"`
	AgentsToCall []string  `json:"agents_to_call"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type PlanningTurnItem struct {
	Id           uuid.UUID `json:"id"`
	Role         string    `json:"role"`
	Content      string    `json:"content"`
	ResponseType string    `json:"response_type,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// PlanQuery narrows the plan history listing. Zero values mean no
// filter and no paging.
type PlanQuery struct {
	Location string
	Limit    int
	Offset   int
}

// TransactionQuery narrows the transaction history listing.
type TransactionQuery struct {
	Category string
	Location string
	Since    *time.Time
	Limit    int
	Offset   int
}

type TransactionItem struct {
	Id         uuid.UUID `json:"id"`
	Activity   string    `json:"activity"`
	Category   string    `json:"category"`
	Amount     float64   `json:"amount"`
	Location   string    `json:"location"`
	OccurredAt time.Time `json:"occurred_at"`
}
