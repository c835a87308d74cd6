package events

import "time"

const (
	TypePlanDispatched     = "PLAN_DISPATCHED"
	TypeClarificationAsked = "CLARIFICATION_ASKED"
	TypeDispatchFailed     = "DISPATCH_FAILED"
	TypeUserRegistered     = "USER_REGISTERED"
)

// NewPlanDispatchedEvent is emitted when a planning cycle ends in a
// finalized plan.
func NewPlanDispatchedEvent(userID, planID, location string, activityList []string) Event {
	return BaseEvent{
		Type: TypePlanDispatched,
		Data: map[string]interface{}{
			"user_id":       userID,
			"plan_id":       planID,
			"location":      location,
			"activity_list": activityList,
		},
		OccurredAt: time.Now(),
	}
}

func NewClarificationAskedEvent(userID string, categories []string) Event {
	return BaseEvent{
		Type: TypeClarificationAsked,
		Data: map[string]interface{}{
			"user_id":    userID,
			"categories": categories,
		},
		OccurredAt: time.Now(),
	}
}

func NewDispatchFailedEvent(userID, reason string) Event {
	return BaseEvent{
		Type: TypeDispatchFailed,
		Data: map[string]interface{}{
			"user_id": userID,
			"reason":  reason,
		},
		OccurredAt: time.Now(),
	}
}

func NewUserRegisteredEvent(userID, email string) Event {
	return BaseEvent{
		Type: TypeUserRegistered,
		Data: map[string]interface{}{
			"user_id": userID,
			"email":   email,
		},
		OccurredAt: time.Now(),
	}
}
