package store

// Category is one researched activity category offered to the user
// during a clarification round.
type Category struct {
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Examples    []string `json:"examples"`
}

// PreferenceProfile is what the preference-inference template produced
// from the user's transaction history.
type PreferenceProfile struct {
	HasSufficientData   bool     `json:"has_sufficient_data"`
	InferredPreferences []string `json:"inferred_preferences"`
	ActivityCategories  []string `json:"activity_categories"`
	Confidence          string   `json:"confidence"` // "high" | "medium" | "low"
	Notes               string   `json:"notes"`
}

// ConversationState is the per-sender planning state held between
// turns. It exists only while a clarification is pending; the
// dispatcher deletes it the moment a plan is emitted or a terminal
// error occurs.
type ConversationState struct {
	SenderID                string             `json:"sender_id"`
	WaitingForClarification bool               `json:"waiting_for_clarification"`
	OriginalRequest         string             `json:"original_request"`
	Location                string             `json:"location"` // empty = not yet known
	Budget                  *float64           `json:"budget"`
	StartTime               *string            `json:"start_time"` // ISO 8601
	EndTime                 *string            `json:"end_time"`   // ISO 8601
	Categories              []Category         `json:"categories"` // order as presented to the user
	TransactionData         *PreferenceProfile `json:"transaction_data,omitempty"`
}

const (
	// Dispatcher phases per sender
	PhaseFresh                 = "FRESH"
	PhaseAwaitingClarification = "AWAITING_CLARIFICATION"
	PhaseTerminal              = "TERMINAL"
)

// Phase reports where the sender sits in the planning cycle. A nil
// state means no clarification is pending, so the next turn is fresh.
func (s *ConversationState) Phase() string {
	if s == nil || !s.WaitingForClarification {
		return PhaseFresh
	}
	return PhaseAwaitingClarification
}
