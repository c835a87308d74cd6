package contract

import "agentcity-be/pkg/store"

// ConversationStateRepository is the keyed read/write/delete contract
// for pending clarification state. Lifecycle (when to write, when to
// clear) is the dispatcher's business, not the store's.
type ConversationStateRepository interface {
	Save(state *store.ConversationState)
	Get(senderID string) (*store.ConversationState, bool)
	Delete(senderID string)
}
