package memory

import (
	"time"

	"github.com/patrickmn/go-cache"

	"agentcity-be/internal/repository/contract"
	"agentcity-be/pkg/store"
)

type ConversationStateRepository struct {
	cache *cache.Cache
}

// NewConversationStateRepository holds pending clarification state for
// up to an hour. A user who never answers just ages out; their next
// message starts a fresh cycle.
func NewConversationStateRepository() contract.ConversationStateRepository {
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &ConversationStateRepository{
		cache: c,
	}
}

func (r *ConversationStateRepository) Save(state *store.ConversationState) {
	r.cache.Set(state.SenderID, state, cache.DefaultExpiration)
}

func (r *ConversationStateRepository) Get(senderID string) (*store.ConversationState, bool) {
	if x, found := r.cache.Get(senderID); found {
		return x.(*store.ConversationState), true
	}
	return nil, false
}

func (r *ConversationStateRepository) Delete(senderID string) {
	r.cache.Delete(senderID)
}
