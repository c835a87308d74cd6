package memory

import (
	"testing"

	"agentcity-be/pkg/intent"
	"agentcity-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleState() *store.ConversationState {
	budget := 500.0
	return &store.ConversationState{
		SenderID:                "sender-1",
		WaitingForClarification: true,
		OriginalRequest:         "something fun in Bali",
		Location:                "Bali",
		Budget:                  &budget,
		Categories: []store.Category{
			{Category: "eat", Description: "Warungs", Examples: []string{"Jimbaran"}},
			{Category: "surf", Description: "Breaks", Examples: []string{"Canggu"}},
		},
	}
}

func TestConversationStateSaveGetDelete(t *testing.T) {
	repo := NewConversationStateRepository()

	_, found := repo.Get("sender-1")
	assert.False(t, found)

	repo.Save(sampleState())

	got, found := repo.Get("sender-1")
	require.True(t, found)
	assert.Equal(t, "Bali", got.Location)
	assert.True(t, got.WaitingForClarification)
	require.NotNil(t, got.Budget)
	assert.Equal(t, 500.0, *got.Budget)

	repo.Delete("sender-1")
	_, found = repo.Get("sender-1")
	assert.False(t, found)
}

func TestConversationStateRoundTripKeepsPromptStable(t *testing.T) {
	repo := NewConversationStateRepository()
	state := sampleState()
	before := intent.BuildClarificationPrompt(state.Categories)

	repo.Save(state)
	reloaded, found := repo.Get(state.SenderID)
	require.True(t, found)

	assert.Equal(t, before, intent.BuildClarificationPrompt(reloaded.Categories))
}

func TestConversationStateKeysAreIndependent(t *testing.T) {
	repo := NewConversationStateRepository()

	a := sampleState()
	b := sampleState()
	b.SenderID = "sender-2"
	b.Location = "Kyoto"

	repo.Save(a)
	repo.Save(b)

	gotA, _ := repo.Get("sender-1")
	gotB, _ := repo.Get("sender-2")
	assert.Equal(t, "Bali", gotA.Location)
	assert.Equal(t, "Kyoto", gotB.Location)

	repo.Delete("sender-1")
	_, found := repo.Get("sender-2")
	assert.True(t, found)
}
