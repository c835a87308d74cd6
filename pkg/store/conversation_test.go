package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhase(t *testing.T) {
	var missing *ConversationState
	assert.Equal(t, PhaseFresh, missing.Phase())

	assert.Equal(t, PhaseFresh, (&ConversationState{}).Phase())

	pending := &ConversationState{WaitingForClarification: true}
	assert.Equal(t, PhaseAwaitingClarification, pending.Phase())
}
