package constant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatcherSystemPromptListsEveryAgent(t *testing.T) {
	for _, agent := range SpecialistAgents {
		assert.Contains(t, DispatcherSystemPrompt, "- "+agent)
	}
}
