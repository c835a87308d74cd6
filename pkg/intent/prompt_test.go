package intent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"agentcity-be/pkg/store"
)

func TestBuildClarificationPromptDeterministic(t *testing.T) {
	categories := fiveCategories()

	first := BuildClarificationPrompt(categories)
	second := BuildClarificationPrompt(categories)
	assert.Equal(t, first, second)

	assert.Contains(t, first, "1. EAT:")
	assert.Contains(t, first, "5. OUTDOORS:")
	assert.Contains(t, first, "'1, 3, 5'")
}

func TestBuildClarificationPromptCapsExamples(t *testing.T) {
	prompt := BuildClarificationPrompt([]store.Category{
		{
			Category:    "eat",
			Description: "Food experiences",
			Examples:    []string{"warung", "seafood", "street food", "fine dining"},
		},
	})

	assert.Contains(t, prompt, "warung, seafood, street food")
	assert.NotContains(t, prompt, "fine dining")
}

func TestBuildClarificationPromptMatchesParser(t *testing.T) {
	categories := fiveCategories()
	prompt := BuildClarificationPrompt(categories)

	// Every numbered entry in the prompt must be selectable by both its
	// index and its name.
	for i, cat := range categories {
		assert.Contains(t, prompt, strings.ToUpper(cat.Category))

		selected := ParseSelection(cat.Category, categories)
		assert.Equal(t, []store.Category{cat}, selected, "category %d", i+1)
	}
}

func TestVaguenessCheckFencedResponse(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		"```json\n{\"is_vague\": true, \"location\": \"Bandung\", \"reason\": \"no activities named\"}\n```",
	}}
	checker := NewVaguenessChecker(provider, discardLogger())

	result := checker.Check(context.Background(), "I want to do something in Bandung")
	assert.True(t, result.IsVague)
	assert.Equal(t, "Bandung", result.Location)
}

func TestVaguenessCheckGatewayErrorDefaultsNotVague(t *testing.T) {
	provider := &scriptedProvider{errs: []error{errors.New("timeout")}}
	checker := NewVaguenessChecker(provider, discardLogger())

	result := checker.Check(context.Background(), "anything fun this weekend?")
	assert.False(t, result.IsVague)
}

func TestVaguenessCheckNullLocationNormalized(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		`{"is_vague": true, "location": "null", "reason": "no location given"}`,
	}}
	checker := NewVaguenessChecker(provider, discardLogger())

	result := checker.Check(context.Background(), "plan my day")
	assert.True(t, result.IsVague)
	assert.Empty(t, result.Location)
}

func TestVaguenessCheckGarbageDefaultsNotVague(t *testing.T) {
	provider := &scriptedProvider{responses: []string{"sure, happy to help!"}}
	checker := NewVaguenessChecker(provider, discardLogger())

	result := checker.Check(context.Background(), "go-karting in Surabaya tomorrow")
	assert.False(t, result.IsVague)
}
