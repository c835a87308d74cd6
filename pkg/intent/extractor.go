package intent

import (
	"context"
	"fmt"
	"log"

	"agentcity-be/internal/constant"
	"agentcity-be/pkg/llm"
	"agentcity-be/pkg/llmjson"
)

// ConstraintExtractor pulls budget and time bounds out of the raw
// request text.
type ConstraintExtractor struct {
	provider llm.LLMProvider
	logger   *log.Logger
}

func NewConstraintExtractor(provider llm.LLMProvider, logger *log.Logger) *ConstraintExtractor {
	return &ConstraintExtractor{
		provider: provider,
		logger:   logger,
	}
}

// Extract never fails: on gateway or parse errors every field stays
// nil and the turn proceeds.
func (e *ConstraintExtractor) Extract(ctx context.Context, userText string) BasicConstraints {
	var result BasicConstraints

	raw, err := e.provider.Chat(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: fmt.Sprintf(constant.ExtractConstraintsPrompt, userText)},
		{Role: llm.RoleUser, Content: userText},
	}, llm.WithMaxTokens(150))
	if err != nil {
		e.logger.Printf("[EXTRACT] gateway error, proceeding without constraints: %v", err)
		return BasicConstraints{}
	}

	scrape := func(cleaned string) bool {
		found := false
		if budget, ok := llmjson.NumberField(cleaned, "budget"); ok {
			result.Budget = &budget
			found = true
		}
		if start, ok := llmjson.StringField(cleaned, "start_time"); ok && start != "null" {
			result.StartTime = &start
			found = true
		}
		if end, ok := llmjson.StringField(cleaned, "end_time"); ok && end != "null" {
			result.EndTime = &end
			found = true
		}
		return found
	}

	llmjson.Decode(raw, &result, scrape, func() { result = BasicConstraints{} })
	return result
}
