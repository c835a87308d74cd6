package intent

import (
	"context"
	"fmt"
	"log"

	"agentcity-be/internal/constant"
	"agentcity-be/pkg/llm"
	"agentcity-be/pkg/llmjson"
	"agentcity-be/pkg/store"
)

// LocationResearcher asks the gateway for 4-6 general activity
// categories popular at a destination.
type LocationResearcher struct {
	provider llm.LLMProvider
	logger   *log.Logger
}

func NewLocationResearcher(provider llm.LLMProvider, logger *log.Logger) *LocationResearcher {
	return &LocationResearcher{
		provider: provider,
		logger:   logger,
	}
}

type researchResponse struct {
	GeneralCategories []store.Category `json:"general_categories"`
}

// Research returns an empty slice on any failure; the dispatcher
// treats that as "research failed" and falls through to the
// single-shot path.
func (r *LocationResearcher) Research(ctx context.Context, location string) []store.Category {
	raw, err := r.provider.Chat(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: fmt.Sprintf(constant.ResearchPrompt, location, location)},
		{Role: llm.RoleUser, Content: fmt.Sprintf("Research activities for %s", location)},
	}, llm.WithMaxTokens(800))
	if err != nil {
		r.logger.Printf("[RESEARCH] gateway error for %q: %v", location, err)
		return nil
	}

	var result researchResponse
	scrape := func(cleaned string) bool {
		// Last resort: recover bare category names even when the
		// nested objects are mangled.
		for _, name := range llmjson.AllStringFields(cleaned, "category") {
			result.GeneralCategories = append(result.GeneralCategories, store.Category{Category: name})
		}
		return len(result.GeneralCategories) > 0
	}

	status := llmjson.Decode(raw, &result, scrape, func() { result = researchResponse{} })
	if status == llmjson.StatusFailed {
		r.logger.Printf("[RESEARCH] unrecoverable response for %q. raw: %.200s", location, raw)
	}

	return result.GeneralCategories
}
