package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"agentcity-be/internal/constant"
	"agentcity-be/pkg/llm"
	"agentcity-be/pkg/llmjson"
	"agentcity-be/pkg/store"
)

// DefaultMinMatchingRecords is the sufficiency threshold: a sender's
// history only short-circuits clarification when at least this many
// records share a category.
const DefaultMinMatchingRecords = 3

// PreferenceAnalyzer infers activity preferences from transaction
// history. Sufficiency is decided locally (the matching-record rule)
// and then confirmed by the inference template; either side saying
// "not enough" sends the turn to a clarification round instead.
type PreferenceAnalyzer struct {
	provider   llm.LLMProvider
	logger     *log.Logger
	minMatches int
}

func NewPreferenceAnalyzer(provider llm.LLMProvider, logger *log.Logger, minMatches int) *PreferenceAnalyzer {
	if minMatches <= 0 {
		minMatches = DefaultMinMatchingRecords
	}
	return &PreferenceAnalyzer{
		provider:   provider,
		logger:     logger,
		minMatches: minMatches,
	}
}

// HasSufficientHistory applies the local sufficiency rule: at least
// minMatches records whose category strings match case-insensitively.
func HasSufficientHistory(txns []TransactionSummary, minMatches int) bool {
	if len(txns) < minMatches {
		return false
	}
	counts := make(map[string]int)
	for _, txn := range txns {
		key := strings.ToLower(strings.TrimSpace(txn.Category))
		if key == "" {
			continue
		}
		counts[key]++
		if counts[key] >= minMatches {
			return true
		}
	}
	return false
}

// Analyze returns nil when history is insufficient or inference fails;
// the caller degrades to the clarification path. It never aborts the
// turn.
func (a *PreferenceAnalyzer) Analyze(ctx context.Context, txns []TransactionSummary, location string) *store.PreferenceProfile {
	if !HasSufficientHistory(txns, a.minMatches) {
		return nil
	}

	// Cap what the template sees; recent records carry the signal.
	summary := txns
	if len(summary) > 20 {
		summary = summary[:20]
	}
	summaryJson, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		a.logger.Printf("[PREFERENCE] marshal summary failed: %v", err)
		return nil
	}

	raw, err := a.provider.Chat(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: constant.PreferenceAnalysisSystemPrompt},
		{Role: llm.RoleUser, Content: fmt.Sprintf(constant.PreferenceAnalysisPrompt, location, string(summaryJson))},
	}, llm.WithMaxTokens(400))
	if err != nil {
		a.logger.Printf("[PREFERENCE] gateway error, degrading to clarification: %v", err)
		return nil
	}

	var profile store.PreferenceProfile
	scrape := func(cleaned string) bool {
		found := false
		if v, ok := llmjson.BoolField(cleaned, "has_sufficient_data"); ok {
			profile.HasSufficientData = v
			found = true
		}
		if prefs, ok := llmjson.StringArrayField(cleaned, "inferred_preferences"); ok {
			profile.InferredPreferences = prefs
			found = true
		}
		if cats, ok := llmjson.StringArrayField(cleaned, "activity_categories"); ok {
			profile.ActivityCategories = cats
			found = true
		}
		return found
	}

	status := llmjson.Decode(raw, &profile, scrape, func() { profile = store.PreferenceProfile{} })
	if status == llmjson.StatusFailed {
		a.logger.Printf("[PREFERENCE] unrecoverable response, degrading to clarification. raw: %.200s", raw)
		return nil
	}

	if !profile.HasSufficientData {
		return nil
	}
	return &profile
}
