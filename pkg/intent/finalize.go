package intent

import (
	"context"
	"fmt"
	"log"
	"strings"

	"agentcity-be/internal/constant"
	"agentcity-be/pkg/llm"
	"agentcity-be/pkg/llmjson"
	"agentcity-be/pkg/store"
)

// FinalizeInput is the accumulated context a planning cycle hands to
// the finalize template.
type FinalizeInput struct {
	OriginalRequest     string
	SelectedPreferences []string
	Location            string
	Budget              *float64
	StartTime           *string
	EndTime             *string
	TransactionData     *store.PreferenceProfile
}

// Finalizer converts accumulated context into a DispatchPlan. This is
// the only gateway call whose failure is allowed to surface to the
// user, and only after malformed-JSON recovery and one retry both come
// up empty.
type Finalizer struct {
	provider llm.LLMProvider
	logger   *log.Logger
}

func NewFinalizer(provider llm.LLMProvider, logger *log.Logger) *Finalizer {
	return &Finalizer{
		provider: provider,
		logger:   logger,
	}
}

// Finalize runs the finalize template with selected/inferred
// preferences and stored constraints.
func (f *Finalizer) Finalize(ctx context.Context, input FinalizeInput) (*DispatchPlan, error) {
	transactionContext := ""
	if input.TransactionData != nil && input.TransactionData.HasSufficientData {
		transactionContext = fmt.Sprintf(
			"\nUser's past activity preferences (from transaction history): %s\nPreferred activity categories: %s\nUse these preferences to personalize the activity list.",
			strings.Join(input.TransactionData.InferredPreferences, ", "),
			strings.Join(input.TransactionData.ActivityCategories, ", "),
		)
	}

	prompt := fmt.Sprintf(constant.FinalizePrompt,
		input.OriginalRequest,
		strings.Join(input.SelectedPreferences, ", "),
		input.Location,
		formatNumber(input.Budget),
		formatString(input.StartTime),
		formatString(input.EndTime),
		transactionContext,
	)

	plan, err := f.callAndDecode(ctx, prompt, "Create the finalized activity list")
	if err != nil {
		return nil, err
	}

	f.normalize(plan, input)
	return plan, nil
}

// DispatchDirect is the single-shot path for requests that are already
// specific enough to skip clarification. The location extracted during
// the vagueness check backs up whatever the template answers.
func (f *Finalizer) DispatchDirect(ctx context.Context, userRequest, location string) (*DispatchPlan, error) {
	plan, err := f.callAndDecode(ctx, constant.DispatcherSystemPrompt, userRequest)
	if err != nil {
		return nil, err
	}

	f.normalize(plan, FinalizeInput{OriginalRequest: userRequest, Location: location})
	return plan, nil
}

// callAndDecode calls the finalize/dispatch template with one retry.
// It fails only when both attempts yield no usable activity list.
func (f *Finalizer) callAndDecode(ctx context.Context, systemPrompt, userPrompt string) (*DispatchPlan, error) {
	var lastErr error

	for attempt := 0; attempt < 2; attempt++ {
		raw, err := f.provider.Chat(ctx, []llm.Message{
			{Role: llm.RoleSystem, Content: systemPrompt},
			{Role: llm.RoleUser, Content: userPrompt},
		}, llm.WithMaxTokens(800))
		if err != nil {
			lastErr = fmt.Errorf("finalize gateway call: %w", err)
			f.logger.Printf("[FINALIZE] attempt %d gateway error: %v", attempt+1, err)
			continue
		}

		var plan DispatchPlan
		scrape := func(cleaned string) bool {
			list, ok := llmjson.StringArrayField(cleaned, "activity_list")
			if !ok {
				return false
			}
			plan.ActivityList = list
			if notes, ok := llmjson.StringField(cleaned, "notes"); ok {
				plan.Notes = notes
			}
			if loc, ok := llmjson.StringField(cleaned, "location"); ok && loc != "null" {
				plan.Constraints.Location = loc
			}
			if agents, ok := llmjson.StringArrayField(cleaned, "agents_to_call"); ok {
				plan.AgentsToCall = agents
			}
			return true
		}

		status := llmjson.Decode(raw, &plan, scrape, func() { plan = DispatchPlan{} })
		if status == llmjson.StatusFailed {
			lastErr = fmt.Errorf("finalize response had no usable activity list")
			f.logger.Printf("[FINALIZE] attempt %d unrecoverable response. raw: %.200s", attempt+1, raw)
			continue
		}

		return &plan, nil
	}

	return nil, lastErr
}

// normalize enforces the plan invariants: a non-empty activity list
// and a non-empty location string.
func (f *Finalizer) normalize(plan *DispatchPlan, input FinalizeInput) {
	if len(plan.ActivityList) == 0 {
		plan.ActivityList = append([]string(nil), constant.DefaultActivityList...)
	}
	if plan.AgentsToCall == nil {
		plan.AgentsToCall = []string{}
	}

	if plan.Constraints.Location == "" {
		plan.Constraints.Location = input.Location
	}
	if plan.Constraints.Location == "" {
		plan.Constraints.Location = constant.DefaultLocation
	}

	if plan.Constraints.Budget == nil {
		plan.Constraints.Budget = input.Budget
	}
	if plan.Constraints.StartTime == nil {
		plan.Constraints.StartTime = input.StartTime
	}
	if plan.Constraints.EndTime == nil {
		plan.Constraints.EndTime = input.EndTime
	}
	if plan.Constraints.Preferences == nil {
		plan.Constraints.Preferences = append([]string{}, input.SelectedPreferences...)
	}
}

func formatNumber(f *float64) string {
	if f == nil {
		return "null"
	}
	return fmt.Sprintf("%g", *f)
}

func formatString(s *string) string {
	if s == nil || *s == "" {
		return "null"
	}
	return *s
}
