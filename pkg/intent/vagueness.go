package intent

import (
	"context"
	"log"

	"agentcity-be/internal/constant"
	"agentcity-be/pkg/llm"
	"agentcity-be/pkg/llmjson"
)

// VaguenessChecker decides whether a request is too vague to plan
// without clarification or inferred history.
type VaguenessChecker struct {
	provider llm.LLMProvider
	logger   *log.Logger
}

func NewVaguenessChecker(provider llm.LLMProvider, logger *log.Logger) *VaguenessChecker {
	return &VaguenessChecker{
		provider: provider,
		logger:   logger,
	}
}

// Check never fails: gateway or parse errors default to isVague=false,
// which sends the turn down the cheaper single-shot path.
func (c *VaguenessChecker) Check(ctx context.Context, userText string) VaguenessResult {
	var result VaguenessResult

	applyDefault := func() {
		result = VaguenessResult{IsVague: false, Reason: "recovery default"}
	}

	raw, err := c.provider.Chat(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: constant.VaguenessCheckPrompt},
		{Role: llm.RoleUser, Content: userText},
	}, llm.WithMaxTokens(200))
	if err != nil {
		c.logger.Printf("[VAGUENESS] gateway error, defaulting to not vague: %v", err)
		applyDefault()
		return result
	}

	scrape := func(cleaned string) bool {
		found := false
		if v, ok := llmjson.BoolField(cleaned, "is_vague"); ok {
			result.IsVague = v
			found = true
		}
		if loc, ok := llmjson.StringField(cleaned, "location"); ok && loc != "null" {
			result.Location = loc
			found = true
		}
		return found
	}

	status := llmjson.Decode(raw, &result, scrape, applyDefault)
	if status == llmjson.StatusFailed {
		c.logger.Printf("[VAGUENESS] unrecoverable response, defaulting to not vague. raw: %.200s", raw)
	}

	// Some models answer "null" as a literal string.
	if result.Location == "null" {
		result.Location = ""
	}

	return result
}
