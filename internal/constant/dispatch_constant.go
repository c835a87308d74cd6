package constant

import (
	"fmt"
	"strings"

	"agentcity-be/pkg/store"
)

const (
	ChatMessageRoleUser   = "user"
	ChatMessageRoleModel  = "model"
	ChatMessageRoleSystem = "system"
)

// Response document types emitted by the dispatcher, one per turn.
const (
	ResponseTypeDispatchPlan        = "dispatch_plan"
	ResponseTypeClarificationNeeded = "clarification_needed"
	ResponseTypeError               = "error"
)

// Specialist agents the dispatcher may route a plan to. The agents
// themselves live outside this service.
var SpecialistAgents = []string{
	"budget_agent",
	"venue_agent",
	"activity_agent",
	"transit_agent",
	"safety_agent",
	"schedule_agent",
	"booking_agent",
	"validation_agent",
}

// DefaultActivityList is substituted whenever finalization yields an
// empty activity list. A dispatch plan must never go out empty.
var DefaultActivityList = []string{"eat", "sightsee"}

// DefaultLocation is substituted when no destination could be
// extracted at finalize time.
const DefaultLocation = "unspecified"

// DefaultCategories is the clarification menu used when location
// research comes back empty. Generic enough to fit any destination.
var DefaultCategories = []store.Category{
	{Category: "eat", Description: "Dining and food experiences", Examples: []string{"local cuisine", "street food", "cafes"}},
	{Category: "sightsee", Description: "Sightseeing and landmarks", Examples: []string{"monuments", "museums", "parks"}},
	{Category: "shop", Description: "Shopping and markets", Examples: []string{"local markets", "boutiques", "souvenirs"}},
	{Category: "outdoors", Description: "Outdoor and nature activities", Examples: []string{"hiking", "beaches", "gardens"}},
	{Category: "entertainment", Description: "Shows and nightlife", Examples: []string{"live music", "theaters", "bars"}},
}

// --- Prompt templates (pure data; interpolation via fmt) ---

const VaguenessCheckPrompt = `
Analyze the following user request and determine if it's too vague to create a specific activity plan.

A request is considered vague if:
- It only mentions a location without specific activities
- It lacks clear preferences or interests
- It's too general (e.g., "I want to visit Paris" without details)

Return ONLY valid JSON:
{
  "is_vague": true or false,
  "location": "extracted location or null",
  "reason": "brief explanation"
}
`

// ExtractConstraintsPrompt pulls budget and time bounds out of the raw
// request. %s = the user request.
const ExtractConstraintsPrompt = `
Extract budget, start_time, and end_time from: %s
Return ONLY valid JSON:
{"budget": number or null, "start_time": "ISO 8601 datetime string or null", "end_time": "ISO 8601 datetime string or null"}
`

// ResearchPrompt asks for 4-6 general activity categories for a
// destination. %s = location (twice).
const ResearchPrompt = `
Research popular general things to do in %s.
Return a JSON object with general activity categories and popular examples:

{
  "general_categories": [
    {
      "category": "eat",
      "description": "Dining and food experiences",
      "examples": ["local cuisine", "fine dining", "street food", "cafes"]
    },
    {
      "category": "shop",
      "description": "Shopping and markets",
      "examples": ["local markets", "boutiques", "souvenirs", "malls"]
    },
    {
      "category": "sightsee",
      "description": "Sightseeing and landmarks",
      "examples": ["monuments", "museums", "parks", "historic sites"]
    }
  ]
}

Include 4-6 relevant categories based on what's popular in %s.
`

// PreferenceAnalysisPrompt infers activity preferences from past
// transactions. First %s = location, second %s = transaction summary
// JSON.
const PreferenceAnalysisPrompt = `
Analyze the following user transaction history and infer their activity preferences for a trip to %s.

Transactions:
%s

Return ONLY valid JSON:
{
  "has_sufficient_data": true or false,
  "inferred_preferences": ["preference1", "preference2", ...],
  "activity_categories": ["category1", "category2", ...],
  "confidence": "high/medium/low",
  "notes": "brief explanation"
}

Consider has_sufficient_data true if you can identify clear patterns (at least 3 similar activities/categories).
`

const PreferenceAnalysisSystemPrompt = `You are an expert at analyzing user behavior patterns from transaction data.`

// FinalizePrompt converts accumulated context into a dispatch plan.
// Order: original request, selected preferences, location, budget,
// start time, end time, transaction context (may be empty).
const FinalizePrompt = `
Based on the user's original request and their selected activity preferences, create a finalized activity list.

Original request: %s
User selected preferences: %s
Location: %s
Budget: %s
Start time: %s
End time: %s
%s

Return ONLY valid JSON in this format:

{
  "activity_list": [
    "general category 1",
    "general category 2",
    ...
  ],
  "constraints": {
    "budget": number or null,
    "start_time": "ISO 8601 datetime string or null",
    "end_time": "ISO 8601 datetime string or null",
    "location": "...",
    "preferences": [ ... ]
  },
  "agents_to_call": [ ... ],
  "notes": "short explanation"
}

The activity_list must contain only general category labels (like "eat" or "sightsee"), never specific venue names.
`

// DispatcherSystemPrompt is the single-shot path for requests that are
// already specific enough. The roster comes from SpecialistAgents so
// the prompt always matches it.
var DispatcherSystemPrompt = fmt.Sprintf(dispatcherSystemPromptTemplate, agentRoster())

func agentRoster() string {
	lines := make([]string, len(SpecialistAgents))
	for i, agent := range SpecialistAgents {
		lines[i] = "- " + agent
	}
	return strings.Join(lines, "\n")
}

const dispatcherSystemPromptTemplate = `
You are the Intent Dispatcher Agent for AgentCity.

Your job:
- Parse the user's request into a structured mission.
- Extract constraints: budget, time, location, preferences.
- Decide which specialist agents should be called.

Available specialist agents:
%s

Return ONLY valid JSON in this format:

{
  "activity_list": [ ... ],
  "constraints": {
    "budget": number or null,
    "start_time": "ISO 8601 datetime string or null",
    "end_time": "ISO 8601 datetime string or null",
    "location": "...",
    "preferences": [ ... ]
  },
  "agents_to_call": [ ... ],
  "notes": "short explanation"
}

The activity_list must contain only general category labels, never specific venue names.
Do NOT include any extra text outside JSON.
`
