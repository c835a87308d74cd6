package intent

import (
	"fmt"
	"strings"

	"agentcity-be/pkg/store"
)

// BuildClarificationPrompt renders the user-facing category menu for a
// clarification round. Deterministic: identical categories always
// produce an identical prompt, so a reloaded conversation replays the
// same question.
func BuildClarificationPrompt(categories []store.Category) string {
	var b strings.Builder
	b.WriteString("To help plan your trip, please select which types of activities interest you:\n\n")

	for i, cat := range categories {
		fmt.Fprintf(&b, "%d. %s: %s\n", i+1, strings.ToUpper(cat.Category), cat.Description)
		if len(cat.Examples) > 0 {
			examples := cat.Examples
			if len(examples) > 3 {
				examples = examples[:3]
			}
			fmt.Fprintf(&b, "   Examples: %s\n", strings.Join(examples, ", "))
		}
	}

	b.WriteString("\nPlease reply with the numbers or names of categories you're interested in (e.g., '1, 3, 5' or 'eat, sightsee').")
	return b.String()
}
