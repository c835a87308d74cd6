package intent

import (
	"strconv"
	"strings"

	"agentcity-be/pkg/store"
)

// ParseSelection interprets a clarification reply against the stored
// categories. Accepted forms, comma-separated and mixable:
//
//   - 1-based indices into the presented list ("1, 3")
//   - category names, case-insensitive ("eat, sightsee")
//
// A reply that matches nothing is a no-op selection: all stored
// categories are returned verbatim, so finalize can still run.
func ParseSelection(reply string, categories []store.Category) []store.Category {
	if len(categories) == 0 {
		return nil
	}

	byName := make(map[string]int, len(categories))
	for i, cat := range categories {
		byName[strings.ToLower(strings.TrimSpace(cat.Category))] = i
	}

	seen := make(map[int]bool)
	var selected []store.Category

	for _, token := range strings.Split(reply, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		if idx, err := strconv.Atoi(token); err == nil {
			if idx >= 1 && idx <= len(categories) && !seen[idx-1] {
				seen[idx-1] = true
				selected = append(selected, categories[idx-1])
			}
			continue
		}

		if idx, ok := byName[strings.ToLower(token)]; ok && !seen[idx] {
			seen[idx] = true
			selected = append(selected, categories[idx])
		}
	}

	if len(selected) == 0 {
		// Unparseable reply: select nothing new, keep everything.
		return categories
	}
	return selected
}

// SelectionLabels flattens selected categories into the label list the
// finalize template expects.
func SelectionLabels(categories []store.Category) []string {
	labels := make([]string, 0, len(categories))
	for _, cat := range categories {
		labels = append(labels, cat.Category)
	}
	return labels
}
