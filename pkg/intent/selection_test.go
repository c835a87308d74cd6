package intent

import (
	"testing"

	"agentcity-be/pkg/store"
)

func fiveCategories() []store.Category {
	return []store.Category{
		{Category: "eat", Description: "Dining and food experiences"},
		{Category: "shop", Description: "Shopping and markets"},
		{Category: "sightsee", Description: "Sightseeing and landmarks"},
		{Category: "nightlife", Description: "Bars and live music"},
		{Category: "outdoors", Description: "Parks and hikes"},
	}
}

func TestParseSelection(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  []string
	}{
		{
			name:  "indices",
			reply: "1, 3",
			want:  []string{"eat", "sightsee"},
		},
		{
			name:  "names",
			reply: "eat, sightsee",
			want:  []string{"eat", "sightsee"},
		},
		{
			name:  "names case-insensitive",
			reply: "EAT, Nightlife",
			want:  []string{"eat", "nightlife"},
		},
		{
			name:  "mixed indices and names",
			reply: "2, outdoors",
			want:  []string{"shop", "outdoors"},
		},
		{
			name:  "duplicates collapse",
			reply: "1, eat, 1",
			want:  []string{"eat"},
		},
		{
			name:  "out-of-range index ignored",
			reply: "1, 9",
			want:  []string{"eat"},
		},
		{
			name:  "garbled reply selects everything",
			reply: "uhh whatever you think is best",
			want:  []string{"eat", "shop", "sightsee", "nightlife", "outdoors"},
		},
		{
			name:  "empty reply selects everything",
			reply: "",
			want:  []string{"eat", "shop", "sightsee", "nightlife", "outdoors"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseSelection(tt.reply, fiveCategories())
			labels := SelectionLabels(got)
			if len(labels) != len(tt.want) {
				t.Fatalf("selected %v, want %v", labels, tt.want)
			}
			for i := range labels {
				if labels[i] != tt.want[i] {
					t.Errorf("selected[%d] = %q, want %q", i, labels[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseSelectionNoCategories(t *testing.T) {
	if got := ParseSelection("1, 2", nil); got != nil {
		t.Errorf("expected nil for empty category list, got %v", got)
	}
}
