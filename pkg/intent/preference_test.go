package intent

import (
	"context"
	"testing"
)

func txns(categories ...string) []TransactionSummary {
	result := make([]TransactionSummary, 0, len(categories))
	for _, c := range categories {
		result = append(result, TransactionSummary{Activity: "some " + c, Category: c, Amount: 25})
	}
	return result
}

func TestHasSufficientHistory(t *testing.T) {
	tests := []struct {
		name       string
		categories []string
		min        int
		want       bool
	}{
		{
			name:       "empty history",
			categories: nil,
			min:        3,
			want:       false,
		},
		{
			name:       "two matching records is not enough",
			categories: []string{"dining", "dining"},
			min:        3,
			want:       false,
		},
		{
			name:       "three matching records is enough",
			categories: []string{"dining", "dining", "dining"},
			min:        3,
			want:       true,
		},
		{
			name:       "match is case-insensitive",
			categories: []string{"Dining", "DINING", "dining"},
			min:        3,
			want:       true,
		},
		{
			name:       "three records in different categories is not enough",
			categories: []string{"dining", "museum", "nightlife"},
			min:        3,
			want:       false,
		},
		{
			name:       "matching records among noise",
			categories: []string{"museum", "dining", "transit", "dining", "shopping", "dining"},
			min:        3,
			want:       true,
		},
		{
			name:       "blank categories do not count",
			categories: []string{"", "", ""},
			min:        3,
			want:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasSufficientHistory(txns(tt.categories...), tt.min); got != tt.want {
				t.Errorf("HasSufficientHistory() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAnalyzeSkipsGatewayWhenInsufficient(t *testing.T) {
	provider := &scriptedProvider{}
	analyzer := NewPreferenceAnalyzer(provider, discardLogger(), 3)

	profile := analyzer.Analyze(context.Background(), txns("dining"), "Paris")
	if profile != nil {
		t.Fatalf("expected nil profile, got %+v", profile)
	}
	if provider.calls != 0 {
		t.Errorf("gateway should not be called for insufficient history, got %d calls", provider.calls)
	}
}

func TestAnalyzeHonorsModelVerdict(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		`{"has_sufficient_data": false, "inferred_preferences": [], "activity_categories": [], "confidence": "low", "notes": "no pattern"}`,
	}}
	analyzer := NewPreferenceAnalyzer(provider, discardLogger(), 3)

	profile := analyzer.Analyze(context.Background(), txns("dining", "dining", "dining"), "Paris")
	if profile != nil {
		t.Fatalf("model said insufficient, expected nil, got %+v", profile)
	}
}

func TestAnalyzeReturnsProfile(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		"```json\n{\"has_sufficient_data\": true, \"inferred_preferences\": [\"fine dining\"], \"activity_categories\": [\"eat\"], \"confidence\": \"high\", \"notes\": \"clear pattern\"}\n```",
	}}
	analyzer := NewPreferenceAnalyzer(provider, discardLogger(), 3)

	profile := analyzer.Analyze(context.Background(), txns("dining", "dining", "dining", "museum"), "Paris")
	if profile == nil {
		t.Fatal("expected a profile")
	}
	if !profile.HasSufficientData || len(profile.InferredPreferences) != 1 {
		t.Errorf("unexpected profile: %+v", profile)
	}
}
