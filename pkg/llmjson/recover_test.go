package llmjson

import (
	"testing"
)

type vaguenessPayload struct {
	IsVague  bool   `json:"is_vague"`
	Location string `json:"location"`
	Reason   string `json:"reason"`
}

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "plain json untouched",
			raw:  `{"a": 1}`,
			want: `{"a": 1}`,
		},
		{
			name: "json fence",
			raw:  "```json\n{\"a\": 1}\n```",
			want: `{"a": 1}`,
		},
		{
			name: "bare fence",
			raw:  "```\n{\"a\": 1}\n```",
			want: `{"a": 1}`,
		},
		{
			name: "surrounding whitespace",
			raw:  "  \n {\"a\": 1} \n ",
			want: `{"a": 1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.raw); got != tt.want {
				t.Errorf("Clean() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFirstObject(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOk bool
	}{
		{
			name:   "bare object",
			input:  `{"a": 1}`,
			want:   `{"a": 1}`,
			wantOk: true,
		},
		{
			name:   "prose around object",
			input:  `Here is your plan: {"a": 1} hope that helps!`,
			want:   `{"a": 1}`,
			wantOk: true,
		},
		{
			name:   "nested objects",
			input:  `x {"a": {"b": 2}} y`,
			want:   `{"a": {"b": 2}}`,
			wantOk: true,
		},
		{
			name:   "braces inside string literals ignored",
			input:  `{"note": "use {curly} braces", "n": 1}`,
			want:   `{"note": "use {curly} braces", "n": 1}`,
			wantOk: true,
		},
		{
			name:   "escaped quote inside string",
			input:  `{"note": "she said \"hi}\"", "n": 1}`,
			want:   `{"note": "she said \"hi}\"", "n": 1}`,
			wantOk: true,
		},
		{
			name:   "truncated object",
			input:  `{"a": 1, "b":`,
			wantOk: false,
		},
		{
			name:   "no object at all",
			input:  `sorry, I cannot help with that`,
			wantOk: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FirstObject(tt.input)
			if ok != tt.wantOk {
				t.Fatalf("FirstObject() ok = %v, want %v", ok, tt.wantOk)
			}
			if ok && got != tt.want {
				t.Errorf("FirstObject() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodeCascade(t *testing.T) {
	scrape := func(out *vaguenessPayload) ScrapeFunc {
		return func(raw string) bool {
			found := false
			if v, ok := BoolField(raw, "is_vague"); ok {
				out.IsVague = v
				found = true
			}
			if loc, ok := StringField(raw, "location"); ok {
				out.Location = loc
				found = true
			}
			return found
		}
	}
	def := func(out *vaguenessPayload) DefaultFunc {
		return func() {
			*out = vaguenessPayload{IsVague: false}
		}
	}

	t.Run("fenced json recovers", func(t *testing.T) {
		var out vaguenessPayload
		status := Decode("```json\n{\"is_vague\": true, \"location\": \"Paris\", \"reason\": \"no detail\"}\n```",
			&out, scrape(&out), def(&out))
		if status != StatusRecovered {
			t.Fatalf("status = %v, want recovered", status)
		}
		if !out.IsVague || out.Location != "Paris" {
			t.Errorf("unexpected payload: %+v", out)
		}
	})

	t.Run("prose-wrapped json recovers", func(t *testing.T) {
		var out vaguenessPayload
		status := Decode(`Sure! {"is_vague": false, "location": "Boston", "reason": "specific"} done`,
			&out, scrape(&out), def(&out))
		if status != StatusRecovered {
			t.Fatalf("status = %v, want recovered", status)
		}
		if out.Location != "Boston" {
			t.Errorf("location = %q", out.Location)
		}
	})

	t.Run("broken json falls back to scrape", func(t *testing.T) {
		var out vaguenessPayload
		status := Decode(`"is_vague": true, "location": "Tokyo", and then it trails off`,
			&out, scrape(&out), def(&out))
		if status != StatusFallback {
			t.Fatalf("status = %v, want fallback", status)
		}
		if !out.IsVague || out.Location != "Tokyo" {
			t.Errorf("unexpected payload: %+v", out)
		}
	})

	t.Run("garbage applies default", func(t *testing.T) {
		var out vaguenessPayload
		status := Decode(`complete nonsense with no fields`, &out, scrape(&out), def(&out))
		if status != StatusFailed {
			t.Fatalf("status = %v, want failed", status)
		}
		if out.IsVague {
			t.Errorf("default should leave is_vague false")
		}
	})

	t.Run("deterministic for identical input", func(t *testing.T) {
		raw := `"is_vague": true, "location": "Lima" broken`
		var first, second vaguenessPayload
		s1 := Decode(raw, &first, scrape(&first), def(&first))
		s2 := Decode(raw, &second, scrape(&second), def(&second))
		if s1 != s2 {
			t.Fatalf("statuses differ: %v vs %v", s1, s2)
		}
		if first != second {
			t.Errorf("recovered objects differ: %+v vs %+v", first, second)
		}
	})
}

func TestFieldScrapers(t *testing.T) {
	raw := `{"activity_list": ["eat", "sightsee", "night life"], "budget": 250.5, "notes": "a \"fun\" day", "is_vague": false}`

	list, ok := StringArrayField(raw, "activity_list")
	if !ok {
		t.Fatal("activity_list not found")
	}
	if len(list) != 3 || list[0] != "eat" || list[2] != "night life" {
		t.Errorf("activity_list = %v", list)
	}

	budget, ok := NumberField(raw, "budget")
	if !ok || budget != 250.5 {
		t.Errorf("budget = %v (ok=%v)", budget, ok)
	}

	notes, ok := StringField(raw, "notes")
	if !ok || notes != `a "fun" day` {
		t.Errorf("notes = %q (ok=%v)", notes, ok)
	}

	vague, ok := BoolField(raw, "is_vague")
	if !ok || vague {
		t.Errorf("is_vague = %v (ok=%v)", vague, ok)
	}

	if _, ok := StringArrayField(raw, "missing"); ok {
		t.Error("missing key should not be found")
	}
}
