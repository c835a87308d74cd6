// Package llmjson recovers structured data from LLM output that claims
// to be JSON but may be wrapped in markdown fences, surrounded by prose,
// or truncated. All functions are pure and deterministic: the same raw
// text always yields the same recovered object.
package llmjson

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Status reports how far down the recovery cascade a Decode call went.
type Status string

const (
	// StatusRecovered means the text parsed as JSON (directly or after
	// fence stripping / balanced-object extraction).
	StatusRecovered Status = "recovered"

	// StatusFallback means parsing failed but the template's field
	// scraper rebuilt a usable partial object.
	StatusFallback Status = "fallback"

	// StatusFailed means nothing usable was found; the template default
	// was applied so the caller still holds a valid object.
	StatusFailed Status = "failed"
)

// ScrapeFunc is a template-specific last resort: pull the required
// fields out of the raw text with regexes and write them into the
// caller's object. It returns true when at least one required field
// was found.
type ScrapeFunc func(raw string) bool

// DefaultFunc resets the caller's object to the template default.
type DefaultFunc func()

// Decode runs the full recovery cascade against raw:
//
//  1. strip markdown code fences
//  2. direct json.Unmarshal
//  3. extract the first balanced {...} object and parse that
//  4. template-specific field scrape (scrape, may be nil)
//  5. template default (applyDefault, may be nil)
//
// The caller's object is always left in a usable state; Decode never
// returns a nil-equivalent result.
func Decode(raw string, out interface{}, scrape ScrapeFunc, applyDefault DefaultFunc) Status {
	cleaned := Clean(raw)

	if err := json.Unmarshal([]byte(cleaned), out); err == nil {
		return StatusRecovered
	}

	if obj, ok := FirstObject(cleaned); ok {
		if err := json.Unmarshal([]byte(obj), out); err == nil {
			return StatusRecovered
		}
	}

	if scrape != nil {
		if applyDefault != nil {
			applyDefault()
		}
		if scrape(cleaned) {
			return StatusFallback
		}
	}

	if applyDefault != nil {
		applyDefault()
	}
	return StatusFailed
}

// Clean strips leading/trailing markdown code-fence markers and
// surrounding whitespace.
func Clean(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```JSON")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// FirstObject locates the first '{' and its matching balanced '}' in s,
// tracking nested brace depth and ignoring braces inside string
// literals. Returns the substring and true when a balanced object was
// found.
func FirstObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}

	return "", false
}

var fieldPatterns = struct {
	str string
	num string
	boo string
	arr string
}{
	str: `"%s"\s*:\s*"((?:[^"\\]|\\.)*)"`,
	num: `"%s"\s*:\s*(-?\d+(?:\.\d+)?)`,
	boo: `"%s"\s*:\s*(true|false)`,
	arr: `(?s)"%s"\s*:\s*\[(.*?)\]`,
}

var stringItemRe = regexp.MustCompile(`"((?:[^"\\]|\\.)*)"`)

// StringField scrapes a top-level string field by key.
func StringField(raw, key string) (string, bool) {
	re := regexp.MustCompile(fmt.Sprintf(fieldPatterns.str, regexp.QuoteMeta(key)))
	m := re.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	return unescape(m[1]), true
}

// NumberField scrapes a numeric field by key.
func NumberField(raw, key string) (float64, bool) {
	re := regexp.MustCompile(fmt.Sprintf(fieldPatterns.num, regexp.QuoteMeta(key)))
	m := re.FindStringSubmatch(raw)
	if m == nil {
		return 0, false
	}
	f, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// BoolField scrapes a boolean field by key.
func BoolField(raw, key string) (bool, bool) {
	re := regexp.MustCompile(fmt.Sprintf(fieldPatterns.boo, regexp.QuoteMeta(key)))
	m := re.FindStringSubmatch(raw)
	if m == nil {
		return false, false
	}
	return m[1] == "true", true
}

// AllStringFields scrapes every occurrence of a string field by key,
// in document order. Useful when a key repeats across nested objects.
func AllStringFields(raw, key string) []string {
	re := regexp.MustCompile(fmt.Sprintf(fieldPatterns.str, regexp.QuoteMeta(key)))
	matches := re.FindAllStringSubmatch(raw, -1)
	if len(matches) == 0 {
		return nil
	}
	result := make([]string, 0, len(matches))
	for _, m := range matches {
		result = append(result, unescape(m[1]))
	}
	return result
}

// StringArrayField scrapes an array-of-strings field by key, e.g.
// "activity_list": ["eat", "sightsee"].
func StringArrayField(raw, key string) ([]string, bool) {
	re := regexp.MustCompile(fmt.Sprintf(fieldPatterns.arr, regexp.QuoteMeta(key)))
	m := re.FindStringSubmatch(raw)
	if m == nil {
		return nil, false
	}

	items := stringItemRe.FindAllStringSubmatch(m[1], -1)
	if len(items) == 0 {
		return nil, false
	}

	result := make([]string, 0, len(items))
	for _, item := range items {
		result = append(result, unescape(item[1]))
	}
	return result, true
}

func unescape(s string) string {
	unquoted, err := strconv.Unquote(`"` + s + `"`)
	if err != nil {
		return s
	}
	return unquoted
}
