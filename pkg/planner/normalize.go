package planner

import (
	"encoding/json"
	"regexp"
	"strings"

	"trip-planner-be/pkg/itinerary"
)

var (
	leadingFence  = regexp.MustCompile("^```[A-Za-z0-9_-]*[ \t]*\r?\n?")
	trailingFence = regexp.MustCompile("\\s*```$")
)

// Normalize recovers the first itinerary from a raw completion. Fences and
// surrounding prose are tolerated; the object is taken from the first '{' to
// the last '}' by position alone, so a stray '}' in trailing prose will break
// extraction.
func Normalize(raw string) (*itinerary.Document, error) {
	text := StripFences(raw)

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return nil, parseError("no object found", nil)
	}

	var resp struct {
		Itineraries *[]itinerary.Document `json:"itineraries"`
	}
	if err := json.Unmarshal([]byte(text[start:end+1]), &resp); err != nil {
		return nil, parseError("invalid JSON", err)
	}
	if resp.Itineraries == nil {
		return nil, parseError("empty itinerary list", nil)
	}
	if len(*resp.Itineraries) == 0 {
		return nil, emptyResultError()
	}

	doc := (*resp.Itineraries)[0]
	return &doc, nil
}

// StripFences trims whitespace and removes an opening and/or closing code
// fence. Either may be present without the other.
func StripFences(raw string) string {
	text := strings.TrimSpace(raw)
	text = leadingFence.ReplaceAllString(text, "")
	text = trailingFence.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
