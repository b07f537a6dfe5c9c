package planner

import (
	"errors"
	"testing"

	"trip-planner-be/pkg/itinerary/itinerarytest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalDoc = `{"itineraries":[{"title":"Weekend in Porto","totalEstimatedCost":420,"currency":"EUR","accommodation":[],"dailyPlan":[]}]}`

func TestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantTitle string
		wantKind  error
		wantMsg   string
	}{
		{name: "bare object", raw: minimalDoc, wantTitle: "Weekend in Porto"},
		{name: "surrounding whitespace", raw: "\n\t  " + minimalDoc + "  \n", wantTitle: "Weekend in Porto"},
		{name: "json fence", raw: "```json\n" + minimalDoc + "\n```", wantTitle: "Weekend in Porto"},
		{name: "plain fence", raw: "```\n" + minimalDoc + "\n```", wantTitle: "Weekend in Porto"},
		{name: "trailing fence only", raw: minimalDoc + "\n```", wantTitle: "Weekend in Porto"},
		{name: "leading fence only", raw: "```json\n" + minimalDoc, wantTitle: "Weekend in Porto"},
		{name: "prose around object", raw: "Sure, here you go:\n" + minimalDoc + "\nHope that helps!", wantTitle: "Weekend in Porto"},
		{
			name:      "nested braces inside strings",
			raw:       `{"itineraries":[{"title":"Curly {braces} trip","totalEstimatedCost":1,"currency":"USD","accommodation":[],"dailyPlan":[]}]}`,
			wantTitle: "Curly {braces} trip",
		},
		{
			name:      "first candidate wins",
			raw:       `{"itineraries":[{"title":"First","totalEstimatedCost":1,"currency":"USD"},{"title":"Second","totalEstimatedCost":2,"currency":"USD"}]}`,
			wantTitle: "First",
		},
		{name: "no object", raw: "I cannot help with that.", wantKind: ErrParse, wantMsg: "no object found"},
		{name: "closing before opening", raw: "} nothing here {", wantKind: ErrParse, wantMsg: "no object found"},
		{name: "syntax error", raw: `{"itineraries": [ {"title": }`, wantKind: ErrParse, wantMsg: "invalid JSON"},
		{name: "missing list", raw: `{"title":"x"}`, wantKind: ErrParse, wantMsg: "empty itinerary list"},
		{name: "null list", raw: `{"itineraries":null}`, wantKind: ErrParse, wantMsg: "empty itinerary list"},
		{name: "empty list", raw: `{ "itineraries": [] }`, wantKind: ErrEmptyResult},
		{name: "stray brace in trailing prose", raw: minimalDoc + "\nUse {placeholders} freely", wantKind: ErrParse, wantMsg: "invalid JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Normalize(tt.raw)
			if tt.wantKind != nil {
				require.Error(t, err)
				assert.Nil(t, doc)
				assert.True(t, errors.Is(err, tt.wantKind), "got %v", err)
				if tt.wantMsg != "" {
					assert.Contains(t, err.Error(), tt.wantMsg)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTitle, doc.Title)
		})
	}
}

func TestNormalize_FenceRoundTrip(t *testing.T) {
	body := itinerarytest.ResponseJSON(itinerarytest.Lisbon())

	plain, err := Normalize(body)
	require.NoError(t, err)
	fenced, err := Normalize("```json\n" + body + "\n```")
	require.NoError(t, err)

	assert.Equal(t, plain, fenced)
	assert.Equal(t, itinerarytest.Lisbon(), plain)
}

func TestNormalize_EmptyListIsNotParseError(t *testing.T) {
	_, err := Normalize(`{"itineraries": []}`)
	assert.ErrorIs(t, err, ErrEmptyResult)
	assert.NotErrorIs(t, err, ErrParse)
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, "{}", StripFences("```json\n{}\n```"))
	assert.Equal(t, "{}", StripFences("```JSON {}```"))
	assert.Equal(t, "{}", StripFences("  {}  "))
}
