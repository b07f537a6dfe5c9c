package itinerary_test

import (
	"testing"

	"trip-planner-be/pkg/itinerary"
	"trip-planner-be/pkg/itinerary/itinerarytest"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(d *itinerary.Document)
		wantErr string
	}{
		{"valid fixture", func(d *itinerary.Document) {}, ""},
		{"negative total", func(d *itinerary.Document) { d.TotalEstimatedCost = -1 }, "TotalEstimatedCost"},
		{"bad currency", func(d *itinerary.Document) { d.Currency = "DOLLARS" }, "Currency"},
		{"lowercase currency", func(d *itinerary.Document) { d.Currency = "usd" }, "Currency"},
		{"negative fare", func(d *itinerary.Document) { d.Flights.InboundOptions[1].Price = -5 }, "Price"},
		{"unknown activity", func(d *itinerary.Document) { d.DailyPlan[0].Activities[0].Type = "Party" }, "Type"},
		{"day gap", func(d *itinerary.Document) { d.DailyPlan[2].Day = 4 }, "dailyPlan[2] has day 4"},
		{"zero-based days", func(d *itinerary.Document) {
			for i := range d.DailyPlan {
				d.DailyPlan[i].Day = i
			}
		}, "Day"},
		{"unsourced vegetarian", func(d *itinerary.Document) { d.Accommodation[0].Options[0].PureVegetarian = true }, "pure vegetarian"},
		{"rating out of range", func(d *itinerary.Document) {
			r := 7.5
			d.Accommodation[0].Options[0].Rating = &r
		}, "Rating"},
		{"missing title", func(d *itinerary.Document) { d.Title = "" }, "Title"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := itinerarytest.Lisbon()
			tt.mutate(doc)
			err := itinerary.Validate(doc)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
