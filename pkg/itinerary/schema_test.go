package itinerary

import (
	"testing"

	"trip-planner-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMasterSchema(t *testing.T) {
	master := MasterSchema()
	require.Equal(t, llm.TypeObject, master.Type)
	assert.Equal(t, []string{"itineraries"}, master.Required)

	list := master.Properties["itineraries"]
	require.Equal(t, llm.TypeArray, list.Type)

	doc := list.Items
	assert.Equal(t, []string{
		"title", "totalEstimatedCost", "currency",
		"flights", "railways", "roadways", "otherTransport",
		"accommodation", "dailyPlan", "tripEssentials",
	}, doc.PropertyOrdering)
	assert.ElementsMatch(t, []string{"title", "totalEstimatedCost", "currency", "accommodation", "dailyPlan", "tripEssentials"}, doc.Required)

	for _, name := range doc.PropertyOrdering {
		assert.NotNil(t, doc.Properties[name], name)
	}
}

func TestAgentSchemas_MatchDocumentTags(t *testing.T) {
	flights := FlightAgentSchema()
	item := flights.Properties["outboundOptions"].Items
	for _, field := range []string{"departureAirport", "arrivalAirport", "airline", "price", "verificationStatus"} {
		assert.Contains(t, item.Properties, field)
	}
	assert.Equal(t, []string{"Verified", "Unverified"}, item.Properties["verificationStatus"].Enum)

	day := DailyPlannerAgentSchema().Items
	assert.Equal(t, llm.TypeInteger, day.Properties["day"].Type)
	assert.Len(t, day.Properties["activities"].Items.Properties["type"].Enum, len(ActivityKinds))

	acc := AccommodationAgentSchema().Items.Properties["options"].Items
	assert.Contains(t, acc.Properties, "vegetarianSourceLink")
	assert.Contains(t, acc.Required, "totalPrice")
}
