package itinerary

import "trip-planner-be/pkg/llm"

// Sub-agent response shapes. Each is independent; ItinerarySchema unions them.

const deviationHint = "Provide a few choices within a 10% price deviation of the most optimal option, cheapest first."

func transportGroupSchema(description string, item *llm.Schema) *llm.Schema {
	return llm.Object(description, []llm.Property{
		llm.Prop("outboundOptions", llm.Array("Outbound options. "+deviationHint, item)),
		llm.Prop("inboundOptions", llm.Array("Inbound options. "+deviationHint, item)),
	}, "outboundOptions", "inboundOptions")
}

func verificationSchema() *llm.Schema {
	return llm.Enum("Verified only after a verification tool confirmed this exact leg and price; otherwise Unverified.",
		string(Verified), string(Unverified))
}

func FlightAgentSchema() *llm.Schema {
	item := llm.Object("", []llm.Property{
		llm.Prop("departureAirport", llm.String("Departure airport code (e.g., SFO).")),
		llm.Prop("arrivalAirport", llm.String("Arrival airport code (e.g., LIR).")),
		llm.Prop("airline", llm.String("Name of the airline.")),
		llm.Prop("flightNumber", llm.String("Flight number.")),
		llm.Prop("departureTime", llm.String("Departure date and time in ISO 8601 format.")),
		llm.Prop("arrivalTime", llm.String("Arrival date and time in ISO 8601 format.")),
		llm.Prop("price", llm.Number("Price for the one-way ticket.")),
		llm.Prop("cabinClass", llm.String("Cabin class (e.g., Economy).")),
		llm.Prop("bookingLink", llm.String("A URL to a booking website or search page for this flight.")),
		llm.Prop("verificationStatus", verificationSchema()),
	}, "departureAirport", "arrivalAirport", "airline", "flightNumber", "departureTime", "arrivalTime", "price")
	return transportGroupSchema("The flight agent's round-trip flight options.", item)
}

func RailwayAgentSchema() *llm.Schema {
	item := llm.Object("", []llm.Property{
		llm.Prop("departureStation", llm.String("Departure station name or code.")),
		llm.Prop("arrivalStation", llm.String("Arrival station name or code.")),
		llm.Prop("operator", llm.String("Railway operator.")),
		llm.Prop("trainName", llm.String("Train name, if any.")),
		llm.Prop("trainNumber", llm.String("Train number.")),
		llm.Prop("departureTime", llm.String("Departure date and time in ISO 8601 format.")),
		llm.Prop("arrivalTime", llm.String("Arrival date and time in ISO 8601 format.")),
		llm.Prop("price", llm.Number("Price for the one-way ticket.")),
		llm.Prop("berthClass", llm.String("Seat or berth class.")),
		llm.Prop("bookingLink", llm.String("A URL to a booking website or search page for this train.")),
		llm.Prop("verificationStatus", verificationSchema()),
	}, "departureStation", "arrivalStation", "operator", "departureTime", "arrivalTime", "price")
	return transportGroupSchema("The railway agent's train options, when rail is a sensible way to travel.", item)
}

func RoadwayAgentSchema() *llm.Schema {
	item := llm.Object("", []llm.Property{
		llm.Prop("departurePoint", llm.String("Departure terminal or city.")),
		llm.Prop("arrivalPoint", llm.String("Arrival terminal or city.")),
		llm.Prop("operator", llm.String("Bus or coach operator.")),
		llm.Prop("vehicleType", llm.String("Vehicle type (e.g., Sleeper bus, Coach).")),
		llm.Prop("serviceNumber", llm.String("Service or route number.")),
		llm.Prop("departureTime", llm.String("Departure date and time in ISO 8601 format.")),
		llm.Prop("arrivalTime", llm.String("Arrival date and time in ISO 8601 format.")),
		llm.Prop("price", llm.Number("Price for the one-way ticket.")),
		llm.Prop("seatType", llm.String("Seat type.")),
		llm.Prop("bookingLink", llm.String("A URL to a booking website or search page for this service.")),
	}, "departurePoint", "arrivalPoint", "operator", "departureTime", "arrivalTime", "price")
	return transportGroupSchema("The roadway agent's bus and coach options, when road travel is a sensible way to travel.", item)
}

func OtherTransportAgentSchema() *llm.Schema {
	item := llm.Object("", []llm.Property{
		llm.Prop("transportType", llm.String("Kind of transport (e.g., Ferry, Cable car).")),
		llm.Prop("departurePoint", llm.String("Where the journey starts.")),
		llm.Prop("arrivalPoint", llm.String("Where the journey ends.")),
		llm.Prop("provider", llm.String("Operator of the service.")),
		llm.Prop("departureTime", llm.String("Departure date and time in ISO 8601 format.")),
		llm.Prop("arrivalTime", llm.String("Arrival date and time in ISO 8601 format.")),
		llm.Prop("price", llm.Number("Price for the one-way ticket.")),
		llm.Prop("class", llm.String("Travel class, if any.")),
		llm.Prop("bookingLink", llm.String("A URL to a booking website or search page for this service.")),
	}, "transportType", "departurePoint", "arrivalPoint", "departureTime", "arrivalTime", "price")
	return transportGroupSchema("Any other transport needed to reach the destination (ferries, cable cars, ...).", item)
}

func AccommodationAgentSchema() *llm.Schema {
	option := llm.Object("", []llm.Property{
		llm.Prop("name", llm.String("Name of the hotel or accommodation.")),
		llm.Prop("type", llm.String("Type of accommodation (e.g., Hotel, Airbnb, Hostel).")),
		llm.Prop("checkInDate", llm.String("Check-in date in ISO 8601 format.")),
		llm.Prop("checkOutDate", llm.String("Check-out date in ISO 8601 format.")),
		llm.Prop("pricePerNight", llm.Number("Cost per night.")),
		llm.Prop("totalPrice", llm.Number("Total cost for the entire stay at this location.")),
		llm.Prop("rating", llm.Number("Guest rating out of 5, if known.")),
		llm.Prop("reviewCount", llm.Integer("Number of guest reviews, if known.")),
		llm.Prop("pureVegetarian", llm.Boolean("True only when a source confirms the property serves exclusively vegetarian food.")),
		llm.Prop("vegetarianSourceLink", llm.String("Mandatory when pureVegetarian is true: URL of the source confirming it.")),
		llm.Prop("bookingLink", llm.String("A URL to a booking website or search page for this accommodation.")),
	}, "name", "type", "pricePerNight", "totalPrice")

	group := llm.Object("", []llm.Property{
		llm.Prop("location", llm.String("The city or area for this group of accommodation options (e.g., 'Kyoto', 'Hakone').")),
		llm.Prop("options", llm.Array("Accommodation options for this location, sorted by totalPrice ascending.", option)),
	}, "location", "options")

	return llm.Array("The accommodation agent's findings, grouped by location. For each location, provide several options sorted by total price in ascending order.", group)
}

func DailyPlannerAgentSchema() *llm.Schema {
	kinds := make([]string, len(ActivityKinds))
	for i, k := range ActivityKinds {
		kinds[i] = string(k)
	}
	activity := llm.Object("", []llm.Property{
		llm.Prop("time", llm.String("Estimated time for the activity (e.g., '9:00 AM', 'Afternoon').")),
		llm.Prop("type", llm.Enum("Type of activity.", kinds...)),
		llm.Prop("description", llm.String("A short description of the activity.")),
		llm.Prop("details", llm.String("Optional extra details, tips, or notes about the activity.")),
	}, "time", "type", "description")

	day := llm.Object("", []llm.Property{
		llm.Prop("day", llm.Integer("The day number of the itinerary, starting at 1.")),
		llm.Prop("date", llm.String("The specific date for this day's plan in ISO 8601 format.")),
		llm.Prop("title", llm.String("A short, catchy title for the day's theme.")),
		llm.Prop("activities", llm.Array("", activity)),
	}, "day", "date", "title", "activities")

	return llm.Array("The daily planner agent's day-by-day schedule, including meals and travel between accommodation locations.", day)
}

func EssentialsAgentSchema() *llm.Schema {
	return llm.Object("The trip advisor agent's report on essential information.", []llm.Property{
		llm.Prop("weatherInfo", llm.String("Expected weather at the destination during the travel dates.")),
		llm.Prop("clothingSuggestions", llm.String("What to pack given the weather and planned activities.")),
		llm.Prop("travelWarnings", llm.String("Travel warnings, safety tips or etiquette as bullet points. If none, state that clearly.")),
	}, "weatherInfo", "clothingSuggestions", "travelWarnings")
}

// ItinerarySchema is the shape of one Document.
func ItinerarySchema() *llm.Schema {
	head := llm.Object("A complete travel itinerary.", []llm.Property{
		llm.Prop("title", llm.String("A descriptive title for the trip.")),
		llm.Prop("totalEstimatedCost", llm.Number("Sum of the cheapest option in every transport slot and every accommodation location, plus a buffer for activities and meals.")),
		llm.Prop("currency", llm.String("Three-letter currency code used for every monetary value (default USD).")),
	}, "title", "totalEstimatedCost", "currency")

	agents := llm.Object("", []llm.Property{
		llm.Prop("flights", FlightAgentSchema()),
		llm.Prop("railways", RailwayAgentSchema()),
		llm.Prop("roadways", RoadwayAgentSchema()),
		llm.Prop("otherTransport", OtherTransportAgentSchema()),
		llm.Prop("accommodation", AccommodationAgentSchema()),
		llm.Prop("dailyPlan", DailyPlannerAgentSchema()),
		llm.Prop("tripEssentials", EssentialsAgentSchema()),
	}, "accommodation", "dailyPlan", "tripEssentials")

	return head.Merge(agents)
}

// MasterSchema is the compile-phase response constraint.
func MasterSchema() *llm.Schema {
	return llm.Object("", []llm.Property{
		llm.Prop("itineraries", llm.Array("Itinerary candidates; only the first is used.", ItinerarySchema())),
	}, "itineraries")
}
