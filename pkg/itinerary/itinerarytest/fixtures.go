// Package itinerarytest holds shared itinerary fixtures for tests.
package itinerarytest

import (
	"encoding/json"

	"trip-planner-be/pkg/itinerary"
)

// Lisbon returns a three-day Lisbon plan: total 800, one flight group
// (outbound 150/165, inbound 140/180) and one "Lisbon" location (300/340).
func Lisbon() *itinerary.Document {
	return &itinerary.Document{
		Title:              "3 Days in Lisbon",
		TotalEstimatedCost: 800,
		Currency:           "USD",
		Flights: &itinerary.TransportGroup[itinerary.FlightOption]{
			OutboundOptions: []itinerary.FlightOption{
				{DepartureAirport: "JFK", ArrivalAirport: "LIS", Airline: "TAP Air Portugal", FlightNumber: "TP210", DepartureTime: "2026-11-02T18:00:00Z", ArrivalTime: "2026-11-03T06:15:00Z", Price: 150, VerificationStatus: itinerary.Verified},
				{DepartureAirport: "JFK", ArrivalAirport: "LIS", Airline: "United", FlightNumber: "UA66", DepartureTime: "2026-11-02T21:00:00Z", ArrivalTime: "2026-11-03T09:05:00Z", Price: 165},
			},
			InboundOptions: []itinerary.FlightOption{
				{DepartureAirport: "LIS", ArrivalAirport: "JFK", Airline: "TAP Air Portugal", FlightNumber: "TP209", DepartureTime: "2026-11-05T11:00:00Z", ArrivalTime: "2026-11-05T14:05:00Z", Price: 140},
				{DepartureAirport: "LIS", ArrivalAirport: "JFK", Airline: "Delta", FlightNumber: "DL245", DepartureTime: "2026-11-05T12:30:00Z", ArrivalTime: "2026-11-05T15:40:00Z", Price: 180},
			},
		},
		Accommodation: []itinerary.LocationGroup{
			{Location: "Lisbon", Options: []itinerary.AccommodationOption{
				{Name: "Casa do Largo", Type: "Guesthouse", PricePerNight: 100, TotalPrice: 300, BookingLink: "https://www.booking.com/hotel/pt/casa-do-largo.html"},
				{Name: "Hotel Alfama", Type: "Hotel", PricePerNight: 113.33, TotalPrice: 340},
			}},
		},
		DailyPlan: []itinerary.DayPlan{
			{Day: 1, Date: "2026-11-03", Title: "Arrival and Baixa", Activities: []itinerary.Activity{
				{Time: "9:00 AM", Type: itinerary.ActivityTravel, Description: "Metro from the airport"},
				{Time: "1:00 PM", Type: itinerary.ActivityMeal, Description: "Lunch at Time Out Market"},
			}},
			{Day: 2, Date: "2026-11-04", Title: "Belem", Activities: []itinerary.Activity{
				{Time: "Morning", Type: itinerary.ActivitySightseeing, Description: "Jeronimos Monastery"},
			}},
			{Day: 3, Date: "2026-11-05", Title: "Departure", Activities: []itinerary.Activity{
				{Time: "8:00 AM", Type: itinerary.ActivityTravel, Description: "Transfer to LIS"},
			}},
		},
		TripEssentials: &itinerary.TripEssentials{
			WeatherInfo:         "Mild, 15-19C with occasional rain.",
			ClothingSuggestions: "Layers and comfortable shoes for the hills.",
			TravelWarnings:      "• Watch for pickpockets on tram 28\n• Cobblestones get slippery when wet",
		},
	}
}

// ResponseJSON wraps docs in the {"itineraries": [...]} envelope.
func ResponseJSON(docs ...*itinerary.Document) string {
	resp := itinerary.Response{Itineraries: make([]itinerary.Document, 0, len(docs))}
	for _, d := range docs {
		resp.Itineraries = append(resp.Itineraries, *d)
	}
	b, err := json.Marshal(resp)
	if err != nil {
		panic(err)
	}
	return string(b)
}
