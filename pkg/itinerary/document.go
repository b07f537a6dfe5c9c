// Package itinerary defines the canonical trip plan produced by generation,
// along with its schema, defaulting policy and structural validation.
package itinerary

import "strings"

type TransportMode string

const (
	ModeFlight  TransportMode = "flight"
	ModeRailway TransportMode = "railway"
	ModeRoadway TransportMode = "roadway"
	ModeOther   TransportMode = "other"
)

// Modes lists every transport mode in display order.
var Modes = []TransportMode{ModeFlight, ModeRailway, ModeRoadway, ModeOther}

func (m TransportMode) Valid() bool {
	switch m {
	case ModeFlight, ModeRailway, ModeRoadway, ModeOther:
		return true
	}
	return false
}

type Direction string

const (
	Outbound Direction = "outbound"
	Inbound  Direction = "inbound"
)

var Directions = []Direction{Outbound, Inbound}

func (d Direction) Valid() bool {
	return d == Outbound || d == Inbound
}

type VerificationStatus string

const (
	Verified   VerificationStatus = "Verified"
	Unverified VerificationStatus = "Unverified"
)

type ActivityKind string

const (
	ActivitySightseeing ActivityKind = "Sightseeing"
	ActivityMeal        ActivityKind = "Meal"
	ActivityTravel      ActivityKind = "Travel"
	ActivityActivity    ActivityKind = "Activity"
	ActivityOther       ActivityKind = "Other"
)

var ActivityKinds = []ActivityKind{ActivitySightseeing, ActivityMeal, ActivityTravel, ActivityActivity, ActivityOther}

// Response is the envelope the compile phase must produce. Only the first
// candidate is ever used.
type Response struct {
	Itineraries []Document `json:"itineraries"`
}

// Document is one complete trip plan.
type Document struct {
	Title              string  `json:"title" validate:"required"`
	TotalEstimatedCost float64 `json:"totalEstimatedCost" validate:"gte=0"`
	Currency           string  `json:"currency" validate:"len=3,alpha,uppercase"`

	Flights        *TransportGroup[FlightOption]         `json:"flights,omitempty"`
	Railways       *TransportGroup[RailOption]           `json:"railways,omitempty"`
	Roadways       *TransportGroup[RoadOption]           `json:"roadways,omitempty"`
	OtherTransport *TransportGroup[OtherTransportOption] `json:"otherTransport,omitempty"`

	Accommodation  []LocationGroup `json:"accommodation" validate:"dive"`
	DailyPlan      []DayPlan       `json:"dailyPlan" validate:"dive"`
	TripEssentials *TripEssentials `json:"tripEssentials,omitempty"`
}

type LocationGroup struct {
	Location string                `json:"location" validate:"required"`
	Options  []AccommodationOption `json:"options" validate:"dive"`
}

type AccommodationOption struct {
	Name          string   `json:"name" validate:"required"`
	Type          string   `json:"type"`
	CheckInDate   string   `json:"checkInDate,omitempty"`
	CheckOutDate  string   `json:"checkOutDate,omitempty"`
	PricePerNight float64  `json:"pricePerNight" validate:"gte=0"`
	TotalPrice    float64  `json:"totalPrice" validate:"gte=0"`
	Rating        *float64 `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
	ReviewCount   *int     `json:"reviewCount,omitempty" validate:"omitempty,gte=0"`
	// PureVegetarian is only honoured with a VegetarianSourceLink backing it.
	PureVegetarian       bool   `json:"pureVegetarian,omitempty"`
	VegetarianSourceLink string `json:"vegetarianSourceLink,omitempty" validate:"omitempty,url"`
	BookingLink          string `json:"bookingLink,omitempty" validate:"omitempty,url"`
}

type DayPlan struct {
	Day        int        `json:"day" validate:"gte=1"`
	Date       string     `json:"date"`
	Title      string     `json:"title"`
	Activities []Activity `json:"activities" validate:"dive"`
}

type Activity struct {
	Time        string       `json:"time"`
	Type        ActivityKind `json:"type" validate:"oneof=Sightseeing Meal Travel Activity Other"`
	Description string       `json:"description" validate:"required"`
	Details     string       `json:"details,omitempty"`
}

type TripEssentials struct {
	WeatherInfo         string `json:"weatherInfo"`
	ClothingSuggestions string `json:"clothingSuggestions"`
	TravelWarnings      string `json:"travelWarnings"`
}

// Advisories splits TravelWarnings into individual items. Text without bullet
// markers comes back as a single item.
func (e TripEssentials) Advisories() []string {
	var out []string
	for _, line := range strings.Split(e.TravelWarnings, "\n") {
		for _, item := range strings.Split(line, "•") {
			item = strings.TrimSpace(item)
			item = strings.TrimSpace(strings.TrimLeft(item, "-*"))
			if item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}

// Location returns the accommodation group for name, or nil.
func (d *Document) Location(name string) *LocationGroup {
	for i := range d.Accommodation {
		if d.Accommodation[i].Location == name {
			return &d.Accommodation[i]
		}
	}
	return nil
}

// Locations returns the accommodation location names in document order.
func (d *Document) Locations() []string {
	out := make([]string, 0, len(d.Accommodation))
	for _, g := range d.Accommodation {
		out = append(out, g.Location)
	}
	return out
}

// CheapestSum is the sum of the cheapest option in every transport slot and
// every accommodation location. Empty slots contribute nothing.
func (d *Document) CheapestSum() float64 {
	var sum float64
	for _, mode := range d.TransportModes() {
		for _, dir := range Directions {
			opts := d.TransportOptions(mode, dir)
			if len(opts) == 0 {
				continue
			}
			min := opts[0].Fare()
			for _, o := range opts[1:] {
				if o.Fare() < min {
					min = o.Fare()
				}
			}
			sum += min
		}
	}
	for _, g := range d.Accommodation {
		if len(g.Options) == 0 {
			continue
		}
		min := g.Options[0].TotalPrice
		for _, o := range g.Options[1:] {
			if o.TotalPrice < min {
				min = o.TotalPrice
			}
		}
		sum += min
	}
	return sum
}
