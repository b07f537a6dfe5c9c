package reconcile

import (
	"encoding/json"
	"sync"
	"testing"

	"trip-planner-be/pkg/itinerary"
	"trip-planner-be/pkg/itinerary/itinerarytest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoCities adds a Sintra location and a rail group to the Lisbon fixture.
func twoCities() *itinerary.Document {
	doc := itinerarytest.Lisbon()
	doc.TotalEstimatedCost = 1100
	doc.Railways = &itinerary.TransportGroup[itinerary.RailOption]{
		OutboundOptions: []itinerary.RailOption{
			{DepartureStation: "Rossio", ArrivalStation: "Sintra", Operator: "CP", Price: 5},
			{DepartureStation: "Rossio", ArrivalStation: "Sintra", Operator: "CP", TrainNumber: "18211", Price: 6},
		},
	}
	doc.Accommodation = append(doc.Accommodation, itinerary.LocationGroup{
		Location: "Sintra",
		Options: []itinerary.AccommodationOption{
			{Name: "Sintra Boutique", TotalPrice: 120},
			{Name: "Quinta da Regaleira Suites", TotalPrice: 210},
		},
	})
	return doc
}

func TestEngine_Seed(t *testing.T) {
	e := NewEngine()
	e.Seed(itinerarytest.Lisbon())

	assert.Equal(t, 210.0, e.BaseCost())
	total, ok := e.DerivedTotal()
	require.True(t, ok)
	assert.Equal(t, 800.0, total)

	st := e.Snapshot()
	assert.True(t, st.Seeded)
	require.Len(t, st.Transport, 2)
	assert.Equal(t, Slot{Mode: itinerary.ModeFlight, Direction: itinerary.Outbound}, st.Transport[0].Slot)
	assert.Equal(t, 0, st.Transport[0].Index)
	require.Len(t, st.Accommodation, 1)
	assert.Equal(t, "Casa do Largo", st.Accommodation[0].Option.Name)
}

func TestEngine_SeedIsIdempotent(t *testing.T) {
	e := NewEngine()
	doc := twoCities()

	e.Seed(doc)
	base1 := e.BaseCost()
	total1, _ := e.DerivedTotal()

	e.SelectAccommodationAt("Sintra", 1)
	e.Seed(doc)
	base2 := e.BaseCost()
	total2, _ := e.DerivedTotal()

	assert.Equal(t, base1, base2)
	assert.Equal(t, total1, total2)
	assert.Equal(t, 1100.0-150-140-5-300-120, base1)
}

func TestEngine_AccommodationSwapIsNeutral(t *testing.T) {
	doc := twoCities()
	sintra := doc.Location("Sintra").Options

	// Whatever else is selected, swapping A for B moves the total by B-A.
	setups := map[string]func(e *Engine){
		"defaults":         func(e *Engine) {},
		"pricier flight":   func(e *Engine) { e.SelectTransportAt(itinerary.ModeFlight, itinerary.Inbound, 1) },
		"pricier train":    func(e *Engine) { e.SelectTransportAt(itinerary.ModeRailway, itinerary.Outbound, 1) },
		"pricier lisbon":   func(e *Engine) { e.SelectAccommodationAt("Lisbon", 1) },
		"everything moved": func(e *Engine) {
			e.SelectTransportAt(itinerary.ModeFlight, itinerary.Outbound, 1)
			e.SelectAccommodationAt("Lisbon", 1)
		},
	}
	for name, setup := range setups {
		t.Run(name, func(t *testing.T) {
			e := NewEngine()
			e.Seed(doc)
			setup(e)

			e.SelectAccommodation("Sintra", sintra[0])
			before, _ := e.DerivedTotal()
			e.SelectAccommodation("Sintra", sintra[1])
			after, _ := e.DerivedTotal()

			assert.InDelta(t, sintra[1].TotalPrice-sintra[0].TotalPrice, after-before, 1e-9)
		})
	}
}

func TestEngine_BaseCostNeverMovesAfterSeed(t *testing.T) {
	e := NewEngine()
	doc := twoCities()
	e.Seed(doc)
	base := e.BaseCost()

	e.SelectTransportAt(itinerary.ModeFlight, itinerary.Outbound, 1)
	e.SelectTransportAt(itinerary.ModeFlight, itinerary.Inbound, 1)
	e.SelectTransport(itinerary.ModeRailway, itinerary.Outbound, doc.Railways.OutboundOptions[1])
	e.SelectAccommodationAt("Lisbon", 1)
	e.SelectAccommodationAt("Sintra", 1)
	e.SelectAccommodationAt("Sintra", 0)
	e.Recompute()

	assert.Equal(t, base, e.BaseCost())
	total, ok := e.DerivedTotal()
	require.True(t, ok)
	assert.Equal(t, base+165+180+6+340+120, total)
}

func TestEngine_FlightSwapMovesTotalByDifference(t *testing.T) {
	e := NewEngine()
	doc := itinerarytest.Lisbon()
	e.Seed(doc)

	// $140 inbound for $180: the total rises by exactly $40.
	e.SelectTransport(itinerary.ModeFlight, itinerary.Inbound, doc.Flights.InboundOptions[1])
	total, _ := e.DerivedTotal()
	assert.Equal(t, 840.0, total)

	st := e.Snapshot()
	assert.Equal(t, 1, st.Transport[1].Index)
}

func TestEngine_TotalWaitsForEveryLocation(t *testing.T) {
	doc := twoCities()
	// A location with nothing to choose can never be selected.
	doc.Accommodation = append(doc.Accommodation, itinerary.LocationGroup{Location: "Cascais"})

	e := NewEngine()
	e.Seed(doc)
	seeded, ok := e.DerivedTotal()
	require.True(t, ok)
	assert.Equal(t, 1100.0, seeded)

	e.SelectAccommodationAt("Lisbon", 1)
	e.SelectTransportAt(itinerary.ModeFlight, itinerary.Inbound, 1)

	total, ok := e.DerivedTotal()
	assert.True(t, ok)
	assert.Equal(t, seeded, total, "partial selections must not produce a partial total")
}

func TestEngine_IgnoresUnknownSlots(t *testing.T) {
	e := NewEngine()
	doc := itinerarytest.Lisbon()

	// Before seeding nothing happens.
	e.SelectAccommodation("Lisbon", doc.Accommodation[0].Options[1])
	assert.False(t, e.SelectTransportAt(itinerary.ModeFlight, itinerary.Outbound, 0))
	_, ok := e.DerivedTotal()
	assert.False(t, ok)

	e.Seed(doc)
	e.SelectAccommodation("Porto", itinerary.AccommodationOption{Name: "Nowhere", TotalPrice: 9999})
	e.SelectTransport(itinerary.ModeRailway, itinerary.Outbound, itinerary.RailOption{Price: 9999})
	e.SelectTransport(itinerary.ModeFlight, itinerary.Direction("sideways"), doc.Flights.InboundOptions[1])
	assert.False(t, e.SelectTransportAt(itinerary.ModeFlight, itinerary.Inbound, 7))
	assert.False(t, e.SelectAccommodationAt("Lisbon", -1))
	assert.False(t, e.SelectAccommodationAt("Porto", 0))

	total, _ := e.DerivedTotal()
	assert.Equal(t, 800.0, total)
	assert.Len(t, e.Snapshot().Accommodation, 1)
}

func TestEngine_Reset(t *testing.T) {
	e := NewEngine()
	e.Seed(itinerarytest.Lisbon())
	e.SelectAccommodationAt("Lisbon", 1)

	e.Reset()

	assert.Equal(t, 0.0, e.BaseCost())
	_, ok := e.DerivedTotal()
	assert.False(t, ok)
	assert.Nil(t, e.Document())
	assert.Equal(t, State{}, e.Snapshot())
}

func TestEngine_ConcurrentSelectionsStayConsistent(t *testing.T) {
	e := NewEngine()
	doc := twoCities()
	e.Seed(doc)
	base := e.BaseCost()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(3)
		go func(i int) {
			defer wg.Done()
			e.SelectTransportAt(itinerary.ModeFlight, itinerary.Inbound, i%2)
		}(i)
		go func(i int) {
			defer wg.Done()
			e.SelectAccommodationAt("Sintra", i%2)
		}(i)
		go func() {
			defer wg.Done()
			_ = e.Snapshot()
		}()
	}
	wg.Wait()

	st := e.Snapshot()
	want := st.BaseCost
	for _, c := range st.Transport {
		want += c.Option.Fare()
	}
	for _, c := range st.Accommodation {
		want += c.Option.TotalPrice
	}
	assert.Equal(t, base, st.BaseCost)
	assert.InDelta(t, want, st.DerivedTotal, 1e-9)
}

func TestState_JSONRoundTrip(t *testing.T) {
	e := NewEngine()
	e.Seed(twoCities())
	require.True(t, e.SelectTransportAt(itinerary.ModeRailway, itinerary.Outbound, 1))

	want := e.Snapshot()
	data, err := json.Marshal(want)
	require.NoError(t, err)

	var got State
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, want, got)

	for _, c := range got.Transport {
		require.NotNil(t, c.Option)
		assert.Equal(t, c.Mode, c.Option.Mode())
	}
}

func TestTransportChoice_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TransportChoice
		wantErr bool
	}{
		{
			name:  "flight",
			input: `{"mode":"flight","direction":"inbound","index":1,"option":{"departureAirport":"LIS","arrivalAirport":"JFK","airline":"Delta","price":180}}`,
			want: TransportChoice{
				Slot:   Slot{Mode: itinerary.ModeFlight, Direction: itinerary.Inbound},
				Index:  1,
				Option: itinerary.FlightOption{DepartureAirport: "LIS", ArrivalAirport: "JFK", Airline: "Delta", Price: 180},
			},
		},
		{
			name:  "null option",
			input: `{"mode":"roadway","direction":"outbound","index":0,"option":null}`,
			want:  TransportChoice{Slot: Slot{Mode: itinerary.ModeRoadway, Direction: itinerary.Outbound}},
		},
		{
			name:    "unknown mode",
			input:   `{"mode":"teleport","direction":"outbound","index":0,"option":{}}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got TransportChoice
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
