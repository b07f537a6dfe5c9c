// Package reconcile keeps a single live total in step with the transport and
// accommodation choices made against one itinerary.
package reconcile

import (
	"encoding/json"
	"fmt"
	"sync"

	"trip-planner-be/pkg/itinerary"
)

// Slot identifies one transport choice.
type Slot struct {
	Mode      itinerary.TransportMode `json:"mode"`
	Direction itinerary.Direction     `json:"direction"`
}

type TransportChoice struct {
	Slot
	Index  int                       `json:"index"`
	Option itinerary.TransportOption `json:"option"`
}

// UnmarshalJSON decodes Option into the concrete type of the slot's mode.
func (c *TransportChoice) UnmarshalJSON(data []byte) error {
	var raw struct {
		Mode      itinerary.TransportMode `json:"mode"`
		Direction itinerary.Direction     `json:"direction"`
		Index     int                     `json:"index"`
		Option    json.RawMessage         `json:"option"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	option, err := itinerary.DecodeTransportOption(raw.Mode, raw.Option)
	if err != nil {
		return fmt.Errorf("transport choice %s/%s: %w", raw.Mode, raw.Direction, err)
	}
	*c = TransportChoice{
		Slot:   Slot{Mode: raw.Mode, Direction: raw.Direction},
		Index:  raw.Index,
		Option: option,
	}
	return nil
}

type AccommodationChoice struct {
	Location string                        `json:"location"`
	Index    int                           `json:"index"`
	Option   itinerary.AccommodationOption `json:"option"`
}

// State is a consistent copy of the engine at one instant.
type State struct {
	Seeded        bool                  `json:"seeded"`
	BaseCost      float64               `json:"baseCost"`
	DerivedTotal  float64               `json:"derivedTotal"`
	TotalDefined  bool                  `json:"totalDefined"`
	Transport     []TransportChoice     `json:"transport"`
	Accommodation []AccommodationChoice `json:"accommodation"`
}

// Engine is safe for concurrent use. Every operation, including the
// recomputation it triggers, runs under one lock.
type Engine struct {
	mu sync.Mutex

	doc       *itinerary.Document
	transport map[Slot]TransportChoice
	lodging   map[string]AccommodationChoice

	baseCost     float64
	derivedTotal float64
	totalDefined bool
}

func NewEngine() *Engine {
	return &Engine{
		transport: make(map[Slot]TransportChoice),
		lodging:   make(map[string]AccommodationChoice),
	}
}

// Seed replaces all state with doc's defaults: the first option of every
// transport list and every location. BaseCost is fixed here and nowhere else.
func (e *Engine) Seed(doc *itinerary.Document) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.clear()
	if doc == nil {
		return
	}
	e.doc = doc

	var selected float64
	for _, mode := range doc.TransportModes() {
		for _, dir := range itinerary.Directions {
			opts := doc.TransportOptions(mode, dir)
			if len(opts) == 0 {
				continue
			}
			slot := Slot{Mode: mode, Direction: dir}
			e.transport[slot] = TransportChoice{Slot: slot, Index: 0, Option: opts[0]}
			selected += opts[0].Fare()
		}
	}
	for _, group := range doc.Accommodation {
		if len(group.Options) == 0 {
			continue
		}
		e.lodging[group.Location] = AccommodationChoice{Location: group.Location, Index: 0, Option: group.Options[0]}
		selected += group.Options[0].TotalPrice
	}

	e.baseCost = doc.TotalEstimatedCost - selected
	e.derivedTotal = doc.TotalEstimatedCost
	e.totalDefined = true
}

// SelectTransport replaces the choice for mode and direction, then recomputes.
// Modes the seeded document does not carry are ignored.
func (e *Engine) SelectTransport(mode itinerary.TransportMode, dir itinerary.Direction, option itinerary.TransportOption) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.doc == nil || option == nil || !dir.Valid() || !e.hasMode(mode) {
		return
	}
	index := -1
	for i, o := range e.doc.TransportOptions(mode, dir) {
		if o == option {
			index = i
			break
		}
	}
	slot := Slot{Mode: mode, Direction: dir}
	e.transport[slot] = TransportChoice{Slot: slot, Index: index, Option: option}
	e.recompute()
}

// SelectTransportAt selects by position. It reports false, changing nothing,
// when the slot or index does not exist.
func (e *Engine) SelectTransportAt(mode itinerary.TransportMode, dir itinerary.Direction, index int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.doc == nil {
		return false
	}
	opts := e.doc.TransportOptions(mode, dir)
	if index < 0 || index >= len(opts) {
		return false
	}
	slot := Slot{Mode: mode, Direction: dir}
	e.transport[slot] = TransportChoice{Slot: slot, Index: index, Option: opts[index]}
	e.recompute()
	return true
}

// SelectAccommodation replaces the choice for location, then recomputes.
// Locations the seeded document does not carry are ignored.
func (e *Engine) SelectAccommodation(location string, option itinerary.AccommodationOption) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.doc == nil {
		return
	}
	group := e.doc.Location(location)
	if group == nil {
		return
	}
	index := -1
	for i, o := range group.Options {
		if o == option {
			index = i
			break
		}
	}
	e.lodging[location] = AccommodationChoice{Location: location, Index: index, Option: option}
	e.recompute()
}

// SelectAccommodationAt selects by position, reporting false when the location
// or index does not exist.
func (e *Engine) SelectAccommodationAt(location string, index int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.doc == nil {
		return false
	}
	group := e.doc.Location(location)
	if group == nil || index < 0 || index >= len(group.Options) {
		return false
	}
	e.lodging[location] = AccommodationChoice{Location: location, Index: index, Option: group.Options[index]}
	e.recompute()
	return true
}

// Recompute refreshes DerivedTotal from the current choices.
func (e *Engine) Recompute() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.recompute()
}

// recompute only publishes a total when every location has a choice; until
// then the previous total stands.
func (e *Engine) recompute() {
	if e.doc == nil {
		return
	}
	sum := e.baseCost
	for _, c := range e.transport {
		sum += c.Option.Fare()
	}
	for _, location := range e.doc.Locations() {
		c, ok := e.lodging[location]
		if !ok {
			return
		}
		sum += c.Option.TotalPrice
	}
	e.derivedTotal = sum
	e.totalDefined = true
}

// Reset returns the engine to the empty state.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.clear()
}

func (e *Engine) clear() {
	e.doc = nil
	e.transport = make(map[Slot]TransportChoice)
	e.lodging = make(map[string]AccommodationChoice)
	e.baseCost = 0
	e.derivedTotal = 0
	e.totalDefined = false
}

func (e *Engine) hasMode(mode itinerary.TransportMode) bool {
	for _, m := range e.doc.TransportModes() {
		if m == mode {
			return true
		}
	}
	return false
}

func (e *Engine) BaseCost() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.baseCost
}

// DerivedTotal returns the live total and whether it is defined.
func (e *Engine) DerivedTotal() (float64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.derivedTotal, e.totalDefined
}

// Document returns the seeded document, or nil.
func (e *Engine) Document() *itinerary.Document {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doc
}

// Snapshot copies the full state. Transport choices come in mode then
// direction order, accommodation in document order.
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	st := State{
		Seeded:       e.doc != nil,
		BaseCost:     e.baseCost,
		DerivedTotal: e.derivedTotal,
		TotalDefined: e.totalDefined,
	}
	if e.doc == nil {
		return st
	}
	for _, mode := range itinerary.Modes {
		for _, dir := range itinerary.Directions {
			if c, ok := e.transport[Slot{Mode: mode, Direction: dir}]; ok {
				st.Transport = append(st.Transport, c)
			}
		}
	}
	for _, location := range e.doc.Locations() {
		if c, ok := e.lodging[location]; ok {
			st.Accommodation = append(st.Accommodation, c)
		}
	}
	return st
}
