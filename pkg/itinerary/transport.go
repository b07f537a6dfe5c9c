package itinerary

import (
	"encoding/json"
	"fmt"
)

// TransportOption is implemented by every mode-specific option type.
type TransportOption interface {
	Mode() TransportMode
	Fare() float64
	Leg() Leg
}

// Leg is a mode-independent view of a transport option.
type Leg struct {
	Mode        TransportMode      `json:"mode"`
	Provider    string             `json:"provider"`
	Identifier  string             `json:"identifier,omitempty"`
	From        string             `json:"from"`
	To          string             `json:"to"`
	Departure   string             `json:"departure"`
	Arrival     string             `json:"arrival"`
	Class       string             `json:"class,omitempty"`
	Price       float64            `json:"price"`
	BookingLink string             `json:"bookingLink,omitempty"`
	Status      VerificationStatus `json:"verificationStatus,omitempty"`
}

// TransportGroup holds the alternatives for one mode, per direction.
type TransportGroup[T TransportOption] struct {
	OutboundOptions []T `json:"outboundOptions" validate:"dive"`
	InboundOptions  []T `json:"inboundOptions" validate:"dive"`
}

func (g *TransportGroup[T]) Options(dir Direction) []T {
	if g == nil {
		return nil
	}
	if dir == Inbound {
		return g.InboundOptions
	}
	return g.OutboundOptions
}

type FlightOption struct {
	DepartureAirport   string             `json:"departureAirport" validate:"required"`
	ArrivalAirport     string             `json:"arrivalAirport" validate:"required"`
	Airline            string             `json:"airline" validate:"required"`
	FlightNumber       string             `json:"flightNumber"`
	DepartureTime      string             `json:"departureTime"`
	ArrivalTime        string             `json:"arrivalTime"`
	Price              float64            `json:"price" validate:"gte=0"`
	CabinClass         string             `json:"cabinClass,omitempty"`
	BookingLink        string             `json:"bookingLink,omitempty" validate:"omitempty,url"`
	VerificationStatus VerificationStatus `json:"verificationStatus,omitempty" validate:"omitempty,oneof=Verified Unverified"`
}

func (f FlightOption) Mode() TransportMode { return ModeFlight }
func (f FlightOption) Fare() float64       { return f.Price }
func (f FlightOption) Leg() Leg {
	return Leg{
		Mode: ModeFlight, Provider: f.Airline, Identifier: f.FlightNumber,
		From: f.DepartureAirport, To: f.ArrivalAirport,
		Departure: f.DepartureTime, Arrival: f.ArrivalTime,
		Class: f.CabinClass, Price: f.Price, BookingLink: f.BookingLink, Status: f.VerificationStatus,
	}
}

type RailOption struct {
	DepartureStation   string             `json:"departureStation" validate:"required"`
	ArrivalStation     string             `json:"arrivalStation" validate:"required"`
	Operator           string             `json:"operator" validate:"required"`
	TrainName          string             `json:"trainName,omitempty"`
	TrainNumber        string             `json:"trainNumber,omitempty"`
	DepartureTime      string             `json:"departureTime"`
	ArrivalTime        string             `json:"arrivalTime"`
	Price              float64            `json:"price" validate:"gte=0"`
	BerthClass         string             `json:"berthClass,omitempty"`
	BookingLink        string             `json:"bookingLink,omitempty" validate:"omitempty,url"`
	VerificationStatus VerificationStatus `json:"verificationStatus,omitempty" validate:"omitempty,oneof=Verified Unverified"`
}

func (r RailOption) Mode() TransportMode { return ModeRailway }
func (r RailOption) Fare() float64       { return r.Price }
func (r RailOption) Leg() Leg {
	id := r.TrainNumber
	if id == "" {
		id = r.TrainName
	}
	return Leg{
		Mode: ModeRailway, Provider: r.Operator, Identifier: id,
		From: r.DepartureStation, To: r.ArrivalStation,
		Departure: r.DepartureTime, Arrival: r.ArrivalTime,
		Class: r.BerthClass, Price: r.Price, BookingLink: r.BookingLink, Status: r.VerificationStatus,
	}
}

type RoadOption struct {
	DeparturePoint string  `json:"departurePoint" validate:"required"`
	ArrivalPoint   string  `json:"arrivalPoint" validate:"required"`
	Operator       string  `json:"operator" validate:"required"`
	VehicleType    string  `json:"vehicleType,omitempty"`
	ServiceNumber  string  `json:"serviceNumber,omitempty"`
	DepartureTime  string  `json:"departureTime"`
	ArrivalTime    string  `json:"arrivalTime"`
	Price          float64 `json:"price" validate:"gte=0"`
	SeatType       string  `json:"seatType,omitempty"`
	BookingLink    string  `json:"bookingLink,omitempty" validate:"omitempty,url"`
}

func (r RoadOption) Mode() TransportMode { return ModeRoadway }
func (r RoadOption) Fare() float64       { return r.Price }
func (r RoadOption) Leg() Leg {
	return Leg{
		Mode: ModeRoadway, Provider: r.Operator, Identifier: r.ServiceNumber,
		From: r.DeparturePoint, To: r.ArrivalPoint,
		Departure: r.DepartureTime, Arrival: r.ArrivalTime,
		Class: r.SeatType, Price: r.Price, BookingLink: r.BookingLink,
	}
}

type OtherTransportOption struct {
	TransportType  string  `json:"transportType" validate:"required"`
	DeparturePoint string  `json:"departurePoint" validate:"required"`
	ArrivalPoint   string  `json:"arrivalPoint" validate:"required"`
	Provider       string  `json:"provider"`
	DepartureTime  string  `json:"departureTime"`
	ArrivalTime    string  `json:"arrivalTime"`
	Price          float64 `json:"price" validate:"gte=0"`
	Class          string  `json:"class,omitempty"`
	BookingLink    string  `json:"bookingLink,omitempty" validate:"omitempty,url"`
}

func (o OtherTransportOption) Mode() TransportMode { return ModeOther }
func (o OtherTransportOption) Fare() float64       { return o.Price }
func (o OtherTransportOption) Leg() Leg {
	return Leg{
		Mode: ModeOther, Provider: o.Provider, Identifier: o.TransportType,
		From: o.DeparturePoint, To: o.ArrivalPoint,
		Departure: o.DepartureTime, Arrival: o.ArrivalTime,
		Class: o.Class, Price: o.Price, BookingLink: o.BookingLink,
	}
}

// DecodeTransportOption unmarshals data into the option type of mode. A null
// or empty payload yields a nil option.
func DecodeTransportOption(mode TransportMode, data []byte) (TransportOption, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}
	switch mode {
	case ModeFlight:
		return decodeOption[FlightOption](data)
	case ModeRailway:
		return decodeOption[RailOption](data)
	case ModeRoadway:
		return decodeOption[RoadOption](data)
	case ModeOther:
		return decodeOption[OtherTransportOption](data)
	}
	return nil, fmt.Errorf("unknown transport mode %q", mode)
}

func decodeOption[T TransportOption](data []byte) (TransportOption, error) {
	var opt T
	if err := json.Unmarshal(data, &opt); err != nil {
		return nil, err
	}
	return opt, nil
}

func asOptions[T TransportOption](in []T) []TransportOption {
	out := make([]TransportOption, len(in))
	for i, o := range in {
		out[i] = o
	}
	return out
}

// TransportModes returns the modes that have a group in this document.
func (d *Document) TransportModes() []TransportMode {
	var out []TransportMode
	if d.Flights != nil {
		out = append(out, ModeFlight)
	}
	if d.Railways != nil {
		out = append(out, ModeRailway)
	}
	if d.Roadways != nil {
		out = append(out, ModeRoadway)
	}
	if d.OtherTransport != nil {
		out = append(out, ModeOther)
	}
	return out
}

// TransportOptions returns the alternatives for one slot, cheapest-first as
// generated. Absent modes yield nil.
func (d *Document) TransportOptions(mode TransportMode, dir Direction) []TransportOption {
	switch mode {
	case ModeFlight:
		return asOptions(d.Flights.Options(dir))
	case ModeRailway:
		return asOptions(d.Railways.Options(dir))
	case ModeRoadway:
		return asOptions(d.Roadways.Options(dir))
	case ModeOther:
		return asOptions(d.OtherTransport.Options(dir))
	}
	return nil
}

// RestampVerification sets the verification status of every flight and rail
// option to whatever fn returns for its leg.
func (d *Document) RestampVerification(fn func(Leg) VerificationStatus) {
	if d.Flights != nil {
		for _, list := range [][]FlightOption{d.Flights.OutboundOptions, d.Flights.InboundOptions} {
			for i := range list {
				list[i].VerificationStatus = fn(list[i].Leg())
			}
		}
	}
	if d.Railways != nil {
		for _, list := range [][]RailOption{d.Railways.OutboundOptions, d.Railways.InboundOptions} {
			for i := range list {
				list[i].VerificationStatus = fn(list[i].Leg())
			}
		}
	}
}
