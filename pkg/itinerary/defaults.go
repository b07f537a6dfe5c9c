package itinerary

import (
	"net/url"
	"strings"
)

const (
	DefaultCurrency = "USD"
	searchBaseURL   = "https://www.google.com/search?q="
)

// ApplyDefaults fills in every "if missing, use X" rule in one place. It runs
// once on a freshly parsed document, before validation.
func ApplyDefaults(doc *Document) {
	doc.Currency = strings.ToUpper(strings.TrimSpace(doc.Currency))
	if doc.Currency == "" {
		doc.Currency = DefaultCurrency
	}

	if doc.Flights != nil {
		defaultFlights(doc.Flights.OutboundOptions)
		defaultFlights(doc.Flights.InboundOptions)
	}
	if doc.Railways != nil {
		defaultRails(doc.Railways.OutboundOptions)
		defaultRails(doc.Railways.InboundOptions)
	}
	if doc.Roadways != nil {
		defaultRoads(doc.Roadways.OutboundOptions)
		defaultRoads(doc.Roadways.InboundOptions)
	}
	if doc.OtherTransport != nil {
		defaultOthers(doc.OtherTransport.OutboundOptions)
		defaultOthers(doc.OtherTransport.InboundOptions)
	}

	for gi := range doc.Accommodation {
		group := &doc.Accommodation[gi]
		for i := range group.Options {
			opt := &group.Options[i]
			opt.BookingLink = resolveLink(opt.BookingLink, SearchLink(opt.Name, group.Location))
			opt.VegetarianSourceLink = resolveLink(opt.VegetarianSourceLink, "")
			if opt.PureVegetarian && opt.VegetarianSourceLink == "" {
				opt.PureVegetarian = false
			}
		}
	}

	for di := range doc.DailyPlan {
		day := &doc.DailyPlan[di]
		if day.Day == 0 {
			day.Day = di + 1
		}
		for ai := range day.Activities {
			day.Activities[ai].Type = NormalizeActivityKind(string(day.Activities[ai].Type))
		}
	}
}

// SearchLink builds a web search URL from the non-empty terms.
func SearchLink(terms ...string) string {
	var parts []string
	for _, t := range terms {
		if t = strings.TrimSpace(t); t != "" {
			parts = append(parts, t)
		}
	}
	return searchBaseURL + url.QueryEscape(strings.Join(parts, " "))
}

// resolveLink returns link as an absolute http(s) URL, adding a missing
// scheme. Links that still do not parse are replaced by fallback.
func resolveLink(link, fallback string) string {
	link = strings.TrimSpace(link)
	if link == "" {
		return fallback
	}
	if !strings.Contains(link, "://") {
		link = "https://" + link
	}
	u, err := url.Parse(link)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" || strings.ContainsAny(u.Host, " ") {
		return fallback
	}
	return u.String()
}

// NormalizeActivityKind maps free text onto the fixed set, case-insensitively.
// Anything unrecognised becomes Other.
func NormalizeActivityKind(raw string) ActivityKind {
	raw = strings.TrimSpace(raw)
	for _, k := range ActivityKinds {
		if strings.EqualFold(raw, string(k)) {
			return k
		}
	}
	return ActivityOther
}

func defaultFlights(opts []FlightOption) {
	for i := range opts {
		o := &opts[i]
		o.BookingLink = resolveLink(o.BookingLink, SearchLink("flights", o.Airline, o.FlightNumber, o.DepartureAirport, "to", o.ArrivalAirport))
		if o.VerificationStatus == "" {
			o.VerificationStatus = Unverified
		}
	}
}

func defaultRails(opts []RailOption) {
	for i := range opts {
		o := &opts[i]
		o.BookingLink = resolveLink(o.BookingLink, SearchLink("train", o.Operator, o.TrainNumber, o.DepartureStation, "to", o.ArrivalStation))
		if o.VerificationStatus == "" {
			o.VerificationStatus = Unverified
		}
	}
}

func defaultRoads(opts []RoadOption) {
	for i := range opts {
		o := &opts[i]
		o.BookingLink = resolveLink(o.BookingLink, SearchLink("bus", o.Operator, o.DeparturePoint, "to", o.ArrivalPoint))
	}
}

func defaultOthers(opts []OtherTransportOption) {
	for i := range opts {
		o := &opts[i]
		o.BookingLink = resolveLink(o.BookingLink, SearchLink(o.TransportType, o.Provider, o.DeparturePoint, "to", o.ArrivalPoint))
	}
}
