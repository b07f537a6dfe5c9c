package planner

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"trip-planner-be/pkg/itinerary"
	"trip-planner-be/pkg/llm"
)

const (
	ToolVerifyFlightLeg = "verify_flight_leg"
	ToolVerifyRailLeg   = "verify_rail_leg"

	statusUnsupported = "Unsupported"
)

// ToolRegistry declares the verification actions and answers calls to them.
// Answers are synthesized locally; nothing is looked up.
type ToolRegistry struct {
	modes map[string]itinerary.TransportMode
}

func NewToolRegistry() *ToolRegistry {
	return &ToolRegistry{modes: map[string]itinerary.TransportMode{
		ToolVerifyFlightLeg: itinerary.ModeFlight,
		ToolVerifyRailLeg:   itinerary.ModeRailway,
	}}
}

func legParameters(kind, endpoint string) *llm.Schema {
	return llm.Object("", []llm.Property{
		llm.Prop("departure", llm.String("Departure "+endpoint+".")),
		llm.Prop("arrival", llm.String("Arrival "+endpoint+".")),
		llm.Prop("date", llm.String("Travel date in ISO 8601 format.")),
		llm.Prop("provider", llm.String("The "+kind+" operating the service.")),
		llm.Prop("identifier", llm.String("Flight or train number, if known.")),
		llm.Prop("proposedPrice", llm.Number("The one-way price you intend to quote, in the trip currency.")),
	}, "departure", "arrival", "date", "provider", "proposedPrice")
}

func (r *ToolRegistry) Declarations() []llm.ToolDeclaration {
	return []llm.ToolDeclaration{
		{
			Name:        ToolVerifyFlightLeg,
			Description: "Verify that a specific flight leg exists on the given date and confirm its price before quoting it.",
			Parameters:  legParameters("airline", "airport code"),
		},
		{
			Name:        ToolVerifyRailLeg,
			Description: "Verify that a specific train leg runs on the given date and confirm its fare before quoting it.",
			Parameters:  legParameters("railway operator", "station"),
		},
	}
}

// Execute answers one call. Every call gets exactly one result, including
// calls to tools that do not exist.
func (r *ToolRegistry) Execute(call llm.ToolCall) llm.ToolResult {
	result := llm.ToolResult{CallID: call.ID, Name: call.Name}

	mode, ok := r.modes[call.Name]
	if !ok {
		result.Response = map[string]any{
			"status":  statusUnsupported,
			"message": fmt.Sprintf("No tool named %q is available.", call.Name),
		}
		return result
	}

	departure := stringArg(call.Args, "departure")
	arrival := stringArg(call.Args, "arrival")
	provider := stringArg(call.Args, "provider")
	date := stringArg(call.Args, "date")
	price, _ := numberArg(call.Args, "proposedPrice")

	result.Response = map[string]any{
		"status":    string(itinerary.Verified),
		"mode":      string(mode),
		"departure": departure,
		"arrival":   arrival,
		"price":     price,
		"message": fmt.Sprintf("%s %s from %s to %s on %s is available at %s.",
			provider, legLabel(mode, stringArg(call.Args, "identifier")), departure, arrival, date,
			strconv.FormatFloat(price, 'f', -1, 64)),
	}
	return result
}

func legLabel(mode itinerary.TransportMode, id string) string {
	noun := "flight"
	if mode == itinerary.ModeRailway {
		noun = "train"
	}
	if id == "" {
		return noun
	}
	return noun + " " + id
}

// verifiedLegs indexes the Verified results in a transcript.
type verifiedLegs []llm.ToolResult

// confirms reports whether some Verified result covers leg's endpoints and price.
func (v verifiedLegs) confirms(leg itinerary.Leg) bool {
	for _, r := range v {
		if r.Response["status"] != string(itinerary.Verified) || r.Response["mode"] != string(leg.Mode) {
			continue
		}
		price, ok := numberArg(r.Response, "price")
		if !ok || math.Abs(price-leg.Price) > 0.005 {
			continue
		}
		if sameEndpoint(stringArg(r.Response, "departure"), leg.From) &&
			sameEndpoint(stringArg(r.Response, "arrival"), leg.To) {
			return true
		}
	}
	return false
}

func sameEndpoint(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if a == "" || b == "" {
		return false
	}
	return strings.EqualFold(a, b) ||
		strings.Contains(strings.ToLower(a), strings.ToLower(b)) ||
		strings.Contains(strings.ToLower(b), strings.ToLower(a))
}

func stringArg(args map[string]any, key string) string {
	switch v := args[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// numberArg reads a numeric argument. Models sometimes send numbers as strings.
func numberArg(args map[string]any, key string) (float64, bool) {
	switch v := args[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimLeft(v, "$€£¥₹ ")), 64)
		return f, err == nil
	}
	return 0, false
}
