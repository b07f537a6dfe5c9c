package main

import (
	"fmt"
	"io"
	"sort"

	"trip-planner-be/internal/dto"
	"trip-planner-be/pkg/events"
	"trip-planner-be/pkg/itinerary"

	"github.com/fatih/color"
)

var (
	heading = color.New(color.FgCyan, color.Bold).SprintFunc()
	label   = color.New(color.FgYellow).SprintFunc()
	good    = color.New(color.FgGreen).SprintFunc()
	bad     = color.New(color.FgRed).SprintFunc()
)

func renderSession(w io.Writer, res *dto.SessionResponse) {
	fmt.Fprintf(w, "%s %s\n", label("Session:"), res.Id)
	doc := res.Itinerary
	if doc == nil {
		fmt.Fprintln(w, "(no itinerary)")
		return
	}

	fmt.Fprintf(w, "\n%s\n", heading(doc.Title))
	for _, mode := range doc.TransportModes() {
		for _, dir := range itinerary.Directions {
			opts := doc.TransportOptions(mode, dir)
			if len(opts) == 0 {
				continue
			}
			fmt.Fprintf(w, "%s\n", label(fmt.Sprintf("%s / %s", mode, dir)))
			for i, opt := range opts {
				leg := opt.Leg()
				fmt.Fprintf(w, "  [%d] %s → %s  %s %.2f\n", i, leg.From, leg.To, doc.Currency, opt.Fare())
			}
		}
	}
	for _, group := range doc.Accommodation {
		fmt.Fprintf(w, "%s\n", label("stay / "+group.Location))
		for i, opt := range group.Options {
			fmt.Fprintf(w, "  [%d] %s  %s %.2f\n", i, opt.Name, doc.Currency, opt.TotalPrice)
		}
	}
	for _, day := range doc.DailyPlan {
		fmt.Fprintf(w, "%s %s\n", label(fmt.Sprintf("Day %d:", day.Day)), day.Title)
	}
	fmt.Fprintln(w)
	renderTotals(w, res)
}

func renderTotals(w io.Writer, res *dto.SessionResponse) {
	currency := itinerary.DefaultCurrency
	if res.Itinerary != nil {
		currency = res.Itinerary.Currency
	}
	sel := res.Selection
	if !sel.TotalDefined {
		fmt.Fprintf(w, "%s %s\n", label("Total:"), bad("not available"))
		return
	}
	fmt.Fprintf(w, "%s %s %.2f (base %.2f)\n", label("Total:"), currency, sel.DerivedTotal, sel.BaseCost)
}

func renderEvent(w io.Writer, event events.BaseEvent) {
	keys := make([]string, 0, len(event.Data))
	for k := range event.Data {
		if k != events.KeySessionID {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	name := good(event.Type)
	if event.Type == events.TypeGenerationFailed {
		name = bad(event.Type)
	}
	fmt.Fprintf(w, "%s %s %s", event.OccurredAt.Format("15:04:05"), name, event.SessionID())
	for _, k := range keys {
		fmt.Fprintf(w, " %s=%v", k, event.Data[k])
	}
	fmt.Fprintln(w)
}
