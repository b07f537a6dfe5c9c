package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"trip-planner-be/internal/dto"
	"trip-planner-be/pkg/events"
	pktNats "trip-planner-be/pkg/nats"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan <request...>",
	Short: "Generate an itinerary",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		color.Cyan("🚀 Generating itinerary...")
		res, err := newAPIClient(serverURL).CreateItinerary(strings.Join(args, " "))
		if err != nil {
			return err
		}
		renderSession(cmd.OutOrStdout(), res)
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := newAPIClient(serverURL).GetSession(args[0])
		if err != nil {
			return err
		}
		renderSession(cmd.OutOrStdout(), res)
		return nil
	},
}

var selectCmd = &cobra.Command{
	Use:   "select",
	Short: "Change a transport or accommodation choice",
}

var selectTransportCmd = &cobra.Command{
	Use:   "transport <session-id> <mode> <outbound|inbound> <index>",
	Short: "Choose a transport option",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[3])
		if err != nil {
			return fmt.Errorf("index must be a number: %w", err)
		}
		res, err := newAPIClient(serverURL).SelectTransport(args[0], dto.SelectTransportRequest{
			Mode:      args[1],
			Direction: args[2],
			Index:     &index,
		})
		if err != nil {
			return err
		}
		renderTotals(cmd.OutOrStdout(), res)
		return nil
	},
}

var selectAccommodationCmd = &cobra.Command{
	Use:   "accommodation <session-id> <location> <index>",
	Short: "Choose where to stay in one location",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("index must be a number: %w", err)
		}
		res, err := newAPIClient(serverURL).SelectAccommodation(args[0], dto.SelectAccommodationRequest{
			Location: args[1],
			Index:    &index,
		})
		if err != nil {
			return err
		}
		renderTotals(cmd.OutOrStdout(), res)
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset <session-id>",
	Short: "Clear a session back to idle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := newAPIClient(serverURL).Reset(args[0]); err != nil {
			return err
		}
		color.Green("Session %s reset", args[0])
		return nil
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch [session-id]",
	Short: "Tail planner events from NATS",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		sub, err := pktNats.NewSubscriber(natsURL)
		if err != nil {
			return err
		}
		defer sub.Close()

		filter := ""
		if len(args) == 1 {
			filter = args[0]
		}
		out := cmd.OutOrStdout()
		err = sub.Subscribe(ctx, pktNats.SubjectPrefix+">", "", func(_ context.Context, event events.BaseEvent) error {
			if filter == "" || event.SessionID() == filter {
				renderEvent(out, event)
			}
			return nil
		})
		if err != nil {
			return err
		}

		color.Cyan("Watching %s> (Ctrl+C to stop)", pktNats.SubjectPrefix)
		<-ctx.Done()
		return nil
	},
}

func init() {
	selectCmd.AddCommand(selectTransportCmd)
	selectCmd.AddCommand(selectAccommodationCmd)
}
