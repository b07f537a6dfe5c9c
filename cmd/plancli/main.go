// Command plancli drives a running planner server from the terminal and
// tails its event stream.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	serverURL string
	natsURL   string
)

var rootCmd = &cobra.Command{
	Use:   "plancli",
	Short: "Trip planner CLI",
	Long: `plancli talks to the trip planner API: generate an itinerary, change
transport and accommodation choices, and watch session events live.`,
	SilenceUsage: true,
}

func main() {
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(selectCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(watchCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", envOr("PLANCLI_SERVER", "http://localhost:3000/api"), "planner API base URL")
	rootCmd.PersistentFlags().StringVar(&natsURL, "nats", envOr("NATS_URL", "nats://localhost:4222"), "NATS URL for watch")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
