// Package main is the entry point for the fallout UI service and its CLI
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/debnet/fallout/cmd/fallout/client"
)

var rootCmd = &cobra.Command{
	Use:   "fallout",
	Short: "Fallout UI service",
	Long: `Fallout UI service backs the scripts of the Fallout campaign pages:
item, effect and loot template autocomplete, combat simulation alerts, the
dice roll modal and the remembered active panel.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(client.SearchCmd)
	rootCmd.AddCommand(client.BindingsCmd)
	rootCmd.AddCommand(client.SimulateCmd)
	rootCmd.AddCommand(client.RollCmd)
	rootCmd.AddCommand(client.PanelCmd)
}
