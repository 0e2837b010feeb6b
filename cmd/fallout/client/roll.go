package client

import (
	"fmt"

	"github.com/spf13/cobra"

	uiv1 "github.com/debnet/fallout/internal/handlers/ui/v1"
)

// RollCmd rolls dice notation
var RollCmd = &cobra.Command{
	Use:   "roll [notation]",
	Short: "Roll dice using dice notation",
	Long: `Roll dice and see individual results. Examples:

  roll 1d20
  roll d6
  roll 3d8+2`,
	Args: cobra.ExactArgs(1),
	RunE: runRoll,
}

func runRoll(cmd *cobra.Command, args []string) error {
	resp, err := invoke(uiv1.UIServiceClient.RollDice, map[string]any{"notation": args[0]})
	if err != nil {
		return fmt.Errorf("failed to roll dice: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), resp["output"])
	return nil
}
