package client

import (
	"fmt"

	"github.com/spf13/cobra"

	uiv1 "github.com/debnet/fallout/internal/handlers/ui/v1"
)

var (
	panelSession string
	panelChoices []string
)

// PanelCmd groups the active panel commands
var PanelCmd = &cobra.Command{
	Use:   "panel",
	Short: "Read or set the remembered active panel",
}

var panelGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the panel a page would open with",
	Long: `Show the panel a page would open with. Examples:

  panel get --session abc --panel stats --panel inventory`,
	Args: cobra.NoArgs,
	RunE: runPanelGet,
}

var panelSetCmd = &cobra.Command{
	Use:   "set [panel]",
	Short: "Remember the active panel",
	Args:  cobra.ExactArgs(1),
	RunE:  runPanelSet,
}

func init() {
	PanelCmd.PersistentFlags().StringVar(&panelSession, "session", "", "Session owning the state")
	panelGetCmd.Flags().StringArrayVar(&panelChoices, "panel", nil, "Panel rendered by the page, in order")

	PanelCmd.AddCommand(panelGetCmd)
	PanelCmd.AddCommand(panelSetCmd)
}

func runPanelGet(cmd *cobra.Command, _ []string) error {
	panels := make([]any, len(panelChoices))
	for i, p := range panelChoices {
		panels[i] = p
	}

	resp, err := invoke(uiv1.UIServiceClient.InitialPanel, map[string]any{
		"session": panelSession,
		"panels":  panels,
	})
	if err != nil {
		return fmt.Errorf("failed to get panel: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%v (%v)\n", resp["panel"], resp["source"])
	return nil
}

func runPanelSet(cmd *cobra.Command, args []string) error {
	resp, err := invoke(uiv1.UIServiceClient.ActivatePanel, map[string]any{
		"session": panelSession,
		"panel":   args[0],
	})
	if err != nil {
		return fmt.Errorf("failed to set panel: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Active panel: %v\n", resp["panel"])
	return nil
}
