package client

import (
	"fmt"

	"github.com/spf13/cobra"

	uiv1 "github.com/debnet/fallout/internal/handlers/ui/v1"
)

var searchSession string

// SearchCmd runs an autocomplete query
var SearchCmd = &cobra.Command{
	Use:   "search [binding] [term]",
	Short: "Run an autocomplete search",
	Long: `Run the search behind an autocomplete widget. Examples:

  search item stim
  search effect rad
  search loottemplate raider`,
	Args: cobra.ExactArgs(2),
	RunE: runSearch,
}

// BindingsCmd lists the configured autocomplete bindings
var BindingsCmd = &cobra.Command{
	Use:   "bindings",
	Short: "List autocomplete bindings",
	Args:  cobra.NoArgs,
	RunE:  runBindings,
}

func init() {
	SearchCmd.Flags().StringVar(&searchSession, "session", "", "Session owning the widget")
}

func runSearch(cmd *cobra.Command, args []string) error {
	resp, err := invoke(uiv1.UIServiceClient.Autocomplete, map[string]any{
		"binding": args[0],
		"term":    args[1],
		"session": searchSession,
	})
	if err != nil {
		return fmt.Errorf("failed to search: %w", err)
	}

	out := cmd.OutOrStdout()
	if notice, _ := resp["notice"].(string); notice != "" {
		fmt.Fprintln(out, notice)
		return nil
	}

	options, _ := resp["options"].([]any)
	if len(options) == 0 {
		fmt.Fprintln(out, "No results")
		return nil
	}
	for _, o := range options {
		opt, _ := o.(map[string]any)
		fmt.Fprintf(out, "%v\t%v\n", opt["id"], opt["value"])
	}
	return nil
}

func runBindings(cmd *cobra.Command, _ []string) error {
	resp, err := invoke(uiv1.UIServiceClient.ListBindings, map[string]any{})
	if err != nil {
		return fmt.Errorf("failed to list bindings: %w", err)
	}

	bindings, _ := resp["bindings"].([]any)
	for _, b := range bindings {
		binding, _ := b.(map[string]any)
		fmt.Fprintf(cmd.OutOrStdout(), "%v\t%v\t%v\n", binding["name"], binding["endpoint"], binding["min_length"])
	}
	return nil
}
