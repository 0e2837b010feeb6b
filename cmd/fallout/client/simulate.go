package client

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/debnet/fallout/internal/formdata"
	uiv1 "github.com/debnet/fallout/internal/handlers/ui/v1"
)

var (
	simulateForm     string
	simulateSelector string
	simulateFields   []string
)

// SimulateCmd posts a simulation form
var SimulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a combat simulation",
	Long: `Serialize a saved simulation form and run it. Examples:

  simulate --form fight.html --selector '#fight-form'
  simulate --field type=burst --field targets=3 --field targets=5`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	SimulateCmd.Flags().StringVar(&simulateForm, "form", "", "HTML file containing the form")
	SimulateCmd.Flags().StringVar(&simulateSelector, "selector", "form", "CSS selector of the form")
	SimulateCmd.Flags().StringArrayVar(&simulateFields, "field", nil, "Extra name=value field, repeatable")
}

func collectFields() ([]formdata.Field, error) {
	var fields []formdata.Field

	if simulateForm != "" {
		f, err := os.Open(simulateForm)
		if err != nil {
			return nil, fmt.Errorf("failed to open form: %w", err)
		}
		defer f.Close()

		fields, err = formdata.FieldsFromHTML(f, simulateSelector)
		if err != nil {
			return nil, fmt.Errorf("failed to read form: %w", err)
		}
	}

	for _, kv := range simulateFields {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid field %q, expected name=value", kv)
		}
		fields = append(fields, formdata.Field{Name: name, Value: value})
	}

	return fields, nil
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	fields, err := collectFields()
	if err != nil {
		return err
	}

	items := make([]any, len(fields))
	for i, f := range fields {
		items[i] = map[string]any{"name": f.Name, "value": f.Value}
	}

	resp, err := invoke(uiv1.UIServiceClient.Simulate, map[string]any{"fields": items})
	if err != nil {
		return fmt.Errorf("failed to simulate: %w", err)
	}

	out := cmd.OutOrStdout()
	if show, _ := resp["show_alert"].(bool); !show {
		fmt.Fprintln(out, "(no alert)")
		return nil
	}
	fmt.Fprintln(out, resp["alert"])
	return nil
}
