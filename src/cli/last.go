package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"camfleet/src/state"
)

func newLastCmd(stdout io.Writer) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "last",
		Short: "Show the result of the most recent fleet action",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			lr, err := (state.Store{Dir: cfg.StateDir}).Read()
			if err != nil {
				return err
			}
			if lr == nil {
				fmt.Fprintln(stdout, "no fleet action recorded yet")
				return nil
			}
			switch output {
			case "json":
				enc := json.NewEncoder(stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(lr)
			case "table", "":
				fmt.Fprintf(stdout, "%s at %s (%.1fs)\n\n",
					lr.Report.Action, lr.Timestamp.Format("2006-01-02 15:04:05"), lr.Report.Seconds)
				return lr.Report.RenderTable(stdout)
			default:
				return fmt.Errorf("unsupported --output: %s", output)
			}
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format: table|json")
	return cmd
}
