package cli

import (
	"fmt"
	"io"

	"camfleet/src/config"
	"camfleet/src/fleet"
	"camfleet/src/state"
)

// finishReport persists the run as last-run state, prints the summary
// table, and turns a partial or failed fleet into a non-zero exit.
func finishReport(stdout io.Writer, cfg *config.Config, rep fleet.Report) error {
	if err := (state.Store{Dir: cfg.StateDir}).Write(rep); err != nil {
		return err
	}
	fmt.Fprintln(stdout)
	if err := rep.RenderTable(stdout); err != nil {
		return err
	}
	if failed, skipped := rep.Failed(), rep.Skipped(); failed > 0 || skipped > 0 {
		return fmt.Errorf("%s: %d failed, %d skipped of %d cameras",
			rep.Action, failed, skipped, len(rep.Results))
	}
	return nil
}
