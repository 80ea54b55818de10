package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"camfleet/src/fleet"
	"camfleet/src/updater"
)

func newStatusCmd(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status [camera...]",
		Short: "Show the camera service status across the fleet",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			cams, err := fleet.Load(cfg.CamerasFile)
			if err != nil {
				return err
			}
			if len(args) > 0 {
				cams, err = fleet.Select(cams, args)
				if err != nil {
					return err
				}
			}
			if len(cams) == 0 {
				return fmt.Errorf("no cameras in %s", cfg.CamerasFile)
			}
			if getSafetyOptions(cmd).DryRun {
				remote := updater.StatusCommand(cfg.Service, cfg.StatusLines)
				for _, cam := range cams {
					fmt.Fprintf(stdout, "would run on %s (%s): %s\n", cam.Name, cam.Target, remote)
				}
				return nil
			}

			rep := newUpdater(cmd, cfg, stdout).StatusAll(cmd.Context(), cams)
			fmt.Fprintln(stdout)
			if err := rep.RenderTable(stdout); err != nil {
				return err
			}
			if failed := rep.Failed(); failed > 0 {
				return fmt.Errorf("status: %d of %d cameras unreachable or unhealthy", failed, len(rep.Results))
			}
			return nil
		},
	}
	return cmd
}
