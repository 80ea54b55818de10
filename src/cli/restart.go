package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"camfleet/src/fleet"
	"camfleet/src/safety"
	"camfleet/src/updater"
)

func newRestartCmd(stdout, stderr io.Writer) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "restart [camera]",
		Short: "Restart the camera service without pulling the repository",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (len(args) == 1) == all {
				return fmt.Errorf("name exactly one camera, or pass --all")
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			// A bare restart looks at more of the journal than the
			// update tail does.
			if cfg.StatusLines < 20 {
				cfg.StatusLines = 20
			}
			cams, err := fleet.Load(cfg.CamerasFile)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				cams, err = fleet.Select(cams, args)
				if err != nil {
					return err
				}
			}
			if len(cams) == 0 {
				return fmt.Errorf("no cameras in %s", cfg.CamerasFile)
			}

			opts := getSafetyOptions(cmd)
			if opts.DryRun {
				remote := updater.RestartCommand(cfg.Service, cfg.StatusLines)
				for _, cam := range cams {
					fmt.Fprintf(stdout, "would run on %s (%s): %s\n", cam.Name, cam.Target, remote)
				}
				return nil
			}
			if all {
				q := fmt.Sprintf("Restart %s on all %d cameras?", cfg.Service, len(cams))
				ok, err := safety.Confirm(opts, os.Stdin, stderr, q)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(stdout, "aborted")
					return nil
				}
			}

			rep := newUpdater(cmd, cfg, stdout).RestartAll(cmd.Context(), cams)
			return finishReport(stdout, cfg, rep)
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Restart every camera in the list")
	return cmd
}
