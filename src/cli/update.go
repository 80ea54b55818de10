package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"camfleet/src/fleet"
	"camfleet/src/gitrepo"
	"camfleet/src/updater"
)

func newUpdateCmd(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update [camera...]",
		Short: "Pull the hub repository, then update and restart every camera",
		Long: "update pulls the hub working copy first, then for each camera (all of\n" +
			"them, or just the named ones) pulls the repository over SSH, restarts\n" +
			"the camera service, and prints a status tail. Cameras are processed\n" +
			"one at a time; without -k the first failure skips the rest.",
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
				fmt.Fprintf(stdout, "would pull hub repository %s\n", cfg.HubRepoDir)
				remote := updater.UpdateCommand(cfg.RemoteRepoDir, cfg.Service, cfg.StatusLines)
				for _, cam := range cams {
					fmt.Fprintf(stdout, "would run on %s (%s): %s\n", cam.Name, cam.Target, remote)
				}
				return nil
			}

			ctx := cmd.Context()
			fmt.Fprintf(stdout, "Updating hub repository %s\n", cfg.HubRepoDir)
			hub := gitrepo.Repo{Dir: cfg.HubRepoDir, SSHKeyPath: cfg.SSHKeyPath}
			if err := hub.Pull(ctx, stdout); err != nil {
				return err
			}

			fmt.Fprintf(stdout, "Updating %d camera(s)\n", len(cams))
			rep := newUpdater(cmd, cfg, stdout).UpdateAll(ctx, cams)
			return finishReport(stdout, cfg, rep)
		},
	}
	return cmd
}
