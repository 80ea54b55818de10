package cli

import (
	"io"
	"time"

	"github.com/spf13/cobra"

	"camfleet/src/config"
	"camfleet/src/safety"
	"camfleet/src/sshexec"
	"camfleet/src/updater"
)

// addGlobalFlags adds the persistent flags shared by every fleet action.
func addGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("config", "", "Config file (default: <hub repo>/hub/camfleet.yaml)")
	cmd.PersistentFlags().String("cameras", "", "Camera list file (overrides config)")
	cmd.PersistentFlags().StringP("identity", "i", "", "SSH identity file (overrides config)")
	cmd.PersistentFlags().String("service", "", "Camera service name (overrides config)")
	cmd.PersistentFlags().Duration("timeout", 0, "Per-camera command timeout (overrides config)")
	cmd.PersistentFlags().BoolP("continue-on-error", "k", false, "Keep going after a camera fails instead of skipping the rest")
	cmd.PersistentFlags().Bool("dry-run", false, "Show planned actions without dispatching anything")
	cmd.PersistentFlags().BoolP("yes", "y", false, "Assume 'yes' to prompts and run non-interactively")
	cmd.PersistentFlags().Bool("force", false, "Skip safety prompts entirely")
}

// loadConfig builds the effective config: file + env, then flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Root().PersistentFlags()
	path, _ := flags.GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if v, _ := flags.GetString("cameras"); v != "" {
		cfg.CamerasFile = v
	}
	if v, _ := flags.GetString("identity"); v != "" {
		cfg.SSHKeyPath = v
	}
	if v, _ := flags.GetString("service"); v != "" {
		cfg.Service = v
	}
	if v, _ := flags.GetDuration("timeout"); v > 0 {
		cfg.CommandTimeout = config.Duration(v)
	}
	return cfg, nil
}

// getSafetyOptions reads the global safety flags.
func getSafetyOptions(cmd *cobra.Command) safety.Options {
	flags := cmd.Root().PersistentFlags()
	dry, _ := flags.GetBool("dry-run")
	yes, _ := flags.GetBool("yes")
	force, _ := flags.GetBool("force")
	return safety.Options{DryRun: dry, Yes: yes, Force: force}
}

func continueOnError(cmd *cobra.Command) bool {
	v, _ := cmd.Root().PersistentFlags().GetBool("continue-on-error")
	return v
}

// newUpdater wires the real SSH runner into a fleet updater.
func newUpdater(cmd *cobra.Command, cfg *config.Config, log io.Writer) *updater.Updater {
	runner := &sshexec.Client{
		KeyPath:        cfg.SSHKeyPath,
		KnownHostsPath: cfg.KnownHostsFile,
		ConnectTimeout: 15 * time.Second,
	}
	return &updater.Updater{
		Runner: runner,
		Opts: updater.Options{
			RemoteDir:       cfg.RemoteRepoDir,
			Service:         cfg.Service,
			StatusLines:     cfg.StatusLines,
			ContinueOnError: continueOnError(cmd),
			CommandTimeout:  cfg.CommandTimeout.Std(),
		},
		Log: log,
	}
}
