package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"camfleet/src/server"
	"camfleet/src/sshexec"
)

func newServeCmd(stderr io.Writer) *cobra.Command {
	var bind string
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the hub dashboard HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if bind != "" {
				cfg.Server.Host = bind
			}
			if port != 0 {
				cfg.Server.Port = port
			}
			runner := &sshexec.Client{
				KeyPath:        cfg.SSHKeyPath,
				KnownHostsPath: cfg.KnownHostsFile,
				ConnectTimeout: 15 * time.Second,
			}
			fmt.Fprintf(stderr, "dashboard listening on %s\n", cfg.ServerAddress())
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return server.New(cfg, runner, stderr).Start(ctx)
		},
	}
	cmd.Flags().StringVar(&bind, "bind", "", "Dashboard bind host (overrides config)")
	cmd.Flags().IntVar(&port, "port", 0, "Dashboard port (overrides config)")
	return cmd
}
