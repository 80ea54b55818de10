package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd returns the root cobra command for the camfleet CLI.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "camfleet",
		Short: "Update and manage the wildlife camera fleet over SSH",
		Long: "camfleet pulls the hub's copy of the camera repository, then updates\n" +
			"each camera listed in cameras.txt over SSH and restarts its service.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	addGlobalFlags(cmd)

	cmd.AddCommand(newVersionCmd(stdout))
	cmd.AddCommand(newListCmd(stdout))
	cmd.AddCommand(newUpdateCmd(stdout, stderr))
	cmd.AddCommand(newRestartCmd(stdout, stderr))
	cmd.AddCommand(newStatusCmd(stdout, stderr))
	cmd.AddCommand(newLastCmd(stdout))
	cmd.AddCommand(newServeCmd(stderr))

	return cmd
}

// Execute runs the CLI with the process stdio.
func Execute() int {
	root := NewRootCmd(os.Stdout, os.Stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
