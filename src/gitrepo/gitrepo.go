package gitrepo

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Repo is the hub's working copy of the camera repository.
type Repo struct {
	// Dir is the working tree path.
	Dir string
	// SSHKeyPath is an optional identity file for the git transport.
	SSHKeyPath string
}

// BatchSSHCommand builds the GIT_SSH_COMMAND value for a non-interactive
// git transport: fail instead of prompting, optionally with a fixed key.
func BatchSSHCommand(keyPath string) string {
	cmd := "ssh -o BatchMode=yes"
	if keyPath != "" {
		cmd += " -i " + keyPath
	}
	return cmd
}

// Pull runs a fetch-and-merge in the hub working copy. The pull is
// fast-forward only: a diverged hub clone is an operator problem, not
// something to auto-merge. Output is streamed to out.
func (r Repo) Pull(ctx context.Context, out io.Writer) error {
	if fi, err := os.Stat(r.Dir); err != nil || !fi.IsDir() {
		return fmt.Errorf("hub repository %s: not a directory", r.Dir)
	}
	stdout, stderr, err := r.runGit(ctx, "pull", "--ff-only")
	if out != nil && stdout != "" {
		fmt.Fprint(out, stdout)
	}
	if err != nil {
		return fmt.Errorf("git pull in %s: %w: %s", r.Dir, err, strings.TrimSpace(stderr))
	}
	return nil
}

// Head returns the current commit hash of the hub working copy.
func (r Repo) Head(ctx context.Context) (string, error) {
	stdout, stderr, err := r.runGit(ctx, "rev-parse", "HEAD")
	if err != nil {
		return "", fmt.Errorf("git rev-parse in %s: %w: %s", r.Dir, err, strings.TrimSpace(stderr))
	}
	return strings.TrimSpace(stdout), nil
}

func (r Repo) runGit(ctx context.Context, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(),
		"GIT_SSH_COMMAND="+BatchSSHCommand(r.SSHKeyPath),
		"GIT_TERMINAL_PROMPT=0",
	)
	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf
	err := cmd.Run()
	return stdoutBuf.String(), stderrBuf.String(), err
}
