package cli_test

import (
	"bytes"
	"strings"
	"testing"

	"camfleet/src/cli"
)

func TestRestartCommand_RequiresNameOrAll(t *testing.T) {
	var out, errOut bytes.Buffer
	cmd := cli.NewRootCmd(&out, &errOut)
	cmd.SetArgs([]string{"restart", "--cameras", writeCamerasFile(t)})

	if _, e := cmd.ExecuteC(); e == nil {
		t.Fatalf("expected error without a camera name or --all")
	}
}

func TestRestartCommand_NameAndAllConflict(t *testing.T) {
	var out, errOut bytes.Buffer
	cmd := cli.NewRootCmd(&out, &errOut)
	cmd.SetArgs([]string{"restart", "camA", "--all", "--cameras", writeCamerasFile(t)})

	if _, e := cmd.ExecuteC(); e == nil {
		t.Fatalf("expected error for a name combined with --all")
	}
}

func TestRestartCommand_DryRunSkipsGitPull(t *testing.T) {
	var out, errOut bytes.Buffer
	cmd := cli.NewRootCmd(&out, &errOut)
	cmd.SetArgs([]string{"restart", "camA", "--dry-run", "--cameras", writeCamerasFile(t)})

	if _, e := cmd.ExecuteC(); e != nil {
		t.Fatalf("unexpected error: %v", e)
	}
	got := out.String()
	if strings.Contains(got, "git pull") {
		t.Fatalf("restart must not pull:\n%s", got)
	}
	if !strings.Contains(got, "would run on camA") || !strings.Contains(got, "sudo systemctl restart rpi-cam-server") {
		t.Fatalf("missing restart plan:\n%s", got)
	}
	if strings.Contains(got, "cam-b.local") {
		t.Fatalf("single-camera restart touched the fleet:\n%s", got)
	}
	if !strings.Contains(got, "head -n 20") {
		t.Fatalf("restart should tail 20 status lines:\n%s", got)
	}
}

func TestRestartCommand_AllDryRunCoversFleet(t *testing.T) {
	var out, errOut bytes.Buffer
	cmd := cli.NewRootCmd(&out, &errOut)
	cmd.SetArgs([]string{"restart", "--all", "--dry-run", "--cameras", writeCamerasFile(t)})

	if _, e := cmd.ExecuteC(); e != nil {
		t.Fatalf("unexpected error: %v", e)
	}
	got := out.String()
	if !strings.Contains(got, "camA") || !strings.Contains(got, "cam-b.local") {
		t.Fatalf("fleet restart plan incomplete:\n%s", got)
	}
}
