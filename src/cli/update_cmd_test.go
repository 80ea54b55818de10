package cli_test

import (
	"bytes"
	"strings"
	"testing"

	"camfleet/src/cli"
)

func TestUpdateCommand_DryRunPlansFleet(t *testing.T) {
	var out, errOut bytes.Buffer
	cmd := cli.NewRootCmd(&out, &errOut)
	cmd.SetArgs([]string{"update", "--dry-run", "--cameras", writeCamerasFile(t)})

	if _, e := cmd.ExecuteC(); e != nil {
		t.Fatalf("unexpected error: %v", e)
	}
	got := out.String()
	if !strings.Contains(got, "would pull hub repository") {
		t.Fatalf("missing hub pull plan:\n%s", got)
	}
	if !strings.Contains(got, "would run on camA (pi@cam-a.local): cd ~/wildlife-cameras && git pull && sudo systemctl restart rpi-cam-server") {
		t.Fatalf("missing camA dispatch plan:\n%s", got)
	}
	if !strings.Contains(got, "would run on cam-b.local (cam-b.local)") {
		t.Fatalf("missing cam-b dispatch plan:\n%s", got)
	}
	if !strings.Contains(got, "head -n 12") {
		t.Fatalf("missing status tail:\n%s", got)
	}
	// camA first, cam-b second: file order.
	if strings.Index(got, "camA") > strings.Index(got, "cam-b.local") {
		t.Fatalf("dispatch plan out of order:\n%s", got)
	}
}

func TestUpdateCommand_SubsetByName(t *testing.T) {
	var out, errOut bytes.Buffer
	cmd := cli.NewRootCmd(&out, &errOut)
	cmd.SetArgs([]string{"update", "--dry-run", "--cameras", writeCamerasFile(t), "camA"})

	if _, e := cmd.ExecuteC(); e != nil {
		t.Fatalf("unexpected error: %v", e)
	}
	if strings.Contains(out.String(), "cam-b.local") {
		t.Fatalf("unselected camera dispatched:\n%s", out.String())
	}
}

func TestUpdateCommand_UnknownCamera(t *testing.T) {
	var out, errOut bytes.Buffer
	cmd := cli.NewRootCmd(&out, &errOut)
	cmd.SetArgs([]string{"update", "--dry-run", "--cameras", writeCamerasFile(t), "nope"})

	if _, e := cmd.ExecuteC(); e == nil {
		t.Fatalf("expected error for unknown camera name")
	}
}

func TestUpdateCommand_ServiceOverride(t *testing.T) {
	var out, errOut bytes.Buffer
	cmd := cli.NewRootCmd(&out, &errOut)
	cmd.SetArgs([]string{"update", "--dry-run", "--cameras", writeCamerasFile(t), "--service", "night-cam"})

	if _, e := cmd.ExecuteC(); e != nil {
		t.Fatalf("unexpected error: %v", e)
	}
	if !strings.Contains(out.String(), "sudo systemctl restart night-cam") {
		t.Fatalf("service override not applied:\n%s", out.String())
	}
}
