package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"camfleet/src/cli"
	"camfleet/src/fleet"
	"camfleet/src/state"
)

func writeConfigWithStateDir(t *testing.T) (configPath, stateDir string) {
	t.Helper()
	dir := t.TempDir()
	stateDir = filepath.Join(dir, "state")
	configPath = filepath.Join(dir, "camfleet.yaml")
	content := "state_dir: " + stateDir + "\n"
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return configPath, stateDir
}

func TestLastCommand_NoStateYet(t *testing.T) {
	configPath, _ := writeConfigWithStateDir(t)
	var out, errOut bytes.Buffer
	cmd := cli.NewRootCmd(&out, &errOut)
	cmd.SetArgs([]string{"last", "--config", configPath})

	if _, e := cmd.ExecuteC(); e != nil {
		t.Fatalf("unexpected error: %v", e)
	}
	if !strings.Contains(out.String(), "no fleet action recorded yet") {
		t.Fatalf("output: %s", out.String())
	}
}

func TestLastCommand_ShowsPersistedRun(t *testing.T) {
	configPath, stateDir := writeConfigWithStateDir(t)
	rep := fleet.Report{
		Action:  "update",
		Seconds: 3.5,
		Results: []fleet.HostResult{
			{Camera: fleet.Camera{Name: "camA", Target: "pi@cam-a.local"}, Outcome: fleet.OutcomeOK, Seconds: 3.5},
		},
	}
	if err := (state.Store{Dir: stateDir}).Write(rep); err != nil {
		t.Fatal(err)
	}

	var out, errOut bytes.Buffer
	cmd := cli.NewRootCmd(&out, &errOut)
	cmd.SetArgs([]string{"last", "--config", configPath})

	if _, e := cmd.ExecuteC(); e != nil {
		t.Fatalf("unexpected error: %v", e)
	}
	for _, want := range []string{"update at ", "camA", "pi@cam-a.local", "ok"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("output missing %q:\n%s", want, out.String())
		}
	}
}
