package fleet_test

import (
	"bytes"
	"strings"
	"testing"

	"camfleet/src/fleet"
)

func TestCapOutput_KeepsTail(t *testing.T) {
	long := strings.Repeat("x", 13000) + "END"
	got := fleet.CapOutput(long)
	if len(got) != 12000 {
		t.Fatalf("len = %d, want 12000", len(got))
	}
	if !strings.HasSuffix(got, "END") {
		t.Fatalf("expected the tail of the output to survive")
	}
	short := "hello"
	if fleet.CapOutput(short) != short {
		t.Fatalf("short output must pass through unchanged")
	}
}

func TestReport_Counts(t *testing.T) {
	rep := fleet.Report{Results: []fleet.HostResult{
		{Camera: fleet.Camera{Name: "a"}, Outcome: fleet.OutcomeOK},
		{Camera: fleet.Camera{Name: "b"}, Outcome: fleet.OutcomeFailed},
		{Camera: fleet.Camera{Name: "c"}, Outcome: fleet.OutcomeSkipped},
	}}
	if rep.Failed() != 1 || rep.Skipped() != 1 || rep.OK() {
		t.Fatalf("counts wrong: failed=%d skipped=%d ok=%v", rep.Failed(), rep.Skipped(), rep.OK())
	}

	all := fleet.Report{Results: []fleet.HostResult{
		{Camera: fleet.Camera{Name: "a"}, Outcome: fleet.OutcomeOK},
	}}
	if !all.OK() {
		t.Fatalf("expected OK for an all-ok report")
	}
}

func TestReport_RenderTable(t *testing.T) {
	rep := fleet.Report{Results: []fleet.HostResult{
		{Camera: fleet.Camera{Name: "camA", Target: "pi@cam-a.local"}, Outcome: fleet.OutcomeOK, Seconds: 1.23},
		{Camera: fleet.Camera{Name: "camB", Target: "cam-b.local"}, Outcome: fleet.OutcomeSkipped},
	}}
	var buf bytes.Buffer
	if err := rep.RenderTable(&buf); err != nil {
		t.Fatalf("RenderTable error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"CAMERA", "camA", "pi@cam-a.local", "ok", "camB", "skipped"} {
		if !strings.Contains(out, want) {
			t.Fatalf("table missing %q:\n%s", want, out)
		}
	}
}
