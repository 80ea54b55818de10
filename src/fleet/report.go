package fleet

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"
)

// Outcome classifies one camera's result within a fleet run.
type Outcome string

const (
	OutcomeOK      Outcome = "ok"
	OutcomeFailed  Outcome = "failed"
	OutcomeSkipped Outcome = "skipped"
)

// maxCapturedOutput caps stored command output per camera so the state file
// stays small when a remote command is chatty.
const maxCapturedOutput = 12000

// HostResult is the outcome of one camera dispatch.
type HostResult struct {
	Camera  Camera  `json:"camera"`
	Outcome Outcome `json:"outcome"`
	Output  string  `json:"output,omitempty"`
	Error   string  `json:"error,omitempty"`
	Seconds float64 `json:"seconds"`
}

// Report aggregates the results of one fleet action.
type Report struct {
	Action  string       `json:"action"`
	Started time.Time    `json:"started"`
	Seconds float64      `json:"seconds"`
	Results []HostResult `json:"results"`
}

// CapOutput truncates s to the last maxCapturedOutput bytes, the way the
// hub keeps only the tail of chatty command output.
func CapOutput(s string) string {
	if len(s) <= maxCapturedOutput {
		return s
	}
	return s[len(s)-maxCapturedOutput:]
}

// Failed returns the number of failed results.
func (r Report) Failed() int {
	n := 0
	for _, hr := range r.Results {
		if hr.Outcome == OutcomeFailed {
			n++
		}
	}
	return n
}

// Skipped returns the number of skipped results.
func (r Report) Skipped() int {
	n := 0
	for _, hr := range r.Results {
		if hr.Outcome == OutcomeSkipped {
			n++
		}
	}
	return n
}

// OK reports whether every camera was dispatched and succeeded.
func (r Report) OK() bool {
	for _, hr := range r.Results {
		if hr.Outcome != OutcomeOK {
			return false
		}
	}
	return true
}

// RenderTable writes the per-camera summary as an aligned table.
func (r Report) RenderTable(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CAMERA\tTARGET\tRESULT\tSECONDS")
	for _, hr := range r.Results {
		secs := fmt.Sprintf("%.1f", hr.Seconds)
		if hr.Outcome == OutcomeSkipped {
			secs = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", hr.Camera.Name, hr.Camera.Target, hr.Outcome, secs)
	}
	return tw.Flush()
}
