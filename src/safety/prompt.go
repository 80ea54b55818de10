package safety

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Options mirror the global CLI flags that gate disruptive fleet actions.
type Options struct {
	// DryRun plans actions without dispatching anything.
	DryRun bool
	// Yes answers prompts affirmatively for non-interactive runs.
	Yes bool
	// Force skips remaining safety checks (implies Yes).
	Force bool
}

// Confirm asks the operator before a disruptive fleet action, e.g. a
// restart of every camera service.
// - Dry-run declines without prompting: nothing should be dispatched.
// - Yes/Force accept without prompting.
// The caller decides what to do with the result.
func Confirm(opts Options, in io.Reader, out io.Writer, question string) (bool, error) {
	if opts.DryRun {
		return false, nil
	}
	if opts.Yes || opts.Force {
		return true, nil
	}
	if out != nil {
		fmt.Fprintf(out, "%s [y/N]: ", strings.TrimSpace(question))
	}
	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	ans := strings.TrimSpace(strings.ToLower(line))
	return ans == "y" || ans == "yes", nil
}
