// Package updater dispatches remote maintenance commands across the camera
// fleet, one host at a time, and aggregates per-host results.
package updater

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"camfleet/src/fleet"
	"camfleet/src/sshexec"
	"camfleet/src/util/prefixwriter"
)

// Options configure one fleet dispatch.
type Options struct {
	// RemoteDir is the repository path on each camera.
	RemoteDir string
	// Service is the systemd unit restarted after a pull.
	Service string
	// StatusLines bounds the systemctl status tail printed per camera.
	StatusLines int
	// ContinueOnError keeps dispatching after a camera fails instead of
	// skipping the rest of the fleet.
	ContinueOnError bool
	// CommandTimeout bounds each camera's remote command. Zero disables
	// the per-host deadline.
	CommandTimeout time.Duration
}

// Updater runs fleet actions through an sshexec.Runner.
type Updater struct {
	Runner sshexec.Runner
	Opts   Options
	// Log receives human-readable progress lines; nil discards them.
	Log io.Writer
}

// UpdateCommand is the remote contract for a full camera update: pull the
// repository, restart the service, print a status tail.
func UpdateCommand(remoteDir, service string, statusLines int) string {
	return fmt.Sprintf(
		"cd %s && git pull && sudo systemctl restart %s && systemctl --no-pager --full status %s | head -n %d",
		remoteDir, service, service, statusLines,
	)
}

// RestartCommand restarts the service and prints a status tail, without
// touching the repository.
func RestartCommand(service string, statusLines int) string {
	return fmt.Sprintf(
		"sudo systemctl restart %s && systemctl --no-pager --full status %s | head -n %d",
		service, service, statusLines,
	)
}

// StatusCommand prints a status tail only.
func StatusCommand(service string, statusLines int) string {
	return fmt.Sprintf(
		"systemctl --no-pager --full status %s | head -n %d",
		service, statusLines,
	)
}

// UpdateAll runs the update contract on every camera in order.
func (u *Updater) UpdateAll(ctx context.Context, cams []fleet.Camera) fleet.Report {
	cmd := UpdateCommand(u.Opts.RemoteDir, u.Opts.Service, u.Opts.StatusLines)
	return u.dispatch(ctx, "update", cams, cmd, u.Opts.ContinueOnError)
}

// RestartAll restarts the camera service on every camera in order.
func (u *Updater) RestartAll(ctx context.Context, cams []fleet.Camera) fleet.Report {
	cmd := RestartCommand(u.Opts.Service, u.Opts.StatusLines)
	return u.dispatch(ctx, "restart", cams, cmd, u.Opts.ContinueOnError)
}

// StatusAll queries the camera service on every camera in order. Status is
// read-only, so one unreachable camera never hides the rest of the fleet.
func (u *Updater) StatusAll(ctx context.Context, cams []fleet.Camera) fleet.Report {
	cmd := StatusCommand(u.Opts.Service, u.Opts.StatusLines)
	return u.dispatch(ctx, "status", cams, cmd, true)
}

// dispatch runs cmd on each camera strictly sequentially. In strict mode
// (continueOnError false) the first failure marks the remaining cameras
// skipped and stops, matching the original operator scripts.
func (u *Updater) dispatch(ctx context.Context, action string, cams []fleet.Camera, cmd string, continueOnError bool) fleet.Report {
	rep := fleet.Report{Action: action, Started: time.Now()}
	halted := false
	for i, cam := range cams {
		if halted {
			rep.Results = append(rep.Results, fleet.HostResult{
				Camera:  cam,
				Outcome: fleet.OutcomeSkipped,
				Error:   "skipped: earlier camera failed",
			})
			continue
		}
		u.logf("[%d/%d] %s %s (%s)", i+1, len(cams), action, cam.Name, cam.Target)
		hr := u.runOne(ctx, cam, cmd)
		rep.Results = append(rep.Results, hr)
		if hr.Outcome == fleet.OutcomeFailed {
			u.logf("[%d/%d] %s %s: FAILED: %s", i+1, len(cams), action, cam.Name, hr.Error)
			if !continueOnError {
				halted = true
			}
			continue
		}
		u.logf("[%d/%d] %s %s: ok (%.1fs)", i+1, len(cams), action, cam.Name, hr.Seconds)
	}
	rep.Seconds = time.Since(rep.Started).Seconds()
	return rep
}

func (u *Updater) runOne(ctx context.Context, cam fleet.Camera, cmd string) fleet.HostResult {
	runCtx := ctx
	if u.Opts.CommandTimeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, u.Opts.CommandTimeout)
		defer cancel()
	}

	started := time.Now()
	res, err := u.Runner.Run(runCtx, cam.Target, cmd)
	elapsed := time.Since(started).Seconds()

	if u.Log != nil {
		pw := prefixwriter.New(u.Log, "  | ")
		io.WriteString(pw, res.Stdout)
		io.WriteString(pw, res.Stderr)
		pw.Flush()
	}

	output := fleet.CapOutput(strings.TrimRight(res.Stdout+res.Stderr, "\n"))
	if err != nil {
		return fleet.HostResult{
			Camera:  cam,
			Outcome: fleet.OutcomeFailed,
			Output:  output,
			Error:   err.Error(),
			Seconds: elapsed,
		}
	}
	return fleet.HostResult{
		Camera:  cam,
		Outcome: fleet.OutcomeOK,
		Output:  output,
		Seconds: elapsed,
	}
}

func (u *Updater) logf(format string, args ...any) {
	if u.Log != nil {
		fmt.Fprintf(u.Log, format+"\n", args...)
	}
}
