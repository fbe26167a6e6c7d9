package backend

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/shirou/gopsutil/v3/process"

	"github.com/rubykat/X11-Muralis/internal/display"
	"github.com/rubykat/X11-Muralis/internal/logger"
)

// ErrBackendFailed is returned when the image program exits non-zero.
// The image may still have been displayed.
var ErrBackendFailed = errors.New("backend failed")

// Runner starts backend programs.
type Runner struct {
	// DryRun logs the command instead of running it.
	DryRun bool
}

// Launch runs backend id with args followed by path. It blocks until the
// program exits, except for persistent backends which are left running.
func (r Runner) Launch(id string, args []string, path string) error {
	b, err := Lookup(id)
	if err != nil {
		return err
	}
	if b.Program == "" {
		style := ""
		if len(args) > 0 {
			style = args[0]
		}
		logger.Debug("native wallpaper", "style", style, "path", path)
		if r.DryRun {
			return nil
		}
		return display.SetWallpaper(path, style)
	}

	argv := append(append([]string{}, args...), path)
	logger.Debug("exec backend", "cmd", b.Program+" "+strings.Join(argv, " "))
	if r.DryRun {
		return nil
	}

	if b.Persistent {
		if err := terminateRunning(b.Program); err != nil {
			logger.Warn("could not stop previous instance", "program", b.Program, "err", err)
		}
		cmd := exec.Command(b.Program, argv...)
		if err := cmd.Start(); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrBackendFailed, b.Program, err)
		}
		return cmd.Process.Release()
	}

	var stderr bytes.Buffer
	cmd := exec.Command(b.Program, argv...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return fmt.Errorf("%w: %s: %v (%s)", ErrBackendFailed, b.Program, err, msg)
		}
		return fmt.Errorf("%w: %s: %v", ErrBackendFailed, b.Program, err)
	}
	return nil
}

// terminateRunning stops every other process named program owned by this user.
func terminateRunning(program string) error {
	procs, err := process.Processes()
	if err != nil {
		return err
	}
	self := int32(os.Getpid())
	uid := int32(os.Getuid())
	var errs []error
	for _, p := range procs {
		if p.Pid == self {
			continue
		}
		name, err := p.Name()
		if err != nil || name != program {
			continue
		}
		if uids, err := p.Uids(); err == nil && len(uids) > 0 && uids[0] != uid {
			continue
		}
		logger.Debug("terminating previous backend", "program", program, "pid", p.Pid)
		if err := p.Terminate(); err != nil {
			errs = append(errs, fmt.Errorf("pid %d: %w", p.Pid, err))
		}
	}
	return errors.Join(errs...)
}
