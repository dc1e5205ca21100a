//go:build darwin

package desktop

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

func platformStrategies(helperTimeout time.Duration) []Strategy {
	return []Strategy{
		&allDesktopsStrategy{timeout: helperTimeout},
		&finderStrategy{timeout: helperTimeout},
	}
}

// allDesktopsStrategy asks System Events to change the picture of every
// desktop, which covers all attached displays and Spaces.
type allDesktopsStrategy struct {
	timeout time.Duration
}

func (s *allDesktopsStrategy) Name() string { return "all-desktops" }

func (s *allDesktopsStrategy) Attempt(parent context.Context, path string) Attempt {
	script := `tell application "System Events" to tell every desktop to set picture to ` + strconv.Quote(path)
	return runOsascript(parent, s.timeout, s.Name(), script)
}

func (s *allDesktopsStrategy) Probe(ctx context.Context) Capability {
	if _, err := exec.LookPath("osascript"); err != nil {
		return Capability{Status: CapabilityCommandMissing, Detail: "osascript not found in PATH"}
	}
	return Capability{Status: CapabilitySupported}
}

// finderStrategy changes only the frontmost desktop through Finder, the
// fallback when System Events scripting is blocked.
type finderStrategy struct {
	timeout time.Duration
}

func (s *finderStrategy) Name() string { return "finder" }

func (s *finderStrategy) Attempt(parent context.Context, path string) Attempt {
	script := `tell application "Finder" to set desktop picture to POSIX file ` + strconv.Quote(path)
	return runOsascript(parent, s.timeout, s.Name(), script)
}

func runOsascript(parent context.Context, timeout time.Duration, name, script string) Attempt {
	if _, err := exec.LookPath("osascript"); err != nil {
		return Attempt{Strategy: name, Status: StatusUnavailable, Detail: "osascript not found in PATH"}
	}

	if timeout <= 0 {
		timeout = DefaultHelperTimeout
	}
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	// #nosec G204 -- fixed binary name, script assembled from constants
	out, err := exec.CommandContext(ctx, "osascript", "-e", script).CombinedOutput()
	switch {
	case err == nil:
		return Attempt{Strategy: name, Status: StatusApplied}
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return Attempt{Strategy: name, Status: StatusTimeout, Detail: "osascript timed out"}
	default:
		detail := strings.TrimSpace(string(out))
		if detail == "" {
			detail = err.Error()
		}
		return Attempt{Strategy: name, Status: StatusFailed, Detail: fmt.Sprintf("osascript: %s", detail)}
	}
}
