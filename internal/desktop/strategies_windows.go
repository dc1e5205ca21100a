//go:build windows

package desktop

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"syscall"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

func platformStrategies(helperTimeout time.Duration) []Strategy {
	return []Strategy{
		&virtualDesktopStrategy{timeout: helperTimeout},
		&nativeWindowsStrategy{},
	}
}

const (
	spiSetDeskWallpaper = 20
	spifUpdateINIFile   = 0x01
	spifSendChange      = 0x02
)

// virtualDesktopApplyScript sets the wallpaper on every virtual desktop
// through the VirtualDesktop PowerShell module. The sentinel lines on
// stdout tell us apart the module being absent, the command being
// absent, and an actual failure.
const virtualDesktopApplyScript = `
if (Get-Module -ListAvailable -Name VirtualDesktop) {
    Import-Module VirtualDesktop -ErrorAction SilentlyContinue
    if (Get-Command Set-AllDesktopWallpapers -ErrorAction SilentlyContinue) {
        Set-AllDesktopWallpapers -Path '%s'
        Write-Output "SUCCESS"
    } else {
        Write-Output "COMMAND_NOT_FOUND"
    }
} else {
    Write-Output "MODULE_NOT_FOUND"
}
`

const virtualDesktopProbeScript = `
if (Get-Module -ListAvailable -Name VirtualDesktop) {
    Import-Module VirtualDesktop -ErrorAction SilentlyContinue
    if (Get-Command Set-AllDesktopWallpapers -ErrorAction SilentlyContinue) {
        Write-Output "SUPPORTED"
    } else {
        Write-Output "COMMAND_MISSING"
    }
} else {
    Write-Output "MODULE_MISSING"
}
`

// virtualDesktopStrategy drives the VirtualDesktop PowerShell module so
// the wallpaper changes on all virtual desktops, not just the active
// one. The module is an optional install; its absence is an expected
// state and reported as unavailable rather than failed.
type virtualDesktopStrategy struct {
	timeout time.Duration
}

func (s *virtualDesktopStrategy) Name() string { return "virtual-desktop" }

func (s *virtualDesktopStrategy) Attempt(ctx context.Context, path string) Attempt {
	script := fmt.Sprintf(virtualDesktopApplyScript, powershellQuote(path))
	stdout, stderr, err := s.run(ctx, script)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return Attempt{Strategy: s.Name(), Status: StatusTimeout, Detail: "powershell command timed out"}
	case errors.Is(err, exec.ErrNotFound):
		return Attempt{Strategy: s.Name(), Status: StatusUnavailable, Detail: "powershell not found in PATH"}
	case strings.Contains(stdout, "SUCCESS"):
		return Attempt{Strategy: s.Name(), Status: StatusApplied}
	case strings.Contains(stdout, "MODULE_NOT_FOUND"):
		return Attempt{
			Strategy: s.Name(),
			Status:   StatusUnavailable,
			Detail:   "VirtualDesktop PowerShell module not installed, install with: Install-Module VirtualDesktop",
		}
	case strings.Contains(stdout, "COMMAND_NOT_FOUND"):
		return Attempt{
			Strategy: s.Name(),
			Status:   StatusUnavailable,
			Detail:   "Set-AllDesktopWallpapers command not found, update the VirtualDesktop module",
		}
	case err != nil:
		return Attempt{Strategy: s.Name(), Status: StatusFailed, Detail: firstLine(stderr, err.Error())}
	default:
		return Attempt{Strategy: s.Name(), Status: StatusFailed, Detail: firstLine(stderr, "unexpected powershell output")}
	}
}

func (s *virtualDesktopStrategy) Probe(ctx context.Context) Capability {
	stdout, stderr, err := s.run(ctx, virtualDesktopProbeScript)
	switch {
	case errors.Is(err, exec.ErrNotFound):
		return Capability{Status: CapabilityUnavailable, Detail: "powershell not found in PATH"}
	case strings.Contains(stdout, "SUPPORTED"):
		return Capability{Status: CapabilitySupported}
	case strings.Contains(stdout, "MODULE_MISSING"):
		return Capability{Status: CapabilityModuleMissing, Detail: "VirtualDesktop PowerShell module not installed"}
	case strings.Contains(stdout, "COMMAND_MISSING"):
		return Capability{Status: CapabilityCommandMissing, Detail: "Set-AllDesktopWallpapers command not found"}
	case err != nil:
		return Capability{Status: CapabilityUnavailable, Detail: firstLine(stderr, err.Error())}
	default:
		return Capability{Status: CapabilityUnavailable, Detail: "unexpected powershell output"}
	}
}

func (s *virtualDesktopStrategy) run(parent context.Context, script string) (stdout, stderr string, err error) {
	if _, lookErr := exec.LookPath("powershell"); lookErr != nil {
		return "", "", exec.ErrNotFound
	}

	timeout := s.timeout
	if timeout <= 0 {
		timeout = DefaultHelperTimeout
	}
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	// #nosec G204 -- fixed binary name, script assembled from constants
	cmd := exec.CommandContext(ctx, "powershell", "-NoProfile", "-WindowStyle", "Hidden", "-Command", script)
	// Keep the helper invisible: no console window flashing up on every
	// rotation.
	cmd.SysProcAttr = &syscall.SysProcAttr{
		HideWindow:    true,
		CreationFlags: windows.CREATE_NO_WINDOW,
	}

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	runErr := cmd.Run()
	if ctx.Err() != nil {
		return outBuf.String(), errBuf.String(), ctx.Err()
	}
	return outBuf.String(), errBuf.String(), runErr
}

// powershellQuote doubles single quotes so the path survives inside a
// single-quoted PowerShell literal.
func powershellQuote(path string) string {
	return strings.ReplaceAll(path, "'", "''")
}

func firstLine(s, fallback string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = strings.TrimSpace(s[:idx])
	}
	return s
}

var (
	user32                    = windows.NewLazySystemDLL("user32.dll")
	procSystemParametersInfoW = user32.NewProc("SystemParametersInfoW")
)

// nativeWindowsStrategy calls SystemParametersInfoW directly. This only
// changes the active virtual desktop but needs no optional modules, so
// it is the tier of last resort.
type nativeWindowsStrategy struct{}

func (nativeWindowsStrategy) Name() string { return "native" }

func (n nativeWindowsStrategy) Attempt(_ context.Context, path string) Attempt {
	pathPtr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return Attempt{Strategy: n.Name(), Status: StatusFailed, Detail: fmt.Sprintf("encode path: %v", err)}
	}

	ret, _, callErr := procSystemParametersInfoW.Call(
		uintptr(spiSetDeskWallpaper),
		0,
		uintptr(unsafe.Pointer(pathPtr)),
		uintptr(spifUpdateINIFile|spifSendChange),
	)
	if ret == 0 {
		detail := "SystemParametersInfoW returned 0"
		if callErr != nil && !errors.Is(callErr, windows.ERROR_SUCCESS) {
			detail = fmt.Sprintf("SystemParametersInfoW: %v", callErr)
		}
		return Attempt{Strategy: n.Name(), Status: StatusFailed, Detail: detail}
	}
	return Attempt{Strategy: n.Name(), Status: StatusApplied}
}
