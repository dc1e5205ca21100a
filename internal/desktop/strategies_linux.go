//go:build linux

package desktop

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"time"

	"github.com/godbus/dbus/v5"
)

func platformStrategies(helperTimeout time.Duration) []Strategy {
	return []Strategy{
		&plasmaStrategy{timeout: helperTimeout},
		&gsettingsStrategy{timeout: helperTimeout},
	}
}

const plasmaShellName = "org.kde.plasmashell"

// plasmaWallpaperScript runs inside plasmashell and writes the image
// onto every desktop containment, which covers all virtual desktops and
// activities at once.
const plasmaWallpaperScript = `
var allDesktops = desktops();
for (var i = 0; i < allDesktops.length; i++) {
    var d = allDesktops[i];
    d.wallpaperPlugin = "org.kde.image";
    d.currentConfigGroup = ["Wallpaper", "org.kde.image", "General"];
    d.writeConfig("Image", %s);
}
`

// plasmaStrategy drives KDE Plasma over the D-Bus session bus. Plasma
// not running is an expected state on non-KDE desktops and reported as
// unavailable so the chain moves on.
type plasmaStrategy struct {
	timeout time.Duration
}

func (s *plasmaStrategy) Name() string { return "plasma-dbus" }

func (s *plasmaStrategy) Attempt(parent context.Context, path string) Attempt {
	ctx, cancel := s.withTimeout(parent)
	defer cancel()

	conn, err := dbus.SessionBus()
	if err != nil {
		return Attempt{Strategy: s.Name(), Status: StatusUnavailable, Detail: "no D-Bus session bus"}
	}

	owned, err := nameHasOwner(ctx, conn, plasmaShellName)
	if err != nil || !owned {
		return Attempt{Strategy: s.Name(), Status: StatusUnavailable, Detail: "KDE Plasma shell not running"}
	}

	script := fmt.Sprintf(plasmaWallpaperScript, strconv.Quote("file://"+path))
	call := conn.Object(plasmaShellName, "/PlasmaShell").
		CallWithContext(ctx, "org.kde.PlasmaShell.evaluateScript", 0, script)
	switch {
	case call.Err == nil:
		return Attempt{Strategy: s.Name(), Status: StatusApplied}
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return Attempt{Strategy: s.Name(), Status: StatusTimeout, Detail: "plasmashell call timed out"}
	default:
		return Attempt{Strategy: s.Name(), Status: StatusFailed, Detail: fmt.Sprintf("evaluateScript: %v", call.Err)}
	}
}

func (s *plasmaStrategy) Probe(parent context.Context) Capability {
	ctx, cancel := s.withTimeout(parent)
	defer cancel()

	conn, err := dbus.SessionBus()
	if err != nil {
		return Capability{Status: CapabilityUnavailable, Detail: "no D-Bus session bus"}
	}
	owned, err := nameHasOwner(ctx, conn, plasmaShellName)
	if err != nil {
		return Capability{Status: CapabilityUnavailable, Detail: fmt.Sprintf("query bus name: %v", err)}
	}
	if !owned {
		return Capability{Status: CapabilityModuleMissing, Detail: "KDE Plasma shell not running"}
	}
	return Capability{Status: CapabilitySupported}
}

func (s *plasmaStrategy) withTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	timeout := s.timeout
	if timeout <= 0 {
		timeout = DefaultHelperTimeout
	}
	return context.WithTimeout(parent, timeout)
}

func nameHasOwner(ctx context.Context, conn *dbus.Conn, name string) (bool, error) {
	var owned bool
	err := conn.BusObject().
		CallWithContext(ctx, "org.freedesktop.DBus.NameHasOwner", 0, name).
		Store(&owned)
	return owned, err
}

// gsettingsStrategy covers the GNOME family. It only affects the
// current desktop's background, the single-desktop tier on this
// platform.
type gsettingsStrategy struct {
	timeout time.Duration
}

func (s *gsettingsStrategy) Name() string { return "gsettings" }

func (s *gsettingsStrategy) Attempt(parent context.Context, path string) Attempt {
	if _, err := exec.LookPath("gsettings"); err != nil {
		return Attempt{Strategy: s.Name(), Status: StatusUnavailable, Detail: "gsettings not found in PATH"}
	}

	timeout := s.timeout
	if timeout <= 0 {
		timeout = DefaultHelperTimeout
	}
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	uri := "file://" + path
	if err := runGsettings(ctx, "picture-uri", uri); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return Attempt{Strategy: s.Name(), Status: StatusTimeout, Detail: "gsettings command timed out"}
		}
		return Attempt{Strategy: s.Name(), Status: StatusFailed, Detail: fmt.Sprintf("gsettings set picture-uri: %v", err)}
	}

	// GNOME 42 and later reads a separate key when the dark style is
	// active. The key does not exist on older releases, so a failure
	// here is ignored.
	_ = runGsettings(ctx, "picture-uri-dark", uri)

	return Attempt{Strategy: s.Name(), Status: StatusApplied}
}

func runGsettings(ctx context.Context, key, value string) error {
	// #nosec G204 -- fixed binary and schema, value is the wallpaper URI
	return exec.CommandContext(ctx, "gsettings", "set", "org.gnome.desktop.background", key, value).Run()
}
