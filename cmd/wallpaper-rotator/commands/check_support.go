package commands

import (
	"context"
	"fmt"

	"github.com/EnemigoPython/Wallpaper-Rotator/internal/cli"
)

// CheckSupportCmd implements the 'check-support' command. It probes the
// multi-desktop helper without touching the wallpaper, and exits zero
// either way; the printed lines carry the answer.
type CheckSupportCmd struct{}

func (c *CheckSupportCmd) Run(g *Global, root *CLI) error {
	res := g.Executor.ExecuteCheckSupport(context.Background(), cli.CheckSupportRequest{
		ConfigPath: root.Config,
	})
	resp, err := res.ToTuple()
	if err != nil {
		return err
	}

	if resp.Capability.Supported() {
		fmt.Fprintln(g.Out, "✓ Multi-desktop support is available")
		return nil
	}

	fmt.Fprintln(g.Out, "✗ Multi-desktop support not available")
	if resp.Capability.Detail != "" {
		fmt.Fprintf(g.Out, "  %s\n", resp.Capability.Detail)
	}
	return nil
}
