package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/EnemigoPython/Wallpaper-Rotator/internal/cli"
	"github.com/EnemigoPython/Wallpaper-Rotator/internal/desktop"
)

// RotateCmd implements the 'rotate' command, the default action.
type RotateCmd struct {
	Order string `short:"o" help:"Rotation order for this run (sequential or random)"`
}

func (r *RotateCmd) Run(g *Global, root *CLI) error {
	res := g.Executor.ExecuteRotate(context.Background(), cli.RotateRequest{
		CommonOptions: root.commonOptions(),
		Order:         r.Order,
	})
	resp, err := res.ToTuple()
	if err != nil {
		return err
	}

	if root.Quiet {
		return nil
	}

	// Warn when only the current virtual desktop will change.
	resp.MultiDesktop.Match(func(capability desktop.Capability) {
		if capability.Supported() {
			return
		}
		fmt.Fprintln(g.Out, "⚠️  WARNING: Multi-desktop support not available.")
		fmt.Fprintln(g.Out, "   Wallpaper will only change on the current virtual desktop.")
		if capability.Detail != "" {
			fmt.Fprintf(g.Out, "   %s\n", capability.Detail)
		}
		fmt.Fprintln(g.Out)
	}, func() {})

	fmt.Fprintf(g.Out, "Setting wallpaper to: %s\n", filepath.Base(resp.Path))
	fmt.Fprintln(g.Out, "Wallpaper changed successfully!")
	return nil
}
