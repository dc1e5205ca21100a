package commands

import (
	"context"
	"fmt"

	"github.com/EnemigoPython/Wallpaper-Rotator/internal/cli"
)

// StatusCmd implements the 'status' command.
type StatusCmd struct{}

func (s *StatusCmd) Run(g *Global, root *CLI) error {
	res := g.Executor.ExecuteStatus(context.Background(), cli.StatusRequest{
		CommonOptions: root.commonOptions(),
	})
	resp, err := res.ToTuple()
	if err != nil {
		return err
	}

	fmt.Fprintln(g.Out, "Wallpaper Rotator Status:")
	fmt.Fprintf(g.Out, "  Folder: %s\n", resp.Folder)
	fmt.Fprintf(g.Out, "  Total images: %d\n", resp.TotalImages)
	fmt.Fprintf(g.Out, "  Current index: %d\n", resp.CurrentIndex)
	fmt.Fprintf(g.Out, "  Current wallpaper: %s\n", resp.CurrentWallpaper.UnwrapOr("none"))
	fmt.Fprintf(g.Out, "  Order: %s\n", resp.Order)

	if resp.MultiDesktop.Supported() {
		fmt.Fprintln(g.Out, "  Multi-desktop support: ✓ Available")
	} else if resp.MultiDesktop.Detail != "" {
		fmt.Fprintf(g.Out, "  Multi-desktop support: ✗ Not available (%s)\n", resp.MultiDesktop.Detail)
	} else {
		fmt.Fprintln(g.Out, "  Multi-desktop support: ✗ Not available")
	}
	return nil
}
