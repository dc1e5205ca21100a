package commands

import (
	"context"
	"fmt"

	"github.com/EnemigoPython/Wallpaper-Rotator/internal/cli"
)

// ResetCmd implements the 'reset' command.
type ResetCmd struct{}

func (r *ResetCmd) Run(g *Global, root *CLI) error {
	res := g.Executor.ExecuteReset(context.Background(), cli.ResetRequest{
		CommonOptions: root.commonOptions(),
	})
	if _, err := res.ToTuple(); err != nil {
		return err
	}

	if !root.Quiet {
		fmt.Fprintln(g.Out, "Rotation reset to start from beginning.")
	}
	return nil
}
