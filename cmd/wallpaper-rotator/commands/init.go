package commands

import (
	"context"
	"fmt"

	"github.com/EnemigoPython/Wallpaper-Rotator/internal/cli"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration file"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	res := g.Executor.ExecuteInit(context.Background(), cli.InitRequest{
		ConfigPath: root.Config,
		Force:      i.Force,
	})
	resp, err := res.ToTuple()
	if err != nil {
		return err
	}

	fmt.Fprintf(g.Out, "Wrote starter configuration to %s\n", resp.ConfigPath)
	fmt.Fprintln(g.Out, "Edit the folder setting, then run wallpaper-rotator to rotate.")
	return nil
}
