package commands

import (
	"context"
	"fmt"

	"github.com/EnemigoPython/Wallpaper-Rotator/internal/cli"
)

// SetOrderCmd implements the 'set-order' command.
type SetOrderCmd struct {
	Order string `arg:"" help:"Rotation order, sequential or random"`
}

func (s *SetOrderCmd) Run(g *Global, root *CLI) error {
	res := g.Executor.ExecuteSetOrder(context.Background(), cli.SetOrderRequest{
		CommonOptions: root.commonOptions(),
		Order:         s.Order,
	})
	resp, err := res.ToTuple()
	if err != nil {
		return err
	}

	if !root.Quiet {
		fmt.Fprintf(g.Out, "Rotation order set to: %s\n", resp.Order)
	}
	return nil
}
