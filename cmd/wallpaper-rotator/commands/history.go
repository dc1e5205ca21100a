package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/EnemigoPython/Wallpaper-Rotator/internal/cli"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	Limit int `short:"n" default:"10" help:"Number of entries to show"`
}

func (h *HistoryCmd) Run(g *Global, root *CLI) error {
	res := g.Executor.ExecuteHistory(context.Background(), cli.HistoryRequest{
		CommonOptions: root.commonOptions(),
		Limit:         h.Limit,
	})
	resp, err := res.ToTuple()
	if err != nil {
		return err
	}

	if len(resp.Entries) == 0 {
		fmt.Fprintln(g.Out, "No rotation history recorded yet.")
		return nil
	}

	fmt.Fprintln(g.Out, "Recent rotations:")
	for _, entry := range resp.Entries {
		outcome := "failed"
		if entry.Applied {
			outcome = fmt.Sprintf("applied via %s", entry.Strategy)
		}
		fmt.Fprintf(g.Out, "  %s  %-10s %s\n",
			entry.AppliedAt.Format("2006-01-02 15:04:05"),
			outcome,
			filepath.Base(entry.Path))
	}
	return nil
}
