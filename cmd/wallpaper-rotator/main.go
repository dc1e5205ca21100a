// Command wallpaper-rotator advances the desktop wallpaper through a
// folder of images, remembering its position between runs so repeated
// invocations (from a scheduler, a hotkey, or by hand) cycle the folder.
package main

import (
	"github.com/alecthomas/kong"

	"github.com/EnemigoPython/Wallpaper-Rotator/cmd/wallpaper-rotator/commands"
	apperrors "github.com/EnemigoPython/Wallpaper-Rotator/internal/errors"
	"github.com/EnemigoPython/Wallpaper-Rotator/internal/version"
)

func main() {
	var root commands.CLI
	ctx := kong.Parse(&root,
		kong.Name("wallpaper-rotator"),
		kong.Description("Rotate desktop wallpapers"),
		kong.Vars{"version": version.Version},
	)

	if err := ctx.Run(commands.NewGlobal()); err != nil {
		apperrors.NewCLIErrorAdapter(root.Verbose, nil).HandleError(err)
	}
}
