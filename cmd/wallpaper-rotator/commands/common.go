package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/EnemigoPython/Wallpaper-Rotator/internal/cli"
	"github.com/EnemigoPython/Wallpaper-Rotator/internal/config"
)

// Global carries the dependencies shared by every subcommand.
type Global struct {
	Executor cli.CommandExecutor
	Out      io.Writer
}

// NewGlobal wires the production executor, printing to stdout.
func NewGlobal() *Global {
	return &Global{
		Executor: cli.NewCommandExecutor(),
		Out:      os.Stdout,
	}
}

// CLI definition & global flags. Rotate is the default command so a bare
// invocation (say from a scheduler entry) advances the wallpaper.
type CLI struct {
	Folder    string           `short:"f" env:"WallpaperDir" help:"Folder containing the wallpaper images"`
	Config    string           `short:"c" help:"Configuration file path (wallpaper-rotator.yaml is picked up automatically)"`
	StateFile string           `name:"state-file" help:"Rotation state file path (default: <folder>/.wallpaper_state.json)"`
	Quiet     bool             `short:"q" help:"Quiet mode - minimal output"`
	Verbose   bool             `short:"v" help:"Enable verbose logging"`
	Version   kong.VersionFlag `name:"version" help:"Show version and exit"`

	Rotate       RotateCmd       `cmd:"" default:"withargs" help:"Advance to the next wallpaper and apply it"`
	Status       StatusCmd       `cmd:"" help:"Show the rotation position and desktop support"`
	Reset        ResetCmd        `cmd:"" help:"Reset rotation to beginning"`
	SetOrder     SetOrderCmd     `cmd:"" name:"set-order" help:"Persist the rotation order (sequential or random)"`
	CheckSupport CheckSupportCmd `cmd:"" name:"check-support" help:"Check if multi-desktop support is available"`
	History      HistoryCmd      `cmd:"" help:"Show recently applied wallpapers"`
	Init         InitCmd         `cmd:"" help:"Write a starter configuration file"`
}

// AfterApply runs after flag parsing; set up logging once. The config
// file supplies level and format, the verbose and quiet flags override
// the level. A config file that fails to load is ignored here so the
// command itself can report it.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	format := config.LogFormatText
	if cfg, err := loadLoggingConfig(c.Config); err == nil {
		level = config.NormalizeLogLevel(cfg.Logging.Level).Slog()
		format = config.NormalizeLogFormat(cfg.Logging.Format)
	}
	if c.Verbose {
		level = slog.LevelDebug
	} else if c.Quiet {
		level = slog.LevelWarn
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if format == config.LogFormatJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
	return nil
}

func loadLoggingConfig(path string) (*config.Config, error) {
	if path == "" {
		path = config.DefaultFileName
	}
	if _, err := os.Stat(path); err != nil {
		return config.Default(), nil
	}
	return config.Load(path)
}

func (c *CLI) commonOptions() cli.CommonOptions {
	return cli.CommonOptions{
		ConfigPath: c.Config,
		Folder:     c.Folder,
		StateFile:  c.StateFile,
		Quiet:      c.Quiet,
	}
}
