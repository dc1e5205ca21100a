// Package cli wires rotation, desktop application, configuration,
// history, and metrics into one executor behind request/response types,
// keeping the command definitions free of orchestration logic.
package cli

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/EnemigoPython/Wallpaper-Rotator/internal/config"
	"github.com/EnemigoPython/Wallpaper-Rotator/internal/desktop"
	apperrors "github.com/EnemigoPython/Wallpaper-Rotator/internal/errors"
	"github.com/EnemigoPython/Wallpaper-Rotator/internal/foundation"
	"github.com/EnemigoPython/Wallpaper-Rotator/internal/history"
	"github.com/EnemigoPython/Wallpaper-Rotator/internal/logfields"
	"github.com/EnemigoPython/Wallpaper-Rotator/internal/metrics"
	"github.com/EnemigoPython/Wallpaper-Rotator/internal/observability"
	"github.com/EnemigoPython/Wallpaper-Rotator/internal/rotation"
)

// CommandExecutor provides a service-oriented interface for CLI command
// execution.
type CommandExecutor interface {
	ExecuteRotate(ctx context.Context, req RotateRequest) foundation.Result[RotateResponse, error]
	ExecuteStatus(ctx context.Context, req StatusRequest) foundation.Result[StatusResponse, error]
	ExecuteReset(ctx context.Context, req ResetRequest) foundation.Result[ResetResponse, error]
	ExecuteSetOrder(ctx context.Context, req SetOrderRequest) foundation.Result[SetOrderResponse, error]
	ExecuteCheckSupport(ctx context.Context, req CheckSupportRequest) foundation.Result[CheckSupportResponse, error]
	ExecuteHistory(ctx context.Context, req HistoryRequest) foundation.Result[HistoryResponse, error]
	ExecuteInit(ctx context.Context, req InitRequest) foundation.Result[InitResponse, error]
}

// CommonOptions are the global flags shared by every command.
type CommonOptions struct {
	ConfigPath string
	Folder     string
	StateFile  string
	Quiet      bool
}

// Request/Response types for each command

type RotateRequest struct {
	CommonOptions
	Order string // empty means config order, then persisted order
}

type RotateResponse struct {
	RunID        string
	Path         string
	Index        int
	Total        int
	Order        rotation.Order
	Strategy     string
	MultiDesktop foundation.Option[desktop.Capability]
	Duration     time.Duration
}

type StatusRequest struct {
	CommonOptions
}

type StatusResponse struct {
	Folder           string
	StateFile        string
	TotalImages      int
	CurrentIndex     int
	CurrentWallpaper foundation.Option[string]
	Order            rotation.Order
	MultiDesktop     desktop.Capability
}

type ResetRequest struct {
	CommonOptions
}

type ResetResponse struct {
	StateFile string
}

type SetOrderRequest struct {
	CommonOptions
	Order string
}

type SetOrderResponse struct {
	Order rotation.Order
}

type CheckSupportRequest struct {
	ConfigPath string
}

type CheckSupportResponse struct {
	Capability desktop.Capability
}

type HistoryRequest struct {
	CommonOptions
	Limit int
}

type HistoryResponse struct {
	Entries []history.Entry
}

type InitRequest struct {
	ConfigPath string
	Force      bool
}

type InitResponse struct {
	ConfigPath string
	Created    bool
}

// wallpaperApplier abstracts the desktop strategy chain so tests can
// substitute a fake.
type wallpaperApplier interface {
	Apply(ctx context.Context, path string) desktop.Result
	ProbeMultiDesktop(ctx context.Context) desktop.Capability
}

// DefaultCommandExecutor implements the CommandExecutor interface.
type DefaultCommandExecutor struct {
	applierFactory func(timeout time.Duration, rec metrics.Recorder) wallpaperApplier
}

// NewCommandExecutor creates a command executor backed by the
// platform's strategy chain.
func NewCommandExecutor() *DefaultCommandExecutor {
	return &DefaultCommandExecutor{
		applierFactory: func(timeout time.Duration, rec metrics.Recorder) wallpaperApplier {
			return desktop.New(desktop.WithHelperTimeout(timeout), desktop.WithRecorder(rec))
		},
	}
}

// WithApplierFactory allows injecting a custom applier (for testing).
func (e *DefaultCommandExecutor) WithApplierFactory(f func(timeout time.Duration, rec metrics.Recorder) wallpaperApplier) *DefaultCommandExecutor {
	e.applierFactory = f
	return e
}

// settings is the result of merging flags, the config file, and
// built-in defaults.
type settings struct {
	cfg       *config.Config
	folder    string
	stateFile string // empty means the rotator default inside the folder
}

// loadConfig reads the requested config file, or the default file when
// one exists in the working directory, or built-in defaults otherwise.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	if _, err := os.Stat(config.DefaultFileName); err == nil {
		return config.Load(config.DefaultFileName)
	}
	return config.Default(), nil
}

func (e *DefaultCommandExecutor) resolve(opts CommonOptions) (settings, error) {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return settings{}, err
	}

	folder := opts.Folder
	if folder == "" {
		folder = cfg.Folder
	}
	if folder == "" {
		return settings{}, apperrors.New(apperrors.CategoryConfig, apperrors.SeverityFatal,
			"no wallpaper folder configured").
			WithContext("hint", "pass --folder or set WallpaperDir")
	}

	stateFile := opts.StateFile
	if stateFile == "" {
		stateFile = cfg.StateFile
	}

	return settings{cfg: cfg, folder: folder, stateFile: stateFile}, nil
}

func newRotator(st settings, rec metrics.Recorder) (*rotation.Rotator, error) {
	return rotation.New(st.folder,
		rotation.WithStateFile(st.stateFile),
		rotation.WithRecorder(rec))
}

// buildRecorder returns a Prometheus-backed recorder when textfile
// export is configured, and the registry to gather from afterwards.
func buildRecorder(cfg *config.Config) (metrics.Recorder, *prom.Registry) {
	if cfg.Metrics.TextfilePath == "" {
		return metrics.NoopRecorder{}, nil
	}
	registry := prom.NewRegistry()
	return metrics.NewPrometheusRecorder(registry), registry
}

func exportMetrics(ctx context.Context, cfg *config.Config, registry *prom.Registry) {
	if registry == nil {
		return
	}
	if err := metrics.WriteTextfile(registry, cfg.Metrics.TextfilePath); err != nil {
		observability.WarnContext(ctx, "could not write metrics textfile",
			logfields.Path(cfg.Metrics.TextfilePath), logfields.Error(err))
	}
}

// ExecuteRotate runs one full rotation: select the next wallpaper,
// apply it through the strategy chain, and record the outcome.
func (e *DefaultCommandExecutor) ExecuteRotate(ctx context.Context, req RotateRequest) foundation.Result[RotateResponse, error] {
	started := time.Now()
	runID := uuid.NewString()
	ctx = observability.WithRunID(ctx, runID)

	st, err := e.resolve(req.CommonOptions)
	if err != nil {
		return foundation.Err[RotateResponse](err)
	}
	ctx = observability.WithFolder(ctx, st.folder)

	rec, registry := buildRecorder(st.cfg)
	defer func() { exportMetrics(ctx, st.cfg, registry) }()

	rotator, err := newRotator(st, rec)
	if err != nil {
		return foundation.Err[RotateResponse](err)
	}
	applier := e.applierFactory(st.cfg.Helper.TimeoutDuration(), rec)

	// Probe before rotating so the command can warn that only the
	// current desktop will change. Quiet mode skips the probe entirely.
	support := foundation.None[desktop.Capability]()
	if !req.Quiet {
		support = foundation.Some(applier.ProbeMultiDesktop(ctx))
	}

	order, err := resolveOrder(req.Order, st.cfg, rotator)
	if err != nil {
		return foundation.Err[RotateResponse](err)
	}
	if err := rotator.SetOrder(order.String()); err != nil {
		return foundation.Err[RotateResponse](err)
	}

	selectStart := time.Now()
	selection, err := rotator.Next(order)
	rec.ObserveStageDuration("select", time.Since(selectStart))
	if err != nil {
		return foundation.Err[RotateResponse](err)
	}
	if selection.IsNone() {
		rec.IncRotationOutcome("no_images")
		return foundation.Err[RotateResponse, error](apperrors.NoImagesFound(st.folder))
	}
	sel := selection.Unwrap()

	observability.InfoContext(ctx, "wallpaper selected",
		logfields.Path(sel.Path),
		logfields.Index(sel.Index),
		logfields.ImageCount(sel.Total),
		logfields.Order(sel.Order.String()))

	applyStart := time.Now()
	applyResult := applier.Apply(ctx, sel.Path)
	rec.ObserveStageDuration("apply", time.Since(applyStart))

	e.recordHistory(ctx, st, history.Entry{
		RunID:    runID,
		Path:     sel.Path,
		Index:    sel.Index,
		Order:    sel.Order.String(),
		Applied:  applyResult.Applied,
		Strategy: applyResult.Strategy,
	})

	duration := time.Since(started)
	rec.ObserveRotationDuration(duration)

	if !applyResult.Applied {
		rec.IncRotationOutcome("failed")
		observability.WarnContext(ctx, "all wallpaper strategies failed",
			logfields.Path(sel.Path), slog.String("detail", applyResult.Message()))
		return foundation.Err[RotateResponse, error](apperrors.ApplyFailed(sel.Path))
	}

	rec.IncRotationOutcome("applied")
	observability.InfoContext(ctx, "wallpaper applied",
		logfields.Path(sel.Path),
		logfields.Strategy(applyResult.Strategy),
		logfields.DurationMS(duration.Seconds()*1000))

	return foundation.Ok[RotateResponse, error](RotateResponse{
		RunID:        runID,
		Path:         sel.Path,
		Index:        sel.Index,
		Total:        sel.Total,
		Order:        sel.Order,
		Strategy:     applyResult.Strategy,
		MultiDesktop: support,
		Duration:     duration,
	})
}

// resolveOrder picks the rotation order: explicit flag first, then the
// config file, then whatever order the state file carries.
func resolveOrder(flagOrder string, cfg *config.Config, rotator *rotation.Rotator) (rotation.Order, error) {
	raw := flagOrder
	if raw == "" {
		raw = cfg.Order
	}
	if raw == "" {
		return rotator.LoadState().Order, nil
	}
	return rotation.ParseOrder(raw)
}

// ExecuteStatus reports the live folder listing joined with the
// persisted rotation position and the multi-desktop capability.
func (e *DefaultCommandExecutor) ExecuteStatus(ctx context.Context, req StatusRequest) foundation.Result[StatusResponse, error] {
	st, err := e.resolve(req.CommonOptions)
	if err != nil {
		return foundation.Err[StatusResponse](err)
	}

	rotator, err := newRotator(st, metrics.NoopRecorder{})
	if err != nil {
		return foundation.Err[StatusResponse](err)
	}

	status, err := rotator.Status()
	if err != nil {
		return foundation.Err[StatusResponse](err)
	}

	applier := e.applierFactory(st.cfg.Helper.TimeoutDuration(), metrics.NoopRecorder{})
	capability := applier.ProbeMultiDesktop(ctx)

	return foundation.Ok[StatusResponse, error](StatusResponse{
		Folder:           status.Folder,
		StateFile:        status.StateFile,
		TotalImages:      status.TotalImages,
		CurrentIndex:     status.CurrentIndex,
		CurrentWallpaper: status.CurrentWallpaper,
		Order:            status.Order,
		MultiDesktop:     capability,
	})
}

// ExecuteReset clears the rotation position so the next sequential
// rotation starts from the first image.
func (e *DefaultCommandExecutor) ExecuteReset(ctx context.Context, req ResetRequest) foundation.Result[ResetResponse, error] {
	st, err := e.resolve(req.CommonOptions)
	if err != nil {
		return foundation.Err[ResetResponse](err)
	}

	rotator, err := newRotator(st, metrics.NoopRecorder{})
	if err != nil {
		return foundation.Err[ResetResponse](err)
	}

	rotator.Reset()
	observability.InfoContext(ctx, "rotation reset",
		logfields.StateFile(rotator.StateFile()))

	return foundation.Ok[ResetResponse, error](ResetResponse{
		StateFile: rotator.StateFile(),
	})
}

// ExecuteSetOrder validates and persists the rotation order.
func (e *DefaultCommandExecutor) ExecuteSetOrder(ctx context.Context, req SetOrderRequest) foundation.Result[SetOrderResponse, error] {
	st, err := e.resolve(req.CommonOptions)
	if err != nil {
		return foundation.Err[SetOrderResponse](err)
	}

	rotator, err := newRotator(st, metrics.NoopRecorder{})
	if err != nil {
		return foundation.Err[SetOrderResponse](err)
	}

	order, err := rotation.ParseOrder(req.Order)
	if err != nil {
		return foundation.Err[SetOrderResponse](err)
	}
	if err := rotator.SetOrder(order.String()); err != nil {
		return foundation.Err[SetOrderResponse](err)
	}

	observability.InfoContext(ctx, "rotation order updated",
		logfields.Order(order.String()))

	return foundation.Ok[SetOrderResponse, error](SetOrderResponse{Order: order})
}

// ExecuteCheckSupport probes the multi-desktop helper without touching
// the wallpaper folder or applying anything.
func (e *DefaultCommandExecutor) ExecuteCheckSupport(ctx context.Context, req CheckSupportRequest) foundation.Result[CheckSupportResponse, error] {
	cfg, err := loadConfig(req.ConfigPath)
	if err != nil {
		return foundation.Err[CheckSupportResponse](err)
	}

	applier := e.applierFactory(cfg.Helper.TimeoutDuration(), metrics.NoopRecorder{})
	capability := applier.ProbeMultiDesktop(ctx)

	observability.DebugContext(ctx, "multi-desktop capability probed",
		logfields.Outcome(string(capability.Status)))

	return foundation.Ok[CheckSupportResponse, error](CheckSupportResponse{Capability: capability})
}

// ExecuteHistory reads the most recent journal entries. A journal that
// was never created yields an empty response rather than an error.
func (e *DefaultCommandExecutor) ExecuteHistory(ctx context.Context, req HistoryRequest) foundation.Result[HistoryResponse, error] {
	st, err := e.resolve(req.CommonOptions)
	if err != nil {
		return foundation.Err[HistoryResponse](err)
	}

	journalPath := e.journalPath(st)
	if _, err := os.Stat(journalPath); os.IsNotExist(err) {
		return foundation.Ok[HistoryResponse, error](HistoryResponse{})
	}

	journal, err := history.Open(journalPath)
	if err != nil {
		return foundation.Err[HistoryResponse, error](apperrors.HistoryError("open", err))
	}
	defer func() { _ = journal.Close() }()

	entries, err := journal.Recent(ctx, req.Limit)
	if err != nil {
		return foundation.Err[HistoryResponse, error](apperrors.HistoryError("read", err))
	}

	return foundation.Ok[HistoryResponse, error](HistoryResponse{Entries: entries})
}

// ExecuteInit writes a starter configuration file.
func (e *DefaultCommandExecutor) ExecuteInit(ctx context.Context, req InitRequest) foundation.Result[InitResponse, error] {
	path := req.ConfigPath
	if path == "" {
		path = config.DefaultFileName
	}

	observability.InfoContext(ctx, "initializing configuration",
		logfields.Path(path))

	if err := config.Init(path, req.Force); err != nil {
		return foundation.Err[InitResponse, error](apperrors.ConfigInvalid(path, err))
	}

	return foundation.Ok[InitResponse, error](InitResponse{
		ConfigPath: path,
		Created:    true,
	})
}

func (e *DefaultCommandExecutor) journalPath(st settings) string {
	if st.cfg.History.Path != "" {
		return st.cfg.History.Path
	}
	return filepath.Join(st.folder, history.DefaultFileName)
}

// recordHistory appends the rotation to the journal when enabled.
// Journal trouble is reported as a warning, never a rotation failure.
func (e *DefaultCommandExecutor) recordHistory(ctx context.Context, st settings, entry history.Entry) {
	if !st.cfg.History.Enabled {
		return
	}

	journalPath := e.journalPath(st)
	journal, err := history.Open(journalPath)
	if err != nil {
		observability.WarnContext(ctx, "rotation history unavailable",
			logfields.Path(journalPath), logfields.Error(err))
		return
	}
	defer func() { _ = journal.Close() }()

	if err := journal.Record(ctx, entry); err != nil {
		observability.WarnContext(ctx, "could not record rotation history",
			logfields.Path(journalPath), logfields.Error(err))
	}
}
