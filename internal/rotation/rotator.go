// Package rotation implements the persisted wallpaper cycle: a fresh
// folder listing on every run, sequential or random index selection with
// drift detection, and best-effort state persistence between runs.
package rotation

import (
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"

	apperrors "github.com/EnemigoPython/Wallpaper-Rotator/internal/errors"
	"github.com/EnemigoPython/Wallpaper-Rotator/internal/foundation"
	"github.com/EnemigoPython/Wallpaper-Rotator/internal/logfields"
	"github.com/EnemigoPython/Wallpaper-Rotator/internal/metrics"
)

// Rotator advances the wallpaper cycle for one folder. It holds no
// listing cache and no open files; all rotation data lives in the state
// file so concurrent tools see a consistent (if last-writer-wins) view.
type Rotator struct {
	folder    string
	statePath string
	rng       *rand.Rand
	recorder  metrics.Recorder
}

// Option configures a Rotator.
type Option func(*Rotator)

// WithStateFile overrides the state file location.
func WithStateFile(path string) Option {
	return func(r *Rotator) {
		if path != "" {
			r.statePath = path
		}
	}
}

// WithRand injects a deterministic random source for tests.
func WithRand(rng *rand.Rand) Option {
	return func(r *Rotator) {
		r.rng = rng
	}
}

// WithRecorder attaches a metrics recorder.
func WithRecorder(rec metrics.Recorder) Option {
	return func(r *Rotator) {
		if rec != nil {
			r.recorder = rec
		}
	}
}

// New validates the wallpaper folder once and returns a Rotator bound to
// it. Listing errors after this point are per-call, not construction
// failures.
func New(folder string, opts ...Option) (*Rotator, error) {
	info, err := os.Stat(folder)
	if err != nil {
		return nil, apperrors.FolderNotFound(folder)
	}
	if !info.IsDir() {
		return nil, apperrors.FolderNotDirectory(folder)
	}

	r := &Rotator{
		folder:    folder,
		statePath: filepath.Join(folder, DefaultStateFileName),
		rng:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		recorder:  metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Folder returns the wallpaper folder this rotator scans.
func (r *Rotator) Folder() string { return r.folder }

// StateFile returns the resolved state file path.
func (r *Rotator) StateFile() string { return r.statePath }

// Images lists the supported image files currently in the folder.
func (r *Rotator) Images() ([]string, error) {
	return listImages(r.folder)
}

// LoadState reads the persisted rotation position. Missing, unreadable,
// and corrupt files all load as the default state.
func (r *Rotator) LoadState() State {
	return readState(r.statePath).UnwrapOr(DefaultState())
}

// saveState persists state, degrading to a warning on failure. A
// read-only folder must not block rotation; the cost is that the next run
// repeats this selection.
func (r *Rotator) saveState(state State) foundation.Result[string, error] {
	result := writeState(r.statePath, state)
	result.Match(
		func(string) {
			r.recorder.IncStageResult("persist", metrics.ResultSuccess)
		},
		func(err error) {
			slog.Warn("could not save rotation state",
				logfields.StateFile(r.statePath), logfields.Error(err))
			r.recorder.IncStageResult("persist", metrics.ResultWarning)
		},
	)
	return result
}

// Selection identifies the wallpaper chosen by one rotation step.
type Selection struct {
	Path  string
	Index int
	Total int
	Order Order
}

// Next advances the rotation and returns the selected wallpaper, or None
// when the folder holds no images (state is left untouched in that case).
// A changed image count restarts the cycle before the order logic runs,
// so stale indices from a reorganized folder are never dereferenced.
func (r *Rotator) Next(order Order) (foundation.Option[Selection], error) {
	images, err := r.Images()
	if err != nil {
		return foundation.None[Selection](), err
	}
	r.recorder.SetImageCount(len(images))
	if len(images) == 0 {
		return foundation.None[Selection](), nil
	}

	state := r.LoadState()
	current := state.CurrentIndex
	if len(images) != state.ImageCount {
		slog.Info("folder contents changed, restarting rotation",
			logfields.Folder(r.folder), logfields.ImageCount(len(images)))
		current = -1
	}

	var next int
	switch {
	case order == OrderRandom && len(images) > 1:
		next = r.pickIndex(len(images), current)
	case order == OrderRandom:
		next = 0
	default:
		next = (current + 1) % len(images)
	}

	path := images[next]
	state.CurrentIndex = next
	state.LastWallpaper = &path
	state.ImageCount = len(images)
	state.Order = order
	r.saveState(state)

	return foundation.Some(Selection{
		Path:  path,
		Index: next,
		Total: len(images),
		Order: order,
	}), nil
}

// pickIndex draws a uniform random index excluding the current one, so a
// random rotation never immediately repeats. Callers guarantee n > 1.
func (r *Rotator) pickIndex(n, exclude int) int {
	if exclude < 0 || exclude >= n {
		return r.rng.IntN(n)
	}
	pick := r.rng.IntN(n - 1)
	if pick >= exclude {
		pick++
	}
	return pick
}

// SetOrder validates and persists the rotation order without advancing
// the cycle. Invalid input is rejected before any state is touched.
func (r *Rotator) SetOrder(raw string) error {
	order, err := ParseOrder(raw)
	if err != nil {
		return err
	}

	state := r.LoadState()
	state.Order = order
	r.saveState(state)
	return nil
}

// Reset clears the rotation position; the next sequential step selects
// the first image again.
func (r *Rotator) Reset() {
	state := r.LoadState()
	state.CurrentIndex = -1
	r.saveState(state)
}

// Status reports the live listing alongside the persisted position.
type Status struct {
	Folder           string
	StateFile        string
	TotalImages      int
	CurrentIndex     int
	CurrentWallpaper foundation.Option[string]
	Order            Order
}

// Status recomputes the listing and joins it with the persisted state.
// CurrentWallpaper is None when the persisted index no longer points
// inside the live listing.
func (r *Rotator) Status() (Status, error) {
	images, err := r.Images()
	if err != nil {
		return Status{}, err
	}

	state := r.LoadState()
	status := Status{
		Folder:           r.folder,
		StateFile:        r.statePath,
		TotalImages:      len(images),
		CurrentIndex:     state.CurrentIndex,
		CurrentWallpaper: foundation.None[string](),
		Order:            state.Order,
	}
	if state.CurrentIndex >= 0 && state.CurrentIndex < len(images) {
		status.CurrentWallpaper = foundation.Some(filepath.Base(images[state.CurrentIndex]))
	}
	return status, nil
}
