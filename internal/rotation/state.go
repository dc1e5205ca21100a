package rotation

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	apperrors "github.com/EnemigoPython/Wallpaper-Rotator/internal/errors"
	"github.com/EnemigoPython/Wallpaper-Rotator/internal/foundation"
)

// DefaultStateFileName is created inside the wallpaper folder unless a
// state file location is configured.
const DefaultStateFileName = ".wallpaper_state.json"

// State is the rotation position persisted between runs.
type State struct {
	CurrentIndex  int     `json:"current_index"`
	LastWallpaper *string `json:"last_wallpaper"`
	ImageCount    int     `json:"image_count"`
	Order         Order   `json:"order"`
}

// DefaultState is assumed whenever nothing valid is on disk.
func DefaultState() State {
	return State{
		CurrentIndex: -1,
		Order:        OrderSequential,
	}
}

// readState parses the state file. Every failure mode (missing file,
// unreadable file, malformed JSON) lands in the Err arm; callers collapse
// it to DefaultState so a damaged file can never break rotation.
// Unknown order values normalize to sequential, and fields absent from
// the JSON keep their defaults.
func readState(path string) foundation.Result[State, error] {
	data, err := os.ReadFile(path)
	if err != nil {
		return foundation.Err[State, error](fmt.Errorf("read state file: %w", err))
	}

	state := DefaultState()
	if err := json.Unmarshal(data, &state); err != nil {
		return foundation.Err[State, error](fmt.Errorf("parse state file: %w", err))
	}
	state.Order = NormalizeOrder(string(state.Order))

	return foundation.Ok[State, error](state)
}

// writeState persists state atomically via a temp file rename, so a crash
// mid-write leaves the previous file intact rather than a torn one.
func writeState(path string, state State) foundation.Result[string, error] {
	fail := func(err error) foundation.Result[string, error] {
		return foundation.Err[string, error](apperrors.StatePersistFailed(path, err))
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fail(fmt.Errorf("marshal state: %w", err))
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fail(fmt.Errorf("ensure state dir: %w", err))
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fail(fmt.Errorf("write temp state: %w", err))
	}
	if err := os.Rename(tmp, path); err != nil {
		return fail(fmt.Errorf("atomic rename state: %w", err))
	}

	return foundation.Ok[string, error](path)
}
