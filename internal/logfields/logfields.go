package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyStage      = "stage"
	KeyFolder     = "folder"
	KeyPath       = "path"
	KeyStateFile  = "state_file"
	KeyIndex      = "index"
	KeyImageCount = "image_count"
	KeyOrder      = "order"
	KeyStrategy   = "strategy"
	KeyOutcome    = "outcome"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func Folder(path string) slog.Attr    { return slog.String(KeyFolder, path) }
func Path(path string) slog.Attr      { return slog.String(KeyPath, path) }
func StateFile(path string) slog.Attr { return slog.String(KeyStateFile, path) }
func Index(i int) slog.Attr           { return slog.Int(KeyIndex, i) }
func ImageCount(n int) slog.Attr      { return slog.Int(KeyImageCount, n) }
func Order(o string) slog.Attr        { return slog.String(KeyOrder, o) }
func Strategy(name string) slog.Attr  { return slog.String(KeyStrategy, name) }
func Outcome(o string) slog.Attr      { return slog.String(KeyOutcome, o) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
