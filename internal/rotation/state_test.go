package rotation

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStateRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	last := "/pics/b.jpg"
	in := State{
		CurrentIndex:  2,
		LastWallpaper: &last,
		ImageCount:    5,
		Order:         OrderRandom,
	}

	result := writeState(path, in)
	if result.IsErr() {
		t.Fatalf("writeState: %v", result.UnwrapErr())
	}

	out := readState(path)
	if out.IsErr() {
		t.Fatalf("readState: %v", out.UnwrapErr())
	}

	got := out.Unwrap()
	if got.CurrentIndex != 2 || got.ImageCount != 5 || got.Order != OrderRandom {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got.LastWallpaper == nil || *got.LastWallpaper != last {
		t.Fatalf("last wallpaper mismatch: %v", got.LastWallpaper)
	}
}

func TestWriteStateLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.json")

	if writeState(path, DefaultState()).IsErr() {
		t.Fatal("writeState failed")
	}

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatal("temp file should be renamed away")
	}
}

func TestReadStateMissingFile(t *testing.T) {
	result := readState(filepath.Join(t.TempDir(), "absent.json"))
	if result.IsOk() {
		t.Fatal("expected Err for missing file")
	}

	state := result.UnwrapOr(DefaultState())
	if state.CurrentIndex != -1 || state.Order != OrderSequential {
		t.Fatalf("fallback state mismatch: %+v", state)
	}
}

func TestReadStateMalformed(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"truncated", `{"current_index": 1`},
		{"wrong type", `{"current_index": "two"}`},
		{"not json at all", `hello world`},
		{"empty", ``},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "state.json")
			if err := os.WriteFile(path, []byte(tc.data), 0o600); err != nil {
				t.Fatal(err)
			}

			result := readState(path)
			if result.IsOk() {
				t.Fatal("expected Err for malformed state")
			}
		})
	}
}

func TestWriteStateFailureIsClassified(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	result := writeState(filepath.Join(blocker, "deep", "state.json"), DefaultState())
	if result.IsOk() {
		t.Fatal("expected Err when state dir cannot be created")
	}
}
