package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/EnemigoPython/Wallpaper-Rotator/internal/desktop"
	apperrors "github.com/EnemigoPython/Wallpaper-Rotator/internal/errors"
	"github.com/EnemigoPython/Wallpaper-Rotator/internal/metrics"
	"github.com/EnemigoPython/Wallpaper-Rotator/internal/rotation"
)

type fakeApplier struct {
	applyResult desktop.Result
	capability  desktop.Capability
	applied     []string
	probes      int
}

func (f *fakeApplier) Apply(_ context.Context, path string) desktop.Result {
	f.applied = append(f.applied, path)
	return f.applyResult
}

func (f *fakeApplier) ProbeMultiDesktop(context.Context) desktop.Capability {
	f.probes++
	return f.capability
}

func appliedResult(strategy string) desktop.Result {
	return desktop.Result{
		Applied:  true,
		Strategy: strategy,
		Attempts: []desktop.Attempt{{Strategy: strategy, Status: desktop.StatusApplied}},
	}
}

func failedResult() desktop.Result {
	return desktop.Result{
		Attempts: []desktop.Attempt{
			{Strategy: "helper", Status: desktop.StatusUnavailable, Detail: "module not installed"},
			{Strategy: "native", Status: desktop.StatusFailed, Detail: "call returned 0"},
		},
	}
}

func newTestExecutor(applier *fakeApplier) *DefaultCommandExecutor {
	return NewCommandExecutor().WithApplierFactory(
		func(time.Duration, metrics.Recorder) wallpaperApplier { return applier })
}

func makeFolder(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("img"), 0o644); err != nil {
			t.Fatalf("write image %s: %v", name, err)
		}
	}
	return dir
}

func TestExecuteRotateAppliesFirstImage(t *testing.T) {
	folder := makeFolder(t, "a.png", "b.jpg", "c.gif")
	applier := &fakeApplier{
		applyResult: appliedResult("virtual-desktop"),
		capability:  desktop.Capability{Status: desktop.CapabilitySupported},
	}
	executor := newTestExecutor(applier)

	result := executor.ExecuteRotate(t.Context(), RotateRequest{
		CommonOptions: CommonOptions{Folder: folder},
		Order:         "sequential",
	})
	if result.IsErr() {
		t.Fatalf("rotate failed: %v", result.UnwrapErr())
	}

	resp := result.Unwrap()
	if filepath.Base(resp.Path) != "a.png" {
		t.Errorf("expected a.png first, got %s", resp.Path)
	}
	if resp.Index != 0 || resp.Total != 3 {
		t.Errorf("expected index 0 of 3, got %d of %d", resp.Index, resp.Total)
	}
	if resp.Strategy != "virtual-desktop" {
		t.Errorf("expected virtual-desktop strategy, got %s", resp.Strategy)
	}
	if resp.RunID == "" {
		t.Error("expected a run ID")
	}
	if resp.MultiDesktop.IsNone() {
		t.Error("expected capability probe result on a non-quiet rotation")
	}
	if applier.probes != 1 {
		t.Errorf("expected 1 probe, got %d", applier.probes)
	}

	if len(applier.applied) != 1 || !filepath.IsAbs(applier.applied[0]) {
		t.Errorf("expected one absolute apply path, got %v", applier.applied)
	}
	if _, err := os.Stat(filepath.Join(folder, rotation.DefaultStateFileName)); err != nil {
		t.Errorf("expected state file to be written: %v", err)
	}
}

func TestExecuteRotateQuietSkipsProbe(t *testing.T) {
	folder := makeFolder(t, "a.png")
	applier := &fakeApplier{applyResult: appliedResult("native")}
	executor := newTestExecutor(applier)

	result := executor.ExecuteRotate(t.Context(), RotateRequest{
		CommonOptions: CommonOptions{Folder: folder, Quiet: true},
	})
	if result.IsErr() {
		t.Fatalf("rotate failed: %v", result.UnwrapErr())
	}

	if applier.probes != 0 {
		t.Errorf("expected no probes in quiet mode, got %d", applier.probes)
	}
	if !result.Unwrap().MultiDesktop.IsNone() {
		t.Error("expected no capability in quiet response")
	}
}

func TestExecuteRotateNoImages(t *testing.T) {
	folder := makeFolder(t)
	executor := newTestExecutor(&fakeApplier{applyResult: appliedResult("native")})

	result := executor.ExecuteRotate(t.Context(), RotateRequest{
		CommonOptions: CommonOptions{Folder: folder, Quiet: true},
	})
	if result.IsOk() {
		t.Fatal("expected rotate to fail on an empty folder")
	}
	if !apperrors.IsCategory(result.UnwrapErr(), apperrors.CategoryImages) {
		t.Errorf("expected images category, got %v", result.UnwrapErr())
	}
}

func TestExecuteRotateApplyFailure(t *testing.T) {
	folder := makeFolder(t, "a.png")
	executor := newTestExecutor(&fakeApplier{applyResult: failedResult()})

	result := executor.ExecuteRotate(t.Context(), RotateRequest{
		CommonOptions: CommonOptions{Folder: folder, Quiet: true},
	})
	if result.IsOk() {
		t.Fatal("expected rotate to fail when all strategies fail")
	}
	if !apperrors.IsCategory(result.UnwrapErr(), apperrors.CategoryApply) {
		t.Errorf("expected apply category, got %v", result.UnwrapErr())
	}
}

func TestExecuteRotateMissingFolder(t *testing.T) {
	executor := newTestExecutor(&fakeApplier{})

	result := executor.ExecuteRotate(t.Context(), RotateRequest{
		CommonOptions: CommonOptions{Folder: filepath.Join(t.TempDir(), "missing"), Quiet: true},
	})
	if result.IsOk() {
		t.Fatal("expected rotate to fail for a missing folder")
	}
	if !apperrors.IsCategory(result.UnwrapErr(), apperrors.CategoryFolder) {
		t.Errorf("expected folder category, got %v", result.UnwrapErr())
	}
}

func TestExecuteRotateNoFolderConfigured(t *testing.T) {
	executor := newTestExecutor(&fakeApplier{})

	result := executor.ExecuteRotate(t.Context(), RotateRequest{
		CommonOptions: CommonOptions{Quiet: true},
	})
	if result.IsOk() {
		t.Fatal("expected rotate to fail without a folder")
	}
	if !apperrors.IsCategory(result.UnwrapErr(), apperrors.CategoryConfig) {
		t.Errorf("expected config category, got %v", result.UnwrapErr())
	}
}

func TestExecuteRotateHonorsPersistedOrder(t *testing.T) {
	folder := makeFolder(t, "a.png", "b.jpg", "c.gif")
	executor := newTestExecutor(&fakeApplier{applyResult: appliedResult("native")})
	ctx := t.Context()

	setResult := executor.ExecuteSetOrder(ctx, SetOrderRequest{
		CommonOptions: CommonOptions{Folder: folder},
		Order:         "random",
	})
	if setResult.IsErr() {
		t.Fatalf("set-order failed: %v", setResult.UnwrapErr())
	}

	result := executor.ExecuteRotate(ctx, RotateRequest{
		CommonOptions: CommonOptions{Folder: folder, Quiet: true},
	})
	if result.IsErr() {
		t.Fatalf("rotate failed: %v", result.UnwrapErr())
	}
	if got := result.Unwrap().Order; got != rotation.OrderRandom {
		t.Errorf("expected persisted random order to win, got %s", got)
	}
}

func TestExecuteRotateFlagOverridesPersistedOrder(t *testing.T) {
	folder := makeFolder(t, "a.png", "b.jpg")
	executor := newTestExecutor(&fakeApplier{applyResult: appliedResult("native")})
	ctx := t.Context()

	if r := executor.ExecuteSetOrder(ctx, SetOrderRequest{
		CommonOptions: CommonOptions{Folder: folder},
		Order:         "random",
	}); r.IsErr() {
		t.Fatalf("set-order failed: %v", r.UnwrapErr())
	}

	result := executor.ExecuteRotate(ctx, RotateRequest{
		CommonOptions: CommonOptions{Folder: folder, Quiet: true},
		Order:         "sequential",
	})
	if result.IsErr() {
		t.Fatalf("rotate failed: %v", result.UnwrapErr())
	}
	if got := result.Unwrap().Order; got != rotation.OrderSequential {
		t.Errorf("expected the flag to override the persisted order, got %s", got)
	}
}

func TestExecuteRotateRecordsHistory(t *testing.T) {
	folder := makeFolder(t, "a.png")
	journalPath := filepath.Join(t.TempDir(), "journal.db")
	configPath := writeTestConfig(t, "history:\n  enabled: true\n  path: "+journalPath+"\n")
	executor := newTestExecutor(&fakeApplier{applyResult: appliedResult("virtual-desktop")})
	ctx := t.Context()

	result := executor.ExecuteRotate(ctx, RotateRequest{
		CommonOptions: CommonOptions{ConfigPath: configPath, Folder: folder, Quiet: true},
	})
	if result.IsErr() {
		t.Fatalf("rotate failed: %v", result.UnwrapErr())
	}
	resp := result.Unwrap()

	historyResult := executor.ExecuteHistory(ctx, HistoryRequest{
		CommonOptions: CommonOptions{ConfigPath: configPath, Folder: folder},
		Limit:         10,
	})
	if historyResult.IsErr() {
		t.Fatalf("history failed: %v", historyResult.UnwrapErr())
	}

	entries := historyResult.Unwrap().Entries
	if len(entries) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(entries))
	}
	if entries[0].RunID != resp.RunID {
		t.Errorf("expected run ID %s, got %s", resp.RunID, entries[0].RunID)
	}
	if !entries[0].Applied || entries[0].Strategy != "virtual-desktop" {
		t.Errorf("unexpected entry: %+v", entries[0])
	}
}

func TestExecuteRotateWritesMetricsTextfile(t *testing.T) {
	folder := makeFolder(t, "a.png")
	textfile := filepath.Join(t.TempDir(), "wallpaper.prom")
	configPath := writeTestConfig(t, "metrics:\n  textfile_path: "+textfile+"\n")
	executor := newTestExecutor(&fakeApplier{applyResult: appliedResult("native")})

	result := executor.ExecuteRotate(t.Context(), RotateRequest{
		CommonOptions: CommonOptions{ConfigPath: configPath, Folder: folder, Quiet: true},
	})
	if result.IsErr() {
		t.Fatalf("rotate failed: %v", result.UnwrapErr())
	}

	data, err := os.ReadFile(textfile)
	if err != nil {
		t.Fatalf("expected metrics textfile: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "wallpaper_rotator_rotation_outcomes_total") {
		t.Errorf("metrics output missing rotation outcomes:\n%s", content)
	}
	if !strings.Contains(content, `outcome="applied"`) {
		t.Errorf("metrics output missing applied outcome:\n%s", content)
	}
}

func TestExecuteStatusReportsPosition(t *testing.T) {
	folder := makeFolder(t, "a.png", "b.jpg", "c.gif")
	applier := &fakeApplier{
		applyResult: appliedResult("native"),
		capability:  desktop.Capability{Status: desktop.CapabilityModuleMissing, Detail: "module not installed"},
	}
	executor := newTestExecutor(applier)
	ctx := t.Context()

	if r := executor.ExecuteRotate(ctx, RotateRequest{
		CommonOptions: CommonOptions{Folder: folder, Quiet: true},
		Order:         "sequential",
	}); r.IsErr() {
		t.Fatalf("rotate failed: %v", r.UnwrapErr())
	}

	result := executor.ExecuteStatus(ctx, StatusRequest{
		CommonOptions: CommonOptions{Folder: folder},
	})
	if result.IsErr() {
		t.Fatalf("status failed: %v", result.UnwrapErr())
	}

	status := result.Unwrap()
	if status.TotalImages != 3 {
		t.Errorf("expected 3 images, got %d", status.TotalImages)
	}
	if status.CurrentIndex != 0 {
		t.Errorf("expected index 0, got %d", status.CurrentIndex)
	}
	if status.CurrentWallpaper.IsNone() || status.CurrentWallpaper.Unwrap() != "a.png" {
		t.Errorf("expected current wallpaper a.png, got %v", status.CurrentWallpaper)
	}
	if status.Order != rotation.OrderSequential {
		t.Errorf("expected sequential order, got %s", status.Order)
	}
	if status.MultiDesktop.Status != desktop.CapabilityModuleMissing {
		t.Errorf("expected module-missing capability, got %s", status.MultiDesktop.Status)
	}
}

func TestExecuteResetRestartsSequence(t *testing.T) {
	folder := makeFolder(t, "a.png", "b.jpg", "c.gif")
	executor := newTestExecutor(&fakeApplier{applyResult: appliedResult("native")})
	ctx := t.Context()

	for range 2 {
		if r := executor.ExecuteRotate(ctx, RotateRequest{
			CommonOptions: CommonOptions{Folder: folder, Quiet: true},
			Order:         "sequential",
		}); r.IsErr() {
			t.Fatalf("rotate failed: %v", r.UnwrapErr())
		}
	}

	if r := executor.ExecuteReset(ctx, ResetRequest{
		CommonOptions: CommonOptions{Folder: folder},
	}); r.IsErr() {
		t.Fatalf("reset failed: %v", r.UnwrapErr())
	}

	result := executor.ExecuteRotate(ctx, RotateRequest{
		CommonOptions: CommonOptions{Folder: folder, Quiet: true},
		Order:         "sequential",
	})
	if result.IsErr() {
		t.Fatalf("rotate failed: %v", result.UnwrapErr())
	}
	if got := result.Unwrap().Index; got != 0 {
		t.Errorf("expected index 0 after reset, got %d", got)
	}
}

func TestExecuteSetOrderRejectsInvalid(t *testing.T) {
	folder := makeFolder(t, "a.png")
	executor := newTestExecutor(&fakeApplier{})

	result := executor.ExecuteSetOrder(t.Context(), SetOrderRequest{
		CommonOptions: CommonOptions{Folder: folder},
		Order:         "shuffled",
	})
	if result.IsOk() {
		t.Fatal("expected invalid order to be rejected")
	}
	if !apperrors.IsCategory(result.UnwrapErr(), apperrors.CategoryOrder) {
		t.Errorf("expected order category, got %v", result.UnwrapErr())
	}

	if _, err := os.Stat(filepath.Join(folder, rotation.DefaultStateFileName)); !os.IsNotExist(err) {
		t.Error("expected no state file after a rejected set-order")
	}
}

func TestExecuteCheckSupportNeedsNoFolder(t *testing.T) {
	applier := &fakeApplier{capability: desktop.Capability{Status: desktop.CapabilityCommandMissing}}
	executor := newTestExecutor(applier)

	result := executor.ExecuteCheckSupport(t.Context(), CheckSupportRequest{})
	if result.IsErr() {
		t.Fatalf("check-support failed: %v", result.UnwrapErr())
	}
	if got := result.Unwrap().Capability.Status; got != desktop.CapabilityCommandMissing {
		t.Errorf("expected command-missing, got %s", got)
	}
	if applier.probes != 1 {
		t.Errorf("expected 1 probe, got %d", applier.probes)
	}
}

func TestExecuteHistoryEmptyWithoutJournal(t *testing.T) {
	folder := makeFolder(t, "a.png")
	executor := newTestExecutor(&fakeApplier{})

	result := executor.ExecuteHistory(t.Context(), HistoryRequest{
		CommonOptions: CommonOptions{Folder: folder},
		Limit:         10,
	})
	if result.IsErr() {
		t.Fatalf("history failed: %v", result.UnwrapErr())
	}
	if entries := result.Unwrap().Entries; len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
}

func TestExecuteInitCreatesConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "wallpaper-rotator.yaml")
	executor := newTestExecutor(&fakeApplier{})
	ctx := t.Context()

	result := executor.ExecuteInit(ctx, InitRequest{ConfigPath: configPath})
	if result.IsErr() {
		t.Fatalf("init failed: %v", result.UnwrapErr())
	}
	if !result.Unwrap().Created {
		t.Error("expected config to be created")
	}
	if _, err := os.Stat(configPath); err != nil {
		t.Errorf("expected config file: %v", err)
	}

	second := executor.ExecuteInit(ctx, InitRequest{ConfigPath: configPath})
	if second.IsOk() {
		t.Error("expected second init without force to fail")
	}
}

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wallpaper-rotator.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
