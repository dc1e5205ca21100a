package desktop

import (
	"context"
	"time"
)

// DefaultHelperTimeout bounds every external helper invocation. A hung
// PowerShell session or D-Bus call degrades to the next tier instead of
// blocking the scheduler slot that launched us.
const DefaultHelperTimeout = 30 * time.Second

// AttemptStatus classifies the outcome of one strategy attempt.
type AttemptStatus string

const (
	StatusApplied     AttemptStatus = "applied"
	StatusUnavailable AttemptStatus = "unavailable"
	StatusFailed      AttemptStatus = "failed"
	StatusTimeout     AttemptStatus = "timeout"
)

// Attempt records one strategy's try at setting the wallpaper. Every
// non-applied status triggers fallback to the next strategy in the chain.
type Attempt struct {
	Strategy string
	Status   AttemptStatus
	Detail   string
}

// Applied reports whether this attempt set the wallpaper.
func (a Attempt) Applied() bool { return a.Status == StatusApplied }

// Strategy sets a wallpaper through one platform mechanism. Absence of
// the mechanism is a status, not an error; Attempt never panics and
// never blocks past its configured timeout.
type Strategy interface {
	Name() string
	Attempt(ctx context.Context, path string) Attempt
}

// CapabilityStatus describes multi-desktop helper availability.
type CapabilityStatus string

const (
	CapabilitySupported      CapabilityStatus = "supported"
	CapabilityCommandMissing CapabilityStatus = "command-missing"
	CapabilityModuleMissing  CapabilityStatus = "module-missing"
	CapabilityUnavailable    CapabilityStatus = "unavailable"
)

// Capability is the result of probing the multi-desktop tier without
// applying anything.
type Capability struct {
	Status CapabilityStatus
	Detail string
}

// Supported reports whether the multi-desktop tier is usable.
func (c Capability) Supported() bool { return c.Status == CapabilitySupported }

// Prober is implemented by strategies that can report availability
// cheaply, without changing any wallpaper.
type Prober interface {
	Probe(ctx context.Context) Capability
}
