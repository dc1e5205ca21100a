//go:build !windows && !linux && !darwin

package desktop

import "time"

func platformStrategies(time.Duration) []Strategy { return nil }
