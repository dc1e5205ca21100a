package foundation

import (
	"fmt"
	"strings"
)

func canonical(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Normalizer maps free-form strings onto a closed set of enum values,
// case-insensitively and ignoring surrounding whitespace.
type Normalizer[T comparable] struct {
	validValues  map[string]T
	defaultValue T
}

// NewNormalizer builds a normalizer from valid string->value pairs and the
// value returned for unrecognized input.
func NewNormalizer[T comparable](values map[string]T, defaultValue T) *Normalizer[T] {
	normalized := make(map[string]T, len(values))
	for k, v := range values {
		normalized[canonical(k)] = v
	}

	return &Normalizer[T]{
		validValues:  normalized,
		defaultValue: defaultValue,
	}
}

// Normalize converts raw to the enum type, falling back to the default for
// unrecognized input. Use for lenient paths like reading persisted state.
func (n *Normalizer[T]) Normalize(raw string) T {
	if value, exists := n.validValues[canonical(raw)]; exists {
		return value
	}
	return n.defaultValue
}

// NormalizeWithError converts raw to the enum type, rejecting unrecognized
// input. Use for strict paths like user-supplied flags.
func (n *Normalizer[T]) NormalizeWithError(raw string) (T, error) {
	if value, exists := n.validValues[canonical(raw)]; exists {
		return value, nil
	}

	var zero T
	return zero, fmt.Errorf("invalid value: %s", raw)
}
