package foundation

import "fmt"

// Option represents a value that may be absent, replacing nullable
// pointers for results like "the wallpaper currently pointed at, if any".
type Option[T any] struct {
	v   T
	set bool
}

// Some creates an Option holding value.
func Some[T any](value T) Option[T] {
	return Option[T]{v: value, set: true}
}

// None creates an empty Option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// IsSome reports whether the Option holds a value.
func (o Option[T]) IsSome() bool { return o.set }

// IsNone reports whether the Option is empty.
func (o Option[T]) IsNone() bool { return !o.set }

// Unwrap returns the value. Panics when called on None.
func (o Option[T]) Unwrap() T {
	if !o.set {
		panic("Unwrap on None option")
	}
	return o.v
}

// UnwrapOr returns the value if present, otherwise fallback.
func (o Option[T]) UnwrapOr(fallback T) T {
	if !o.set {
		return fallback
	}
	return o.v
}

// Match invokes onSome with the value or onNone when empty.
func (o Option[T]) Match(onSome func(T), onNone func()) {
	if !o.set {
		onNone()
		return
	}
	onSome(o.v)
}

// ToPointer returns a pointer to the value, or nil for None.
func (o Option[T]) ToPointer() *T {
	if !o.set {
		return nil
	}
	return &o.v
}

// FromPointer wraps a pointer: non-nil becomes Some, nil becomes None.
func FromPointer[T any](ptr *T) Option[T] {
	if ptr == nil {
		return None[T]()
	}
	return Some(*ptr)
}

// MapOption transforms an Option[T] into an Option[U], preserving absence.
func MapOption[T, U any](o Option[T], fn func(T) U) Option[U] {
	if !o.set {
		return None[U]()
	}
	return Some(fn(o.v))
}

// String renders the Option for logs and test failures.
func (o Option[T]) String() string {
	if !o.set {
		return "None"
	}
	return fmt.Sprintf("Some(%v)", o.v)
}
