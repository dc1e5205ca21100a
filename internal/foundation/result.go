// Package foundation provides small generic building blocks shared across
// the rotator: explicit two-outcome results, optional values, and string
// enum normalization.
package foundation

import "fmt"

// Result holds either a success value T or a failure error E. Advisory
// operations return one so the caller decides whether a failure matters,
// instead of the callee picking between panic and silent fallback.
type Result[T any, E error] struct {
	val     T
	failure E
	ok      bool
}

// Ok creates a successful Result carrying value.
func Ok[T any, E error](value T) Result[T, E] {
	return Result[T, E]{val: value, ok: true}
}

// Err creates a failed Result carrying err.
func Err[T any, E error](err E) Result[T, E] {
	return Result[T, E]{failure: err}
}

// IsOk reports whether the Result holds a value.
func (r Result[T, E]) IsOk() bool { return r.ok }

// IsErr reports whether the Result holds an error.
func (r Result[T, E]) IsErr() bool { return !r.ok }

// Unwrap returns the value. Panics when called on an Err result.
func (r Result[T, E]) Unwrap() T {
	if !r.ok {
		panic(fmt.Sprintf("Unwrap on Err result: %v", r.failure))
	}
	return r.val
}

// UnwrapOr returns the value if Ok, otherwise fallback.
func (r Result[T, E]) UnwrapOr(fallback T) T {
	if !r.ok {
		return fallback
	}
	return r.val
}

// UnwrapErr returns the error. Panics when called on an Ok result.
func (r Result[T, E]) UnwrapErr() E {
	if r.ok {
		panic("UnwrapErr on Ok result")
	}
	return r.failure
}

// Match invokes onOk with the value or onErr with the error.
func (r Result[T, E]) Match(onOk func(T), onErr func(E)) {
	if r.ok {
		onOk(r.val)
		return
	}
	onErr(r.failure)
}

// ToTuple converts the Result back to the conventional (value, error) pair.
func (r Result[T, E]) ToTuple() (T, E) {
	if r.ok {
		var zeroErr E
		return r.val, zeroErr
	}
	var zeroVal T
	return zeroVal, r.failure
}

// FromTuple builds a Result from a conventional (value, error) pair.
func FromTuple[T any, E error](value T, err E) Result[T, E] {
	if any(err) != nil {
		return Err[T, E](err)
	}
	return Ok[T, E](value)
}

// Map transforms the value of an Ok result, passing an Err through unchanged.
func Map[T, U any, E error](r Result[T, E], fn func(T) U) Result[U, E] {
	if !r.ok {
		return Err[U, E](r.failure)
	}
	return Ok[U, E](fn(r.val))
}
