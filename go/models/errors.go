package models

import (
	"github.com/pkg/errors"
)

// ErrArchitecture matches every architecture-level failure through errors.Is,
// while each kind below stays independently matchable.
var ErrArchitecture = errors.New("architecture error")

type archError struct {
	msg string
}

func (e *archError) Error() string { return e.msg }

func (e *archError) Is(target error) bool { return target == ErrArchitecture }

var (
	ErrNoArchitecture          error = &archError{"you must define an architecture"}
	ErrUnknownRegister         error = &archError{"unknown register"}
	ErrUnsupportedArchitecture error = &archError{"architecture not supported"}
	ErrAllocationFailure       error = &archError{"not enough memory"}
)

// errors raised by cpu models
var (
	ErrInvalidMemoryAccess = errors.New("invalid memory access size")
	ErrValueTooLarge       = errors.New("value too large")
	ErrZeroSizeInstruction = errors.New("zero-size instruction")
)

type allocError struct {
	cause error
}

func (e *allocError) Error() string {
	return ErrAllocationFailure.Error() + ": " + e.cause.Error()
}

func (e *allocError) Is(target error) bool {
	return target == ErrAllocationFailure || target == ErrArchitecture
}

func (e *allocError) Unwrap() error { return e.cause }
func (e *allocError) Cause() error  { return e.cause }

// AllocationFailure marks a cpu model construction failure, keeping the cause.
func AllocationFailure(cause error) error {
	if cause == nil {
		cause = errors.New("no cpu returned")
	}
	return &allocError{cause}
}
