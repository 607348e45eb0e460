package models

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestErrorFamily(t *testing.T) {
	kinds := []error{ErrNoArchitecture, ErrUnknownRegister, ErrUnsupportedArchitecture, ErrAllocationFailure}
	for i, kind := range kinds {
		wrapped := errors.Wrap(kind, "Architecture.Test()")
		assert.ErrorIs(t, wrapped, ErrArchitecture)
		for j, other := range kinds {
			if i != j {
				assert.NotErrorIs(t, wrapped, other)
			}
		}
	}
	assert.NotErrorIs(t, ErrValueTooLarge, ErrArchitecture)
	assert.NotErrorIs(t, ErrInvalidMemoryAccess, ErrArchitecture)
}

func TestAllocationFailure(t *testing.T) {
	cause := errors.New("no memory")
	err := AllocationFailure(cause)
	assert.ErrorIs(t, err, ErrAllocationFailure)
	assert.ErrorIs(t, err, ErrArchitecture)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, cause, errors.Cause(err))
	assert.Equal(t, "not enough memory: no memory", err.Error())

	err = AllocationFailure(nil)
	assert.ErrorIs(t, err, ErrAllocationFailure)
	assert.Contains(t, err.Error(), "no cpu returned")
}
