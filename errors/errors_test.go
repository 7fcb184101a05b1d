package errors_test

import (
	"testing"

	"github.com/opensift/credence/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{
		errors.ErrConfiguration,
		errors.ErrNormalization,
		errors.ErrDomainMismatch,
		errors.ErrInvalidQuery,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i == j {
				continue
			}
			assert.False(t, errors.Is(a, b), "sentinel %d should not match sentinel %d", i, j)
		}
	}
}

func TestWrappingPreservesClass(t *testing.T) {
	err := errors.Normalizationf("total mass %.3f exceeds 1", 1.1)
	require.Error(t, err)

	assert.True(t, errors.IsNormalization(err))
	assert.False(t, errors.IsConfiguration(err))

	// Further wrapping keeps the class intact.
	wrapped := errors.Wrap(err, "adding focal element")
	assert.True(t, errors.IsNormalization(wrapped))
	assert.Contains(t, wrapped.Error(), "adding focal element")
}

func TestClassCheckersRejectNil(t *testing.T) {
	assert.False(t, errors.IsConfiguration(nil))
	assert.False(t, errors.IsNormalization(nil))
	assert.False(t, errors.IsDomainMismatch(nil))
	assert.False(t, errors.IsInvalidQuery(nil))
}

func TestFormattedConstructors(t *testing.T) {
	err := errors.Configurationf("slot %d out of range [0, %d)", 5, 3)
	require.Error(t, err)
	assert.True(t, errors.IsConfiguration(err))
	assert.Contains(t, err.Error(), "slot 5 out of range")

	err = errors.InvalidQueryf("query is %s", "omega")
	assert.True(t, errors.IsInvalidQuery(err))

	err = errors.DomainMismatchf("constraint from a different frame")
	assert.True(t, errors.IsDomainMismatch(err))
}
