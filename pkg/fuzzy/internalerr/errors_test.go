package internalerr

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestWrappedSentinelsMatch(t *testing.T) {
	err := errors.Wrapf(ErrLengthMismatch, "expected %d inputs, got %d", 2, 3)

	assert.True(t, errors.Is(err, ErrLengthMismatch))
	assert.False(t, errors.Is(err, ErrShapeMismatch))
	assert.Contains(t, err.Error(), "expected 2 inputs, got 3")
	assert.Contains(t, err.Error(), "length mismatch")
}

func TestHintsSurvive(t *testing.T) {
	err := errors.WithHint(errors.Wrap(ErrZeroArea, "centroid"), "widen the sample range")

	assert.True(t, errors.Is(err, ErrZeroArea))
	assert.Equal(t, []string{"widen the sample range"}, errors.GetAllHints(err))
}
