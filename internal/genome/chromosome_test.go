package genome

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestChromosome(t *testing.T, size int) *Chromosome {
	t.Helper()
	landscape := make([]float64, size)
	for i := range landscape {
		landscape[i] = 1.0 / float64(size+1)
	}
	regions := make([]TranscriptionRegion, size/4)
	for i := range regions {
		regions[i] = TranscriptionRegion{Start: 0, End: 10}
	}
	origins := []ConstitutiveOrigin{{Base: 70}}
	c, err := NewChromosome("1", size, landscape, regions, origins)
	require.NoError(t, err)
	return c
}

func TestNewChromosome_RejectsNonPositiveLength(t *testing.T) {
	_, err := NewChromosome("x", 0, nil, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestNewChromosome_RejectsLandscapeLengthMismatch(t *testing.T) {
	_, err := NewChromosome("x", 5, make([]float64, 3), nil, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestBaseIsReplicated_OutOfRange(t *testing.T) {
	c := newTestChromosome(t, 300)
	_, err := c.BaseIsReplicated(300)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = c.BaseIsReplicated(-1)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestReplicate_MonotoneAndCounterConsistent(t *testing.T) {
	c := newTestChromosome(t, 300)

	normal, err := c.Replicate(150, 299, 0)
	require.NoError(t, err)
	assert.True(t, normal)

	replicatedCount := 0
	for _, v := range c.Strand() {
		if v != -1 {
			replicatedCount++
		}
	}
	assert.Equal(t, replicatedCount, c.NReplicatedBases())

	// Re-replicating the same span must be a no-op for bases already set.
	normal, err = c.Replicate(150, 299, 1)
	require.NoError(t, err)
	assert.False(t, normal)
	assert.Equal(t, 0, c.Strand()[150], "already-replicated base must not change")
}

func TestReplicate_ChromosomeEndClamp(t *testing.T) {
	c := newTestChromosome(t, 300)

	normal, err := c.Replicate(298, 338, 4)
	require.NoError(t, err)
	assert.False(t, normal, "clamped end must report non-normal")
	assert.Equal(t, 4, c.Strand()[298])
	assert.Equal(t, 4, c.Strand()[299])
}

func TestReplicate_StartOutOfRangeIsBoundsError(t *testing.T) {
	c := newTestChromosome(t, 300)
	_, err := c.Replicate(301, 310, 0)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestReplicate_StartAtLengthIsBoundsErrorNotPanic(t *testing.T) {
	c := newTestChromosome(t, 300)
	_, err := c.Replicate(300, 305, 0)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestReplicate_InvertedWalkOnNegativeEnd(t *testing.T) {
	c := newTestChromosome(t, 300)
	normal, err := c.Replicate(5, -1, 0)
	require.NoError(t, err)
	assert.False(t, normal)
	for i := 0; i <= 5; i++ {
		assert.Equal(t, 0, c.Strand()[i])
	}
}

func TestIsReplicated(t *testing.T) {
	c := newTestChromosome(t, 1)
	assert.False(t, c.IsReplicated())
	_, err := c.Replicate(0, 0, 5)
	require.NoError(t, err)
	assert.True(t, c.IsReplicated())
}

func TestSetDormantActivationProbability_BoundedAndLocalized(t *testing.T) {
	size := 200000
	landscape := make([]float64, size)
	for i := range landscape {
		landscape[i] = 0.01
	}
	c, err := NewChromosome("big", size, landscape, nil, nil)
	require.NoError(t, err)

	center := 50000
	require.NoError(t, c.SetDormantActivationProbability(center))

	near, err := c.ActivationProbability(center)
	require.NoError(t, err)
	assert.Greater(t, near, 0.01)
	assert.LessOrEqual(t, near, 1.0)

	far, err := c.ActivationProbability(center + 3*dormantStdDev)
	require.NoError(t, err)
	assert.Equal(t, 0.01, far)

	for _, v := range c.landscape {
		assert.LessOrEqual(t, v, 1.0)
		assert.GreaterOrEqual(t, v, 0.0)
	}
}

func TestSetDormantActivationProbability_OutOfRange(t *testing.T) {
	c := newTestChromosome(t, 300)
	err := c.SetDormantActivationProbability(300)
	assert.True(t, errors.Is(err, ErrOutOfRange))
}
