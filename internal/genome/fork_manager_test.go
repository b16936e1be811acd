package genome

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForkManager_FreeForksAndPoolInvariant(t *testing.T) {
	c := newTestChromosome(t, 300)
	rng := rand.New(rand.NewSource(1))
	fm := NewForkManager(2, 10)

	assert.Equal(t, 2, fm.FreeForks())

	loc, err := NewGenomicLocation(20, c, rng)
	require.NoError(t, err)
	_, err = fm.AttachFork(loc, Forward, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, fm.FreeForks())
	assert.LessOrEqual(t, len(fm.AttachedForks()), fm.PoolSize())

	loc2, err := NewGenomicLocation(21, c, rng)
	require.NoError(t, err)
	_, err = fm.AttachFork(loc2, Backward, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, fm.FreeForks())

	loc3, err := NewGenomicLocation(22, c, rng)
	require.NoError(t, err)
	_, err = fm.AttachFork(loc3, Forward, 0)
	assert.ErrorIs(t, err, ErrExhaustedPool)
}

func TestForkManager_AdvanceAttachedForks(t *testing.T) {
	c := newTestChromosome(t, 300)
	rng := rand.New(rand.NewSource(1))
	fm := NewForkManager(2, 5)

	loc, err := NewGenomicLocation(100, c, rng)
	require.NoError(t, err)
	_, err = fm.AttachFork(loc, Forward, 0)
	require.NoError(t, err)

	require.NoError(t, fm.AdvanceAttachedForks(1))

	replicated, err := c.BaseIsReplicated(104)
	require.NoError(t, err)
	assert.True(t, replicated)
}

func TestForkManager_Collision(t *testing.T) {
	c := newTestChromosome(t, 100)
	rng := rand.New(rand.NewSource(1))
	fm := NewForkManager(4, 1)

	left, err := NewGenomicLocation(20, c, rng)
	require.NoError(t, err)
	right, err := NewGenomicLocation(60, c, rng)
	require.NoError(t, err)

	_, err = fm.AttachFork(left, Forward, 0)
	require.NoError(t, err)
	_, err = fm.AttachFork(right, Backward, 0)
	require.NoError(t, err)

	for step := 1; step <= 50 && fm.FreeForks() < fm.PoolSize(); step++ {
		require.NoError(t, fm.AdvanceAttachedForks(step))
	}

	assert.Equal(t, fm.PoolSize(), fm.FreeForks(), "both forks should detach after colliding")
	replicatedCount := 0
	for _, v := range c.Strand() {
		if v != -1 {
			replicatedCount++
		}
	}
	assert.Equal(t, replicatedCount, c.NReplicatedBases())
}

func TestForkManager_TranscriptionConflicts(t *testing.T) {
	regions := []TranscriptionRegion{{Start: 10, End: 20}}
	c, err := NewChromosome("tx", 100, make([]float64, 100), regions, nil)
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(1))
	fm := NewForkManager(1, 1)

	loc, err := NewGenomicLocation(15, c, rng)
	require.NoError(t, err)
	_, err = fm.AttachFork(loc, Forward, 0)
	require.NoError(t, err)

	conflicts := fm.CheckReplicationTranscriptionConflicts(0, 1)
	assert.Equal(t, 1, conflicts)
	assert.Equal(t, 1, fm.FreeForks(), "conflicting fork should detach")
}
