package genome

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newForkTestFixture(t *testing.T) (*ReplicationFork, []*Chromosome, *rand.Rand) {
	t.Helper()
	chrms := make([]*Chromosome, 0, 100)
	for i := 0; i < 100; i++ {
		chrms = append(chrms, newTestChromosome(t, 300))
	}
	fork := NewReplicationFork()
	rng := rand.New(rand.NewSource(1))
	return fork, chrms, rng
}

func TestFork_AlreadyAttached(t *testing.T) {
	fork, chrms, rng := newForkTestFixture(t)
	loc, err := NewGenomicLocation(2, chrms[1], rng)
	require.NoError(t, err)

	require.NoError(t, fork.Attach(loc, Forward, 2))
	assert.ErrorIs(t, fork.Attach(loc, Forward, 2), ErrAlreadyAttached)
}

func TestFork_AttachAndGetters(t *testing.T) {
	fork, chrms, rng := newForkTestFixture(t)
	loc, err := NewGenomicLocation(2, chrms[1], rng)
	require.NoError(t, err)

	require.NoError(t, fork.Attach(loc, Forward, 2))
	assert.Equal(t, 2, fork.GetBase())
	assert.Equal(t, Forward, fork.GetDirection())
	assert.True(t, fork.GetChromosome().Equal(chrms[1]))
	assert.False(t, fork.GetJustDetached())
}

func TestFork_Detach(t *testing.T) {
	fork, chrms, rng := newForkTestFixture(t)
	loc, err := NewGenomicLocation(2, chrms[1], rng)
	require.NoError(t, err)

	require.NoError(t, fork.Attach(loc, Forward, 2))
	fork.Detach()

	assert.Equal(t, -1, fork.GetBase())
	assert.Equal(t, Direction(0), fork.GetDirection())
	assert.Nil(t, fork.GetChromosome())
	assert.False(t, fork.GetJustDetached())
}

func TestFork_Advance(t *testing.T) {
	fork, chrms, rng := newForkTestFixture(t)
	loc, err := NewGenomicLocation(2, chrms[1], rng)
	require.NoError(t, err)

	require.NoError(t, fork.Attach(loc, Forward, 2))
	advanced, err := fork.Advance(40, 3)
	require.NoError(t, err)
	assert.True(t, advanced)

	for i := 0; i < 40; i++ {
		replicated, err := chrms[1].BaseIsReplicated(2 + i)
		require.NoError(t, err)
		assert.True(t, replicated)
	}
}

func TestFork_IsAttached(t *testing.T) {
	fork, chrms, rng := newForkTestFixture(t)
	assert.False(t, fork.IsAttached())

	loc, err := NewGenomicLocation(2, chrms[1], rng)
	require.NoError(t, err)
	require.NoError(t, fork.Attach(loc, Forward, 2))
	assert.True(t, fork.IsAttached())

	fork.Detach()
	assert.False(t, fork.IsAttached())
}

func TestFork_JustDetachedOnCollisionOrEnd(t *testing.T) {
	fork, chrms, rng := newForkTestFixture(t)
	assert.False(t, fork.GetJustDetached())

	loc, err := NewGenomicLocation(2, chrms[1], rng)
	require.NoError(t, err)
	require.NoError(t, fork.Attach(loc, Forward, 2))
	assert.False(t, fork.GetJustDetached())

	fork.Detach()
	assert.False(t, fork.GetJustDetached())

	loc2, err := NewGenomicLocation(298, chrms[1], rng)
	require.NoError(t, err)
	require.NoError(t, fork.Attach(loc2, Forward, 4))
	_, err = fork.Advance(40, 5)
	require.NoError(t, err)

	assert.True(t, fork.GetJustDetached())
}

func TestFork_JustDetachedBlocksReattachUntilExplicitDetach(t *testing.T) {
	fork, chrms, rng := newForkTestFixture(t)
	loc, err := NewGenomicLocation(298, chrms[1], rng)
	require.NoError(t, err)
	require.NoError(t, fork.Attach(loc, Forward, 4))
	_, err = fork.Advance(40, 5)
	require.NoError(t, err)
	assert.True(t, fork.GetJustDetached())

	loc2, err := NewGenomicLocation(3, chrms[1], rng)
	require.NoError(t, err)
	assert.ErrorIs(t, fork.Attach(loc2, Forward, 6), ErrAlreadyAttached)

	fork.Detach()
	assert.NoError(t, fork.Attach(loc2, Forward, 6))
}
