package genome

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenome_TotalSizeAndReplicatedBases(t *testing.T) {
	a := newTestChromosome(t, 100)
	b := newTestChromosome(t, 50)
	g := NewGenome([]*Chromosome{a, b})

	assert.Equal(t, 150, g.TotalSize())
	assert.Equal(t, 0, g.NReplicatedBases())
	assert.False(t, g.IsReplicated())

	_, err := a.Replicate(0, 99, 0)
	require.NoError(t, err)
	assert.Equal(t, 100, g.NReplicatedBases())
	assert.False(t, g.IsReplicated())

	_, err = b.Replicate(0, 49, 0)
	require.NoError(t, err)
	assert.True(t, g.IsReplicated())
}

func TestGenome_RandomGenomicLocationStaysInBounds(t *testing.T) {
	a := newTestChromosome(t, 10)
	b := newTestChromosome(t, 1000)
	g := NewGenome([]*Chromosome{a, b})
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		loc, err := g.RandomGenomicLocation(rng)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, loc.Base(), 0)
		assert.Less(t, loc.Base(), loc.Chromosome().Size())
	}
}
