package disguise_test

import (
	"testing"

	seatsync "github.com/elliotttmiller/seatsync"
	"github.com/elliotttmiller/seatsync/disguise"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPool(t *testing.T) {
	t.Parallel()

	pool := disguise.DefaultPool()
	require.GreaterOrEqual(t, len(pool), 8)

	seen := make(map[string]bool)
	for _, p := range pool {
		assert.NotEmpty(t, p.Identity)
		assert.NotEmpty(t, p.Headers["Accept-Language"])
		assert.False(t, seen[p.Identity], "duplicate identity %q", p.Identity)
		seen[p.Identity] = true
	}
}

func TestRotator_Next(t *testing.T) {
	t.Parallel()

	t.Run("returns pool members", func(t *testing.T) {
		t.Parallel()

		pool := []*seatsync.DisguiseProfile{
			{Identity: "a"},
			{Identity: "b"},
			{Identity: "c"},
		}
		rotator := disguise.NewRotator(pool)

		members := make(map[*seatsync.DisguiseProfile]bool, len(pool))
		for _, p := range pool {
			members[p] = true
		}
		for i := 0; i < 100; i++ {
			assert.True(t, members[rotator.Next()])
		}
	})

	t.Run("draws more than one profile", func(t *testing.T) {
		t.Parallel()

		rotator := disguise.NewRotator(nil)
		require.GreaterOrEqual(t, rotator.Size(), 8)

		// With 8+ profiles, 200 uniform draws land on a single
		// profile with probability below 2^-600.
		seen := make(map[string]bool)
		for i := 0; i < 200; i++ {
			seen[rotator.Next().Identity] = true
		}
		assert.Greater(t, len(seen), 1)
	})
}

func TestNewRotator_EmptyPoolFallsBack(t *testing.T) {
	t.Parallel()

	rotator := disguise.NewRotator(nil)
	assert.Equal(t, len(disguise.DefaultPool()), rotator.Size())
	assert.NotNil(t, rotator.Next())
}
