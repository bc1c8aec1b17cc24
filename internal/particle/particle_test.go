package particle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBuffersLineUp(t *testing.T) {
	s := New(500, 1080, 480, NewSource(1))
	require.Equal(t, 500, s.Len())
	assert.Len(t, s.Vel, 1000)
	assert.Len(t, s.Color, 1500)
}

func TestNewInsideViewport(t *testing.T) {
	s := New(2000, 1080, 480, NewSource(2))
	for i := 0; i < s.Len(); i++ {
		x, y, vx, vy := s.At(i)
		assert.GreaterOrEqual(t, x, float32(0))
		assert.Less(t, x, float32(1080))
		assert.GreaterOrEqual(t, y, float32(0))
		assert.Less(t, y, float32(480))

		speed := vx*vx + vy*vy
		assert.GreaterOrEqual(t, speed, float32(1*1)-1e-4, "particle %d too slow", i)
		assert.Less(t, speed, float32(4*4)+1e-4, "particle %d too fast", i)
	}
	for _, c := range s.Color {
		assert.GreaterOrEqual(t, c, float32(0))
		assert.LessOrEqual(t, c, float32(1))
	}
}

func TestNewSameSeedSameSet(t *testing.T) {
	a := New(64, 1080, 480, NewSource(42))
	b := New(64, 1080, 480, NewSource(42))
	assert.Equal(t, a, b)

	c := New(64, 1080, 480, NewSource(43))
	assert.NotEqual(t, a.Pos, c.Pos)
}
