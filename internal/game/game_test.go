package game

import (
	"testing"
	"time"

	"github.com/faiface/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/particle-field/internal/config"
)

func TestFrameQueueDefersNestedRequests(t *testing.T) {
	origin := time.Unix(100, 0)
	q := newFrameQueue(origin)

	var got []float64
	var tick func(float64)
	tick = func(ts float64) {
		got = append(got, ts)
		q.RequestFrame(tick)
	}
	q.RequestFrame(tick)

	q.run(origin.Add(16 * time.Millisecond))
	require.Equal(t, []float64{16}, got)
	q.run(origin.Add(33 * time.Millisecond))
	assert.Equal(t, []float64{16, 33}, got)
	assert.Len(t, q.pending, 1)
}

func TestFrameQueueIdle(t *testing.T) {
	q := newFrameQueue(time.Now())
	q.run(time.Now())
	assert.Empty(t, q.pending)
}

func TestClickerDecays(t *testing.T) {
	c := newClicker(beep.SampleRate(config.ClickSampleRate))
	c.Trigger(1000)
	assert.InDelta(t, config.ClickMaxGain, c.level(), 1e-9)

	samples := make([][2]float64, 512)
	n, ok := c.Stream(samples)
	assert.Equal(t, 512, n)
	assert.True(t, ok)
	assert.NoError(t, c.Err())
	assert.Less(t, c.level(), config.ClickMaxGain)
	for _, s := range samples {
		assert.Equal(t, s[0], s[1])
		assert.LessOrEqual(t, s[0], config.ClickMaxGain)
	}

	before := c.level()
	c.Trigger(1)
	assert.GreaterOrEqual(t, c.level(), before, "a weak bounce never lowers the gain")
}

func TestButtons(t *testing.T) {
	g := &Game{buttons: layoutButtons()}
	require.Len(t, g.buttons, len(config.PointSizes)+1)
	for i, s := range config.PointSizes {
		assert.Equal(t, s, g.buttons[i].size)
	}
	assert.Zero(t, g.buttons[len(g.buttons)-1].size)

	b := g.buttons[2]
	assert.Equal(t, 2, g.buttonAt(b.x+1, b.y+1))
	assert.Equal(t, -1, g.buttonAt(0, 0))
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, "01:05", formatDuration(65*time.Second))
	red := hsv(0, 1, 1)
	assert.EqualValues(t, 255, red.R)
	assert.EqualValues(t, 0, red.G)
	assert.EqualValues(t, 127, shade(red, 0.5).R)
	assert.EqualValues(t, 0.0, clamp01(-2))
}
