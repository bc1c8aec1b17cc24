package game

import (
	"math"
	"sync"

	"github.com/faiface/beep"

	"github.com/iburimskiy/particle-field/internal/config"
)

// clicker is an endless beep.Streamer playing a decaying tone that each
// bounce frame re-excites. Trigger runs on the game thread and Stream on
// the speaker's, hence the mutex.
type clicker struct {
	rate  beep.SampleRate
	phase float64
	gain  float64
	mu    sync.Mutex
}

func newClicker(rate beep.SampleRate) *clicker {
	return &clicker{rate: rate}
}

// Trigger raises the tone's gain in proportion to the number of reflections.
func (c *clicker) Trigger(bounces int) {
	gain := clamp01(float64(bounces)/40) * config.ClickMaxGain
	c.mu.Lock()
	if gain > c.gain {
		c.gain = gain
	}
	c.mu.Unlock()
}

func (c *clicker) Stream(samples [][2]float64) (int, bool) {
	step := 2 * math.Pi * config.ClickFrequency / float64(c.rate)
	c.mu.Lock()
	for i := range samples {
		v := math.Sin(c.phase) * c.gain
		samples[i] = [2]float64{v, v}
		c.phase += step
		if c.phase > 2*math.Pi {
			c.phase -= 2 * math.Pi
		}
		c.gain *= config.ClickDecay
	}
	c.mu.Unlock()
	return len(samples), true
}

func (c *clicker) Err() error { return nil }

func (c *clicker) level() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gain
}
