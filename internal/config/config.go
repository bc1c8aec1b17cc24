package config

import (
	"errors"
	"flag"
	"fmt"
	"time"
)

const (
	CanvasWidth  = 1080
	CanvasHeight = 480

	ParticleCount = 500
	MinSpeed      = 1.0
	MaxSpeed      = 4.0

	DefaultPointSize = 5

	// HUD buttons
	ButtonWidth  = 56
	ButtonHeight = 24
	ButtonX      = 12
	ButtonY      = 30
	ButtonGap    = 8

	// Bounce click
	ClickSampleRate = 44100
	ClickFrequency  = 880.0
	ClickDecay      = 0.9985
	ClickMaxGain    = 0.25
)

// PointSizes is the set of radii the size control offers.
var PointSizes = []float32{1, 5, 10, 20}

var ErrInvalid = errors.New("invalid config")

type Config struct {
	PointSize float32
	Particles int
	Seed      int64
	Sound     bool
	Paused    bool
	LogLevel  string
}

func Default() Config {
	return Config{
		PointSize: DefaultPointSize,
		Particles: ParticleCount,
		LogLevel:  "info",
	}
}

// Parse reads the desktop program's flags. A zero seed means "seed from the clock".
func Parse(args []string) (Config, error) {
	cfg := Default()
	var size float64

	fs := flag.NewFlagSet("particle-field", flag.ContinueOnError)
	fs.Float64Var(&size, "point-size", float64(cfg.PointSize), "particle radius in pixels (1, 5, 10 or 20)")
	fs.IntVar(&cfg.Particles, "particles", cfg.Particles, "number of particles")
	fs.Int64Var(&cfg.Seed, "seed", 0, "random seed, 0 seeds from the clock")
	fs.BoolVar(&cfg.Sound, "sound", false, "click on edge bounces")
	fs.BoolVar(&cfg.Paused, "paused", false, "start paused")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg.PointSize = float32(size)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if !ValidPointSize(c.PointSize) {
		return fmt.Errorf("%w: point size %v not in %v", ErrInvalid, c.PointSize, PointSizes)
	}
	if c.Particles <= 0 {
		return fmt.Errorf("%w: particle count %d", ErrInvalid, c.Particles)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log level %q", ErrInvalid, c.LogLevel)
	}
	return nil
}

// SeedOrClock returns the configured seed, or the wall clock when none was given.
func (c Config) SeedOrClock() uint64 {
	if c.Seed != 0 {
		return uint64(c.Seed)
	}
	return uint64(time.Now().UnixNano())
}

func ValidPointSize(v float32) bool {
	for _, s := range PointSizes {
		if s == v {
			return true
		}
	}
	return false
}
