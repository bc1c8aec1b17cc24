// Package loop drives the particle field: one step and one draw per frame
// callback, with pause/resume and full re-initialization on point-size
// changes.
package loop

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/iburimskiy/particle-field/internal/config"
	"github.com/iburimskiy/particle-field/internal/logging"
	"github.com/iburimskiy/particle-field/internal/particle"
)

var (
	ErrInvalidPointSize = errors.New("invalid point size")
	ErrStopped          = errors.New("render loop stopped")
)

// Scheduler invokes fn once at the next display refresh. ts is a
// monotonically increasing timestamp in milliseconds.
type Scheduler interface {
	RequestFrame(fn func(ts float64))
}

// Renderer puts a particle set on screen.
type Renderer interface {
	Init(set *particle.Set, pointSize float32) error
	Draw(set *particle.Set, pointSize float32) error
	Release()
}

type State int

const (
	Running State = iota
	Paused
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "paused"
}

type Options struct {
	Width, Height int
	Particles     int
	PointSize     float32
	Paused        bool
	Source        particle.Source

	// OnBounce, if set, is called after every step that reflected at least
	// one particle, with the number of axis reflections.
	OnBounce func(n int)
}

// Controller owns the particle set, the renderer and the animation state
// for one canvas session. All methods must be called from the thread that
// runs the scheduler's callbacks.
type Controller struct {
	r     Renderer
	sched Scheduler
	opts  Options
	log   *zap.Logger

	set       *particle.Set
	pointSize float32
	state     State
	started   bool
	pending   bool
	frames    int
	lastTS    float64
	err       error
}

func New(r Renderer, sched Scheduler, opts Options, log *zap.Logger) (*Controller, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("%w: viewport %dx%d", config.ErrInvalid, opts.Width, opts.Height)
	}
	if opts.Particles <= 0 {
		return nil, fmt.Errorf("%w: particle count %d", config.ErrInvalid, opts.Particles)
	}
	if !config.ValidPointSize(opts.PointSize) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPointSize, opts.PointSize)
	}
	if opts.Source == nil {
		return nil, fmt.Errorf("%w: no random source", config.ErrInvalid)
	}
	state := Running
	if opts.Paused {
		state = Paused
	}
	return &Controller{
		r:         r,
		sched:     sched,
		opts:      opts,
		log:       logging.OrNop(log),
		pointSize: opts.PointSize,
		state:     state,
	}, nil
}

// Start performs the first initialization and, unless paused, schedules
// the first frame. An initialization error is fatal to the session.
func (c *Controller) Start() error {
	if c.started {
		return nil
	}
	c.started = true
	if err := c.init(); err != nil {
		return err
	}
	c.log.Info("particle field started",
		zap.Int("particles", c.opts.Particles),
		zap.Float32("point_size", c.pointSize),
		zap.Int("width", c.opts.Width),
		zap.Int("height", c.opts.Height),
		zap.Stringer("state", c.state))
	c.schedule()
	return nil
}

func (c *Controller) init() error {
	w, h := float32(c.opts.Width), float32(c.opts.Height)
	c.set = particle.New(c.opts.Particles, w, h, c.opts.Source)
	if err := c.r.Init(c.set, c.pointSize); err != nil {
		return c.fail(fmt.Errorf("initialize renderer: %w", err))
	}
	return nil
}

func (c *Controller) schedule() {
	if c.pending || c.state != Running || c.err != nil {
		return
	}
	c.pending = true
	c.sched.RequestFrame(c.tick)
}

func (c *Controller) tick(ts float64) {
	c.pending = false
	if c.state != Running || c.err != nil {
		return
	}
	c.lastTS = ts

	n := particle.Step(c.set, c.pointSize, float32(c.opts.Width), float32(c.opts.Height))
	if err := c.r.Draw(c.set, c.pointSize); err != nil {
		c.fail(fmt.Errorf("draw frame %d: %w", c.frames, err))
		return
	}
	c.frames++
	if n > 0 && c.opts.OnBounce != nil {
		c.opts.OnBounce(n)
	}
	c.schedule()
}

func (c *Controller) fail(err error) error {
	c.err = err
	c.log.Error("render loop stopped", zap.Error(err))
	return err
}

// ToggleRunning flips between Running and Paused. Resuming schedules the
// next frame.
func (c *Controller) ToggleRunning() error {
	if c.err != nil {
		return fmt.Errorf("%w: %v", ErrStopped, c.err)
	}
	if c.state == Running {
		c.state = Paused
	} else {
		c.state = Running
	}
	c.log.Info("animation toggled", zap.Stringer("state", c.state))
	if c.started {
		c.schedule()
	}
	return nil
}

// SetPointSize rebuilds the whole session for the new radius: a fresh
// program and bindings, and a fresh random particle set.
func (c *Controller) SetPointSize(v float32) error {
	if !config.ValidPointSize(v) {
		return fmt.Errorf("%w: %v", ErrInvalidPointSize, v)
	}
	if c.err != nil {
		return fmt.Errorf("%w: %v", ErrStopped, c.err)
	}
	c.pointSize = v
	if !c.started {
		return nil
	}
	c.r.Release()
	if err := c.init(); err != nil {
		return err
	}
	c.log.Info("particle field reinitialized", zap.Float32("point_size", v))
	c.schedule()
	return nil
}

// Stop releases GPU state. The controller cannot be restarted.
func (c *Controller) Stop() {
	if c.err == nil {
		c.err = ErrStopped
	}
	c.r.Release()
}

func (c *Controller) State() State { return c.state }
func (c *Controller) PointSize() float32 { return c.pointSize }
func (c *Controller) Frames() int { return c.frames }
func (c *Controller) LastTimestamp() float64 { return c.lastTS }
func (c *Controller) Particles() *particle.Set { return c.set }

// Err returns the error that stopped the loop, if any.
func (c *Controller) Err() error { return c.err }
