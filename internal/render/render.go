// Package render draws a particle.Set as circular point sprites through a
// gpu.Context.
package render

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/iburimskiy/particle-field/internal/gpu"
	"github.com/iburimskiy/particle-field/internal/logging"
	"github.com/iburimskiy/particle-field/internal/particle"
)

var (
	ErrMissingLocation = errors.New("missing shader location")
	ErrNotInitialized  = errors.New("renderer not initialized")
)

// Renderer owns the program, its resolved locations and the two vertex
// buffers. It is rebuilt from scratch by every Init.
type Renderer struct {
	gl     gpu.Context
	log    *zap.Logger
	width  int
	height int

	ready   bool
	program gpu.Program
	posBuf  gpu.Buffer
	colBuf  gpu.Buffer

	aCoords    int
	aColor     int
	uWidth     gpu.Uniform
	uHeight    gpu.Uniform
	uPointSize gpu.Uniform
}

func New(gl gpu.Context, width, height int, log *zap.Logger) *Renderer {
	return &Renderer{
		gl:     gl,
		log:    logging.OrNop(log),
		width:  width,
		height: height,
	}
}

// Init compiles the program, resolves its locations, and uploads the
// (immutable) colors of set. Any earlier GPU state is released first.
func (r *Renderer) Init(set *particle.Set, pointSize float32) error {
	r.Release()

	prog, err := gpu.CompileProgram(r.gl, vertexSource, fragmentSource)
	if err != nil {
		return fmt.Errorf("build particle program: %w", err)
	}
	r.program = prog

	if err := r.resolve(); err != nil {
		r.gl.DeleteProgram(prog)
		r.program = 0
		return err
	}

	r.gl.UseProgram(prog)
	r.posBuf = r.gl.CreateBuffer()
	r.colBuf = r.gl.CreateBuffer()

	r.gl.BindBuffer(r.colBuf)
	r.gl.BufferData(set.Color, gpu.StaticDraw)
	r.gl.VertexAttribPointer(r.aColor, 3)

	r.gl.Uniform1f(r.uWidth, float32(r.width))
	r.gl.Uniform1f(r.uHeight, float32(r.height))
	r.gl.Uniform1f(r.uPointSize, pointSize)

	if err := r.gl.Err(); err != nil {
		r.Release()
		return fmt.Errorf("init particle buffers: %w", err)
	}
	r.ready = true
	r.log.Debug("renderer initialized",
		zap.Int("particles", set.Len()),
		zap.Float32("point_size", pointSize))
	return nil
}

func (r *Renderer) resolve() error {
	r.aCoords = r.gl.AttribLocation(r.program, "a_coords")
	if r.aCoords < 0 {
		return fmt.Errorf("%w: a_coords", ErrMissingLocation)
	}
	r.aColor = r.gl.AttribLocation(r.program, "a_color")
	if r.aColor < 0 {
		return fmt.Errorf("%w: a_color", ErrMissingLocation)
	}
	for _, u := range []struct {
		name string
		dst  *gpu.Uniform
	}{
		{"u_width", &r.uWidth},
		{"u_height", &r.uHeight},
		{"u_pointsize", &r.uPointSize},
	} {
		loc, ok := r.gl.UniformLocation(r.program, u.name)
		if !ok {
			return fmt.Errorf("%w: %s", ErrMissingLocation, u.name)
		}
		*u.dst = loc
	}
	return nil
}

// Draw clears to opaque black, streams the current positions and draws
// one point per particle in index order.
func (r *Renderer) Draw(set *particle.Set, pointSize float32) error {
	if !r.ready {
		return ErrNotInitialized
	}
	r.gl.Viewport(0, 0, r.width, r.height)
	r.gl.ClearColor(0, 0, 0, 1)
	r.gl.Clear()

	r.gl.UseProgram(r.program)
	r.gl.BindBuffer(r.posBuf)
	r.gl.BufferData(set.Pos, gpu.DynamicDraw)
	r.gl.VertexAttribPointer(r.aCoords, 2)
	r.gl.EnableVertexAttribArray(r.aCoords)

	r.gl.BindBuffer(r.colBuf)
	r.gl.VertexAttribPointer(r.aColor, 3)
	r.gl.EnableVertexAttribArray(r.aColor)

	r.gl.Uniform1f(r.uPointSize, pointSize)
	r.gl.DrawPoints(0, set.Len())

	if err := r.gl.Err(); err != nil {
		return fmt.Errorf("draw particles: %w", err)
	}
	return nil
}

// Release deletes the program and both buffers. It is safe to call twice.
func (r *Renderer) Release() {
	if r.program != 0 {
		r.gl.DeleteProgram(r.program)
		r.program = 0
	}
	if r.posBuf != 0 {
		r.gl.DeleteBuffer(r.posBuf)
		r.posBuf = 0
	}
	if r.colBuf != 0 {
		r.gl.DeleteBuffer(r.colBuf)
		r.colBuf = 0
	}
	r.ready = false
}
