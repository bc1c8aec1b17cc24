// Package gputest provides an in-memory gpu.Context that records what the
// renderer asks of it.
package gputest

import (
	"fmt"
	"strings"

	"github.com/iburimskiy/particle-field/internal/gpu"
)

// Context is a recording fake. Set the Fail* fields before use to make
// compile, link or lookups fail.
type Context struct {
	FailStage     map[gpu.Stage]string
	FailLink      string
	MissingNames  map[string]bool
	PendingErr    error
	Calls         []string
	Draws         int
	DrawnCount    int
	BufferUploads map[gpu.Buffer][][]float32
	Uniforms      map[string]float32

	next        uint32
	shaders     map[gpu.Shader]gpu.Stage
	programs    map[gpu.Program]bool
	buffers     map[gpu.Buffer]bool
	uniformName map[gpu.Uniform]string
	bound       gpu.Buffer
	used        gpu.Program
	attribs     map[int]gpu.Buffer
	enabled     map[int]bool
	clearColor  [4]float32
}

func New() *Context {
	return &Context{
		FailStage:     map[gpu.Stage]string{},
		MissingNames:  map[string]bool{},
		BufferUploads: map[gpu.Buffer][][]float32{},
		Uniforms:      map[string]float32{},
		shaders:       map[gpu.Shader]gpu.Stage{},
		programs:      map[gpu.Program]bool{},
		buffers:       map[gpu.Buffer]bool{},
		uniformName:   map[gpu.Uniform]string{},
		attribs:       map[int]gpu.Buffer{},
		enabled:       map[int]bool{},
	}
}

// Live reports how many shaders, programs and buffers are still allocated.
func (c *Context) Live() (shaders, programs, buffers int) {
	return len(c.shaders), len(c.programs), len(c.buffers)
}

func (c *Context) ClearedTo() [4]float32 { return c.clearColor }

// AttribBuffer returns the buffer bound to attribute loc and whether it is enabled.
func (c *Context) AttribBuffer(loc int) (gpu.Buffer, bool) {
	return c.attribs[loc], c.enabled[loc]
}

// Count returns how many recorded calls start with prefix.
func (c *Context) Count(prefix string) int {
	n := 0
	for _, call := range c.Calls {
		if strings.HasPrefix(call, prefix) {
			n++
		}
	}
	return n
}

func (c *Context) record(format string, args ...any) {
	c.Calls = append(c.Calls, fmt.Sprintf(format, args...))
}

func (c *Context) id() uint32 {
	c.next++
	return c.next
}

func (c *Context) CreateShader(stage gpu.Stage) gpu.Shader {
	s := gpu.Shader(c.id())
	c.shaders[s] = stage
	c.record("createShader %s", stage)
	return s
}

func (c *Context) ShaderSource(gpu.Shader, string) {}

func (c *Context) CompileShader(s gpu.Shader) { c.record("compileShader %s", c.shaders[s]) }

func (c *Context) ShaderCompiled(s gpu.Shader) bool {
	_, fail := c.FailStage[c.shaders[s]]
	return !fail
}

func (c *Context) ShaderInfoLog(s gpu.Shader) string { return c.FailStage[c.shaders[s]] }

func (c *Context) DeleteShader(s gpu.Shader) {
	delete(c.shaders, s)
	c.record("deleteShader")
}

func (c *Context) CreateProgram() gpu.Program {
	p := gpu.Program(c.id())
	c.programs[p] = true
	c.record("createProgram")
	return p
}

func (c *Context) AttachShader(gpu.Program, gpu.Shader) {}
func (c *Context) DetachShader(gpu.Program, gpu.Shader) {}

func (c *Context) LinkProgram(gpu.Program) { c.record("linkProgram") }

func (c *Context) ProgramLinked(gpu.Program) bool { return c.FailLink == "" }

func (c *Context) ProgramInfoLog(gpu.Program) string { return c.FailLink }

func (c *Context) UseProgram(p gpu.Program) { c.used = p }

func (c *Context) DeleteProgram(p gpu.Program) {
	delete(c.programs, p)
	c.record("deleteProgram")
}

func (c *Context) AttribLocation(p gpu.Program, name string) int {
	if c.MissingNames[name] || !c.programs[p] {
		return -1
	}
	switch name {
	case "a_coords":
		return 0
	case "a_color":
		return 1
	}
	return -1
}

func (c *Context) UniformLocation(p gpu.Program, name string) (gpu.Uniform, bool) {
	if c.MissingNames[name] || !c.programs[p] {
		return 0, false
	}
	u := gpu.Uniform(c.id())
	c.uniformName[u] = name
	return u, true
}

func (c *Context) CreateBuffer() gpu.Buffer {
	b := gpu.Buffer(c.id())
	c.buffers[b] = true
	return b
}

func (c *Context) BindBuffer(b gpu.Buffer) { c.bound = b }

func (c *Context) BufferData(data []float32, usage gpu.Usage) {
	c.BufferUploads[c.bound] = append(c.BufferUploads[c.bound], append([]float32(nil), data...))
	if usage == gpu.DynamicDraw {
		c.record("bufferData dynamic %d", len(data))
	} else {
		c.record("bufferData static %d", len(data))
	}
}

func (c *Context) DeleteBuffer(b gpu.Buffer) {
	delete(c.buffers, b)
	c.record("deleteBuffer")
}

func (c *Context) VertexAttribPointer(loc, size int) {
	c.attribs[loc] = c.bound
	c.record("vertexAttribPointer %d %d", loc, size)
}

func (c *Context) EnableVertexAttribArray(loc int) { c.enabled[loc] = true }

func (c *Context) Uniform1f(u gpu.Uniform, v float32) {
	c.Uniforms[c.uniformName[u]] = v
}

func (c *Context) Viewport(x, y, width, height int) {
	c.record("viewport %d %d %d %d", x, y, width, height)
}

func (c *Context) ClearColor(r, g, b, a float32) { c.clearColor = [4]float32{r, g, b, a} }

func (c *Context) Clear() { c.record("clear") }

func (c *Context) DrawPoints(first, count int) {
	c.Draws++
	c.DrawnCount = count
	c.record("drawPoints %d %d", first, count)
}

func (c *Context) Err() error {
	err := c.PendingErr
	c.PendingErr = nil
	return err
}
