//go:build js && wasm

// Package webgl implements gpu.Context on a browser WebGL context.
package webgl

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"syscall/js"

	"github.com/iburimskiy/particle-field/internal/gpu"
)

var ErrNoContext = errors.New("webgl context unavailable")

type glConsts struct {
	arrayBuffer    int
	staticDraw     int
	dynamicDraw    int
	floatType      int
	points         int
	colorBufferBit int
	compileStatus  int
	linkStatus     int
	vertexShader   int
	fragmentShader int
	noError        int
}

// Context wraps a WebGL rendering context. JS objects are kept in a handle
// table so the rest of the program only sees integer handles.
type Context struct {
	gl      js.Value
	consts  glConsts
	objects map[uint32]js.Value
	next    uint32
	scratch []byte
}

// New looks up the canvas with the given element id and opens a WebGL
// context on it with an opaque drawing buffer and no depth buffer.
func New(canvasID string) (*Context, error) {
	canvas := js.Global().Get("document").Call("getElementById", canvasID)
	if canvas.IsNull() || canvas.IsUndefined() {
		return nil, fmt.Errorf("canvas %q not found", canvasID)
	}
	opts := map[string]any{"alpha": false, "depth": false}
	gl := canvas.Call("getContext", "webgl", opts)
	if gl.IsNull() || gl.IsUndefined() {
		return nil, ErrNoContext
	}
	return Wrap(gl), nil
}

func Wrap(gl js.Value) *Context {
	c := &Context{gl: gl, objects: map[uint32]js.Value{}}
	c.consts = glConsts{
		arrayBuffer:    gl.Get("ARRAY_BUFFER").Int(),
		staticDraw:     gl.Get("STATIC_DRAW").Int(),
		dynamicDraw:    gl.Get("DYNAMIC_DRAW").Int(),
		floatType:      gl.Get("FLOAT").Int(),
		points:         gl.Get("POINTS").Int(),
		colorBufferBit: gl.Get("COLOR_BUFFER_BIT").Int(),
		compileStatus:  gl.Get("COMPILE_STATUS").Int(),
		linkStatus:     gl.Get("LINK_STATUS").Int(),
		vertexShader:   gl.Get("VERTEX_SHADER").Int(),
		fragmentShader: gl.Get("FRAGMENT_SHADER").Int(),
		noError:        gl.Get("NO_ERROR").Int(),
	}
	return c
}

func (c *Context) put(v js.Value) uint32 {
	c.next++
	c.objects[c.next] = v
	return c.next
}

func (c *Context) get(id uint32) js.Value {
	if v, ok := c.objects[id]; ok {
		return v
	}
	return js.Null()
}

func (c *Context) drop(id uint32) js.Value {
	v := c.get(id)
	delete(c.objects, id)
	return v
}

func (c *Context) CreateShader(stage gpu.Stage) gpu.Shader {
	kind := c.consts.vertexShader
	if stage == gpu.FragmentStage {
		kind = c.consts.fragmentShader
	}
	return gpu.Shader(c.put(c.gl.Call("createShader", kind)))
}

func (c *Context) ShaderSource(s gpu.Shader, src string) {
	c.gl.Call("shaderSource", c.get(uint32(s)), src)
}

func (c *Context) CompileShader(s gpu.Shader) { c.gl.Call("compileShader", c.get(uint32(s))) }

func (c *Context) ShaderCompiled(s gpu.Shader) bool {
	return c.gl.Call("getShaderParameter", c.get(uint32(s)), c.consts.compileStatus).Truthy()
}

func (c *Context) ShaderInfoLog(s gpu.Shader) string {
	return c.gl.Call("getShaderInfoLog", c.get(uint32(s))).String()
}

func (c *Context) DeleteShader(s gpu.Shader) { c.gl.Call("deleteShader", c.drop(uint32(s))) }

func (c *Context) CreateProgram() gpu.Program {
	return gpu.Program(c.put(c.gl.Call("createProgram")))
}

func (c *Context) AttachShader(p gpu.Program, s gpu.Shader) {
	c.gl.Call("attachShader", c.get(uint32(p)), c.get(uint32(s)))
}

func (c *Context) DetachShader(p gpu.Program, s gpu.Shader) {
	c.gl.Call("detachShader", c.get(uint32(p)), c.get(uint32(s)))
}

func (c *Context) LinkProgram(p gpu.Program) { c.gl.Call("linkProgram", c.get(uint32(p))) }

func (c *Context) ProgramLinked(p gpu.Program) bool {
	return c.gl.Call("getProgramParameter", c.get(uint32(p)), c.consts.linkStatus).Truthy()
}

func (c *Context) ProgramInfoLog(p gpu.Program) string {
	return c.gl.Call("getProgramInfoLog", c.get(uint32(p))).String()
}

func (c *Context) UseProgram(p gpu.Program) { c.gl.Call("useProgram", c.get(uint32(p))) }

func (c *Context) DeleteProgram(p gpu.Program) { c.gl.Call("deleteProgram", c.drop(uint32(p))) }

func (c *Context) AttribLocation(p gpu.Program, name string) int {
	return c.gl.Call("getAttribLocation", c.get(uint32(p)), name).Int()
}

func (c *Context) UniformLocation(p gpu.Program, name string) (gpu.Uniform, bool) {
	loc := c.gl.Call("getUniformLocation", c.get(uint32(p)), name)
	if loc.IsNull() || loc.IsUndefined() {
		return 0, false
	}
	return gpu.Uniform(c.put(loc)), true
}

func (c *Context) CreateBuffer() gpu.Buffer {
	return gpu.Buffer(c.put(c.gl.Call("createBuffer")))
}

func (c *Context) BindBuffer(b gpu.Buffer) {
	c.gl.Call("bindBuffer", c.consts.arrayBuffer, c.get(uint32(b)))
}

func (c *Context) BufferData(data []float32, usage gpu.Usage) {
	hint := c.consts.staticDraw
	if usage == gpu.DynamicDraw {
		hint = c.consts.dynamicDraw
	}
	c.gl.Call("bufferData", c.consts.arrayBuffer, c.float32Array(data), hint)
}

func (c *Context) DeleteBuffer(b gpu.Buffer) { c.gl.Call("deleteBuffer", c.drop(uint32(b))) }

func (c *Context) VertexAttribPointer(loc, size int) {
	c.gl.Call("vertexAttribPointer", loc, size, c.consts.floatType, false, 0, 0)
}

func (c *Context) EnableVertexAttribArray(loc int) { c.gl.Call("enableVertexAttribArray", loc) }

func (c *Context) Uniform1f(u gpu.Uniform, v float32) {
	c.gl.Call("uniform1f", c.get(uint32(u)), v)
}

func (c *Context) Viewport(x, y, width, height int) { c.gl.Call("viewport", x, y, width, height) }

func (c *Context) ClearColor(r, g, b, a float32) { c.gl.Call("clearColor", r, g, b, a) }

func (c *Context) Clear() { c.gl.Call("clear", c.consts.colorBufferBit) }

func (c *Context) DrawPoints(first, count int) {
	c.gl.Call("drawArrays", c.consts.points, first, count)
}

func (c *Context) Err() error {
	if c.gl.Call("isContextLost").Bool() {
		return errors.New("webgl context lost")
	}
	code := c.gl.Call("getError").Int()
	if code == c.consts.noError {
		return nil
	}
	return fmt.Errorf("webgl error 0x%04x", code)
}

// float32Array copies data into a fresh JS Float32Array.
func (c *Context) float32Array(data []float32) js.Value {
	n := len(data) * 4
	if cap(c.scratch) < n {
		c.scratch = make([]byte, n)
	}
	buf := c.scratch[:n]
	for i, v := range data {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(v))
	}
	bytes := js.Global().Get("Uint8Array").New(n)
	js.CopyBytesToJS(bytes, buf)
	return js.Global().Get("Float32Array").New(bytes.Get("buffer"), 0, len(data))
}
