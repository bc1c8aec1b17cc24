// Package gpu describes the slice of a WebGL-style context the particle
// renderer needs, and builds shader programs on top of it.
package gpu

type (
	Shader  uint32
	Program uint32
	Buffer  uint32
	Uniform uint32
)

type Stage int

const (
	VertexStage Stage = iota
	FragmentStage
)

func (s Stage) String() string {
	if s == VertexStage {
		return "vertex"
	}
	return "fragment"
}

type Usage int

const (
	StaticDraw Usage = iota
	DynamicDraw
)

// Context is a host graphics context. Zero handles are never valid.
type Context interface {
	CreateShader(stage Stage) Shader
	ShaderSource(s Shader, src string)
	CompileShader(s Shader)
	ShaderCompiled(s Shader) bool
	ShaderInfoLog(s Shader) string
	DeleteShader(s Shader)

	CreateProgram() Program
	AttachShader(p Program, s Shader)
	DetachShader(p Program, s Shader)
	LinkProgram(p Program)
	ProgramLinked(p Program) bool
	ProgramInfoLog(p Program) string
	UseProgram(p Program)
	DeleteProgram(p Program)

	// AttribLocation returns -1 when name is not an active attribute.
	AttribLocation(p Program, name string) int
	UniformLocation(p Program, name string) (Uniform, bool)

	CreateBuffer() Buffer
	BindBuffer(b Buffer)
	BufferData(data []float32, usage Usage)
	DeleteBuffer(b Buffer)
	VertexAttribPointer(loc, size int)
	EnableVertexAttribArray(loc int)

	Uniform1f(u Uniform, v float32)

	Viewport(x, y, width, height int)
	ClearColor(r, g, b, a float32)
	Clear()
	DrawPoints(first, count int)

	// Err reports the first pending context error, if any.
	Err() error
}
