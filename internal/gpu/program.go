package gpu

import (
	"errors"
	"fmt"
)

var (
	ErrCompile = errors.New("shader compile failed")
	ErrLink    = errors.New("program link failed")
)

type CompileError struct {
	Stage Stage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s shader: %v: %s", e.Stage, ErrCompile, e.Log)
}

func (e *CompileError) Is(target error) bool { return target == ErrCompile }

type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("%v: %s", ErrLink, e.Log)
}

func (e *LinkError) Is(target error) bool { return target == ErrLink }

// CompileProgram compiles both stages and links them. On failure every
// object it created is deleted and no program is returned.
func CompileProgram(gl Context, vertexSrc, fragmentSrc string) (Program, error) {
	vs, err := compileShader(gl, VertexStage, vertexSrc)
	if err != nil {
		return 0, err
	}
	fs, err := compileShader(gl, FragmentStage, fragmentSrc)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	gl.LinkProgram(prog)
	linked := gl.ProgramLinked(prog)

	var linkErr error
	if !linked {
		linkErr = &LinkError{Log: gl.ProgramInfoLog(prog)}
	}
	gl.DetachShader(prog, vs)
	gl.DetachShader(prog, fs)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)
	if linkErr != nil {
		gl.DeleteProgram(prog)
		return 0, linkErr
	}
	return prog, nil
}

func compileShader(gl Context, stage Stage, src string) (Shader, error) {
	sh := gl.CreateShader(stage)
	gl.ShaderSource(sh, src)
	gl.CompileShader(sh)
	if !gl.ShaderCompiled(sh) {
		log := gl.ShaderInfoLog(sh)
		gl.DeleteShader(sh)
		return 0, &CompileError{Stage: stage, Log: log}
	}
	return sh, nil
}
