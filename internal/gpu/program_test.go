package gpu_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/particle-field/internal/gpu"
	"github.com/iburimskiy/particle-field/internal/gpu/gputest"
)

func TestCompileProgram(t *testing.T) {
	gl := gputest.New()
	prog, err := gpu.CompileProgram(gl, "vs", "fs")
	require.NoError(t, err)
	assert.NotZero(t, prog)

	shaders, programs, _ := gl.Live()
	assert.Zero(t, shaders, "stage objects are released after linking")
	assert.Equal(t, 1, programs)
}

func TestCompileProgramStageFailure(t *testing.T) {
	for _, stage := range []gpu.Stage{gpu.VertexStage, gpu.FragmentStage} {
		t.Run(stage.String(), func(t *testing.T) {
			gl := gputest.New()
			gl.FailStage[stage] = "syntax error"

			prog, err := gpu.CompileProgram(gl, "vs", "fs")
			assert.Zero(t, prog)
			require.ErrorIs(t, err, gpu.ErrCompile)
			assert.NotErrorIs(t, err, gpu.ErrLink)

			var ce *gpu.CompileError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, stage, ce.Stage)
			assert.Equal(t, "syntax error", ce.Log)

			shaders, programs, _ := gl.Live()
			assert.Zero(t, shaders)
			assert.Zero(t, programs)
			assert.Zero(t, gl.Count("linkProgram"))
		})
	}
}

func TestCompileProgramLinkFailure(t *testing.T) {
	gl := gputest.New()
	gl.FailLink = "varying mismatch"

	prog, err := gpu.CompileProgram(gl, "vs", "fs")
	assert.Zero(t, prog)
	require.ErrorIs(t, err, gpu.ErrLink)
	assert.NotErrorIs(t, err, gpu.ErrCompile)
	assert.Contains(t, err.Error(), "varying mismatch")

	shaders, programs, _ := gl.Live()
	assert.Zero(t, shaders)
	assert.Zero(t, programs)
}

func TestCompileProgramNoCaching(t *testing.T) {
	gl := gputest.New()
	_, err := gpu.CompileProgram(gl, "vs", "fs")
	require.NoError(t, err)
	_, err = gpu.CompileProgram(gl, "vs", "fs")
	require.NoError(t, err)
	assert.Equal(t, 4, gl.Count("compileShader"))
	assert.Equal(t, 2, gl.Count("linkProgram"))
}
