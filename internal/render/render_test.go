package render

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/particle-field/internal/gpu"
	"github.com/iburimskiy/particle-field/internal/gpu/gputest"
	"github.com/iburimskiy/particle-field/internal/particle"
)

func newSet() *particle.Set {
	return particle.New(500, 1080, 480, particle.NewSource(3))
}

func TestInitUploadsColorsOnce(t *testing.T) {
	gl := gputest.New()
	r := New(gl, 1080, 480, nil)
	set := newSet()
	require.NoError(t, r.Init(set, 5))

	for i := 0; i < 3; i++ {
		require.NoError(t, r.Draw(set, 5))
	}
	assert.Equal(t, 1, gl.Count("bufferData static"))
	assert.Equal(t, 3, gl.Count("bufferData dynamic 1000"))
	assert.Equal(t, float32(1080), gl.Uniforms["u_width"])
	assert.Equal(t, float32(480), gl.Uniforms["u_height"])

	colors := gl.BufferUploads[r.colBuf]
	require.Len(t, colors, 1)
	assert.Equal(t, set.Color, colors[0])
}

func TestDraw(t *testing.T) {
	gl := gputest.New()
	r := New(gl, 1080, 480, nil)
	set := newSet()
	require.NoError(t, r.Init(set, 10))

	particle.Step(set, 10, 1080, 480)
	require.NoError(t, r.Draw(set, 10))

	assert.Equal(t, [4]float32{0, 0, 0, 1}, gl.ClearedTo())
	assert.Equal(t, 1, gl.Draws)
	assert.Equal(t, 500, gl.DrawnCount)
	assert.Equal(t, float32(10), gl.Uniforms["u_pointsize"])

	uploads := gl.BufferUploads[r.posBuf]
	require.NotEmpty(t, uploads)
	assert.Equal(t, set.Pos, uploads[len(uploads)-1])

	buf, enabled := gl.AttribBuffer(0)
	assert.Equal(t, r.posBuf, buf)
	assert.True(t, enabled)
	buf, enabled = gl.AttribBuffer(1)
	assert.Equal(t, r.colBuf, buf)
	assert.True(t, enabled)

	last := gl.Calls[len(gl.Calls)-1]
	assert.Equal(t, "drawPoints 0 500", last)
}

func TestDrawBeforeInit(t *testing.T) {
	gl := gputest.New()
	r := New(gl, 100, 100, nil)
	assert.ErrorIs(t, r.Draw(newSet(), 5), ErrNotInitialized)
	assert.Zero(t, gl.Draws)
}

func TestInitCompileFailure(t *testing.T) {
	gl := gputest.New()
	gl.FailStage[gpu.FragmentStage] = "bad"
	r := New(gl, 100, 100, nil)

	err := r.Init(newSet(), 5)
	assert.ErrorIs(t, err, gpu.ErrCompile)
	assert.ErrorIs(t, r.Draw(newSet(), 5), ErrNotInitialized)
	assert.Zero(t, gl.Draws)
}

func TestInitMissingLocation(t *testing.T) {
	for _, name := range []string{"a_coords", "a_color", "u_width", "u_height", "u_pointsize"} {
		t.Run(name, func(t *testing.T) {
			gl := gputest.New()
			gl.MissingNames[name] = true
			r := New(gl, 100, 100, nil)

			err := r.Init(newSet(), 5)
			require.ErrorIs(t, err, ErrMissingLocation)
			assert.Contains(t, err.Error(), name)

			_, programs, buffers := gl.Live()
			assert.Zero(t, programs)
			assert.Zero(t, buffers)
		})
	}
}

func TestDrawReportsContextError(t *testing.T) {
	gl := gputest.New()
	r := New(gl, 100, 100, nil)
	require.NoError(t, r.Init(newSet(), 5))

	lost := errors.New("context lost")
	gl.PendingErr = lost
	assert.ErrorIs(t, r.Draw(newSet(), 5), lost)
}

func TestReinitReleasesPrevious(t *testing.T) {
	gl := gputest.New()
	r := New(gl, 100, 100, nil)
	require.NoError(t, r.Init(newSet(), 5))
	require.NoError(t, r.Init(newSet(), 20))

	_, programs, buffers := gl.Live()
	assert.Equal(t, 1, programs)
	assert.Equal(t, 2, buffers)
	assert.Equal(t, 2, gl.Count("linkProgram"))

	r.Release()
	r.Release()
	_, programs, buffers = gl.Live()
	assert.Zero(t, programs)
	assert.Zero(t, buffers)
}
