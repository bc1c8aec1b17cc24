// Package particle holds the bouncing point field: three parallel buffers
// for position, velocity and color, and the integrator that advances them.
package particle

import (
	"math"

	"golang.org/x/exp/rand"

	"github.com/iburimskiy/particle-field/internal/config"
)

// Source is the random stream particles are drawn from.
type Source interface {
	Float64() float64
}

// NewSource returns a deterministic source for seed.
func NewSource(seed uint64) Source {
	return rand.New(rand.NewSource(seed))
}

// Set is N particles laid out in parallel buffers. Particle i lives at
// Pos[2i:2i+2], Vel[2i:2i+2] and Color[3i:3i+3].
type Set struct {
	Pos   []float32
	Vel   []float32
	Color []float32
}

// New places n particles uniformly inside a width x height viewport, each
// with a random heading, a speed in [1,4) pixels per frame and a random color.
func New(n int, width, height float32, src Source) *Set {
	s := &Set{
		Pos:   make([]float32, 2*n),
		Vel:   make([]float32, 2*n),
		Color: make([]float32, 3*n),
	}
	for i := 0; i < n; i++ {
		s.Pos[2*i] = float32(src.Float64()) * width
		s.Pos[2*i+1] = float32(src.Float64()) * height

		angle := 2 * math.Pi * src.Float64()
		speed := config.MinSpeed + (config.MaxSpeed-config.MinSpeed)*src.Float64()
		s.Vel[2*i] = float32(speed * math.Cos(angle))
		s.Vel[2*i+1] = float32(speed * math.Sin(angle))

		s.Color[3*i] = float32(src.Float64())
		s.Color[3*i+1] = float32(src.Float64())
		s.Color[3*i+2] = float32(src.Float64())
	}
	return s
}

func (s *Set) Len() int { return len(s.Pos) / 2 }

// At returns the position and velocity of particle i.
func (s *Set) At(i int) (x, y, vx, vy float32) {
	return s.Pos[2*i], s.Pos[2*i+1], s.Vel[2*i], s.Vel[2*i+1]
}

// Place overwrites the position and velocity of particle i.
func (s *Set) Place(i int, x, y, vx, vy float32) {
	s.Pos[2*i], s.Pos[2*i+1] = x, y
	s.Vel[2*i], s.Vel[2*i+1] = vx, vy
}
