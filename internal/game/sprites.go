package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/particle-field/internal/particle"
)

// circleShader masks each quad to the disc inscribed in it. srcPos runs
// from (0,0) to (1,1) across the quad.
var circleShader = []byte(`//kage:unit pixels

package main

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	if distance(srcPos, vec2(0.5)) > 0.5 {
		discard()
	}
	return color
}
`)

// Quads per DrawTrianglesShader call, keeping indices within uint16.
const spriteBatch = 8192

// spriteRenderer draws particles as circle-masked quads into an offscreen
// image that Game.Draw puts on screen.
type spriteRenderer struct {
	width, height int

	shader   *ebiten.Shader
	target   *ebiten.Image
	vertices []ebiten.Vertex
	indices  []uint16
}

func newSpriteRenderer(width, height int) *spriteRenderer {
	return &spriteRenderer{width: width, height: height}
}

func (r *spriteRenderer) Init(set *particle.Set, pointSize float32) error {
	r.Release()

	shader, err := ebiten.NewShader(circleShader)
	if err != nil {
		return fmt.Errorf("compile sprite shader: %w", err)
	}
	r.shader = shader
	r.target = ebiten.NewImage(r.width, r.height)

	n := set.Len()
	r.vertices = make([]ebiten.Vertex, 4*n)
	for i := 0; i < n; i++ {
		cr, cg, cb := set.Color[3*i], set.Color[3*i+1], set.Color[3*i+2]
		for k := 0; k < 4; k++ {
			v := &r.vertices[4*i+k]
			v.SrcX = float32(k & 1)
			v.SrcY = float32(k >> 1)
			v.ColorR, v.ColorG, v.ColorB, v.ColorA = cr, cg, cb, 1
		}
	}

	batch := min(n, spriteBatch)
	r.indices = make([]uint16, 0, 6*batch)
	for i := 0; i < batch; i++ {
		base := uint16(4 * i)
		r.indices = append(r.indices, base, base+1, base+2, base+1, base+3, base+2)
	}
	return nil
}

func (r *spriteRenderer) Draw(set *particle.Set, pointSize float32) error {
	if r.shader == nil {
		return errNotReady
	}
	r.target.Fill(color.Black)

	for i := 0; i < set.Len(); i++ {
		x, y := set.Pos[2*i], set.Pos[2*i+1]
		for k := 0; k < 4; k++ {
			v := &r.vertices[4*i+k]
			v.DstX = x - pointSize + 2*pointSize*v.SrcX
			v.DstY = y - pointSize + 2*pointSize*v.SrcY
		}
	}

	op := &ebiten.DrawTrianglesShaderOptions{Blend: ebiten.BlendCopy}
	for start := 0; start < set.Len(); start += spriteBatch {
		count := min(set.Len()-start, spriteBatch)
		r.target.DrawTrianglesShader(r.vertices[4*start:4*(start+count)], r.indices[:6*count], r.shader, op)
	}
	return nil
}

func (r *spriteRenderer) Release() {
	if r.shader != nil {
		r.shader.Deallocate()
		r.shader = nil
	}
	if r.target != nil {
		r.target.Deallocate()
		r.target = nil
	}
}

// Image is the last drawn frame, or nil before the first Init.
func (r *spriteRenderer) Image() *ebiten.Image { return r.target }
