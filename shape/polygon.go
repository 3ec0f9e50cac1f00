/*
 * Copyright 2025 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package shape holds collision shapes.
package shape

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cloudwego/rigid/blockalloc"
)

const (
	// MaxPolygonVertices is the most vertices a Polygon can have.
	MaxPolygonVertices = 8

	// PolygonRadius is the skin around polygons, two linear slops.
	PolygonRadius = 2 * 0.005

	// PolygonSize is the number of bytes a Polygon takes in a block.
	PolygonSize = 8 + 2*MaxPolygonVertices*8 + 4 + 4
)

// Vec2 is a 2D vector.
type Vec2 struct {
	X, Y float32
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Rot is a rotation by its sine and cosine.
type Rot struct {
	S, C float32
}

// NewRot returns the rotation by angle radians.
func NewRot(angle float32) Rot {
	s, c := math.Sincos(float64(angle))
	return Rot{S: float32(s), C: float32(c)}
}

// Apply rotates v.
func (q Rot) Apply(v Vec2) Vec2 {
	return Vec2{q.C*v.X - q.S*v.Y, q.S*v.X + q.C*v.Y}
}

// Polygon is a solid convex polygon. The interior is to the left of each edge.
type Polygon struct {
	Centroid Vec2
	Vertices [MaxPolygonVertices]Vec2
	Normals  [MaxPolygonVertices]Vec2
	Count    int
	Radius   float32
}

// NewPolygon returns an empty polygon with the default skin radius.
func NewPolygon() *Polygon {
	return &Polygon{Radius: PolygonRadius}
}

// ChildCount is always 1 for a polygon.
func (p *Polygon) ChildCount() int {
	return 1
}

// VertexCount returns the number of vertices in use.
func (p *Polygon) VertexCount() int {
	return p.Count
}

// Vertex returns the i-th vertex. It panics if i is out of range.
func (p *Polygon) Vertex(i int) Vec2 {
	if i < 0 || i >= p.Count {
		panic(fmt.Sprintf("shape: vertex %d out of range [0, %d)", i, p.Count))
	}
	return p.Vertices[i]
}

// SetCentroid sets the centroid without touching the vertices.
func (p *Polygon) SetCentroid(x, y float32) {
	p.Centroid = Vec2{x, y}
}

// SetAsBox makes p an axis-aligned box centered on the origin
// with half-width hx and half-height hy.
func (p *Polygon) SetAsBox(hx, hy float32) {
	p.Count = 4
	p.Vertices[0] = Vec2{-hx, -hy}
	p.Vertices[1] = Vec2{hx, -hy}
	p.Vertices[2] = Vec2{hx, hy}
	p.Vertices[3] = Vec2{-hx, hy}
	p.Normals[0] = Vec2{0, -1}
	p.Normals[1] = Vec2{1, 0}
	p.Normals[2] = Vec2{0, 1}
	p.Normals[3] = Vec2{-1, 0}
	p.Centroid = Vec2{}
}

// SetAsOrientedBox makes p a box with half-width hx and half-height hy,
// rotated by angle and moved to center.
func (p *Polygon) SetAsOrientedBox(hx, hy float32, center Vec2, angle float32) {
	p.SetAsBox(hx, hy)
	p.Centroid = center
	q := NewRot(angle)
	for i := 0; i < p.Count; i++ {
		p.Vertices[i] = q.Apply(p.Vertices[i]).Add(center)
		p.Normals[i] = q.Apply(p.Normals[i])
	}
}

// Handle is a polygon stored in a block of an allocator.
type Handle struct {
	a   *blockalloc.Allocator
	blk blockalloc.Block
}

// Clone copies p into a block of a. The copy lives until Destroy.
func (p *Polygon) Clone(a *blockalloc.Allocator) Handle {
	blk := a.Allocate(PolygonSize)
	p.encode(blk.Bytes())
	return Handle{a: a, blk: blk}
}

// Polygon decodes the polygon held by h.
func (h Handle) Polygon() *Polygon {
	p := &Polygon{}
	p.decode(h.blk.Bytes())
	return p
}

// Destroy frees the block behind h.
func (h Handle) Destroy() {
	h.a.Free(h.blk, PolygonSize)
}

func (p *Polygon) encode(b []byte) {
	off := putVec2(b, 0, p.Centroid)
	for i := 0; i < MaxPolygonVertices; i++ {
		off = putVec2(b, off, p.Vertices[i])
	}
	for i := 0; i < MaxPolygonVertices; i++ {
		off = putVec2(b, off, p.Normals[i])
	}
	binary.LittleEndian.PutUint32(b[off:], uint32(p.Count))
	binary.LittleEndian.PutUint32(b[off+4:], math.Float32bits(p.Radius))
}

func (p *Polygon) decode(b []byte) {
	var off int
	p.Centroid, off = getVec2(b, 0)
	for i := 0; i < MaxPolygonVertices; i++ {
		p.Vertices[i], off = getVec2(b, off)
	}
	for i := 0; i < MaxPolygonVertices; i++ {
		p.Normals[i], off = getVec2(b, off)
	}
	p.Count = int(binary.LittleEndian.Uint32(b[off:]))
	p.Radius = math.Float32frombits(binary.LittleEndian.Uint32(b[off+4:]))
}

func putVec2(b []byte, off int, v Vec2) int {
	binary.LittleEndian.PutUint32(b[off:], math.Float32bits(v.X))
	binary.LittleEndian.PutUint32(b[off+4:], math.Float32bits(v.Y))
	return off + 8
}

func getVec2(b []byte, off int) (Vec2, int) {
	v := Vec2{
		X: math.Float32frombits(binary.LittleEndian.Uint32(b[off:])),
		Y: math.Float32frombits(binary.LittleEndian.Uint32(b[off+4:])),
	}
	return v, off + 8
}
