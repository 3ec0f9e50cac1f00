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

package shape

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudwego/rigid/blockalloc"
	"github.com/cloudwego/rigid/internal/sizeclass"
)

func TestSetAsBox(t *testing.T) {
	p := NewPolygon()
	p.SetAsBox(2, 1)
	require.Equal(t, 4, p.VertexCount())
	assert.Equal(t, 1, p.ChildCount())
	assert.Equal(t, Vec2{-2, -1}, p.Vertex(0))
	assert.Equal(t, Vec2{2, 1}, p.Vertex(2))
	assert.Equal(t, Vec2{}, p.Centroid)
	assert.Equal(t, float32(PolygonRadius), p.Radius)

	// normals are outward, to the right of each edge
	for i := 0; i < p.Count; i++ {
		v1, v2 := p.Vertices[i], p.Vertices[(i+1)%p.Count]
		e := Vec2{v2.X - v1.X, v2.Y - v1.Y}
		n := p.Normals[i]
		assert.Equal(t, float32(0), e.X*n.X+e.Y*n.Y, "edge %d", i)
		assert.Less(t, e.X*n.Y-e.Y*n.X, float32(0), "edge %d", i)
	}
}

func TestSetAsOrientedBox(t *testing.T) {
	p := NewPolygon()
	p.SetAsOrientedBox(2, 1, Vec2{10, 5}, math.Pi/2)
	assert.Equal(t, Vec2{10, 5}, p.Centroid)

	// (-2, -1) turned a quarter is (1, -2)
	v := p.Vertex(0)
	assert.InDelta(t, 11, v.X, 1e-5)
	assert.InDelta(t, 3, v.Y, 1e-5)
	n := p.Normals[0]
	assert.InDelta(t, 1, n.X, 1e-5)
	assert.InDelta(t, 0, n.Y, 1e-5)
}

func TestVertexOutOfRange(t *testing.T) {
	p := NewPolygon()
	p.SetAsBox(1, 1)
	assert.Panics(t, func() { p.Vertex(4) })
	assert.Panics(t, func() { p.Vertex(-1) })
}

func TestCloneDestroy(t *testing.T) {
	a := blockalloc.New(&blockalloc.Option{Checked: true})
	p := NewPolygon()
	p.SetAsOrientedBox(0.5, 3, Vec2{1, 2}, 0.3)

	h := p.Clone(a)
	assert.Equal(t, p, h.Polygon())

	hs := make([]Handle, 0, 200)
	for i := 0; i < 200; i++ {
		q := NewPolygon()
		q.SetAsBox(float32(i+1), 1)
		hs = append(hs, q.Clone(a))
	}
	for i, h := range hs {
		require.Equal(t, Vec2{float32(i + 1), 1}, h.Polygon().Vertex(2))
	}
	assert.Equal(t, p, h.Polygon())

	for _, h := range hs {
		h.Destroy()
	}
	h.Destroy()
	assert.Equal(t, 0, a.Stats().Classes[sizeclass.For(PolygonSize)].InUse())
	assert.Equal(t, uint32(0), a.NumGiantAllocations())
}
