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

package sizeclass

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable(t *testing.T) {
	require.Len(t, sizes, Count)
	require.Equal(t, MaxBlockSize, sizes[Count-1])
	for i := 1; i < Count; i++ {
		require.Less(t, sizes[i-1], sizes[i], "class %d", i)
	}
	for c := 0; c < Count; c++ {
		// every block can hold a slot reference
		assert.GreaterOrEqual(t, Size(c), 8)
		assert.Equal(t, ChunkSize/Size(c), BlocksPerChunk(c))
	}
}

func TestForSmallestFit(t *testing.T) {
	prev := 0
	for n := 1; n <= MaxBlockSize; n++ {
		c := For(n)
		require.GreaterOrEqual(t, c, prev, "not monotonic at %d", n)
		require.GreaterOrEqual(t, Size(c), n, "size %d", n)
		if c > 0 {
			require.Less(t, Size(c-1), n, "size %d not in smallest class", n)
		}
		prev = c
	}
}

func TestFor(t *testing.T) {
	tests := []struct {
		size  int
		class int
	}{
		{1, 0},
		{16, 0},
		{17, 1},
		{100, 4},
		{128, 4},
		{129, 5},
		{513, 13},
		{MaxBlockSize, Count - 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.class, For(tt.size), "size=%d", tt.size)
	}
	assert.Equal(t, 128, Size(For(100)))
	assert.Equal(t, 128, BlocksPerChunk(For(100)))
}

func TestForOutOfRange(t *testing.T) {
	assert.Panics(t, func() { For(0) })
	assert.Panics(t, func() { For(-1) })
	assert.Panics(t, func() { For(MaxBlockSize + 1) })
}

func TestInitIdempotent(t *testing.T) {
	Init()
	before := lookup
	Init()
	assert.Equal(t, before, lookup)
}

func TestSizesCopy(t *testing.T) {
	ss := Sizes()
	ss[0] = 1
	assert.Equal(t, 16, Size(0))
}
