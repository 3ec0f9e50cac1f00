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

package blockalloc

import "github.com/cloudwego/rigid/internal/sizeclass"

// chunk is one ChunkSize buffer committed to a single class.
type chunk struct {
	buf   []byte
	class int

	// used has one bit per block, only for checked allocators.
	used []uint64
}

func (c *chunk) stride() int {
	return sizeclass.Size(c.class)
}

func (c *chunk) mark(i int32) {
	c.used[i>>6] |= 1 << (uint(i) & 63)
}

func (c *chunk) unmark(i int32) {
	c.used[i>>6] &^= 1 << (uint(i) & 63)
}

func (c *chunk) marked(i int32) bool {
	return c.used[i>>6]&(1<<(uint(i)&63)) != 0
}

// newChunk takes a chunk from the source for class c, pushes all of its
// blocks but the first onto the class free list and returns the first.
func (a *Allocator) newChunk(c int) slot {
	if len(a.chunks) == cap(a.chunks) {
		chunks := make([]chunk, len(a.chunks), cap(a.chunks)+sizeclass.ChunkArrayIncrement)
		copy(chunks, a.chunks)
		a.chunks = chunks
	}

	buf := a.src.Alloc(sizeclass.ChunkSize)
	if len(buf) < sizeclass.ChunkSize {
		panicf(ErrOutOfMemory, "chunk of %d bytes for class %d", sizeclass.ChunkSize, c)
	}
	n := sizeclass.BlocksPerChunk(c)
	ck := chunk{buf: buf, class: c}
	if a.checked {
		ck.used = make([]uint64, (n+63)/64)
	}
	idx := int32(len(a.chunks))
	a.chunks = append(a.chunks, ck)
	a.classChunks[c]++

	// pushed backwards so that blocks are handed out in address order.
	for i := n - 1; i > 0; i-- {
		a.free.push(c, slot{chunk: idx, index: int32(i)})
	}
	return slot{chunk: idx, index: 0}
}

// releaseChunks gives every chunk back to the source.
func (a *Allocator) releaseChunks() {
	for i := range a.chunks {
		a.src.Free(a.chunks[i].buf)
	}
	a.chunks = nil
	a.classChunks = [sizeclass.Count]int{}
}

// bytes returns the memory of slot s trimmed to size bytes.
// The capacity is the block size so nothing past the block is reachable.
func (a *Allocator) bytes(s slot, size int) []byte {
	ck := &a.chunks[s.chunk]
	stride := ck.stride()
	off := int(s.index) * stride
	return ck.buf[off : off+size : off+stride]
}
