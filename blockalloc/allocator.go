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

// MaxBlockSize is the largest size served from chunks.
// Larger requests are giant allocations.
const MaxBlockSize = sizeclass.MaxBlockSize

// Block is a handle to memory returned by Allocator.Allocate.
// The zero Block is the empty handle.
type Block struct {
	buf   []byte
	owner *Allocator
	at    slot
	giant uint64 // id of a giant allocation, 0 for chunk blocks
	epoch uint32
}

// Bytes returns the memory of b. len is the size passed to Allocate;
// for chunk blocks cap is the class block size.
func (b Block) Bytes() []byte {
	return b.buf
}

// Len returns the size passed to Allocate.
func (b Block) Len() int {
	return len(b.buf)
}

// IsNil reports whether b is the empty handle.
func (b Block) IsNil() bool {
	return b.owner == nil
}

// Allocator serves fixed-size blocks out of chunks and keeps a free list per
// size class. It's not safe for concurrent use.
// The zero value is ready to use with DefaultOption().
type Allocator struct {
	src     Source
	checked bool

	// epoch is bumped by Clear so checked allocators can tell stale handles.
	epoch uint32

	chunks      []chunk
	classChunks [sizeclass.Count]int
	free        freeLists

	giants giants
}

// New creates an Allocator. A nil o means DefaultOption().
func New(o *Option) *Allocator {
	a := &Allocator{}
	a.setup(o)
	return a
}

func (a *Allocator) setup(o *Option) {
	if o == nil {
		o = DefaultOption()
	}
	src := o.Source
	if src == nil {
		src = MCache
	}
	giantSrc := o.GiantSource
	if giantSrc == nil {
		giantSrc = src
	}
	sizeclass.Init()
	a.src = src
	a.checked = o.Checked
	a.giants = newGiants(giantSrc)
}

// Allocate returns a block of size bytes.
// A size <= 0 returns the empty Block and changes nothing.
// It panics with ErrOutOfMemory if the Source runs dry.
func (a *Allocator) Allocate(size int) Block {
	if size <= 0 {
		return Block{}
	}
	if a.src == nil {
		a.setup(nil)
	}
	if size > MaxBlockSize {
		id, buf := a.giants.alloc(size)
		return Block{buf: buf, owner: a, giant: id, epoch: a.epoch}
	}

	c := sizeclass.For(size)
	s, ok := a.free.pop(c)
	if !ok {
		s = a.newChunk(c)
	}
	if a.checked {
		a.chunks[s.chunk].mark(s.index)
	}
	return Block{buf: a.bytes(s, size), owner: a, at: s, epoch: a.epoch}
}

// Free gives b back. size must be the one passed to Allocate for b.
// Freeing the empty Block is a no-op.
func (a *Allocator) Free(b Block, size int) {
	if b.IsNil() {
		return
	}
	if size <= 0 {
		panicf(ErrInvalidFree, "size %d", size)
	}
	if a.checked {
		a.check(b, size)
	}
	if size > MaxBlockSize {
		a.giants.free(b.giant)
		return
	}
	c := sizeclass.For(size)
	if a.checked {
		a.chunks[b.at.chunk].unmark(b.at.index)
	}
	a.free.push(c, b.at)
}

func (a *Allocator) check(b Block, size int) {
	switch {
	case b.owner != a:
		panicf(ErrInvalidFree, "block belongs to another allocator")
	case len(b.buf) != size:
		panicf(ErrInvalidFree, "size %d, allocated with %d", size, len(b.buf))
	case size > MaxBlockSize:
		if !a.giants.has(b.giant) {
			panicf(ErrInvalidFree, "giant block of %d bytes is not live", size)
		}
	case b.epoch != a.epoch:
		// giants survive Clear, chunk blocks don't
		panicf(ErrInvalidFree, "block allocated before Clear")
	default:
		ck := &a.chunks[b.at.chunk]
		if ck.class != sizeclass.For(size) {
			panicf(ErrInvalidFree, "size %d does not match block size %d", size, ck.stride())
		}
		if !ck.marked(b.at.index) {
			panicf(ErrInvalidFree, "block of %d bytes freed twice", size)
		}
	}
}

// Clear gives every chunk back to the Source and empties the free lists.
// All blocks served from chunks become invalid. Giant allocations are kept.
func (a *Allocator) Clear() {
	a.releaseChunks()
	a.free.reset()
	a.epoch++
}

// Release clears a and frees every giant allocation still live.
// a can be used again afterwards.
func (a *Allocator) Release() {
	a.Clear()
	a.giants.releaseAll()
}

// NumGiantAllocations returns the number of live allocations larger than
// MaxBlockSize.
func (a *Allocator) NumGiantAllocations() uint32 {
	return a.giants.count()
}
