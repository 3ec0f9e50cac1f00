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

// giants tracks allocations larger than sizeclass.MaxBlockSize.
// Each one is registered by id with the buffer taken from the source.
// bytes is the capacity held, which may exceed the sizes asked for.
type giants struct {
	src    Source
	nextID uint64
	live   map[uint64][]byte
	bytes  int
}

func newGiants(src Source) giants {
	return giants{src: src, live: make(map[uint64][]byte)}
}

func (g *giants) alloc(size int) (uint64, []byte) {
	buf := g.src.Alloc(size)
	if len(buf) < size {
		panicf(ErrOutOfMemory, "giant allocation of %d bytes", size)
	}
	g.nextID++
	id := g.nextID
	g.live[id] = buf
	g.bytes += cap(buf)
	return id, buf[:size]
}

// free returns false if id is not a live giant allocation.
func (g *giants) free(id uint64) bool {
	buf, ok := g.live[id]
	if !ok {
		return false
	}
	delete(g.live, id)
	g.bytes -= cap(buf)
	g.src.Free(buf)
	return true
}

func (g *giants) has(id uint64) bool {
	_, ok := g.live[id]
	return ok
}

func (g *giants) count() uint32 {
	return uint32(len(g.live))
}

func (g *giants) releaseAll() {
	for id, buf := range g.live {
		g.src.Free(buf)
		delete(g.live, id)
	}
	g.bytes = 0
}
