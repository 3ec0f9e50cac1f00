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

import (
	"github.com/bytedance/gopkg/lang/dirtmake"
	"github.com/bytedance/gopkg/lang/mcache"

	"github.com/cloudwego/rigid/internal/mempool"
)

// Source is the general purpose allocator behind an Allocator.
// It supplies whole chunks and giant allocations.
type Source interface {
	// Alloc returns a buffer with len(buf) == size, or nil if it cannot.
	// The content of the buffer may be anything.
	Alloc(size int) []byte

	// Free takes back a buffer returned by Alloc.
	Free(buf []byte)
}

var (
	// MCache pools buffers by power of two capacity with
	// github.com/bytedance/gopkg/lang/mcache. It's the default Source.
	MCache Source = mcacheSource{}

	// Dirt allocates unzeroed buffers from the Go heap and leaves freed
	// buffers to the GC.
	Dirt Source = dirtSource{}

	// Mempool pools footer-tagged buffers of 4KB and up. Its Free ignores
	// buffers it did not hand out. It's the default source of giant
	// allocations.
	Mempool Source = mempoolSource{}
)

type mcacheSource struct{}

func (mcacheSource) Alloc(size int) []byte { return mcache.Malloc(size) }

func (mcacheSource) Free(buf []byte) { mcache.Free(buf) }

type mempoolSource struct{}

func (mempoolSource) Alloc(size int) []byte { return mempool.Malloc(size) }

func (mempoolSource) Free(buf []byte) { mempool.Free(buf) }

type dirtSource struct{}

func (dirtSource) Alloc(size int) []byte { return dirtmake.Bytes(size, size) }

func (dirtSource) Free(buf []byte) {}

// LimitSource caps the number of bytes outstanding from another Source.
// Buffers are counted by capacity, which is what the Source holds.
// Alloc returns nil once the cap would be exceeded.
type LimitSource struct {
	src   Source
	limit int
	inuse int
}

// NewLimitSource returns a LimitSource over src allowing at most limit bytes.
func NewLimitSource(src Source, limit int) *LimitSource {
	return &LimitSource{src: src, limit: limit}
}

// Alloc implements Source.
func (s *LimitSource) Alloc(size int) []byte {
	if s.inuse+size > s.limit {
		return nil
	}
	buf := s.src.Alloc(size)
	if buf != nil {
		s.inuse += cap(buf)
	}
	return buf
}

// Free implements Source.
func (s *LimitSource) Free(buf []byte) {
	s.inuse -= cap(buf)
	s.src.Free(buf)
}

// InUse returns the bytes currently taken from the underlying Source.
func (s *LimitSource) InUse() int {
	return s.inuse
}
