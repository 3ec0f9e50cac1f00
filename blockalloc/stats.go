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

// ClassStats describes one size class.
type ClassStats struct {
	BlockSize int
	Chunks    int
	Blocks    int // blocks carved out of Chunks
	Free      int // blocks on the free list
}

// InUse returns the number of blocks handed out and not freed.
func (s ClassStats) InUse() int {
	return s.Blocks - s.Free
}

// Stats is a snapshot of an Allocator.
type Stats struct {
	Chunks     int
	ChunkBytes int
	Classes    [sizeclass.Count]ClassStats

	GiantAllocations uint32
	GiantBytes       int
}

// Utilization returns the share of carved blocks that are in use, in [0, 1].
func (s Stats) Utilization() float64 {
	blocks, inuse := 0, 0
	for _, cs := range s.Classes {
		blocks += cs.Blocks
		inuse += cs.InUse()
	}
	if blocks == 0 {
		return 0
	}
	return float64(inuse) / float64(blocks)
}

// Stats returns a snapshot of a's memory state.
func (a *Allocator) Stats() Stats {
	s := Stats{
		Chunks:           len(a.chunks),
		ChunkBytes:       len(a.chunks) * sizeclass.ChunkSize,
		GiantAllocations: a.giants.count(),
		GiantBytes:       a.giants.bytes,
	}
	for c := range s.Classes {
		n := a.classChunks[c]
		s.Classes[c] = ClassStats{
			BlockSize: sizeclass.Size(c),
			Chunks:    n,
			Blocks:    n * sizeclass.BlocksPerChunk(c),
			Free:      a.free.len(c),
		}
	}
	return s
}
