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

// Package sizeclass maps small allocation sizes to the fixed block sizes
// served by the block allocator.
//
// The table is process-wide and immutable once built. Every allocator
// instance reads it without synchronization.
package sizeclass

import (
	"fmt"
	"sync"
)

const (
	// ChunkSize is the size in bytes of every chunk carved into blocks.
	ChunkSize = 16 * 1024

	// MaxBlockSize is the largest request served from chunks.
	// Anything larger goes to the giant path.
	MaxBlockSize = 640

	// ChunkArrayIncrement is the growth step of the chunk table.
	ChunkArrayIncrement = 128

	// Count is the number of size classes.
	Count = 14
)

// sizes must be ascending and end with MaxBlockSize.
var sizes = [Count]int{
	16,  // 0
	32,  // 1
	64,  // 2
	96,  // 3
	128, // 4
	160, // 5
	192, // 6
	224, // 7
	256, // 8
	320, // 9
	384, // 10
	448, // 11
	512, // 12
	640, // 13
}

var (
	initOnce sync.Once

	// lookup[n] is the class of a request of n bytes. lookup[0] is unused.
	lookup [MaxBlockSize + 1]uint8
)

// Init builds the size to class lookup. It is safe to call more than once;
// only the first call does the work. For calls it lazily.
func Init() {
	initOnce.Do(build)
}

func build() {
	c := 0
	for n := 1; n <= MaxBlockSize; n++ {
		if n > sizes[c] {
			c++
		}
		lookup[n] = uint8(c)
	}
}

// For returns the class serving a request of size bytes.
// It panics unless 1 <= size <= MaxBlockSize.
func For(size int) int {
	if size <= 0 || size > MaxBlockSize {
		panic(fmt.Sprintf("sizeclass: size %d out of range [1, %d]", size, MaxBlockSize))
	}
	Init()
	return int(lookup[size])
}

// Size returns the block size of class c.
func Size(c int) int {
	return sizes[c]
}

// BlocksPerChunk returns how many blocks of class c one chunk holds.
func BlocksPerChunk(c int) int {
	return ChunkSize / sizes[c]
}

// Sizes returns a copy of the class table.
func Sizes() []int {
	ret := make([]int, Count)
	copy(ret, sizes[:])
	return ret
}
