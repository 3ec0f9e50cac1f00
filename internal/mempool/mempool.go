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

// Package mempool pools large buffers by power of two capacity.
//
// Each buffer carries an 8 byte footer past its usable length, holding a
// magic number and the index of its pool. Free checks the footer, so it
// ignores buffers that were not returned by Malloc or were already freed.
package mempool

import (
	"encoding/binary"
	"math/bits"
	"sync"

	"github.com/bytedance/gopkg/lang/dirtmake"
)

type memPool struct {
	sync.Pool

	Size int
}

var pools []*memPool

const (
	minMemPoolSize = 4 << 10  // 4KB, smaller requests take a 4KB buffer
	maxMemPoolSize = 64 << 30 // 64GB, Malloc returns nil above it
)

const (
	// footer is a uint64 of magic(58 bits) and pool index(6 bits), stored
	// in the last footerLen bytes of the buffer's capacity.
	footerLen = 8

	footerMagicMask = uint64(0xFFFFFFFFFFFFFFC0)
	footerIndexMask = uint64(0x000000000000003F)
	footerMagic     = uint64(0xB10CA11C0DEB10C0) // low 6 bits are for the index
)

// bits2idx maps bits.Len of a size to its pool index.
var bits2idx [64]int

func init() {
	i := 0
	for sz := minMemPoolSize; sz <= maxMemPoolSize; sz <<= 1 {
		p := &memPool{Size: sz}
		p.New = func() interface{} {
			b := dirtmake.Bytes(p.Size, p.Size)
			return &b
		}
		pools = append(pools, p)
		bits2idx[bits.Len(uint(sz))] = i
		i++
	}
}

// poolIndex returns the index of the smallest pool holding sz bytes.
func poolIndex(sz int) int {
	if sz <= minMemPoolSize {
		return 0
	}
	i := bits2idx[bits.Len(uint(sz))]
	if sz&(sz-1) == 0 {
		return i
	}
	return i + 1
}

// Malloc returns a buffer with len size. The content is not zeroed.
// It returns nil if size <= 0 or the size is beyond the largest pool.
// Do not grow the buffer past its len, the footer lives right after it.
func Malloc(size int) []byte {
	if size <= 0 || size > maxMemPoolSize-footerLen {
		return nil
	}
	i := poolIndex(size + footerLen)
	buf := *(pools[i].Get().(*[]byte))
	setFooter(buf, footerMagic|uint64(i))
	return buf[:size]
}

// Free puts buf back to its pool. It returns false and does nothing if buf
// was not returned by Malloc or has been freed already.
func Free(buf []byte) bool {
	c := cap(buf)
	if c < minMemPoolSize || c&(c-1) != 0 || c-len(buf) < footerLen {
		return false
	}
	buf = buf[:c]
	footer := getFooter(buf)
	if footer&footerMagicMask != footerMagic {
		return false
	}
	i := int(footer & footerIndexMask)
	if i >= len(pools) || pools[i].Size != c {
		return false
	}
	// a cleared footer makes a second Free fail the magic check
	setFooter(buf, 0)
	pools[i].Put(&buf)
	return true
}

// Owns reports whether buf is a live buffer returned by Malloc.
func Owns(buf []byte) bool {
	c := cap(buf)
	if c < minMemPoolSize || c&(c-1) != 0 || c-len(buf) < footerLen {
		return false
	}
	return getFooter(buf[:c])&footerMagicMask == footerMagic
}

func setFooter(buf []byte, v uint64) {
	binary.LittleEndian.PutUint64(buf[len(buf)-footerLen:], v)
}

func getFooter(buf []byte) uint64 {
	return binary.LittleEndian.Uint64(buf[len(buf)-footerLen:])
}
