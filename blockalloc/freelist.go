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

// slot locates a block: the chunk it lives in and its position in the chunk.
type slot struct {
	chunk int32
	index int32
}

// freeLists holds a LIFO stack of free slots per class.
// Slots are never checked against the class they are pushed to.
type freeLists [sizeclass.Count][]slot

func (l *freeLists) push(c int, s slot) {
	l[c] = append(l[c], s)
}

func (l *freeLists) pop(c int) (slot, bool) {
	n := len(l[c]) - 1
	if n < 0 {
		return slot{}, false
	}
	s := l[c][n]
	l[c] = l[c][:n]
	return s, true
}

func (l *freeLists) len(c int) int {
	return len(l[c])
}

func (l *freeLists) reset() {
	for c := range l {
		l[c] = l[c][:0]
	}
}
