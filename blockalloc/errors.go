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
	"errors"
	"fmt"
)

var (
	// ErrOutOfMemory is the panic value when the Source cannot supply a chunk
	// or a giant allocation. There is no recovery path for a step that cannot
	// allocate.
	ErrOutOfMemory = errors.New("blockalloc: out of memory")

	// ErrInvalidFree is the panic value for a Free that breaks the caller
	// contract. Only checked allocators detect it, apart from a non-positive
	// size which is always rejected.
	ErrInvalidFree = errors.New("blockalloc: invalid free")
)

func panicf(err error, format string, args ...interface{}) {
	panic(fmt.Errorf("%w: "+format, append([]interface{}{err}, args...)...))
}
