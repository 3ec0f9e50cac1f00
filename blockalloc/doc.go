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

// Package blockalloc is a small-block allocator for objects that live for
// one or more simulation steps: contacts, proxies, shapes and the like.
//
// Requests up to sizeclass.MaxBlockSize bytes are rounded up to one of a
// fixed set of size classes and served from 16KB chunks, each chunk committed
// to a single class and carved into equal blocks. Freed blocks go on a
// per-class LIFO free list and are handed out again before any new chunk is
// created. Larger requests are "giant" allocations: they are taken directly
// from the underlying Source and counted so that callers can spot leaks.
//
// An Allocator is owned by a single goroutine, typically the world that is
// stepping. Run one Allocator per world to allocate in parallel.
//
// Tips for usage:
//   - Free must be given the exact size passed to Allocate. This is not
//     verified unless the allocator was created with Option.Checked.
//   - Block memory is not zeroed, and its content is undefined after Free.
//   - Clear drops every chunk at once. Giant allocations survive Clear and
//     must still be freed one by one.
package blockalloc
