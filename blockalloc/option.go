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

// Option configures an Allocator.
type Option struct {
	// Source supplies chunks, and giant allocations if GiantSource is nil.
	// MCache is used if it's nil.
	Source Source

	// GiantSource supplies allocations larger than MaxBlockSize.
	// Source is used if it's nil.
	GiantSource Source

	// Checked turns on validation of Free: wrong size, double free,
	// handles from another allocator or from before a Clear.
	// Violations panic with ErrInvalidFree.
	// It costs a bitmap per chunk and a few branches per call, use it in tests.
	Checked bool
}

// DefaultOption returns the default values of Option.
func DefaultOption() *Option {
	return &Option{
		Source:      MCache,
		GiantSource: Mempool,
	}
}
