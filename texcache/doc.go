// This file is part of Texcache.
//
// Texcache is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Texcache is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Texcache.  If not, see <https://www.gnu.org/licenses/>.

// Package texcache keeps local copies of textures coherent with the host
// memory they were read from.
//
// Host memory belongs to the emulated CPU. The local copy is a texture on
// the GPU device. Either side can be changed independently: the CPU writes
// to memory and the GPU renders into textures. The cache tracks which copy
// is fresh for every Surface and transfers data only when the stale side is
// about to be used.
//
// Changes made by the CPU are detected with page protection. Surfaces are
// grouped into page aligned Regions and each Region applies the protection
// needed by its surfaces:
//
//	LocalOnly	reads and writes are trapped
//	Both		writes are trapped
//	HostOnly	nothing is trapped
//
// A trapped access is delivered to HandleAccessViolation() before the access
// completes, so the cache always sees memory as it was before a write.
//
// Entry() is the way into the cache. It takes a Descriptor from the command
// stream and returns a Surface whose local copy is ready for drawing:
//
//	surf, err := cache.Entry(desc, texcache.HostToLocal)
//	if err != nil {
//		return err
//	}
//	bind(surf.Handle())
//
// Regions that overlap are combined. A region never shrinks until it is
// cleared.
//
// The cache is not safe for concurrent use. Every method, including the
// access violation handler, must be called from the goroutine that processes
// the command stream.
package texcache
