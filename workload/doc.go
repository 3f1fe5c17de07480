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


// Package workload drives a texture cache the way a command stream would. A
// Scene places a set of textures in host memory and for every frame:
//
//  1. writes to the textures through the protected view of host memory
//  2. requests a local copy of each texture
//  3. renders into a target texture
//  4. reads every texture back through the protected view
//
// The bytes read back must match the bytes that were written. A mismatch is
// reported as a VerificationFailure error.
//
// Some frames also simulate a DMA transfer, which is a write to host memory
// that is not trapped, and frame two introduces a texture that causes two
// regions to be combined.
package workload
