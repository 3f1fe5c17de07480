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

// Package gpu is the abstraction over the device that holds local copies of
// textures. The texture cache talks only to the Device and Texture
// interfaces. Package gl32 implements them with OpenGL and package software
// implements them in memory.
//
// All pixel data crossing the interface is tightly packed except where the
// PixelStore says otherwise. The RowLength field gives the distance between
// rows in pixels and SwapBytes reverses the bytes of each element, which is
// how the host's big-endian data reaches a little-endian device.
package gpu
