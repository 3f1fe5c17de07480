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


package workload

import (
	"github.com/jetsetilly/texcache/gpu"
	"github.com/jetsetilly/texcache/rsx/gcm"
	"github.com/jetsetilly/texcache/texcache"
)

// MemorySize is the amount of host memory used by the scene.
const MemorySize = 0x80000

// the textures placed in host memory at the start of the scene. every
// address is aligned to 64k so the layout of regions does not depend on
// the page size of the platform
func textures() []texcache.Descriptor {
	return []texcache.Descriptor{
		// linear ARGB with mipmaps
		{Address: 0x10000, Pitch: 256, Width: 64, Height: 64, MipCount: 3, Dimension: 2,
			Format: gcm.A8R8G8B8 | gcm.LN, Target: gpu.Target2D},

		// shares its base address with the texture above
		{Address: 0x10000, Pitch: 128, Width: 128, Height: 32, Dimension: 2,
			Format: gcm.B8 | gcm.LN, Target: gpu.Target2D},

		{Address: 0x20000, Width: 64, Height: 64, Dimension: 2,
			Format: gcm.CompressedDXT1 | gcm.LN, Target: gpu.Target2D},

		// swizzled
		{Address: 0x30000, Width: 32, Height: 32, Dimension: 2,
			Format: gcm.A8R8G8B8, Target: gpu.Target2D},

		{Address: 0x40000, Pitch: 256, Width: 64, Height: 32, Dimension: 2,
			Format: gcm.Depth24D8 | gcm.LN, Target: gpu.Target2D},

		// byte swapped
		{Address: 0x50000, Pitch: 128, Width: 64, Height: 64, Dimension: 2,
			Format: gcm.R5G6B5 | gcm.LN, Target: gpu.Target2D},
	}
}

// mosaic covers the end of the first texture and all of the DXT1 texture.
// adding it to the cache combines their regions.
func mosaic() texcache.Descriptor {
	return texcache.Descriptor{
		Address: 0x13000, Pitch: 1024, Width: 256, Height: 56, Dimension: 2,
		Format: gcm.A8R8G8B8 | gcm.LN, Target: gpu.Target2D,
	}
}

// the frame in which the mosaic is added
const mosaicFrame = 2

// target is rendered to every frame
func target() texcache.Descriptor {
	return texcache.Descriptor{
		Address: 0x60000, Pitch: 256, Width: 64, Height: 64, Dimension: 2,
		Format: gcm.A8R8G8B8 | gcm.LN, Target: gpu.Target2D,
	}
}

// inset is a rectangle inside the target. its local copy is made from the
// local copy of the target
func inset() texcache.Descriptor {
	return texcache.Descriptor{
		Address: 0x60000 + 16*256 + 16*4, Pitch: 256, Width: 32, Height: 32, Dimension: 2,
		Format: gcm.A8R8G8B8 | gcm.LN, Target: gpu.Target2D,
	}
}

// simulate a DMA transfer every dmaFrequency frames
const dmaFrequency = 4
