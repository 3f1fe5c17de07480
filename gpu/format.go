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

package gpu

import "fmt"

// Format is the layout of texels in a local texture.
type Format int

// List of valid Format values.
const (
	FormatNone Format = iota
	R8
	RG8
	RGBA4
	RGB5A1
	A1RGB5
	R5G6B5
	BGRA8
	R16
	RG16
	RG16F
	RGBA16F
	RGBA32F
	R32F
	Depth16
	Depth24Stencil8
	DXT1
	DXT1A
	DXT3
	DXT5
)

func (f Format) String() string {
	switch f {
	case FormatNone:
		return "none"
	case R8:
		return "R8"
	case RG8:
		return "RG8"
	case RGBA4:
		return "RGBA4"
	case RGB5A1:
		return "RGB5A1"
	case A1RGB5:
		return "A1RGB5"
	case R5G6B5:
		return "R5G6B5"
	case BGRA8:
		return "BGRA8"
	case R16:
		return "R16"
	case RG16:
		return "RG16"
	case RG16F:
		return "RG16F"
	case RGBA16F:
		return "RGBA16F"
	case RGBA32F:
		return "RGBA32F"
	case R32F:
		return "R32F"
	case Depth16:
		return "Depth16"
	case Depth24Stencil8:
		return "Depth24Stencil8"
	case DXT1:
		return "DXT1"
	case DXT1A:
		return "DXT1A"
	case DXT3:
		return "DXT3"
	case DXT5:
		return "DXT5"
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// Compressed returns true for the block compressed formats.
func (f Format) Compressed() bool {
	return BlockSize(f) != 0
}

// IsDepth returns true for formats with a depth component.
func (f Format) IsDepth() bool {
	return f == Depth16 || f == Depth24Stencil8
}

// BlockSize returns the number of bytes in host memory for one 4x4 block of
// a compressed format. Uncompressed formats return zero.
//
// DXT1 with alpha is given a 16 byte block in host memory. The device
// stores it in 8 byte blocks and the packed blocks occupy the first half of
// the host data. See StorageBlockSize().
func BlockSize(f Format) int {
	switch f {
	case DXT1:
		return 8
	case DXT1A, DXT3, DXT5:
		return 16
	}
	return 0
}

// StorageBlockSize returns the number of bytes the device uses for one 4x4
// block of a compressed format. Uncompressed formats return zero.
func StorageBlockSize(f Format) int {
	switch f {
	case DXT1, DXT1A:
		return 8
	case DXT3, DXT5:
		return 16
	}
	return 0
}

func blocks(width int, height int) int {
	return ((width + 3) / 4) * ((height + 3) / 4)
}

// CompressedSize returns the number of bytes of host memory needed for one
// image of the compressed format. Partial blocks at the right and bottom
// edges count as whole blocks.
func CompressedSize(f Format, width int, height int) int {
	return blocks(width, height) * BlockSize(f)
}

// StorageSize returns the number of bytes the device needs for one image of
// the compressed format.
func StorageSize(f Format, width int, height int) int {
	return blocks(width, height) * StorageBlockSize(f)
}

// ElementSize returns the size in bytes of the unit that is byte swapped
// when a PixelStore asks for it. Packed formats swap the whole pixel and
// component formats swap each component.
func ElementSize(f Format) int {
	switch f {
	case R8, RG8:
		return 1
	case RGBA4, RGB5A1, A1RGB5, R5G6B5, Depth16, R16, RG16, RG16F, RGBA16F:
		return 2
	case BGRA8, Depth24Stencil8, RGBA32F, R32F:
		return 4
	}
	return 1
}

// PixelSize returns the number of bytes per pixel of an uncompressed format.
// Compressed formats return zero.
func PixelSize(f Format) int {
	switch f {
	case R8:
		return 1
	case RG8, RGBA4, RGB5A1, A1RGB5, R5G6B5, R16, Depth16:
		return 2
	case BGRA8, RG16, RG16F, R32F, Depth24Stencil8:
		return 4
	case RGBA16F:
		return 8
	case RGBA32F:
		return 16
	}
	return 0
}
