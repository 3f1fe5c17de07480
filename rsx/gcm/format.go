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

// Package gcm maps the texture format codes found in the command stream to
// the layout of the pixel data in host memory and to the format of the local
// texture that will hold it.
package gcm

import (
	"fmt"

	"github.com/jetsetilly/texcache/gpu"
)

// Code is a texture format code as found in the command stream. The low
// bits of a code may be modified by LN and UN.
type Code uint8

// List of texture format codes.
const (
	B8                 Code = 0x81
	A1R5G5B5           Code = 0x82
	A4R4G4B4           Code = 0x83
	R5G6B5             Code = 0x84
	A8R8G8B8           Code = 0x85
	CompressedDXT1     Code = 0x86
	CompressedDXT23    Code = 0x87
	CompressedDXT45    Code = 0x88
	G8B8               Code = 0x8b
	R6G5B5             Code = 0x8f
	Depth24D8          Code = 0x90
	Depth24D8Float     Code = 0x91
	Depth16            Code = 0x92
	Depth16Float       Code = 0x93
	X16                Code = 0x94
	Y16X16             Code = 0x95
	R5G5B5A1           Code = 0x97
	W16Z16Y16X16Float  Code = 0x9a
	W32Z32Y32X32Float  Code = 0x9b
	X32Float           Code = 0x9c
	D1R5G5B5           Code = 0x9d
	D8R8G8B8           Code = 0x9e
	Y16X16Float        Code = 0x9f
)

// Modifier bits.
const (
	// pixel data is linear. without this bit the data is swizzled
	LN Code = 0x20

	// texture coordinates are unnormalised
	UN Code = 0x40
)

// Base returns the code with the modifier bits removed.
func (c Code) Base() Code {
	return c &^ (LN | UN)
}

// Swizzled returns true if pixel data for the code is in swizzled order.
func (c Code) Swizzled() bool {
	return c&LN == 0
}

func (c Code) String() string {
	var s string
	switch c.Base() {
	case B8:
		s = "B8"
	case A1R5G5B5:
		s = "A1R5G5B5"
	case A4R4G4B4:
		s = "A4R4G4B4"
	case R5G6B5:
		s = "R5G6B5"
	case A8R8G8B8:
		s = "A8R8G8B8"
	case CompressedDXT1:
		s = "DXT1"
	case CompressedDXT23:
		s = "DXT23"
	case CompressedDXT45:
		s = "DXT45"
	case G8B8:
		s = "G8B8"
	case R6G5B5:
		s = "R6G5B5"
	case Depth24D8:
		s = "DEPTH24_D8"
	case Depth24D8Float:
		s = "DEPTH24_D8_FLOAT"
	case Depth16:
		s = "DEPTH16"
	case Depth16Float:
		s = "DEPTH16_FLOAT"
	case X16:
		s = "X16"
	case Y16X16:
		s = "Y16_X16"
	case R5G5B5A1:
		s = "R5G5B5A1"
	case W16Z16Y16X16Float:
		s = "W16_Z16_Y16_X16_FLOAT"
	case W32Z32Y32X32Float:
		s = "W32_Z32_Y32_X32_FLOAT"
	case X32Float:
		s = "X32_FLOAT"
	case D1R5G5B5:
		s = "D1R5G5B5"
	case D8R8G8B8:
		s = "D8R8G8B8"
	case Y16X16Float:
		s = "Y16_X16_FLOAT"
	default:
		return fmt.Sprintf("0x%02x", uint8(c))
	}
	if !c.Swizzled() {
		s = fmt.Sprintf("%s|LN", s)
	}
	if c&UN == UN {
		s = fmt.Sprintf("%s|UN", s)
	}
	return s
}

// Layout is how a texture of a given format code is stored in host memory
// and which format holds it locally.
type Layout struct {
	Format gpu.Format

	// bytes per pixel in host memory. zero for compressed formats
	BytesPerPixel int

	// host data must have its elements byte swapped on the way to and from
	// the device
	SwapBytes bool

	// the format has a depth component. depth data has its own byte order
	// fix up and is not affected by SwapBytes
	Depth bool

	Compressed bool
}

// Mapper is the pixel format mapping collaborator of the texture cache. The
// zero value is ready to use.
type Mapper struct {
	// DXT1 textures are treated as having punch through alpha. The host
	// memory of these textures is sized with a 16 byte block
	DXT1Alpha bool
}

// Lookup returns the layout for the format code. Modifier bits are ignored.
// Codes that cannot be represented locally result in an error.
func (m Mapper) Lookup(c Code) (Layout, error) {
	switch c.Base() {
	case B8:
		return Layout{Format: gpu.R8, BytesPerPixel: 1}, nil
	case A1R5G5B5:
		return Layout{Format: gpu.A1RGB5, BytesPerPixel: 2, SwapBytes: true}, nil
	case A4R4G4B4:
		return Layout{Format: gpu.RGBA4, BytesPerPixel: 2, SwapBytes: true}, nil
	case R5G6B5:
		return Layout{Format: gpu.R5G6B5, BytesPerPixel: 2, SwapBytes: true}, nil
	case A8R8G8B8, D8R8G8B8:
		return Layout{Format: gpu.BGRA8, BytesPerPixel: 4}, nil
	case CompressedDXT1:
		if m.DXT1Alpha {
			return Layout{Format: gpu.DXT1A, Compressed: true}, nil
		}
		return Layout{Format: gpu.DXT1, Compressed: true}, nil
	case CompressedDXT23:
		return Layout{Format: gpu.DXT3, Compressed: true}, nil
	case CompressedDXT45:
		return Layout{Format: gpu.DXT5, Compressed: true}, nil
	case G8B8:
		return Layout{Format: gpu.RG8, BytesPerPixel: 2}, nil
	case Depth24D8:
		return Layout{Format: gpu.Depth24Stencil8, BytesPerPixel: 4, Depth: true}, nil
	case Depth16:
		return Layout{Format: gpu.Depth16, BytesPerPixel: 2, Depth: true}, nil
	case X16:
		return Layout{Format: gpu.R16, BytesPerPixel: 2, SwapBytes: true}, nil
	case Y16X16:
		return Layout{Format: gpu.RG16, BytesPerPixel: 4, SwapBytes: true}, nil
	case Y16X16Float:
		return Layout{Format: gpu.RG16F, BytesPerPixel: 4, SwapBytes: true}, nil
	case R5G5B5A1:
		return Layout{Format: gpu.RGB5A1, BytesPerPixel: 2, SwapBytes: true}, nil
	case D1R5G5B5:
		return Layout{Format: gpu.A1RGB5, BytesPerPixel: 2, SwapBytes: true}, nil
	case W16Z16Y16X16Float:
		return Layout{Format: gpu.RGBA16F, BytesPerPixel: 8, SwapBytes: true}, nil
	case W32Z32Y32X32Float:
		return Layout{Format: gpu.RGBA32F, BytesPerPixel: 16, SwapBytes: true}, nil
	case X32Float:
		return Layout{Format: gpu.R32F, BytesPerPixel: 4, SwapBytes: true}, nil
	}
	return Layout{}, fmt.Errorf("gcm: no local format for %v", c)
}
