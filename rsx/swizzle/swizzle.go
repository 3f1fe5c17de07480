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

// Package swizzle converts between linear pixel order and the swizzled
// order used for textures in video memory.
//
// In swizzled order the offset of a pixel is formed by interleaving the bits
// of its coordinates, x first, then y, then z. A coordinate stops
// contributing bits once all the bits needed to represent its dimension have
// been used, so dimensions need not be equal. Dimensions that are not a
// power of two are treated as if they were rounded up to one.
package swizzle

import (
	"fmt"
	"math/bits"
)

// log2 returns the number of bits needed to address n elements.
func log2(n int) int {
	if n <= 1 {
		return 0
	}
	return bits.Len(uint(n - 1))
}

// Layout describes the dimensions of a swizzled image.
type Layout struct {
	Width  int
	Height int
	Depth  int

	// size of one pixel in bytes
	Pixel int
}

func (l Layout) depth() int {
	if l.Depth < 1 {
		return 1
	}
	return l.Depth
}

// Offset returns the index of the pixel at (x, y, z) in swizzled order.
func (l Layout) Offset(x, y, z int) int {
	lx, ly, lz := log2(l.Width), log2(l.Height), log2(l.depth())

	var o int
	var bit int
	for i := 0; i < lx || i < ly || i < lz; i++ {
		if i < lx {
			o |= (x >> i & 1) << bit
			bit++
		}
		if i < ly {
			o |= (y >> i & 1) << bit
			bit++
		}
		if i < lz {
			o |= (z >> i & 1) << bit
			bit++
		}
	}
	return o
}

// SwizzledSize returns the number of bytes occupied by the image in swizzled
// order. This is larger than the linear size if any dimension is not a power
// of two.
func (l Layout) SwizzledSize() int {
	return (1 << (log2(l.Width) + log2(l.Height) + log2(l.depth()))) * l.Pixel
}

// LinearSize returns the number of bytes occupied by the image in linear
// order.
func (l Layout) LinearSize() int {
	return l.Width * l.Height * l.depth() * l.Pixel
}

func (l Layout) check(linear []byte, swizzled []byte) error {
	if l.Width < 1 || l.Height < 1 || l.Pixel < 1 {
		return fmt.Errorf("swizzle: invalid layout %+v", l)
	}
	if len(linear) < l.LinearSize() {
		return fmt.Errorf("swizzle: linear buffer too small: %d bytes for %d", len(linear), l.LinearSize())
	}
	if len(swizzled) < l.SwizzledSize() {
		return fmt.Errorf("swizzle: swizzled buffer too small: %d bytes for %d", len(swizzled), l.SwizzledSize())
	}
	return nil
}

// Deswizzle copies the swizzled image in src to dst in linear order.
func (l Layout) Deswizzle(dst []byte, src []byte) error {
	if err := l.check(dst, src); err != nil {
		return err
	}
	l.walk(func(lin int, swz int) {
		copy(dst[lin:lin+l.Pixel], src[swz:swz+l.Pixel])
	})
	return nil
}

// Swizzle copies the linear image in src to dst in swizzled order.
func (l Layout) Swizzle(dst []byte, src []byte) error {
	if err := l.check(src, dst); err != nil {
		return err
	}
	l.walk(func(lin int, swz int) {
		copy(dst[swz:swz+l.Pixel], src[lin:lin+l.Pixel])
	})
	return nil
}

// walk calls fn with the byte offsets of every pixel in linear and swizzled
// order.
func (l Layout) walk(fn func(lin int, swz int)) {
	lin := 0
	for z := 0; z < l.depth(); z++ {
		for y := 0; y < l.Height; y++ {
			for x := 0; x < l.Width; x++ {
				fn(lin, l.Offset(x, y, z)*l.Pixel)
				lin += l.Pixel
			}
		}
	}
}
