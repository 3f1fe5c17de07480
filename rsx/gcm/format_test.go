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

package gcm_test

import (
	"testing"

	"github.com/jetsetilly/texcache/gpu"
	"github.com/jetsetilly/texcache/rsx/gcm"
	"github.com/jetsetilly/texcache/test"
)

func TestModifiers(t *testing.T) {
	c := gcm.A8R8G8B8 | gcm.LN
	test.ExpectFailure(t, c.Swizzled())
	test.ExpectSuccess(t, gcm.A8R8G8B8.Swizzled())
	test.ExpectEquality(t, (c | gcm.UN).Base(), gcm.A8R8G8B8)
	test.ExpectEquality(t, c.String(), "A8R8G8B8|LN")
	test.ExpectEquality(t, gcm.Code(0x01).String(), "0x01")
}

func TestLookup(t *testing.T) {
	var m gcm.Mapper

	l, err := m.Lookup(gcm.A8R8G8B8 | gcm.LN)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, l.Format, gpu.BGRA8)
	test.ExpectEquality(t, l.BytesPerPixel, 4)
	test.ExpectFailure(t, l.SwapBytes)

	l, err = m.Lookup(gcm.CompressedDXT1)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, l.Format, gpu.DXT1)
	test.ExpectSuccess(t, l.Compressed)
	test.ExpectEquality(t, gpu.BlockSize(l.Format), 8)

	l, err = gcm.Mapper{DXT1Alpha: true}.Lookup(gcm.CompressedDXT1 | gcm.LN)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, l.Format, gpu.DXT1A)
	test.ExpectSuccess(t, l.Compressed)
	test.ExpectEquality(t, gpu.BlockSize(l.Format), 16)

	// only DXT1 is affected
	l, err = gcm.Mapper{DXT1Alpha: true}.Lookup(gcm.CompressedDXT45)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, l.Format, gpu.DXT5)

	l, err = m.Lookup(gcm.Depth24D8)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, l.Depth)
	test.ExpectFailure(t, l.SwapBytes)

	l, err = m.Lookup(gcm.A4R4G4B4 | gcm.LN)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, l.SwapBytes)

	_, err = m.Lookup(gcm.R6G5B5)
	test.ExpectFailure(t, err)
	_, err = m.Lookup(gcm.Depth24D8Float)
	test.ExpectFailure(t, err)
	_, err = m.Lookup(gcm.Depth16Float)
	test.ExpectFailure(t, err)
}

func TestLayoutPixelSize(t *testing.T) {
	var m gcm.Mapper

	// host bytes per pixel must agree with the local format for every
	// uncompressed code
	for c := gcm.Code(0x80); c < 0xa0; c++ {
		l, err := m.Lookup(c)
		if err != nil || l.Compressed {
			continue
		}
		test.ExpectEquality(t, l.BytesPerPixel, gpu.PixelSize(l.Format), c)
	}
}
