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

package gpu_test

import (
	"testing"

	"github.com/jetsetilly/texcache/gpu"
	"github.com/jetsetilly/texcache/test"
)

func TestBlockSize(t *testing.T) {
	test.ExpectEquality(t, gpu.BlockSize(gpu.DXT1), 8)
	test.ExpectEquality(t, gpu.BlockSize(gpu.DXT1A), 16)
	test.ExpectEquality(t, gpu.BlockSize(gpu.DXT3), 16)
	test.ExpectEquality(t, gpu.BlockSize(gpu.DXT5), 16)
	test.ExpectEquality(t, gpu.BlockSize(gpu.BGRA8), 0)
	test.ExpectSuccess(t, gpu.DXT5.Compressed())
	test.ExpectFailure(t, gpu.BGRA8.Compressed())
}

func TestCompressedSize(t *testing.T) {
	test.ExpectEquality(t, gpu.CompressedSize(gpu.DXT1, 64, 64), 2048)
	test.ExpectEquality(t, gpu.CompressedSize(gpu.DXT5, 64, 64), 4096)
	test.ExpectEquality(t, gpu.CompressedSize(gpu.DXT1A, 64, 64), 4096)
	test.ExpectEquality(t, gpu.StorageSize(gpu.DXT1A, 64, 64), 2048)
	test.ExpectEquality(t, gpu.StorageSize(gpu.DXT1, 64, 64), 2048)
	test.ExpectEquality(t, gpu.StorageSize(gpu.DXT5, 64, 64), 4096)
	test.ExpectEquality(t, gpu.StorageBlockSize(gpu.BGRA8), 0)

	// partial blocks round up
	test.ExpectEquality(t, gpu.CompressedSize(gpu.DXT1, 1, 1), 8)
	test.ExpectEquality(t, gpu.CompressedSize(gpu.DXT3, 5, 9), 2*3*16)
}

func TestSpec(t *testing.T) {
	s := gpu.Spec{Target: gpu.TargetCube, Format: gpu.BGRA8, Width: 4, Height: 4, Depth: 1}
	test.ExpectEquality(t, s.Layers(), 6)
	test.ExpectEquality(t, s.ImageSize(), 4*4*4*6)

	s = gpu.Spec{Target: gpu.Target3D, Format: gpu.DXT1, Width: 8, Height: 8, Depth: 2}
	test.ExpectEquality(t, s.ImageSize(), 4*8*2)
}

func TestPixelStore(t *testing.T) {
	ps := gpu.PixelStore{RowLength: 256}
	test.ExpectEquality(t, ps.RowBytes(gpu.BGRA8, 128), 1024)

	ps = gpu.PixelStore{}
	test.ExpectEquality(t, ps.RowBytes(gpu.R5G6B5, 3), 6)

	ps = gpu.PixelStore{Alignment: 4}
	test.ExpectEquality(t, ps.RowBytes(gpu.R5G6B5, 3), 8)
}

func TestSwapElements(t *testing.T) {
	d := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9}
	gpu.SwapElements(d, 4)
	test.ExpectEquality(t, string(d), string([]byte{4, 3, 2, 1, 8, 7, 6, 5, 9}))

	d = []byte{1, 2, 3, 4}
	gpu.SwapElements(d, 2)
	test.ExpectEquality(t, string(d), string([]byte{2, 1, 4, 3}))

	gpu.SwapElements(d, 1)
	test.ExpectEquality(t, string(d), string([]byte{2, 1, 4, 3}))
}
