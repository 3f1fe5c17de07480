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


package thumbnailer_test

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/texcache/gpu"
	"github.com/jetsetilly/texcache/rsx/gcm"
	"github.com/jetsetilly/texcache/rsx/swizzle"
	"github.com/jetsetilly/texcache/test"
	"github.com/jetsetilly/texcache/texcache"
	"github.com/jetsetilly/texcache/thumbnailer"
)

type memory []byte

func (m memory) Sudo(address uint32, size uint32) ([]byte, error) {
	return m[address : address+size], nil
}

func TestImage(t *testing.T) {
	mem := make(memory, 0x1000)

	// second pixel of the second row is opaque red. rows are 16 bytes apart
	copy(mem[16+4:], []byte{0xff, 0xff, 0x00, 0x00})

	desc := texcache.Descriptor{
		Pitch: 16, Width: 2, Height: 2, Dimension: 2,
		Format: gcm.A8R8G8B8 | gcm.LN, Target: gpu.Target2D,
	}

	img, err := thumbnailer.Image(mem, desc, 1)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, img.NRGBAAt(1, 1), color.NRGBA{R: 0xff, A: 0xff})
	test.ExpectEquality(t, img.NRGBAAt(0, 0), color.NRGBA{})

	img, err = thumbnailer.Image(mem, desc, 3)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, img.Bounds().Dx(), 6)
	test.ExpectEquality(t, img.NRGBAAt(5, 5), color.NRGBA{R: 0xff, A: 0xff})
	test.ExpectEquality(t, img.NRGBAAt(2, 2), color.NRGBA{})
}

func TestImageSwizzled(t *testing.T) {
	mem := make(memory, 0x1000)

	l := swizzle.Layout{Width: 4, Height: 4, Pixel: 1}
	mem[l.Offset(3, 1, 0)] = 0x80

	desc := texcache.Descriptor{
		Width: 4, Height: 4, Dimension: 2,
		Format: gcm.B8, Target: gpu.Target2D,
	}

	img, err := thumbnailer.Image(mem, desc, 1)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, img.NRGBAAt(3, 1), color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff})
}

func TestUnsupported(t *testing.T) {
	mem := make(memory, 0x1000)
	desc := texcache.Descriptor{
		Width: 4, Height: 4, Dimension: 2,
		Format: gcm.CompressedDXT1, Target: gpu.Target2D,
	}
	_, err := thumbnailer.Image(mem, desc, 1)
	test.ExpectSuccess(t, errors.Is(err, thumbnailer.ErrUnsupported))
}

func TestSave(t *testing.T) {
	mem := make(memory, 0x1000)
	dir := t.TempDir()

	snapshot := []texcache.RegionInfo{{
		Surfaces: []texcache.SurfaceInfo{
			{Descriptor: texcache.Descriptor{Address: 0x100, Width: 8, Height: 8, Dimension: 2,
				Format: gcm.R5G6B5 | gcm.LN, Target: gpu.Target2D}},
			{Descriptor: texcache.Descriptor{Address: 0x200, Width: 8, Height: 8, Dimension: 2,
				Format: gcm.CompressedDXT1, Target: gpu.Target2D}},
		},
	}}

	n, err := thumbnailer.Save(dir, mem, snapshot, 2)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, n, 1)

	_, err = os.Stat(filepath.Join(dir, thumbnailer.Filename(snapshot[0].Surfaces[0].Descriptor)))
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, thumbnailer.Filename(snapshot[0].Surfaces[0].Descriptor), "00000100_R5G6B5_LN_8x8.png")
}
