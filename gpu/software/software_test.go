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

package software_test

import (
	"bytes"
	"testing"

	"github.com/jetsetilly/texcache/gpu"
	"github.com/jetsetilly/texcache/gpu/software"
	"github.com/jetsetilly/texcache/test"
)

func TestUploadDownload(t *testing.T) {
	dev := software.NewDevice()
	tex, err := dev.Create(gpu.Spec{Target: gpu.Target2D, Format: gpu.BGRA8, Width: 2, Height: 2, Depth: 1, Levels: 1})
	test.DemandSuccess(t, err)
	test.ExpectInequality(t, tex.ID(), 0)

	// client rows are 3 pixels apart and the last pixel of each row is padding
	client := []byte{
		1, 2, 3, 4, 5, 6, 7, 8, 0xff, 0xff, 0xff, 0xff,
		9, 10, 11, 12, 13, 14, 15, 16, 0xff, 0xff, 0xff, 0xff,
	}
	store := gpu.PixelStore{RowLength: 3, SwapBytes: true}
	test.ExpectSuccess(t, dev.Upload(tex, 0, client, store))

	px, err := dev.Pixels(tex)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, px[0], byte(4))
	test.ExpectEquality(t, px[4], byte(8))
	test.ExpectEquality(t, px[8], byte(12))

	out := make([]byte, len(client))
	test.ExpectSuccess(t, dev.Download(tex, 0, out, store))
	for i := range out {
		if i%12 >= 8 {
			continue
		}
		test.ExpectEquality(t, out[i], client[i], i)
	}

	test.ExpectFailure(t, dev.Upload(tex, 0, client[:10], store))

	st := dev.Stats()
	test.ExpectEquality(t, st.Uploads, 1)
	test.ExpectEquality(t, st.Downloads, 1)
}

func TestCompressed(t *testing.T) {
	dev := software.NewDevice()
	tex, err := dev.Create(gpu.Spec{Target: gpu.Target2D, Format: gpu.DXT1, Width: 64, Height: 64, Depth: 1, Levels: 1})
	test.DemandSuccess(t, err)

	data := bytes.Repeat([]byte{0xa5, 0x5a}, 1024)
	test.ExpectSuccess(t, dev.UploadCompressed(tex, 0, data))
	out := make([]byte, 2048)
	test.ExpectSuccess(t, dev.DownloadCompressed(tex, 0, out))
	test.ExpectSuccess(t, bytes.Equal(data, out))

	test.ExpectFailure(t, dev.UploadCompressed(tex, 0, data[:2047]))
	test.ExpectFailure(t, dev.Upload(tex, 0, data, gpu.PixelStore{}))
}

func TestCopy(t *testing.T) {
	dev := software.NewDevice()
	src, err := dev.Create(gpu.Spec{Target: gpu.Target2D, Format: gpu.R8, Width: 4, Height: 4})
	test.DemandSuccess(t, err)
	dst, err := dev.Create(gpu.Spec{Target: gpu.Target2D, Format: gpu.R8, Width: 2, Height: 2})
	test.DemandSuccess(t, err)

	data := make([]byte, 16)
	for i := range data {
		data[i] = byte(i)
	}
	test.DemandSuccess(t, dev.Upload(src, 0, data, gpu.PixelStore{}))

	test.ExpectSuccess(t, dev.Copy(dst, src, gpu.CopyRegion{SrcX: 1, SrcY: 2, Width: 2, Height: 2}))
	px, _ := dev.Pixels(dst)
	test.ExpectEquality(t, string(px), string([]byte{9, 10, 13, 14}))

	test.ExpectFailure(t, dev.Copy(dst, src, gpu.CopyRegion{SrcX: 3, Width: 2, Height: 2}))

	other, _ := dev.Create(gpu.Spec{Target: gpu.Target2D, Format: gpu.BGRA8, Width: 2, Height: 2})
	test.ExpectFailure(t, dev.Copy(other, src, gpu.CopyRegion{Width: 1, Height: 1}))
}

func TestDestroy(t *testing.T) {
	dev := software.NewDevice()
	tex, err := dev.Create(gpu.Spec{Target: gpu.Target2D, Format: gpu.R8, Width: 4, Height: 4})
	test.DemandSuccess(t, err)
	tex.Destroy()
	tex.Destroy()
	test.ExpectEquality(t, dev.Stats().Destroyed, 1)
	test.ExpectFailure(t, dev.Upload(tex, 0, make([]byte, 16), gpu.PixelStore{}))
}

func TestMipmaps(t *testing.T) {
	dev := software.NewDevice()
	tex, err := dev.Create(gpu.Spec{Target: gpu.Target2D, Format: gpu.R8, Width: 4, Height: 4, Levels: 3})
	test.DemandSuccess(t, err)

	data := make([]byte, 16)
	for i := range data {
		data[i] = byte(i)
	}
	test.DemandSuccess(t, dev.Upload(tex, 0, data, gpu.PixelStore{}))
	test.ExpectSuccess(t, dev.GenerateMipmaps(tex))

	l1 := make([]byte, 4)
	test.ExpectSuccess(t, dev.Download(tex, 1, l1, gpu.PixelStore{}))
	test.ExpectEquality(t, string(l1), string([]byte{0, 2, 8, 10}))

	l2 := make([]byte, 1)
	test.ExpectSuccess(t, dev.Download(tex, 2, l2, gpu.PixelStore{}))
	test.ExpectEquality(t, l2[0], byte(0))
}

func TestMipmaps3D(t *testing.T) {
	dev := software.NewDevice()
	tex, err := dev.Create(gpu.Spec{Target: gpu.Target3D, Format: gpu.R8, Width: 4, Height: 4, Depth: 4, Levels: 3})
	test.DemandSuccess(t, err)

	data := make([]byte, 64)
	for i := range data {
		data[i] = byte(i)
	}
	test.DemandSuccess(t, dev.Upload(tex, 0, data, gpu.PixelStore{}))
	test.ExpectSuccess(t, dev.GenerateMipmaps(tex))

	// level one is 2x2x2 and takes its layers from depth 0 and 2
	l1 := make([]byte, 8)
	test.ExpectSuccess(t, dev.Download(tex, 1, l1, gpu.PixelStore{}))
	test.ExpectEquality(t, string(l1), string([]byte{0, 2, 8, 10, 32, 34, 40, 42}))
	test.ExpectFailure(t, dev.Download(tex, 1, make([]byte, 7), gpu.PixelStore{}))

	l2 := make([]byte, 1)
	test.ExpectSuccess(t, dev.Download(tex, 2, l2, gpu.PixelStore{}))
	test.ExpectEquality(t, l2[0], byte(0))
}

func TestCompressedAlpha(t *testing.T) {
	dev := software.NewDevice()
	spec := gpu.Spec{Target: gpu.Target2D, Format: gpu.DXT1A, Width: 64, Height: 64, Depth: 1, Levels: 1}
	test.ExpectEquality(t, spec.ImageSize(), 4096)
	test.ExpectEquality(t, spec.StorageSize(), 2048)

	tex, err := dev.Create(spec)
	test.DemandSuccess(t, err)

	// the device keeps the packed blocks at the start of the host data
	data := make([]byte, 4096)
	for i := range data {
		data[i] = byte(i * 7)
	}
	test.ExpectSuccess(t, dev.UploadCompressed(tex, 0, data))
	test.ExpectEquality(t, dev.Stats().BytesMoved, 2048)

	out := make([]byte, 4096)
	test.ExpectSuccess(t, dev.DownloadCompressed(tex, 0, out))
	test.ExpectSuccess(t, bytes.Equal(out[:2048], data[:2048]))
	test.ExpectSuccess(t, bytes.Equal(out[2048:], make([]byte, 2048)))
}
