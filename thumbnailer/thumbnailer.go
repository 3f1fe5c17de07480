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


package thumbnailer

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"

	"github.com/jetsetilly/texcache/gpu"
	"github.com/jetsetilly/texcache/logger"
	"github.com/jetsetilly/texcache/rsx/gcm"
	"github.com/jetsetilly/texcache/rsx/swizzle"
	"github.com/jetsetilly/texcache/texcache"
)

// ErrUnsupported is returned by Image() for textures that cannot be
// converted.
var ErrUnsupported = errors.New("thumbnailer: unsupported texture")

// the function that converts a single pixel of host data
type convert func(b []byte) color.NRGBA

var converters = map[gcm.Code]convert{
	gcm.B8: func(b []byte) color.NRGBA {
		return color.NRGBA{R: b[0], G: b[0], B: b[0], A: 0xff}
	},
	gcm.A8R8G8B8: func(b []byte) color.NRGBA {
		return color.NRGBA{R: b[1], G: b[2], B: b[3], A: b[0]}
	},
	gcm.D8R8G8B8: func(b []byte) color.NRGBA {
		return color.NRGBA{R: b[1], G: b[2], B: b[3], A: 0xff}
	},
	gcm.R5G6B5: func(b []byte) color.NRGBA {
		v := uint16(b[0])<<8 | uint16(b[1])
		r := uint8(v >> 11 & 0x1f)
		g := uint8(v >> 5 & 0x3f)
		bl := uint8(v & 0x1f)
		return color.NRGBA{R: r<<3 | r>>2, G: g<<2 | g>>4, B: bl<<3 | bl>>2, A: 0xff}
	},
}

var pixelSizes = map[gcm.Code]int{
	gcm.B8:       1,
	gcm.A8R8G8B8: 4,
	gcm.D8R8G8B8: 4,
	gcm.R5G6B5:   2,
}

// Image returns an image of level zero of the texture. The image is scaled
// by the scale value using nearest neighbour sampling.
func Image(mem texcache.HostMemory, desc texcache.Descriptor, scale int) (*image.NRGBA, error) {
	conv, ok := converters[desc.Format.Base()]
	if !ok || desc.Target != gpu.Target2D {
		return nil, fmt.Errorf("%w: %v", ErrUnsupported, desc)
	}
	bpp := pixelSizes[desc.Format.Base()]

	var data []byte
	var pitch int
	var err error

	if desc.Format.Swizzled() {
		l := swizzle.Layout{Width: desc.Width, Height: desc.Height, Pixel: bpp}
		src, err := mem.Sudo(desc.Address, uint32(l.SwizzledSize()))
		if err != nil {
			return nil, fmt.Errorf("thumbnailer: %w", err)
		}
		data = make([]byte, l.LinearSize())
		if err := l.Deswizzle(data, src); err != nil {
			return nil, fmt.Errorf("thumbnailer: %w", err)
		}
		pitch = desc.Width * bpp
	} else {
		pitch = int(desc.Pitch)
		if pitch == 0 {
			pitch = desc.Width * bpp
		}
		data, err = mem.Sudo(desc.Address, uint32(pitch*(desc.Height-1)+desc.Width*bpp))
		if err != nil {
			return nil, fmt.Errorf("thumbnailer: %w", err)
		}
	}

	img := image.NewNRGBA(image.Rect(0, 0, desc.Width, desc.Height))
	for y := range desc.Height {
		row := data[y*pitch:]
		for x := range desc.Width {
			img.SetNRGBA(x, y, conv(row[x*bpp:]))
		}
	}

	if scale <= 1 {
		return img, nil
	}

	scaled := image.NewNRGBA(image.Rect(0, 0, desc.Width*scale, desc.Height*scale))
	draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Src, nil)
	return scaled, nil
}

// Filename returns the name of the file used by Save() for the texture.
func Filename(desc texcache.Descriptor) string {
	f := strings.ReplaceAll(desc.Format.String(), "|", "_")
	return fmt.Sprintf("%08x_%s_%dx%d.png", desc.Address, f, desc.Width, desc.Height)
}

// Save writes a PNG file to the directory for every supported texture in
// the snapshot. Returns the number of files written.
func Save(dir string, mem texcache.HostMemory, snapshot []texcache.RegionInfo, scale int) (int, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return 0, fmt.Errorf("thumbnailer: %w", err)
	}

	var n int
	for _, r := range snapshot {
		for _, s := range r.Surfaces {
			img, err := Image(mem, s.Descriptor, scale)
			if errors.Is(err, ErrUnsupported) {
				logger.Logf(logger.Allow, "thumbnailer", "skipping %v", s.Descriptor)
				continue
			}
			if err != nil {
				return n, err
			}

			if err := save(filepath.Join(dir, Filename(s.Descriptor)), img); err != nil {
				return n, err
			}
			n++
		}
	}

	return n, nil
}

func save(path string, img image.Image) (rerr error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("thumbnailer: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("thumbnailer: %w", err)
		}
	}()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("thumbnailer: %w", err)
	}
	return nil
}
