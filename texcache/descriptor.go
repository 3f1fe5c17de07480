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

package texcache

import (
	"cmp"
	"fmt"

	"github.com/jetsetilly/texcache/curated"
	"github.com/jetsetilly/texcache/gpu"
	"github.com/jetsetilly/texcache/memory/addrrange"
	"github.com/jetsetilly/texcache/rsx/gcm"
	"github.com/jetsetilly/texcache/rsx/swizzle"
)

// Descriptor is a texture as described by the command stream. It is the
// key by which surfaces are found in a region.
type Descriptor struct {
	Address uint32

	// distance between rows in host memory in bytes. zero means the rows
	// are tightly packed. ignored for swizzled and compressed textures
	Pitch uint32

	Width    int
	Height   int
	Depth    int
	MipCount int

	// number of dimensions. one, two or three
	Dimension int

	Format gcm.Code

	// bytes per pixel in host memory. zero means the value is taken from
	// the format
	BPP int

	// size of level zero for compressed formats. zero means the size is
	// calculated from the dimensions
	CompressedSize uint32

	Target gpu.Target
}

func (d Descriptor) String() string {
	return fmt.Sprintf("%#08x %s %dx%dx%d %v pitch %d", d.Address, d.Target, d.Width, d.Height, d.Depth, d.Format, d.Pitch)
}

func (d Descriptor) compare(o Descriptor) int {
	return cmp.Or(
		cmp.Compare(d.Address, o.Address),
		cmp.Compare(d.Width, o.Width),
		cmp.Compare(d.Height, o.Height),
		cmp.Compare(d.Depth, o.Depth),
		cmp.Compare(d.Pitch, o.Pitch),
		cmp.Compare(d.Format, o.Format),
		cmp.Compare(d.Target, o.Target),
		cmp.Compare(d.Dimension, o.Dimension),
		cmp.Compare(d.MipCount, o.MipCount),
		cmp.Compare(d.BPP, o.BPP),
		cmp.Compare(d.CompressedSize, o.CompressedSize),
	)
}

// FormatMapper translates format codes to the layout of host data and the
// format of the local texture. gcm.Mapper is the usual implementation.
type FormatMapper interface {
	Lookup(code gcm.Code) (gcm.Layout, error)
}

// resolved is everything about a descriptor that follows from its format.
type resolved struct {
	layout   gcm.Layout
	spec     gpu.Spec
	bpp      int
	pitch    int
	swizzled bool

	// host memory occupied by level zero
	rng addrrange.Range
}

// rows returns the number of rows in level zero including every layer.
func (res resolved) rows() int {
	return res.spec.Height * res.spec.Layers()
}

// swizzleLayout returns the layout of one swizzled unit of the texture and
// the number of units. 3D textures are a single unit and the faces of a
// cube are one unit each.
func (res resolved) swizzleLayout() (swizzle.Layout, int) {
	l := swizzle.Layout{
		Width:  res.spec.Width,
		Height: res.spec.Height,
		Depth:  1,
		Pixel:  res.bpp,
	}
	if res.spec.Target == gpu.Target3D {
		l.Depth = res.spec.Depth
		return l, 1
	}
	return l, res.spec.Layers()
}

func (d Descriptor) resolve(mapper FormatMapper) (resolved, error) {
	var res resolved

	if d.Width < 1 || d.Height < 1 || d.Depth < 0 {
		return res, curated.Errorf(UnsupportedDimension, fmt.Sprintf("%dx%dx%d", d.Width, d.Height, d.Depth))
	}

	depth := max(d.Depth, 1)
	switch d.Dimension {
	case 1:
		if d.Target != gpu.Target1D || d.Height != 1 {
			return res, curated.Errorf(UnsupportedDimension, fmt.Sprintf("1D %s %dx%d", d.Target, d.Width, d.Height))
		}
	case 2:
		if d.Target != gpu.Target2D && d.Target != gpu.TargetCube {
			return res, curated.Errorf(UnsupportedDimension, fmt.Sprintf("2D %s", d.Target))
		}
	case 3:
		if d.Target != gpu.Target3D {
			return res, curated.Errorf(UnsupportedDimension, fmt.Sprintf("3D %s", d.Target))
		}
	default:
		return res, curated.Errorf(UnsupportedDimension, d.Dimension)
	}
	if d.Dimension != 3 {
		depth = 1
	}

	layout, err := mapper.Lookup(d.Format)
	if err != nil {
		return res, curated.Errorf(UnsupportedFormat, err)
	}
	res.layout = layout

	res.spec = gpu.Spec{
		Target: d.Target,
		Format: layout.Format,
		Width:  d.Width,
		Height: d.Height,
		Depth:  depth,
		Levels: max(d.MipCount, 1),
	}

	var size uint64

	if layout.Compressed {
		size = uint64(d.CompressedSize)
		if size == 0 {
			size = uint64(res.spec.ImageSize())
		}
	} else {
		res.bpp = layout.BytesPerPixel
		if d.BPP != 0 && d.BPP != res.bpp {
			return res, curated.Errorf(UnsupportedFormat, fmt.Sprintf("%v has %d bytes per pixel not %d", d.Format, res.bpp, d.BPP))
		}

		res.swizzled = d.Format.Swizzled()
		if res.swizzled {
			l, units := res.swizzleLayout()
			res.pitch = d.Width * res.bpp
			size = uint64(l.SwizzledSize()) * uint64(units)
		} else {
			res.pitch = int(d.Pitch)
			if res.pitch == 0 {
				res.pitch = d.Width * res.bpp
			}
			if res.pitch < d.Width*res.bpp {
				return res, curated.Errorf(HostRangeError, fmt.Sprintf("pitch %d too small for %d pixels of %d bytes", res.pitch, d.Width, res.bpp))
			}
			if res.pitch%res.bpp != 0 {
				return res, curated.Errorf(HostRangeError, fmt.Sprintf("pitch %d not a multiple of %d", res.pitch, res.bpp))
			}
			size = uint64(res.pitch) * uint64(res.rows())
		}
	}

	res.rng = addrrange.Range{Start: d.Address, End: uint64(d.Address) + size}
	if res.rng.End > 1<<32 {
		return res, curated.Errorf(HostRangeError, res.rng)
	}

	return res, nil
}
