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

// Target is the kind of texture.
type Target int

// List of valid Target values.
const (
	Target1D Target = iota
	Target2D
	Target3D
	TargetCube
)

func (t Target) String() string {
	switch t {
	case Target1D:
		return "1D"
	case Target2D:
		return "2D"
	case Target3D:
		return "3D"
	case TargetCube:
		return "cube"
	}
	return fmt.Sprintf("target(%d)", int(t))
}

// Faces returns the number of layers the texture has in addition to its
// depth. Cube maps have six and everything else has one.
func (t Target) Faces() int {
	if t == TargetCube {
		return 6
	}
	return 1
}

// Spec describes a texture to be created.
type Spec struct {
	Target Target
	Format Format
	Width  int
	Height int
	Depth  int
	Levels int
}

func (s Spec) String() string {
	return fmt.Sprintf("%s %s %dx%dx%d (%d levels)", s.Target, s.Format, s.Width, s.Height, s.Depth, s.Levels)
}

// Layers returns the number of 2D images in level zero of the texture.
func (s Spec) Layers() int {
	d := s.Depth
	if d < 1 {
		d = 1
	}
	return d * s.Target.Faces()
}

// ImageSize returns the number of bytes in level zero of the texture when
// tightly packed in host memory.
func (s Spec) ImageSize() int {
	if s.Format.Compressed() {
		return CompressedSize(s.Format, s.Width, s.Height) * s.Layers()
	}
	return PixelSize(s.Format) * s.Width * s.Height * s.Layers()
}

// StorageSize returns the number of bytes the device holds for level zero
// of the texture. It differs from ImageSize() only for formats where
// BlockSize() and StorageBlockSize() differ.
func (s Spec) StorageSize() int {
	if s.Format.Compressed() {
		return StorageSize(s.Format, s.Width, s.Height) * s.Layers()
	}
	return s.ImageSize()
}

// PixelStore controls how pixel data is laid out in the client side buffer
// given to Upload() and Download().
type PixelStore struct {
	// distance between the start of successive rows in pixels. zero means
	// the rows are tightly packed
	RowLength int

	// reverse the bytes of each element as given by ElementSize()
	SwapBytes bool

	// row alignment in bytes. zero is the same as one
	Alignment int
}

// RowBytes returns the distance between rows in bytes for a texture of the
// given format and width.
func (ps PixelStore) RowBytes(f Format, width int) int {
	l := ps.RowLength
	if l == 0 {
		l = width
	}
	n := l * PixelSize(f)
	if ps.Alignment > 1 {
		n = (n + ps.Alignment - 1) / ps.Alignment * ps.Alignment
	}
	return n
}

// CopyRegion describes a texture to texture copy of a rectangle of level
// zero. The source rectangle begins at (SrcX, SrcY) and the destination
// rectangle at (DstX, DstY).
type CopyRegion struct {
	SrcX, SrcY int
	DstX, DstY int
	Width      int
	Height     int
}

// Texture is a local copy of an image.
type Texture interface {
	// the handle used by the draw path to bind the texture
	ID() uint32

	Spec() Spec

	// release the device resources. calling Destroy() more than once has no
	// effect
	Destroy()
}

// Device creates textures and moves pixel data between them and client
// memory.
type Device interface {
	Create(spec Spec) (Texture, error)

	// Upload copies client pixel data into the texture. Layers of 3D and
	// cube textures follow each other in data
	Upload(tex Texture, level int, data []byte, store PixelStore) error

	// UploadCompressed copies compressed blocks into the texture
	UploadCompressed(tex Texture, level int, data []byte) error

	// Download is the inverse of Upload()
	Download(tex Texture, level int, dst []byte, store PixelStore) error

	// DownloadCompressed is the inverse of UploadCompressed()
	DownloadCompressed(tex Texture, level int, dst []byte) error

	// Copy copies level zero pixels between textures of the same format
	Copy(dst Texture, src Texture, region CopyRegion) error

	GenerateMipmaps(tex Texture) error
}
