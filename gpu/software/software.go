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

// Package software implements gpu.Device in main memory. Texels are stored
// exactly as the device would see them after any byte swapping, which makes
// the device suitable for headless runs and for checking that data
// survives a round trip between host and local memory.
package software

import (
	"fmt"
	"sync/atomic"

	"github.com/jetsetilly/texcache/gpu"
)

// Stats counts the transfers performed by the device.
type Stats struct {
	Created    int
	Destroyed  int
	Uploads    int
	Downloads  int
	Copies     int
	Mipmaps    int
	BytesMoved int
}

// Device is a gpu.Device with no hardware behind it. It is not safe for
// concurrent use.
type Device struct {
	nextID uint32
	stats  Stats
}

// NewDevice is the preferred method of initialisation for the Device type.
func NewDevice() *Device {
	return &Device{}
}

// Stats returns the transfer counters.
func (dev *Device) Stats() Stats {
	return dev.stats
}

// ResetStats sets all transfer counters to zero.
func (dev *Device) ResetStats() {
	dev.stats = Stats{}
}

type texture struct {
	dev       *Device
	id        uint32
	spec      gpu.Spec
	levels    [][]byte
	destroyed atomic.Bool
}

func (tex *texture) ID() uint32 {
	return tex.id
}

func (tex *texture) Spec() gpu.Spec {
	return tex.spec
}

func (tex *texture) Destroy() {
	if tex.destroyed.Swap(true) {
		return
	}
	tex.levels = nil
	tex.dev.stats.Destroyed++
}

func levelDimension(v int, level int) int {
	v >>= level
	if v < 1 {
		return 1
	}
	return v
}

// levelSpec returns the spec with the dimensions of the mip level. The depth
// of a 3D texture is reduced with the width and height.
func levelSpec(spec gpu.Spec, level int) gpu.Spec {
	spec.Width = levelDimension(spec.Width, level)
	spec.Height = levelDimension(spec.Height, level)
	if spec.Target == gpu.Target3D {
		spec.Depth = levelDimension(spec.Depth, level)
	}
	return spec
}

// Create implements the gpu.Device interface.
func (dev *Device) Create(spec gpu.Spec) (gpu.Texture, error) {
	if spec.Width < 1 || spec.Height < 1 {
		return nil, fmt.Errorf("software: invalid texture dimensions: %s", spec)
	}
	if !spec.Format.Compressed() && gpu.PixelSize(spec.Format) == 0 {
		return nil, fmt.Errorf("software: unsupported format: %s", spec.Format)
	}
	if spec.Depth < 1 {
		spec.Depth = 1
	}
	if spec.Levels < 1 {
		spec.Levels = 1
	}

	dev.nextID++
	tex := &texture{
		dev:  dev,
		id:   dev.nextID,
		spec: spec,
	}
	for l := 0; l < spec.Levels; l++ {
		tex.levels = append(tex.levels, make([]byte, levelSpec(spec, l).StorageSize()))
	}

	dev.stats.Created++
	return tex, nil
}

func (dev *Device) texture(t gpu.Texture, level int) (*texture, error) {
	tex, ok := t.(*texture)
	if !ok || tex.dev != dev {
		return nil, fmt.Errorf("software: texture not created by this device")
	}
	if tex.destroyed.Load() {
		return nil, fmt.Errorf("software: texture %d has been destroyed", tex.id)
	}
	if level < 0 || level >= len(tex.levels) {
		return nil, fmt.Errorf("software: texture %d has no level %d", tex.id, level)
	}
	return tex, nil
}

// transfer moves pixels between the texture's tightly packed storage and a
// client buffer laid out according to the PixelStore. The upload argument
// says which direction the data moves.
func (dev *Device) transfer(t gpu.Texture, level int, client []byte, store gpu.PixelStore, upload bool) error {
	tex, err := dev.texture(t, level)
	if err != nil {
		return err
	}
	spec := levelSpec(tex.spec, level)
	if spec.Format.Compressed() {
		return fmt.Errorf("software: uncompressed transfer of compressed texture %d", tex.id)
	}

	pixel := gpu.PixelSize(spec.Format)
	rowBytes := spec.Width * pixel
	stride := store.RowBytes(spec.Format, spec.Width)
	rows := spec.Height * spec.Layers()

	need := (rows-1)*stride + rowBytes
	if len(client) < need {
		return fmt.Errorf("software: client buffer too small: %d bytes for %d", len(client), need)
	}

	storage := tex.levels[level]
	for y := 0; y < rows; y++ {
		c := client[y*stride : y*stride+rowBytes]
		s := storage[y*rowBytes : (y+1)*rowBytes]
		if upload {
			copy(s, c)
			if store.SwapBytes {
				gpu.SwapElements(s, gpu.ElementSize(spec.Format))
			}
		} else {
			copy(c, s)
			if store.SwapBytes {
				gpu.SwapElements(c, gpu.ElementSize(spec.Format))
			}
		}
	}

	dev.stats.BytesMoved += rows * rowBytes
	return nil
}

// Upload implements the gpu.Device interface.
func (dev *Device) Upload(t gpu.Texture, level int, data []byte, store gpu.PixelStore) error {
	if err := dev.transfer(t, level, data, store, true); err != nil {
		return err
	}
	dev.stats.Uploads++
	return nil
}

// Download implements the gpu.Device interface.
func (dev *Device) Download(t gpu.Texture, level int, dst []byte, store gpu.PixelStore) error {
	if err := dev.transfer(t, level, dst, store, false); err != nil {
		return err
	}
	dev.stats.Downloads++
	return nil
}

func (dev *Device) compressed(t gpu.Texture, level int, client []byte) (*texture, []byte, error) {
	tex, err := dev.texture(t, level)
	if err != nil {
		return nil, nil, err
	}
	if !tex.spec.Format.Compressed() {
		return nil, nil, fmt.Errorf("software: compressed transfer of uncompressed texture %d", tex.id)
	}
	storage := tex.levels[level]
	if len(client) < len(storage) {
		return nil, nil, fmt.Errorf("software: client buffer too small: %d bytes for %d", len(client), len(storage))
	}
	return tex, storage, nil
}

// UploadCompressed implements the gpu.Device interface.
func (dev *Device) UploadCompressed(t gpu.Texture, level int, data []byte) error {
	_, storage, err := dev.compressed(t, level, data)
	if err != nil {
		return err
	}
	copy(storage, data)
	dev.stats.Uploads++
	dev.stats.BytesMoved += len(storage)
	return nil
}

// DownloadCompressed implements the gpu.Device interface.
func (dev *Device) DownloadCompressed(t gpu.Texture, level int, dst []byte) error {
	_, storage, err := dev.compressed(t, level, dst)
	if err != nil {
		return err
	}
	copy(dst, storage)
	dev.stats.Downloads++
	dev.stats.BytesMoved += len(storage)
	return nil
}

// Copy implements the gpu.Device interface.
func (dev *Device) Copy(d gpu.Texture, s gpu.Texture, region gpu.CopyRegion) error {
	dst, err := dev.texture(d, 0)
	if err != nil {
		return err
	}
	src, err := dev.texture(s, 0)
	if err != nil {
		return err
	}
	if dst.spec.Format != src.spec.Format {
		return fmt.Errorf("software: copy between formats %s and %s", src.spec.Format, dst.spec.Format)
	}
	if src.spec.Format.Compressed() {
		return fmt.Errorf("software: copy of compressed format %s", src.spec.Format)
	}
	if region.Width < 0 || region.Height < 0 ||
		region.SrcX < 0 || region.SrcY < 0 || region.DstX < 0 || region.DstY < 0 ||
		region.SrcX+region.Width > src.spec.Width || region.SrcY+region.Height > src.spec.Height ||
		region.DstX+region.Width > dst.spec.Width || region.DstY+region.Height > dst.spec.Height {
		return fmt.Errorf("software: copy region out of bounds: %+v", region)
	}

	pixel := gpu.PixelSize(src.spec.Format)
	srcRow := src.spec.Width * pixel
	dstRow := dst.spec.Width * pixel
	n := region.Width * pixel
	for y := 0; y < region.Height; y++ {
		so := (region.SrcY+y)*srcRow + region.SrcX*pixel
		do := (region.DstY+y)*dstRow + region.DstX*pixel
		copy(dst.levels[0][do:do+n], src.levels[0][so:so+n])
	}

	dev.stats.Copies++
	dev.stats.BytesMoved += n * region.Height
	return nil
}

// GenerateMipmaps implements the gpu.Device interface. Each level is a
// point sampled reduction of level zero. Compressed levels are left as they
// are.
func (dev *Device) GenerateMipmaps(t gpu.Texture) error {
	tex, err := dev.texture(t, 0)
	if err != nil {
		return err
	}
	dev.stats.Mipmaps++
	if tex.spec.Format.Compressed() {
		return nil
	}

	pixel := gpu.PixelSize(tex.spec.Format)
	base := tex.levels[0]
	for l := 1; l < len(tex.levels); l++ {
		ls := levelSpec(tex.spec, l)
		scale := 1 << l
		i := 0
		for layer := 0; layer < ls.Layers(); layer++ {
			// the faces of a cube are not reduced
			sl := layer
			if tex.spec.Target == gpu.Target3D {
				sl = min(layer*scale, tex.spec.Depth-1)
			}
			for y := 0; y < ls.Height; y++ {
				sy := min(y*scale, tex.spec.Height-1)
				for x := 0; x < ls.Width; x++ {
					sx := min(x*scale, tex.spec.Width-1)
					o := ((sl*tex.spec.Height+sy)*tex.spec.Width + sx) * pixel
					copy(tex.levels[l][i:i+pixel], base[o:o+pixel])
					i += pixel
				}
			}
		}
	}
	return nil
}

// Pixels returns the storage of level zero of the texture. Changes to the
// returned slice are changes to the texture, which is how the draw path
// renders into a texture when there is no real device.
func (dev *Device) Pixels(t gpu.Texture) ([]byte, error) {
	tex, err := dev.texture(t, 0)
	if err != nil {
		return nil, err
	}
	return tex.levels[0], nil
}
