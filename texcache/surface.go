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
	"fmt"

	"github.com/jetsetilly/texcache/curated"
	"github.com/jetsetilly/texcache/gpu"
	"github.com/jetsetilly/texcache/memory/addrrange"
	"github.com/jetsetilly/texcache/memory/protection"
)

// Surface is one texture in host memory and its local copy. Surfaces are
// owned by a Region and must not be used after the region has been cleared.
type Surface struct {
	desc  Descriptor
	res   resolved
	state State

	region *Region

	// created on the first transfer to the local copy
	tex gpu.Texture
}

func (s *Surface) String() string {
	return fmt.Sprintf("%v [%s]", s.desc, s.state)
}

// Descriptor returns the descriptor the surface was created with.
func (s *Surface) Descriptor() Descriptor {
	return s.desc
}

// State returns the freshness of the host and local copies.
func (s *Surface) State() State {
	return s.state
}

// Range returns the host memory covered by the surface.
func (s *Surface) Range() addrrange.Range {
	return s.res.rng
}

// Texture returns the local copy. It is nil until the first transfer to the
// local copy.
func (s *Surface) Texture() gpu.Texture {
	return s.tex
}

// Handle returns the device handle of the local copy or zero if there is no
// local copy yet.
func (s *Surface) Handle() uint32 {
	if s.tex == nil {
		return 0
	}
	return s.tex.ID()
}

// RequiresProtection returns the accesses to the surface's host memory that
// must be trapped.
func (s *Surface) RequiresProtection() protection.Flags {
	return s.state.RequiresProtection()
}

// Invalidate marks the named copies as stale. Invalidating the host copy
// also marks the local copy of every other overlapping surface in the region
// as stale, because the local copy of this surface is about to change. The
// local copy of this surface is not touched unless Local is named.
func (s *Surface) Invalidate(b Buffers) {
	if b&Host == Host && s.region != nil {
		s.region.forEachOverlapping(s.res.rng, func(o *Surface) {
			if o != s {
				o.state = o.state.Invalidate(Local)
			}
		})
	}
	s.state = s.state.Invalidate(b)
}

// Sync makes the copy named by the direction fresh. Returns true if data was
// transferred.
func (s *Surface) Sync(d Direction) (bool, error) {
	if s.region == nil {
		return false, fmt.Errorf("texcache: %v is no longer in the cache", s.desc)
	}

	next, transfer := s.state.Transition(d)
	if !transfer {
		return false, nil
	}

	switch d {
	case HostToLocal:
		var err error
		next, err = s.toLocal()
		if err != nil {
			return false, err
		}
	case LocalToHost:
		// nothing has ever been written to a local copy that does not exist
		if s.tex == nil {
			return false, nil
		}
		if err := s.toHost(); err != nil {
			return false, err
		}
	}

	s.state = next
	return true, nil
}

func (s *Surface) cache() *Cache {
	return s.region.cache
}

// create the local copy if it does not already exist.
func (s *Surface) create() error {
	if s.tex != nil {
		return nil
	}
	tex, err := s.cache().dev.Create(s.res.spec)
	if err != nil {
		return curated.Errorf(DeviceFailure, err)
	}
	s.tex = tex
	return nil
}

// toLocal transfers data to the local copy and returns the resulting state.
func (s *Surface) toLocal() (State, error) {
	if err := s.create(); err != nil {
		return s.state, err
	}

	next := Both

	if src, ok := s.copySource(); ok {
		if err := s.copyFrom(src); err != nil {
			return s.state, err
		}
		if !src.state.HostFresh() {
			next = LocalOnly
		}
	} else {
		if err := s.flushOverlapping(); err != nil {
			return s.state, err
		}
		if err := s.upload(); err != nil {
			return s.state, err
		}
	}

	if s.res.spec.Levels > 1 {
		if err := s.cache().dev.GenerateMipmaps(s.tex); err != nil {
			return s.state, curated.Errorf(DeviceFailure, err)
		}
	}

	return next, nil
}

// tiles returns true if the surface is a rectangle inside the local copy of
// o, with the same layout, so that it can be copied from o without going
// through host memory.
func (s *Surface) tiles(o *Surface) (gpu.CopyRegion, bool) {
	a, b := s.res, o.res
	if a.spec.Target != gpu.Target2D || b.spec.Target != gpu.Target2D {
		return gpu.CopyRegion{}, false
	}
	if a.layout.Compressed || b.layout.Compressed || a.swizzled || b.swizzled {
		return gpu.CopyRegion{}, false
	}
	if a.spec.Format != b.spec.Format || a.bpp != b.bpp || a.pitch != b.pitch {
		return gpu.CopyRegion{}, false
	}
	if !b.rng.Contains(a.rng) {
		return gpu.CopyRegion{}, false
	}

	offset := int(a.rng.Start - b.rng.Start)
	y := offset / b.pitch
	rem := offset % b.pitch
	if rem%b.bpp != 0 {
		return gpu.CopyRegion{}, false
	}
	x := rem / b.bpp
	if x+a.spec.Width > b.spec.Width || y+a.spec.Height > b.spec.Height {
		return gpu.CopyRegion{}, false
	}

	return gpu.CopyRegion{
		SrcX:   x,
		SrcY:   y,
		Width:  a.spec.Width,
		Height: a.spec.Height,
	}, true
}

// copySource looks for another surface in the region from which the local
// copy can be made. If any overlapping surface with a fresh local copy cannot
// be used then no source is returned and the data must come from host
// memory.
func (s *Surface) copySource() (*Surface, bool) {
	if !s.cache().prefs.gpuCopy() {
		return nil, false
	}

	var src *Surface
	usable := true
	s.region.forEachOverlapping(s.res.rng, func(o *Surface) {
		if o == s || o.tex == nil || !o.state.LocalFresh() {
			return
		}
		if _, ok := s.tiles(o); !ok {
			usable = false
			return
		}
		if src == nil {
			src = o
		}
	})

	if !usable || src == nil {
		return nil, false
	}
	return src, true
}

func (s *Surface) copyFrom(src *Surface) error {
	region, _ := s.tiles(src)
	if err := s.cache().dev.Copy(s.tex, src.tex, region); err != nil {
		return curated.Errorf(DeviceFailure, err)
	}
	s.cache().stats.GPUCopies++
	return nil
}

// flushOverlapping writes back every overlapping surface whose local copy is
// the only fresh one, so that host memory is current before it is read.
func (s *Surface) flushOverlapping() error {
	var err error
	s.region.forEachOverlapping(s.res.rng, func(o *Surface) {
		if err != nil || o == s || o.state != LocalOnly {
			return
		}
		_, err = o.Sync(LocalToHost)
	})
	return err
}

func (s *Surface) hostMemory() ([]byte, error) {
	data, err := s.cache().host.Sudo(s.res.rng.Start, uint32(s.res.rng.Size()))
	if err != nil {
		return nil, curated.Errorf(HostRangeError, err)
	}
	return data, nil
}

// hostStore returns the pixel store for uncompressed data in host memory.
func (s *Surface) hostStore() gpu.PixelStore {
	return gpu.PixelStore{
		RowLength: s.res.pitch / s.res.bpp,
		SwapBytes: s.res.layout.SwapBytes,
	}
}

// upload reads host memory into the local copy.
func (s *Surface) upload() error {
	data, err := s.hostMemory()
	if err != nil {
		return err
	}

	dev := s.cache().dev
	s.cache().stats.HostUploads++

	if s.res.layout.Compressed {
		if err := dev.UploadCompressed(s.tex, 0, data); err != nil {
			return curated.Errorf(DeviceFailure, err)
		}
		return nil
	}

	store := s.hostStore()

	if s.res.swizzled {
		linear := make([]byte, s.res.spec.ImageSize())
		l, units := s.res.swizzleLayout()
		for u := range units {
			if err := l.Deswizzle(linear[u*l.LinearSize():], data[u*l.SwizzledSize():]); err != nil {
				return curated.Errorf(UnsupportedFormat, err)
			}
		}
		data = linear
		store.RowLength = 0
	}

	// depth data is put into the device's byte order here rather than by
	// the device
	if s.res.layout.Depth {
		data = s.stageDepth(data, store)
		store = gpu.PixelStore{}
	}

	if err := dev.Upload(s.tex, 0, data, store); err != nil {
		return curated.Errorf(DeviceFailure, err)
	}
	return nil
}

// stageDepth returns a tightly packed copy of depth data with each element
// byte swapped.
func (s *Surface) stageDepth(data []byte, store gpu.PixelStore) []byte {
	f := s.res.spec.Format
	row := s.res.spec.Width * s.res.bpp
	stride := store.RowBytes(f, s.res.spec.Width)

	staged := make([]byte, row*s.res.rows())
	for y := range s.res.rows() {
		copy(staged[y*row:(y+1)*row], data[y*stride:])
	}
	gpu.SwapElements(staged, gpu.ElementSize(f))
	return staged
}

// toHost writes the local copy to host memory. It is the exact inverse of
// upload().
func (s *Surface) toHost() error {
	data, err := s.hostMemory()
	if err != nil {
		return err
	}

	dev := s.cache().dev
	s.cache().stats.Downloads++

	if s.res.layout.Compressed {
		if err := dev.DownloadCompressed(s.tex, 0, data); err != nil {
			return curated.Errorf(DeviceFailure, err)
		}
		return nil
	}

	if !s.res.swizzled && !s.res.layout.Depth {
		if err := dev.Download(s.tex, 0, data, s.hostStore()); err != nil {
			return curated.Errorf(DeviceFailure, err)
		}
		return nil
	}

	linear := make([]byte, s.res.spec.ImageSize())
	store := gpu.PixelStore{SwapBytes: s.res.layout.SwapBytes && !s.res.layout.Depth}
	if err := dev.Download(s.tex, 0, linear, store); err != nil {
		return curated.Errorf(DeviceFailure, err)
	}

	if s.res.layout.Depth {
		gpu.SwapElements(linear, gpu.ElementSize(s.res.spec.Format))
	}

	if s.res.swizzled {
		l, units := s.res.swizzleLayout()
		for u := range units {
			if err := l.Swizzle(data[u*l.SwizzledSize():], linear[u*l.LinearSize():]); err != nil {
				return curated.Errorf(UnsupportedFormat, err)
			}
		}
		return nil
	}

	row := s.res.spec.Width * s.res.bpp
	for y := range s.res.rows() {
		copy(data[y*s.res.pitch:], linear[y*row:(y+1)*row])
	}
	return nil
}

// destroy the local copy.
func (s *Surface) destroy() {
	if s.tex != nil {
		s.tex.Destroy()
		s.tex = nil
	}
}
