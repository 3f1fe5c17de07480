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

package texcache_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jetsetilly/texcache/gpu"
	"github.com/jetsetilly/texcache/gpu/software"
	"github.com/jetsetilly/texcache/memory/addrrange"
	"github.com/jetsetilly/texcache/memory/protection"
	"github.com/jetsetilly/texcache/rsx/gcm"
	"github.com/jetsetilly/texcache/texcache"
	"github.com/jetsetilly/texcache/test"
)

const pageSize = 0x1000

// memory is host memory as a plain slice. it counts every access made
// through Sudo()
type memory struct {
	data  []byte
	sudos int
}

func (m *memory) Sudo(address uint32, size uint32) ([]byte, error) {
	end := uint64(address) + uint64(size)
	if end > uint64(len(m.data)) {
		return nil, fmt.Errorf("memory: %#08x+%d out of range", address, size)
	}
	m.sudos++
	return m.data[address:end], nil
}

// authority records the protection of every page
type authority struct {
	pages map[uint32]protection.Flags
	calls int
	fail  bool
}

func (a *authority) PageSize() uint32 {
	return pageSize
}

func (a *authority) Protect(rng addrrange.Range, flags protection.Flags) error {
	if a.fail {
		return errors.New("authority: refused")
	}
	if !rng.IsAligned(pageSize) {
		return fmt.Errorf("authority: %v not aligned", rng)
	}
	a.calls++
	for p := uint64(rng.Start); p < rng.End; p += pageSize {
		a.pages[uint32(p)] = flags
	}
	return nil
}

// at returns the protection of the page containing address
func (a *authority) at(address uint32) protection.Flags {
	return a.pages[address&^(pageSize-1)]
}

type fixture struct {
	cache *texcache.Cache
	mem   *memory
	auth  *authority
	dev   *software.Device
}

func newFixture(t *testing.T, size int) *fixture {
	t.Helper()
	return newFixtureWithMapper(t, size, gcm.Mapper{})
}

func newFixtureWithMapper(t *testing.T, size int, mapper texcache.FormatMapper) *fixture {
	t.Helper()
	f := &fixture{
		mem:  &memory{data: make([]byte, size)},
		auth: &authority{pages: make(map[uint32]protection.Flags)},
		dev:  software.NewDevice(),
	}
	f.cache = texcache.NewCache(f.dev, f.mem, f.auth, mapper, nil)
	return f
}

// fill host memory with a pattern that differs for every seed
func (f *fixture) fill(address uint32, size int, seed byte) []byte {
	b := f.mem.data[address : int(address)+size]
	for i := range b {
		b[i] = byte(i*31) ^ seed
	}
	return append([]byte{}, b...)
}

func (f *fixture) pixels(t *testing.T, s *texcache.Surface) []byte {
	t.Helper()
	px, err := f.dev.Pixels(s.Texture())
	test.DemandSuccess(t, err)
	return px
}

func linear2D(address uint32, width int, height int, pitch uint32, code gcm.Code) texcache.Descriptor {
	return texcache.Descriptor{
		Address:   address,
		Pitch:     pitch,
		Width:     width,
		Height:    height,
		Depth:     1,
		MipCount:  1,
		Dimension: 2,
		Format:    code | gcm.LN,
		Target:    gpu.Target2D,
	}
}

func argb(address uint32, width int, height int, pitch uint32) texcache.Descriptor {
	return linear2D(address, width, height, pitch, gcm.A8R8G8B8)
}
