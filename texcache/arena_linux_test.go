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

//go:build linux

package texcache_test

import (
	"bytes"
	"testing"

	"github.com/jetsetilly/texcache/gpu/software"
	"github.com/jetsetilly/texcache/memory/host"
	"github.com/jetsetilly/texcache/rsx/gcm"
	"github.com/jetsetilly/texcache/texcache"
	"github.com/jetsetilly/texcache/test"
)

func TestArenaTraps(t *testing.T) {
	arena, err := host.NewArena(0x100000)
	test.DemandSuccess(t, err)
	defer arena.Close()

	dev := software.NewDevice()
	cache := texcache.NewCache(dev, arena, arena, gcm.Mapper{}, nil)
	arena.SetFaultHandler(cache.HandleAccessViolation)
	defer cache.Clear()

	base := 4 * arena.PageSize()
	pattern := bytes.Repeat([]byte{1, 2, 3, 4}, 256)
	test.DemandSuccess(t, arena.Write(base, pattern))

	d := argb(base, 16, 16, 64)
	s, err := cache.Entry(d, texcache.HostToLocal)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, s.State(), texcache.Both)

	// reading does not disturb the cache
	buf := make([]byte, 4)
	test.ExpectSuccess(t, arena.Read(base, buf))
	test.ExpectEquality(t, cache.Stats().Faults, 0)

	// writing is trapped and invalidates the local copy
	test.ExpectSuccess(t, arena.Write(base+8, []byte{0xff}))
	test.ExpectEquality(t, cache.Stats().Faults, 1)
	test.ExpectEquality(t, s.State(), texcache.HostOnly)

	_, err = cache.Entry(d, texcache.HostToLocal)
	test.DemandSuccess(t, err)
	px, err := dev.Pixels(s.Texture())
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, px[8], byte(0xff))

	// rendered data is written back before the CPU reads it
	s.Invalidate(texcache.Host)
	for i := range px {
		px[i] = 0xab
	}
	test.DemandSuccess(t, cache.UpdateProtection())
	test.ExpectSuccess(t, arena.Read(base+16, buf))
	test.ExpectEquality(t, string(buf), string([]byte{0xab, 0xab, 0xab, 0xab}))
	test.ExpectEquality(t, s.State(), texcache.Both)

	// writes outside any region are not the cache's business
	test.ExpectSuccess(t, arena.Write(0, []byte{1}))
}
