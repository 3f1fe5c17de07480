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

package workload_test

import (
	"testing"

	"github.com/jetsetilly/texcache/curated"
	"github.com/jetsetilly/texcache/digest"
	"github.com/jetsetilly/texcache/gpu"
	"github.com/jetsetilly/texcache/gpu/software"
	"github.com/jetsetilly/texcache/memory/host"
	"github.com/jetsetilly/texcache/rsx/gcm"
	"github.com/jetsetilly/texcache/test"
	"github.com/jetsetilly/texcache/texcache"
	"github.com/jetsetilly/texcache/workload"
)

func newScene(t *testing.T, dev gpu.Device) (*workload.Scene, *texcache.Cache) {
	sc, cache, _ := newSceneWithSeed(t, dev, false)
	return sc, cache
}

func newSceneWithSeed(t *testing.T, dev gpu.Device, zeroSeed bool) (*workload.Scene, *texcache.Cache, *host.Arena) {
	t.Helper()

	arena, err := host.NewArena(workload.MemorySize)
	test.DemandSuccess(t, err)
	t.Cleanup(func() { arena.Close() })

	cache := texcache.NewCache(dev, arena, arena, gcm.Mapper{}, nil)
	t.Cleanup(func() { cache.Clear() })

	sc, err := workload.NewScene(arena, dev, cache, zeroSeed)
	test.DemandSuccess(t, err)

	return sc, cache, arena
}

func TestScene(t *testing.T) {
	sc, cache := newScene(t, software.NewDevice())

	for range 8 {
		test.DemandSuccess(t, sc.Step())
	}
	test.ExpectEquality(t, sc.Frame(), 8)

	st := cache.Stats()
	test.ExpectSuccess(t, st.Faults > 0)
	test.ExpectSuccess(t, st.Merges > 0)
	test.ExpectSuccess(t, st.GPUCopies > 0)
	test.ExpectSuccess(t, st.Downloads > 0)
	test.ExpectEquality(t, st.Surfaces, len(sc.Descriptors()))
}

func TestSceneRepeatable(t *testing.T) {
	a, _, memA := newSceneWithSeed(t, software.NewDevice(), true)
	b, _, memB := newSceneWithSeed(t, software.NewDevice(), true)

	digA := digest.NewMemory(memA, workload.MemorySize)
	digB := digest.NewMemory(memB, workload.MemorySize)

	for range 4 {
		test.DemandSuccess(t, a.Step())
		test.DemandSuccess(t, b.Step())
		test.DemandSuccess(t, digA.NewFrame())
		test.DemandSuccess(t, digB.NewFrame())
	}
	test.ExpectEquality(t, digA.Hash(), digB.Hash())
}

// corrupt damages every download
type corrupt struct {
	gpu.Device
}

func (c corrupt) Download(tex gpu.Texture, level int, dst []byte, store gpu.PixelStore) error {
	if err := c.Device.Download(tex, level, dst, store); err != nil {
		return err
	}
	dst[0] ^= 0xff
	return nil
}

func TestSceneVerification(t *testing.T) {
	sc, _ := newScene(t, corrupt{Device: software.NewDevice()})

	err := sc.Step()
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, workload.VerificationFailure))
}

func BenchmarkScene(b *testing.B) {
	arena, err := host.NewArena(workload.MemorySize)
	if err != nil {
		b.Fatal(err)
	}
	defer arena.Close()

	dev := software.NewDevice()
	cache := texcache.NewCache(dev, arena, arena, gcm.Mapper{}, nil)
	defer cache.Clear()

	sc, err := workload.NewScene(arena, dev, cache, false)
	if err != nil {
		b.Fatal(err)
	}

	for b.Loop() {
		if err := sc.Step(); err != nil {
			b.Fatal(err)
		}
	}
}
