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


package workload

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/jetsetilly/texcache/curated"
	"github.com/jetsetilly/texcache/gpu"
	"github.com/jetsetilly/texcache/logger"
	"github.com/jetsetilly/texcache/memory/host"
	"github.com/jetsetilly/texcache/random"
	"github.com/jetsetilly/texcache/texcache"
)

// Memory is host memory as the CPU sees it. host.Arena is the usual
// implementation.
type Memory interface {
	texcache.HostMemory
	Write(address uint32, data []byte) error
	Read(address uint32, dst []byte) error
	SetFaultHandler(handler host.FaultHandler)
}

// salt values for random data that is not specific to a texture
const (
	renderSalt = 100
	dmaSalt    = 200
)

// Scene is a self-checking workload for a texture cache.
type Scene struct {
	mem   Memory
	dev   gpu.Device
	cache *texcache.Cache
	rnd   *random.Random

	textures []texcache.Descriptor
	target   texcache.Descriptor
	inset    texcache.Descriptor

	frame int
}

// NewScene is the preferred method of initialisation for the Scene type. The
// cache is installed as the fault handler of the memory. The cache should use
// accurate protection, otherwise writes to the tail of a large texture may
// not be trapped and verification will fail.
//
// If zeroSeed is true the scene produces the same data every time the
// program is run.
func NewScene(mem Memory, dev gpu.Device, cache *texcache.Cache, zeroSeed bool) (*Scene, error) {
	sc := &Scene{
		mem:      mem,
		dev:      dev,
		cache:    cache,
		textures: textures(),
		target:   target(),
		inset:    inset(),
	}
	sc.rnd = random.NewRandom(sc)
	sc.rnd.ZeroSeed = zeroSeed

	mem.SetFaultHandler(cache.HandleAccessViolation)

	// fill host memory before the cache protects any of it
	b, err := mem.Sudo(0, MemorySize)
	if err != nil {
		return nil, curated.Errorf(MemoryError, err)
	}
	sc.rnd.Fill(0, b)

	for _, d := range sc.textures {
		if _, err := cache.Entry(d, texcache.HostToLocal); err != nil {
			return nil, err
		}
	}
	if err := cache.UpdateProtection(); err != nil {
		return nil, err
	}

	st := cache.Stats()
	logger.Logf(logger.Allow, "workload", "%d textures in %d regions", st.Surfaces, st.Regions)

	return sc, nil
}

// Frame implements the random.Clock interface.
func (sc *Scene) Frame() int {
	return sc.frame
}

// Descriptors returns every texture that has been placed in the scene.
func (sc *Scene) Descriptors() []texcache.Descriptor {
	return append(slices.Clone(sc.textures), sc.target, sc.inset)
}

// Step runs a single frame of the scene. An error is returned if the scene
// fails verification.
func (sc *Scene) Step() error {
	if sc.frame == mosaicFrame {
		sc.textures = append(sc.textures, mosaic())
		logger.Logf(logger.Allow, "workload", "frame %d: adding %v", sc.frame, mosaic())
	}

	if sc.frame%dmaFrequency == dmaFrequency-1 {
		if err := sc.dma(sc.textures[0]); err != nil {
			return err
		}
	}

	for i, d := range sc.textures {
		if err := sc.check(i+1, d); err != nil {
			return err
		}
	}

	if err := sc.render(); err != nil {
		return err
	}

	if err := sc.cache.UpdateProtection(); err != nil {
		return err
	}

	sc.frame++
	return nil
}

// compare the two slices and return a VerificationFailure for the first
// byte that differs.
func (sc *Scene) compare(d texcache.Descriptor, got []byte, want []byte) error {
	if bytes.Equal(got, want) {
		return nil
	}
	for i := range min(len(got), len(want)) {
		if got[i] != want[i] {
			return curated.Errorf(VerificationFailure, sc.frame, d, i)
		}
	}
	return curated.Errorf(VerificationFailure, sc.frame, d, min(len(got), len(want)))
}

// check writes to the texture through the protected view, updates the local
// copy and then reads it back after pretending that the GPU has written to
// it. the bytes read back must be the bytes in host memory before the round
// trip.
func (sc *Scene) check(salt int, d texcache.Descriptor) error {
	s, err := sc.cache.Entry(d, texcache.HostToLocal)
	if err != nil {
		return err
	}
	rng := s.Range()
	size := uint32(rng.Size())

	data := make([]byte, 4)
	sc.rnd.Fill(salt, data)
	offset := uint32(sc.rnd.Intn(salt, int(size)-len(data)))
	if err := sc.mem.Write(rng.Start+offset, data); err != nil {
		return curated.Errorf(MemoryError, err)
	}

	s, err = sc.cache.Entry(d, texcache.HostToLocal)
	if err != nil {
		return err
	}

	want, err := sc.mem.Sudo(rng.Start, size)
	if err != nil {
		return curated.Errorf(MemoryError, err)
	}
	want = slices.Clone(want)

	s.Invalidate(texcache.Host)
	if err := sc.cache.UpdateProtection(); err != nil {
		return err
	}

	got := make([]byte, size)
	if err := sc.mem.Read(rng.Start, got); err != nil {
		return curated.Errorf(MemoryError, err)
	}

	return sc.compare(d, got, want)
}

// render new pixels into the local copy of the target and read them back
// through the protected view.
func (sc *Scene) render() error {
	t, err := sc.cache.Entry(sc.target, texcache.HostToLocal)
	if err != nil {
		return err
	}
	rng := t.Range()

	pattern := make([]byte, rng.Size())
	sc.rnd.Fill(renderSalt, pattern)
	if err := sc.dev.Upload(t.Texture(), 0, pattern, gpu.PixelStore{}); err != nil {
		return fmt.Errorf("workload: render: %w", err)
	}
	t.Invalidate(texcache.Host)

	// the inset is copied from the target without touching host memory
	if _, err := sc.cache.Entry(sc.inset, texcache.HostToLocal); err != nil {
		return err
	}

	if err := sc.cache.UpdateProtection(); err != nil {
		return err
	}

	got := make([]byte, len(pattern))
	if err := sc.mem.Read(rng.Start, got); err != nil {
		return curated.Errorf(MemoryError, err)
	}

	return sc.compare(sc.target, got, pattern)
}

// dma writes to the texture without going through the protected view.
func (sc *Scene) dma(d texcache.Descriptor) error {
	s, err := sc.cache.Entry(d, texcache.HostToLocal)
	if err != nil {
		return err
	}
	rng := s.Range()

	if err := sc.cache.InvalidateRange(rng); err != nil {
		return err
	}

	b, err := sc.mem.Sudo(rng.Start, uint32(rng.Size()))
	if err != nil {
		return curated.Errorf(MemoryError, err)
	}
	sc.rnd.Fill(dmaSalt, b)

	return nil
}
