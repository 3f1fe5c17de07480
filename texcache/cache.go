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
	"slices"

	"github.com/jetsetilly/texcache/gpu"
	"github.com/jetsetilly/texcache/logger"
	"github.com/jetsetilly/texcache/memory/addrrange"
	"github.com/jetsetilly/texcache/memory/protection"
)

// HostMemory gives the cache access to host memory without triggering
// protection.
type HostMemory interface {
	Sudo(address uint32, size uint32) ([]byte, error)
}

// Cache is the top level of the texture cache. It owns every region.
type Cache struct {
	dev    gpu.Device
	host   HostMemory
	auth   protection.Authority
	mapper FormatMapper
	prefs  *Preferences

	// sorted by start address. regions never overlap
	regions []*Region

	stats Stats
}

// NewCache is the preferred method of initialisation for the Cache type. If
// prefs is nil the default preferences are used.
func NewCache(dev gpu.Device, host HostMemory, auth protection.Authority, mapper FormatMapper, prefs *Preferences) *Cache {
	if prefs == nil {
		prefs = newPreferences()
	}
	return &Cache{
		dev:    dev,
		host:   host,
		auth:   auth,
		mapper: mapper,
		prefs:  prefs,
	}
}

// Preferences returns the preferences in use by the cache.
func (c *Cache) Preferences() *Preferences {
	return c.prefs
}

// Stats returns the current statistics.
func (c *Cache) Stats() Stats {
	s := c.stats
	s.Regions = len(c.regions)
	for _, r := range c.regions {
		s.Surfaces += r.Len()
	}
	return s
}

// alignedRange returns the range of host memory to protect for a surface
// covering rng.
func (c *Cache) alignedRange(rng addrrange.Range) addrrange.Range {
	page := c.auth.PageSize()
	if !c.prefs.accurate() && rng.Size() > uint64(page) {
		rng.End = uint64(rng.Start) + (rng.Size() &^ uint64(page-1))
	}
	return rng.Align(page)
}

// FindRegion returns the region covering the address.
func (c *Cache) FindRegion(address uint32) (*Region, bool) {
	i, ok := slices.BinarySearchFunc(c.regions, address, func(r *Region, a uint32) int {
		switch {
		case r.rng.ContainsAddress(a):
			return 0
		case uint64(a) >= r.rng.End:
			return -1
		}
		return 1
	})
	if !ok {
		return nil, false
	}
	return c.regions[i], true
}

// ForEachRegion calls fn for every region in address order.
func (c *Cache) ForEachRegion(fn func(r *Region)) {
	for _, r := range c.regions {
		fn(r)
	}
}

// region returns the single region covering rng, creating or combining
// regions as necessary.
func (c *Cache) region(rng addrrange.Range) (*Region, error) {
	first := slices.IndexFunc(c.regions, func(r *Region) bool {
		return r.rng.Overlaps(rng)
	})

	if first == -1 {
		r := newRegion(c, rng)
		i, _ := slices.BinarySearchFunc(c.regions, rng.Start, func(r *Region, a uint32) int {
			return cmp.Compare(r.rng.Start, a)
		})
		c.regions = slices.Insert(c.regions, i, r)
		logger.Logf(c.prefs, "texcache", "new region %v", rng)
		return r, nil
	}

	r := c.regions[first]

	// regions are sorted and do not overlap so every other region that
	// overlaps rng immediately follows the first
	last := first + 1
	for last < len(c.regions) && c.regions[last].rng.Overlaps(rng) {
		last++
	}

	if last == first+1 {
		if err := r.Extend(rng); err != nil {
			return nil, err
		}
		return r, nil
	}

	// protection is removed once and applied once for the whole merge
	if err := r.Unprotect(protection.All); err != nil {
		return nil, err
	}
	for _, o := range c.regions[first+1 : last] {
		if err := r.absorb(o); err != nil {
			return nil, err
		}
		c.stats.Merges++
	}
	r.rng = r.rng.Union(rng)

	logger.Logf(logger.Allow, "texcache", "combined %d regions into %v", last-first, r.rng)
	c.regions = slices.Delete(c.regions, first+1, last)

	if err := r.Protect(); err != nil {
		return nil, err
	}

	return r, nil
}

// Entry returns the surface for the descriptor, synced in the given
// direction. The returned surface must not be kept beyond a call to Clear().
func (c *Cache) Entry(desc Descriptor, d Direction) (*Surface, error) {
	res, err := desc.resolve(c.mapper)
	if err != nil {
		logger.Logf(logger.Allow, "texcache", "%v: %v", desc, err)
		return nil, err
	}

	r, err := c.region(c.alignedRange(res.rng))
	if err != nil {
		return nil, err
	}

	s, ok := r.Find(desc)
	if ok {
		c.stats.Hits++
	} else {
		c.stats.Misses++
		s, err = r.Add(desc)
		if err != nil {
			return nil, err
		}
	}

	if _, err := s.Sync(d); err != nil {
		logger.Logf(logger.Allow, "texcache", "%v: %v", desc, err)
		return nil, err
	}

	if err := r.Protect(); err != nil {
		return nil, err
	}

	return s, nil
}

// UpdateProtection applies the protection required by every region. It
// should be called at the end of every frame.
func (c *Cache) UpdateProtection() error {
	for _, r := range c.regions {
		if err := r.Protect(); err != nil {
			return err
		}
	}
	return nil
}

// Clear removes protection from every region and destroys every surface.
func (c *Cache) Clear() error {
	var err error
	for _, r := range c.regions {
		if e := r.Clear(); e != nil && err == nil {
			err = e
		}
	}
	c.regions = c.regions[:0]
	return err
}

// FlushAll writes back every surface whose local copy is the only fresh
// copy.
func (c *Cache) FlushAll() error {
	for _, r := range c.regions {
		for _, s := range r.sorted() {
			if s.state != LocalOnly {
				continue
			}
			if _, err := s.Sync(LocalToHost); err != nil {
				return err
			}
		}
		if err := r.Protect(); err != nil {
			return err
		}
	}
	return nil
}
