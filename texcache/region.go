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
	"maps"
	"slices"

	"github.com/jetsetilly/texcache/curated"
	"github.com/jetsetilly/texcache/logger"
	"github.com/jetsetilly/texcache/memory/addrrange"
	"github.com/jetsetilly/texcache/memory/protection"
)

// Region is a page aligned range of host memory and the surfaces that
// overlap it. The protection applied to the range is the union of the
// protection required by each surface.
type Region struct {
	cache *Cache

	rng      addrrange.Range
	surfaces map[Descriptor]*Surface

	// protection currently applied to rng by the authority
	applied protection.Flags
}

func newRegion(cache *Cache, rng addrrange.Range) *Region {
	return &Region{
		cache:    cache,
		rng:      rng,
		surfaces: make(map[Descriptor]*Surface),
	}
}

func (r *Region) String() string {
	return fmt.Sprintf("%v (%d surfaces, %s)", r.rng, len(r.surfaces), r.applied)
}

// Range returns the host memory covered by the region.
func (r *Region) Range() addrrange.Range {
	return r.rng
}

// Applied returns the protection currently applied to the region.
func (r *Region) Applied() protection.Flags {
	return r.applied
}

// Len returns the number of surfaces in the region.
func (r *Region) Len() int {
	return len(r.surfaces)
}

// Find returns the surface for the descriptor.
func (r *Region) Find(desc Descriptor) (*Surface, bool) {
	s, ok := r.surfaces[desc]
	return s, ok
}

// Add creates a new surface for the descriptor. It is an error if there is
// already a surface for the descriptor.
func (r *Region) Add(desc Descriptor) (*Surface, error) {
	if _, ok := r.surfaces[desc]; ok {
		return nil, curated.Errorf(DuplicateSurface, desc)
	}

	res, err := desc.resolve(r.cache.mapper)
	if err != nil {
		return nil, err
	}

	s := &Surface{
		desc:   desc,
		res:    res,
		state:  HostOnly,
		region: r,
	}
	r.surfaces[desc] = s

	return s, nil
}

// sorted returns the surfaces ordered by descriptor.
func (r *Region) sorted() []*Surface {
	return slices.SortedFunc(maps.Values(r.surfaces), func(a, b *Surface) int {
		return a.desc.compare(b.desc)
	})
}

// ForEach calls fn for every surface in the region. The order is the same
// on every call for the same set of surfaces.
func (r *Region) ForEach(fn func(s *Surface)) {
	for _, s := range r.sorted() {
		fn(s)
	}
}

// ForEachIn calls fn for every surface that overlaps rng.
func (r *Region) ForEachIn(rng addrrange.Range, fn func(s *Surface)) {
	r.forEachOverlapping(rng, fn)
}

func (r *Region) forEachOverlapping(rng addrrange.Range, fn func(s *Surface)) {
	for _, s := range r.sorted() {
		if s.res.rng.Overlaps(rng) {
			fn(s)
		}
	}
}

// RequiredProtection returns the union of the protection required by every
// surface in the region.
func (r *Region) RequiredProtection() protection.Flags {
	var f protection.Flags
	for _, s := range r.surfaces {
		f = f.Union(s.RequiresProtection())
	}
	return f
}

// apply sets the protection of the region. The authority is only called
// if the protection changes.
func (r *Region) apply(flags protection.Flags) error {
	if flags == r.applied {
		return nil
	}
	if err := r.cache.auth.Protect(r.rng, flags); err != nil {
		err = curated.Errorf(ProtectionFailure, err)
		logger.Logf(logger.Allow, "texcache", "%v: %v", r.rng, err)
		return err
	}
	logger.Logf(r.cache.prefs, "protection", "%v: %s -> %s", r.rng, r.applied, flags)
	r.applied = flags
	r.cache.stats.ProtectionChanges++
	return nil
}

// Protect applies the protection required by the surfaces in the region.
func (r *Region) Protect() error {
	return r.apply(r.RequiredProtection())
}

// Unprotect stops trapping the named accesses.
func (r *Region) Unprotect(access protection.Flags) error {
	return r.apply(r.applied.Remove(access))
}

// Extend the region so that it covers rng. The region never shrinks.
func (r *Region) Extend(rng addrrange.Range) error {
	if r.rng.Contains(rng) {
		return nil
	}

	// the range of a protected region must not change
	if err := r.Unprotect(protection.All); err != nil {
		return err
	}
	r.rng = r.rng.Union(rng)

	return r.Protect()
}

// Combine moves every surface in other to this region and extends the
// region to cover both ranges. The other region is left empty and
// unprotected.
func (r *Region) Combine(other *Region) error {
	if err := r.Unprotect(protection.All); err != nil {
		return err
	}
	if err := r.absorb(other); err != nil {
		return err
	}

	// protection is recalculated from the surfaces that are now in the
	// region. it may be less than the protection of either region before
	// the merge
	return r.Protect()
}

// absorb moves the surfaces of other into the region and widens the range.
// the region must already be unprotected and is left unprotected.
func (r *Region) absorb(other *Region) error {
	if err := other.Unprotect(protection.All); err != nil {
		return err
	}

	for desc, s := range other.surfaces {
		if _, ok := r.surfaces[desc]; ok {
			s.destroy()
			continue
		}
		s.region = r
		r.surfaces[desc] = s
	}
	clear(other.surfaces)

	r.rng = r.rng.Union(other.rng)
	return nil
}

// Clear removes the protection from the region and destroys the local copy
// of every surface. The surfaces are removed from the region.
func (r *Region) Clear() error {
	err := r.Unprotect(protection.All)
	for _, s := range r.surfaces {
		s.destroy()
		s.region = nil
	}
	clear(r.surfaces)
	return err
}
