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
	"github.com/jetsetilly/texcache/memory/addrrange"
	"github.com/jetsetilly/texcache/memory/protection"
)

// HandleAccessViolation is called when the CPU accesses host memory that is
// protected. The access has not yet happened. Returns true if the address
// is in a region whose protection caused the fault, in which case the
// region's protection has been relaxed and the access can be retried. A
// false value means the fault is nothing to do with the cache.
//
// A read causes local only surfaces in the region to be written back. A
// write does the same and then marks every local copy in the region as
// stale.
func (c *Cache) HandleAccessViolation(address uint32, write bool) (bool, error) {
	r, ok := c.FindRegion(address)
	if !ok {
		return false, nil
	}

	access := protection.TrapReads
	if write {
		access = protection.TrapWrites
	}
	if !r.applied.Traps(access) {
		return false, nil
	}

	c.stats.Faults++

	if err := c.release(r, r.rng, write); err != nil {
		return false, err
	}

	return true, nil
}

// InvalidateRange is for writes to host memory that are not trapped, such
// as DMA transfers. Every surface overlapping rng is treated as if the
// write had been trapped. It should be called before the write happens.
func (c *Cache) InvalidateRange(rng addrrange.Range) error {
	for _, r := range c.regions {
		if !r.rng.Overlaps(rng) {
			continue
		}
		if err := c.release(r, rng, true); err != nil {
			return err
		}
	}
	return nil
}

// release the surfaces in the region that overlap rng and reapply the
// region's protection.
func (c *Cache) release(r *Region, rng addrrange.Range, write bool) error {
	var err error

	r.forEachOverlapping(rng, func(s *Surface) {
		if err != nil || s.state != LocalOnly {
			return
		}
		_, err = s.Sync(LocalToHost)
	})
	if err != nil {
		return err
	}

	if write {
		r.forEachOverlapping(rng, func(s *Surface) {
			s.Invalidate(Local)
		})
	}

	// protection must be correct before the faulting access is retried
	return r.Protect()
}
