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

// SurfaceInfo is a copy of the state of a surface at the time of the
// snapshot.
type SurfaceInfo struct {
	Descriptor Descriptor
	Range      addrrange.Range
	State      State
	Handle     uint32
}

// RegionInfo is a copy of the state of a region at the time of the
// snapshot.
type RegionInfo struct {
	Range    addrrange.Range
	Applied  protection.Flags
	Surfaces []SurfaceInfo
}

// Snapshot returns the state of every region and surface in address order.
// The snapshot shares nothing with the cache.
func (c *Cache) Snapshot() []RegionInfo {
	snapshot := make([]RegionInfo, 0, len(c.regions))
	for _, r := range c.regions {
		ri := RegionInfo{
			Range:   r.rng,
			Applied: r.applied,
		}
		for _, s := range r.sorted() {
			ri.Surfaces = append(ri.Surfaces, SurfaceInfo{
				Descriptor: s.desc,
				Range:      s.res.rng,
				State:      s.state,
				Handle:     s.Handle(),
			})
		}
		snapshot = append(snapshot, ri)
	}
	return snapshot
}
