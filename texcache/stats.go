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

import "fmt"

// Stats counts the work done by the cache since it was created.
type Stats struct {
	// calls to Entry() that found an existing surface and those that
	// created a new one
	Hits   int
	Misses int

	// transfers to and from host memory
	HostUploads int
	Downloads   int

	// local copies made from other local copies
	GPUCopies int

	// access violations handled
	Faults int

	// calls made to the protection authority
	ProtectionChanges int

	// regions combined into another region
	Merges int

	// current number of regions and surfaces
	Regions  int
	Surfaces int
}

func (s Stats) String() string {
	return fmt.Sprintf("hits %d, misses %d, uploads %d, downloads %d, gpu copies %d, faults %d, protection changes %d, merges %d, regions %d, surfaces %d",
		s.Hits, s.Misses, s.HostUploads, s.Downloads, s.GPUCopies, s.Faults, s.ProtectionChanges, s.Merges, s.Regions, s.Surfaces)
}
