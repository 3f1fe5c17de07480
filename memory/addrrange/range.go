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

// Package addrrange defines the half-open address interval used to describe
// areas of host memory.
package addrrange

import "fmt"

// Range is the half-open interval [Start, End). The End field is a uint64 so
// that a range can reach the very top of the 32bit address space.
type Range struct {
	Start uint32
	End   uint64
}

// New returns a Range beginning at start and covering size bytes.
func New(start uint32, size uint32) Range {
	return Range{Start: start, End: uint64(start) + uint64(size)}
}

func (r Range) String() string {
	return fmt.Sprintf("%#08x-%#08x", r.Start, r.End)
}

// Size returns the number of bytes covered by the range.
func (r Range) Size() uint64 {
	if r.End < uint64(r.Start) {
		return 0
	}
	return r.End - uint64(r.Start)
}

// IsEmpty returns true if the range covers no bytes.
func (r Range) IsEmpty() bool {
	return r.End <= uint64(r.Start)
}

// Overlaps returns true if the two ranges have at least one byte in common.
func (r Range) Overlaps(o Range) bool {
	if r.IsEmpty() || o.IsEmpty() {
		return false
	}
	return uint64(r.Start) < o.End && uint64(o.Start) < r.End
}

// Contains returns true if every byte of o is also in r. An empty range is
// contained by any range.
func (r Range) Contains(o Range) bool {
	if o.IsEmpty() {
		return true
	}
	return r.Start <= o.Start && o.End <= r.End
}

// ContainsAddress returns true if address is inside the range.
func (r Range) ContainsAddress(address uint32) bool {
	return r.Start <= address && uint64(address) < r.End
}

// Union returns the smallest range that covers both ranges. Empty ranges
// are ignored.
func (r Range) Union(o Range) Range {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	u := r
	if o.Start < u.Start {
		u.Start = o.Start
	}
	if o.End > u.End {
		u.End = o.End
	}
	return u
}

// Align returns the range expanded outwards to the nearest multiple of
// pageSize at both ends. The pageSize value must be a power of two.
func (r Range) Align(pageSize uint32) Range {
	mask := uint64(pageSize) - 1
	return Range{
		Start: r.Start &^ uint32(mask),
		End:   (r.End + mask) &^ mask,
	}
}

// IsAligned returns true if both ends of the range are on a pageSize
// boundary.
func (r Range) IsAligned(pageSize uint32) bool {
	mask := uint64(pageSize) - 1
	return uint64(r.Start)&mask == 0 && r.End&mask == 0
}
