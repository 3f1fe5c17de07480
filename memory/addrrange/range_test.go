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

package addrrange_test

import (
	"testing"

	"github.com/jetsetilly/texcache/memory/addrrange"
	"github.com/jetsetilly/texcache/test"
)

func TestOverlaps(t *testing.T) {
	a := addrrange.New(0x1000, 0x100)
	b := addrrange.New(0x10ff, 0x10)
	c := addrrange.New(0x1100, 0x10)

	test.ExpectSuccess(t, a.Overlaps(b))
	test.ExpectSuccess(t, b.Overlaps(a))

	// half-open intervals: touching is not overlapping
	test.ExpectFailure(t, a.Overlaps(c))
	test.ExpectFailure(t, c.Overlaps(a))

	// empty ranges never overlap
	test.ExpectFailure(t, a.Overlaps(addrrange.New(0x1010, 0)))
}

func TestContains(t *testing.T) {
	a := addrrange.New(0x1000, 0x100)
	test.ExpectSuccess(t, a.Contains(addrrange.New(0x1000, 0x100)))
	test.ExpectSuccess(t, a.Contains(addrrange.New(0x1010, 0x10)))
	test.ExpectFailure(t, a.Contains(addrrange.New(0x10f0, 0x11)))
	test.ExpectSuccess(t, a.ContainsAddress(0x10ff))
	test.ExpectFailure(t, a.ContainsAddress(0x1100))
}

func TestUnion(t *testing.T) {
	a := addrrange.New(0x1000, 0x100)
	b := addrrange.New(0x2000, 0x100)
	u := a.Union(b)
	test.ExpectEquality(t, u, addrrange.Range{Start: 0x1000, End: 0x2100})
	test.ExpectEquality(t, addrrange.Range{}.Union(a), a)
}

func TestAlign(t *testing.T) {
	a := addrrange.New(0x1004, 0x1000).Align(0x1000)
	test.ExpectEquality(t, a, addrrange.Range{Start: 0x1000, End: 0x3000})
	test.ExpectSuccess(t, a.IsAligned(0x1000))
	test.ExpectFailure(t, addrrange.New(0x1004, 0x10).IsAligned(0x1000))

	// top of the address space does not wrap
	top := addrrange.New(0xfffff000, 0x1000).Align(0x1000)
	test.ExpectEquality(t, top.End, uint64(0x100000000))
	test.ExpectEquality(t, top.Size(), uint64(0x1000))
}
