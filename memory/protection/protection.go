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

// Package protection describes which CPU accesses to host memory should be
// trapped, and the Authority interface that applies those requirements to
// real memory.
package protection

import (
	"strings"

	"github.com/jetsetilly/texcache/memory/addrrange"
)

// Flags is the set of CPU access classes that should cause a trap.
type Flags int

// List of valid Flags values. The zero value traps nothing.
const (
	TrapReads Flags = 1 << iota
	TrapWrites

	None Flags = 0
	All  Flags = TrapReads | TrapWrites
)

func (f Flags) String() string {
	if f == None {
		return "none"
	}
	s := strings.Builder{}
	if f&TrapReads == TrapReads {
		s.WriteString("r")
	}
	if f&TrapWrites == TrapWrites {
		s.WriteString("w")
	}
	return s.String()
}

// Union returns the flags required to satisfy both f and o.
func (f Flags) Union(o Flags) Flags {
	return f | o
}

// Remove returns f without the access classes in o.
func (f Flags) Remove(o Flags) Flags {
	return f &^ o
}

// Traps returns true if every access class in o is trapped by f.
func (f Flags) Traps(o Flags) bool {
	return o != None && f&o == o
}

// Authority applies protection to host memory. There is one Authority for
// the host address space and it is given to the cache at creation time.
type Authority interface {
	// the granularity of protection. all ranges given to Protect() are
	// aligned to the page size
	PageSize() uint32

	// apply protection to the range, replacing any protection that was
	// previously applied to it
	Protect(rng addrrange.Range, flags Flags) error
}
