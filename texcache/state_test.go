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
	"testing"

	"github.com/jetsetilly/texcache/memory/protection"
	"github.com/jetsetilly/texcache/test"
)

func TestTransitions(t *testing.T) {
	type result struct {
		next     State
		transfer bool
	}

	expected := map[State][2]result{
		Invalid:   {HostToLocal: {Both, true}, LocalToHost: {Both, true}},
		LocalOnly: {HostToLocal: {LocalOnly, false}, LocalToHost: {Both, true}},
		HostOnly:  {HostToLocal: {Both, true}, LocalToHost: {HostOnly, false}},
		Both:      {HostToLocal: {Both, false}, LocalToHost: {Both, false}},
	}

	for s, e := range expected {
		for _, d := range []Direction{HostToLocal, LocalToHost} {
			next, transfer := s.Transition(d)
			test.ExpectEquality(t, next, e[d].next, s, d)
			test.ExpectEquality(t, transfer, e[d].transfer, s, d)

			// after a sync the direction is always satisfied
			if d == HostToLocal {
				test.ExpectSuccess(t, next.LocalFresh(), s, d)
			} else {
				test.ExpectSuccess(t, next.HostFresh(), s, d)
			}
		}
	}
}

func TestInvalidate(t *testing.T) {
	test.ExpectEquality(t, Both.Invalidate(Host), LocalOnly)
	test.ExpectEquality(t, Both.Invalidate(Local), HostOnly)
	test.ExpectEquality(t, Both.Invalidate(HostAndLocal), Invalid)
	test.ExpectEquality(t, LocalOnly.Invalidate(Host), LocalOnly)
	test.ExpectEquality(t, LocalOnly.Invalidate(Local), Invalid)
	test.ExpectEquality(t, HostOnly.Invalidate(Local), HostOnly)
	test.ExpectEquality(t, HostOnly.Invalidate(Host), Invalid)
	test.ExpectEquality(t, Invalid.Invalidate(HostAndLocal), Invalid)
}

func TestRequiresProtection(t *testing.T) {
	test.ExpectEquality(t, Invalid.RequiresProtection(), protection.None)
	test.ExpectEquality(t, HostOnly.RequiresProtection(), protection.None)
	test.ExpectEquality(t, LocalOnly.RequiresProtection(), protection.All)
	test.ExpectEquality(t, Both.RequiresProtection(), protection.TrapWrites)
}
