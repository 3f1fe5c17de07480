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

package protection_test

import (
	"testing"

	"github.com/jetsetilly/texcache/memory/protection"
	"github.com/jetsetilly/texcache/test"
)

func TestFlags(t *testing.T) {
	f := protection.TrapWrites
	test.ExpectEquality(t, f.String(), "w")
	test.ExpectEquality(t, f.Union(protection.TrapReads), protection.All)
	test.ExpectEquality(t, protection.All.String(), "rw")
	test.ExpectEquality(t, protection.None.String(), "none")

	test.ExpectEquality(t, protection.All.Remove(protection.TrapWrites), protection.TrapReads)
	test.ExpectEquality(t, f.Remove(protection.TrapReads), protection.TrapWrites)

	test.ExpectSuccess(t, protection.All.Traps(protection.TrapWrites))
	test.ExpectFailure(t, protection.TrapWrites.Traps(protection.TrapReads))
	test.ExpectFailure(t, protection.All.Traps(protection.None))
}
