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

// Package host provides the emulated CPU's address space. The memory is a
// single shared memory object mapped twice. The user view is what the
// emulated CPU sees and it is subject to page protection. The sudo view is
// never protected and is used by the texture cache to move data without
// triggering its own traps.
//
// Accesses made through Write() and Read() are guarded. An access that hits
// a protected page is turned into a call to the arena's FaultHandler. If the
// handler reports the fault as handled the access is retried.
package host

// FaultHandler is called when a guarded access hits a protected page. The
// address is relative to the start of the arena. The handler should return
// true if it has dealt with the fault and the access can be retried.
type FaultHandler func(address uint32, write bool) (bool, error)
