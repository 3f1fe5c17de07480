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

//go:build linux

package host_test

import (
	"bytes"
	"testing"

	"github.com/jetsetilly/texcache/memory/addrrange"
	"github.com/jetsetilly/texcache/memory/host"
	"github.com/jetsetilly/texcache/memory/protection"
	"github.com/jetsetilly/texcache/test"
)

func newArena(t *testing.T) *host.Arena {
	t.Helper()
	a, err := host.NewArena(0x10000)
	test.DemandSuccess(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

func TestViews(t *testing.T) {
	a := newArena(t)
	test.ExpectEquality(t, a.Size(), uint32(0x10000))

	test.DemandSuccess(t, a.Write(0x100, []byte{1, 2, 3, 4}))
	s, err := a.Sudo(0x100, 4)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, bytes.Equal(s, []byte{1, 2, 3, 4}))

	s[0] = 0xff
	d := make([]byte, 4)
	test.ExpectSuccess(t, a.Read(0x100, d))
	test.ExpectEquality(t, d[0], byte(0xff))

	_, err = a.Sudo(0xfffe, 4)
	test.ExpectFailure(t, err)
	test.ExpectFailure(t, a.Write(0xffff, []byte{1, 2}))
}

func TestProtectArguments(t *testing.T) {
	a := newArena(t)
	p := a.PageSize()
	test.ExpectFailure(t, a.Protect(addrrange.New(1, p), protection.TrapWrites))
	test.ExpectFailure(t, a.Protect(addrrange.New(0, 0x20000), protection.TrapWrites))
	test.ExpectSuccess(t, a.Protect(addrrange.New(0, p), protection.None))
}

func TestWriteFault(t *testing.T) {
	a := newArena(t)
	p := a.PageSize()
	page := addrrange.New(p, p)
	test.DemandSuccess(t, a.Protect(page, protection.TrapWrites))

	var faults []uint32
	a.SetFaultHandler(func(address uint32, write bool) (bool, error) {
		test.ExpectSuccess(t, write)
		faults = append(faults, address)
		return true, a.Protect(page, protection.None)
	})

	// reads are not trapped
	d := make([]byte, 4)
	test.ExpectSuccess(t, a.Read(p, d))
	test.ExpectEquality(t, len(faults), 0)

	test.ExpectSuccess(t, a.Write(p+8, []byte{9, 9}))
	test.DemandEquality(t, len(faults), 1)
	test.ExpectEquality(t, faults[0], p+8)

	s, _ := a.Sudo(p+8, 2)
	test.ExpectSuccess(t, bytes.Equal(s, []byte{9, 9}))
}

func TestReadFault(t *testing.T) {
	a := newArena(t)
	p := a.PageSize()
	page := addrrange.New(0, p)
	test.DemandSuccess(t, a.Protect(page, protection.All))

	var reads int
	a.SetFaultHandler(func(address uint32, write bool) (bool, error) {
		test.ExpectFailure(t, write)
		reads++
		return true, a.Protect(page, protection.TrapWrites)
	})

	d := make([]byte, 4)
	test.ExpectSuccess(t, a.Read(4, d))
	test.ExpectEquality(t, reads, 1)
}

func TestUnhandledFault(t *testing.T) {
	a := newArena(t)
	p := a.PageSize()
	test.DemandSuccess(t, a.Protect(addrrange.New(0, p), protection.TrapWrites))

	test.ExpectFailure(t, a.Write(0, []byte{1}))

	a.SetFaultHandler(func(address uint32, write bool) (bool, error) {
		return false, nil
	})
	test.ExpectFailure(t, a.Write(0, []byte{1}))

	// a handler that never removes the protection runs out of retries
	a.SetFaultHandler(func(address uint32, write bool) (bool, error) {
		return true, nil
	})
	test.ExpectFailure(t, a.Write(0, []byte{1}))
}
