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

package host

import (
	"errors"
	"fmt"
	"runtime/debug"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/jetsetilly/texcache/logger"
	"github.com/jetsetilly/texcache/memory/addrrange"
	"github.com/jetsetilly/texcache/memory/protection"
)

// the number of times an access will be retried after a handled fault
const maxRetries = 8

// Arena is the emulated address space. It implements protection.Authority.
type Arena struct {
	user []byte
	sudo []byte

	pageSize uint32

	// base address of the user view
	base uintptr

	handler FaultHandler
}

// NewArena creates an arena of at least size bytes. The size is rounded up
// to a multiple of the page size.
func NewArena(size uint32) (*Arena, error) {
	a := &Arena{
		pageSize: uint32(unix.Getpagesize()),
	}

	sz := addrrange.New(0, size).Align(a.pageSize).Size()
	if sz == 0 || sz > 1<<32-uint64(a.pageSize) {
		return nil, fmt.Errorf("host: invalid arena size: %d", size)
	}

	fd, err := unix.MemfdCreate("texcache-host", unix.MFD_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("host: memfd: %w", err)
	}
	defer unix.Close(fd)

	if err := unix.Ftruncate(fd, int64(sz)); err != nil {
		return nil, fmt.Errorf("host: ftruncate: %w", err)
	}

	a.user, err = unix.Mmap(fd, 0, int(sz), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("host: mmap user view: %w", err)
	}

	a.sudo, err = unix.Mmap(fd, 0, int(sz), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		_ = unix.Munmap(a.user)
		return nil, fmt.Errorf("host: mmap sudo view: %w", err)
	}

	a.base = uintptr(unsafe.Pointer(&a.user[0]))

	logger.Logf(logger.Allow, "host", "arena of %d bytes (page size %d)", sz, a.pageSize)

	return a, nil
}

// Close unmaps both views of the arena. The arena must not be used after
// Close() has been called.
func (a *Arena) Close() error {
	err := errors.Join(unix.Munmap(a.user), unix.Munmap(a.sudo))
	a.user = nil
	a.sudo = nil
	return err
}

// Size returns the number of bytes in the arena.
func (a *Arena) Size() uint32 {
	return uint32(len(a.user))
}

// SetFaultHandler installs the function to call when a guarded access hits
// a protected page. A nil handler means every fault is an error.
func (a *Arena) SetFaultHandler(handler FaultHandler) {
	a.handler = handler
}

func (a *Arena) span(address uint32, size uint32) (addrrange.Range, error) {
	r := addrrange.New(address, size)
	if r.End > uint64(len(a.user)) {
		return r, fmt.Errorf("host: %v outside arena of %d bytes", r, len(a.user))
	}
	return r, nil
}

// Sudo returns the unprotected view of the memory at address. Writes to the
// returned slice are visible through the user view.
func (a *Arena) Sudo(address uint32, size uint32) ([]byte, error) {
	r, err := a.span(address, size)
	if err != nil {
		return nil, err
	}
	return a.sudo[r.Start:r.End:r.End], nil
}

// PageSize implements the protection.Authority interface.
func (a *Arena) PageSize() uint32 {
	return a.pageSize
}

// Protect implements the protection.Authority interface.
func (a *Arena) Protect(rng addrrange.Range, flags protection.Flags) error {
	if !rng.IsAligned(a.pageSize) {
		return fmt.Errorf("host: protect: %v is not page aligned", rng)
	}
	if rng.End > uint64(len(a.user)) {
		return fmt.Errorf("host: protect: %v outside arena of %d bytes", rng, len(a.user))
	}
	if rng.IsEmpty() {
		return nil
	}

	prot := unix.PROT_READ | unix.PROT_WRITE
	switch {
	case flags.Traps(protection.TrapReads):
		prot = unix.PROT_NONE
	case flags.Traps(protection.TrapWrites):
		prot = unix.PROT_READ
	}

	if err := unix.Mprotect(a.user[rng.Start:rng.End], prot); err != nil {
		return fmt.Errorf("host: mprotect %v: %w", rng, err)
	}
	return nil
}

// guarded runs fn with faults turned into panics. If fn faults the address
// of the fault is returned with a true value.
func guarded(fn func()) (addr uintptr, faulted bool) {
	old := debug.SetPanicOnFault(true)
	defer debug.SetPanicOnFault(old)

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if f, ok := r.(interface{ Addr() uintptr }); ok {
			addr = f.Addr()
			faulted = true
			return
		}
		panic(r)
	}()

	fn()
	return 0, false
}

// access runs fn, which touches the user view, until it completes without
// a fault or until a fault cannot be handled.
func (a *Arena) access(write bool, fn func()) error {
	for range maxRetries {
		addr, faulted := guarded(fn)
		if !faulted {
			return nil
		}

		if addr < a.base || addr >= a.base+uintptr(len(a.user)) {
			return fmt.Errorf("host: fault outside arena at %#x", addr)
		}
		address := uint32(addr - a.base)

		if a.handler == nil {
			return fmt.Errorf("host: unhandled access violation at %#08x", address)
		}
		handled, err := a.handler(address, write)
		if err != nil {
			return fmt.Errorf("host: access violation at %#08x: %w", address, err)
		}
		if !handled {
			return fmt.Errorf("host: unhandled access violation at %#08x", address)
		}
	}
	return fmt.Errorf("host: access violation not resolved after %d attempts", maxRetries)
}

// Write copies data to the arena at address as the emulated CPU would.
func (a *Arena) Write(address uint32, data []byte) error {
	r, err := a.span(address, uint32(len(data)))
	if err != nil {
		return err
	}
	return a.access(true, func() {
		copy(a.user[r.Start:r.End], data)
	})
}

// Read copies from the arena at address into dst as the emulated CPU would.
func (a *Arena) Read(address uint32, dst []byte) error {
	r, err := a.span(address, uint32(len(dst)))
	if err != nil {
		return err
	}
	return a.access(false, func() {
		copy(dst, a.user[r.Start:r.End])
	})
}
