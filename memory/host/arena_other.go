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


//go:build !linux

package host

import (
	"errors"

	"github.com/jetsetilly/texcache/memory/addrrange"
	"github.com/jetsetilly/texcache/memory/protection"
)

var errUnsupported = errors.New("host: arena is not supported on this platform")

// Arena is the emulated address space. It is only available on linux.
type Arena struct{}

// NewArena always fails on this platform.
func NewArena(size uint32) (*Arena, error) {
	return nil, errUnsupported
}

func (a *Arena) Close() error { return errUnsupported }
func (a *Arena) Size() uint32 { return 0 }
func (a *Arena) SetFaultHandler(handler FaultHandler) {}
func (a *Arena) Sudo(address uint32, size uint32) ([]byte, error) { return nil, errUnsupported }
func (a *Arena) PageSize() uint32 { return 4096 }
func (a *Arena) Write(address uint32, data []byte) error { return errUnsupported }
func (a *Arena) Read(address uint32, dst []byte) error { return errUnsupported }

func (a *Arena) Protect(rng addrrange.Range, flags protection.Flags) error {
	return errUnsupported
}
