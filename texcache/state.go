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
	"fmt"

	"github.com/jetsetilly/texcache/memory/protection"
)

// Buffers names the copies of a surface.
type Buffers int

// List of valid Buffers values.
const (
	Host Buffers = 1 << iota
	Local

	HostAndLocal = Host | Local
)

func (b Buffers) String() string {
	switch b {
	case Host:
		return "host"
	case Local:
		return "local"
	case HostAndLocal:
		return "host+local"
	}
	return "none"
}

// Direction of a sync.
type Direction int

// List of valid Direction values.
const (
	// make the local copy fresh
	HostToLocal Direction = iota

	// make the host copy fresh
	LocalToHost
)

func (d Direction) String() string {
	switch d {
	case HostToLocal:
		return "host->local"
	case LocalToHost:
		return "local->host"
	}
	return fmt.Sprintf("direction(%d)", int(d))
}

// State says which copies of a surface are fresh.
type State int

// List of valid State values.
const (
	Invalid State = iota
	LocalOnly
	HostOnly
	Both
)

func (s State) String() string {
	switch s {
	case Invalid:
		return "invalid"
	case LocalOnly:
		return "local only"
	case HostOnly:
		return "host only"
	case Both:
		return "both"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Fresh returns the buffers that are fresh in the state.
func (s State) Fresh() Buffers {
	switch s {
	case LocalOnly:
		return Local
	case HostOnly:
		return Host
	case Both:
		return HostAndLocal
	}
	return 0
}

func stateOf(b Buffers) State {
	switch b & HostAndLocal {
	case Local:
		return LocalOnly
	case Host:
		return HostOnly
	case HostAndLocal:
		return Both
	}
	return Invalid
}

// HostFresh returns true if host memory holds the current data.
func (s State) HostFresh() bool {
	return s.Fresh()&Host == Host
}

// LocalFresh returns true if the local copy holds the current data.
func (s State) LocalFresh() bool {
	return s.Fresh()&Local == Local
}

// Invalidate returns the state after the named buffers become stale.
func (s State) Invalidate(b Buffers) State {
	return stateOf(s.Fresh() &^ b)
}

type transition struct {
	next     State
	transfer bool
}

// transitions is indexed by State and then Direction.
var transitions = [...][2]transition{
	Invalid: {
		HostToLocal: {next: Both, transfer: true},
		LocalToHost: {next: Both, transfer: true},
	},
	LocalOnly: {
		HostToLocal: {next: LocalOnly},
		LocalToHost: {next: Both, transfer: true},
	},
	HostOnly: {
		HostToLocal: {next: Both, transfer: true},
		LocalToHost: {next: HostOnly},
	},
	Both: {
		HostToLocal: {next: Both},
		LocalToHost: {next: Both},
	},
}

// Transition returns the state after a sync in the given direction and
// whether data must be transferred to get there.
func (s State) Transition(d Direction) (State, bool) {
	t := transitions[s][d]
	return t.next, t.transfer
}

// RequiresProtection returns the accesses to host memory that must be
// trapped for the state to remain true.
func (s State) RequiresProtection() protection.Flags {
	switch s {
	case LocalOnly:
		return protection.All
	case Both:
		return protection.TrapWrites
	}
	return protection.None
}
