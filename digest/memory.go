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


package digest

import (
	"crypto/sha1"
	"fmt"

	"github.com/jetsetilly/texcache/texcache"
)

// Memory generates a SHA-1 value of host memory every frame. The value for
// each frame is chained to the value of the previous frame.
type Memory struct {
	mem    texcache.HostMemory
	size   uint32
	digest [sha1.Size]byte

	// the previous digest followed by a copy of host memory
	data []byte
}

// NewMemory is the preferred method of initialisation for the Memory type.
// The digest covers size bytes from the start of host memory.
func NewMemory(mem texcache.HostMemory, size uint32) *Memory {
	return &Memory{
		mem:  mem,
		size: size,
		data: make([]byte, sha1.Size+int(size)),
	}
}

// Hash implements digest.Digest interface.
func (dig *Memory) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements digest.Digest interface.
func (dig *Memory) ResetDigest() {
	clear(dig.digest[:])
}

// NewFrame updates the digest with the current contents of host memory.
// Host memory must be current, which means that the texture cache should
// have no surfaces with local only data.
func (dig *Memory) NewFrame() error {
	b, err := dig.mem.Sudo(0, dig.size)
	if err != nil {
		return fmt.Errorf("digest: %w", err)
	}
	copy(dig.data, dig.digest[:])
	copy(dig.data[sha1.Size:], b)
	dig.digest = sha1.Sum(dig.data)
	return nil
}
