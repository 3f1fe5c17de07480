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

// Error patterns returned by the package. Use curated.Is() or curated.Has()
// to test for them. All but DuplicateSurface mean that coherence can no
// longer be guaranteed and the session should end.
const (
	UnsupportedFormat    = "texcache: unsupported format: %v"
	UnsupportedDimension = "texcache: unsupported dimension: %v"
	ProtectionFailure    = "texcache: protection failure: %v"
	DuplicateSurface     = "texcache: surface already exists for %v"
	HostRangeError       = "texcache: host range: %v"
	DeviceFailure        = "texcache: device: %v"
)
