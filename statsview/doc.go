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

// Package statsview offers runtime statistics over HTTP. It is only built
// into the binary when the "statsview" build tag is present. Without the tag
// Available() returns false and Launch() does nothing.
//
// Once launched the statistics are viewable at:
//
//	localhost:12600/debug/statsview
//
// And the standard pprof statistics at:
//
//	localhost:12600/debug/pprof/
package statsview

// Address of the HTTP server.
const Address = "localhost:12600"
