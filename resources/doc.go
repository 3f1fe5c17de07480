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

// Package resources prepares paths for files written by texcache, such as
// the preferences file and texture dumps.
//
// JoinPath() prefixes the supplied path with the resource directory and
// creates any missing directories along the way. It does not touch the
// final element of the path.
//
// For builds with the "release" build tag the resource directory is rooted
// in the user's configuration directory. On Linux that is something like:
//
//	/home/user/.config/texcache/
//
// For other builds the resource directory is in the current working
// directory:
//
//	.texcache
package resources
