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

// Package logger is the central log repository for texcache. There is a
// single central log accessed with the package level functions, and
// independent logs can be created with NewLogger().
//
// Every log entry is a tag and a detail. The tag says where the entry came
// from and the detail says what happened. For example:
//
//	logger.Logf(logger.Allow, "texcache", "merged %d regions into %v", n, rng)
//
// Identical adjacent entries are collapsed into one entry with a repeat count.
//
// The first argument to Log() and Logf() is a Permission. Logging only occurs
// if the permission allows it. The logger.Allow value always permits logging.
package logger
