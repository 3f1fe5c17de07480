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


// Package random should be used in preference to the math/rand package when a
// random number is required by the workload.
//
// Numbers are based on the current frame number of a Clock and a salt value
// chosen by the caller. The same frame and salt always produce the same
// number for an instance of Random. If the same numbers are required every
// time the program is run then set ZeroSeed to true. This is useful for
// testing purposes.
package random
