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

package gpu

// SwapElements reverses the bytes of every element of size n in data. Any
// trailing bytes that do not make up a whole element are left untouched.
func SwapElements(data []byte, n int) {
	if n < 2 {
		return
	}
	for i := 0; i+n <= len(data); i += n {
		e := data[i : i+n]
		for a, b := 0, n-1; a < b; a, b = a+1, b-1 {
			e[a], e[b] = e[b], e[a]
		}
	}
}
