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

// Package curated is a helper package for the plain Go language error type.
// Curated errors are created with Errorf() and remember the pattern they
// were created with. The pattern is used to identify the error later on,
// which means that sentinel errors can carry values. For example:
//
//	const UnsupportedFormat = "texcache: unsupported format: %#02x"
//
//	err := curated.Errorf(UnsupportedFormat, 0x8f)
//
//	if curated.Is(err, UnsupportedFormat) {
//		fmt.Println("true")
//	}
//
// The Has() function checks if a pattern occurs anywhere in the chain of
// curated errors. A chain is formed when a curated error is one of the
// values given to Errorf():
//
//	err := curated.Errorf("sync: %v", curated.Errorf(UnsupportedFormat, 0x8f))
//
//	curated.Is(err, UnsupportedFormat)  // false
//	curated.Has(err, UnsupportedFormat) // true
//
// Messages are normalised by removing duplicate adjacent parts of the
// chain, where parts are separated by ": ". So wrapping an error that
// begins with "texcache: " with a pattern that also begins with "texcache: "
// prints the prefix only once.
//
// Curated errors also implement Unwrap() so that errors.Is() and errors.As()
// can see through to any plain errors wrapped by them (for example, an
// error returned by the operating system).
package curated
