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

// Package test contains helper functions to remove common boilerplate to make
// testing easier.
//
// The ExpectEquality() and ExpectInequality() functions compare comparable
// values. The ExpectSuccess() and ExpectFailure() functions test bool and
// error values: a true or nil value is a success, a false or non-nil value is
// a failure.
//
// The Demand*() functions are the same as the Expect*() functions except that
// the test is stopped immediately on failure.
//
// The CompareWriter type is an implementation of io.Writer that collects
// everything written to it, making it useful for testing log output.
package test
