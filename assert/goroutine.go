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


// Package assert contains checks that are useful when the rules of a
// package cannot be enforced by the type system.
package assert

import (
	"bytes"
	"fmt"
	"runtime"
	"strconv"
)

// GetGoRoutineID returns an identify for a goroutine. it returns a result that
// is (a) different between goroutines and (b) consistent for a given
// goroutine. It should only ever be used for debugging or for checks that
// would otherwise end in deadlock.
func GetGoRoutineID() uint64 {
	b := make([]byte, 64)
	b = b[:runtime.Stack(b, false)]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	b = b[:bytes.IndexByte(b, ' ')]
	n, _ := strconv.ParseUint(string(b), 10, 64)
	return n
}

// NotOnGoRoutine panics if the current goroutine has the ID.
func NotOnGoRoutine(id uint64, context string) {
	if GetGoRoutineID() == id {
		panic(fmt.Sprintf("%s: must not be called from goroutine %d", context, id))
	}
}
