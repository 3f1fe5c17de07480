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


package random

import (
	"math/rand"
	"time"
)

// the base seed for all random numbers
var baseSeed int64

// initialise base seed
func init() {
	baseSeed = int64(time.Now().Nanosecond())
}

// Clock is implemented by anything that counts frames.
type Clock interface {
	Frame() int
}

// Random is a random number generator that is sensitive to the frame number.
type Random struct {
	clock Clock

	// use zero seed rather than the random base seed
	ZeroSeed bool
}

// NewRandom is the preferred method of initialisation for the Random type.
func NewRandom(clock Clock) *Random {
	return &Random{
		clock: clock,
	}
}

// new RNG from the standard library
func (rnd *Random) rand(salt int) *rand.Rand {
	seed := int64(rnd.clock.Frame())<<16 + int64(salt)
	if !rnd.ZeroSeed {
		seed += baseSeed
	}
	return rand.New(rand.NewSource(seed))
}

// Intn returns a number in the range [0, n) for the current frame and the
// salt value.
func (rnd *Random) Intn(salt int, n int) int {
	return rnd.rand(salt).Intn(n)
}

// Fill the slice with bytes for the current frame and the salt value.
func (rnd *Random) Fill(salt int, b []byte) {
	r := rnd.rand(salt)
	for i := range b {
		b[i] = byte(r.Intn(256))
	}
}
