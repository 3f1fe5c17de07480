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


// Package limiter provides a rough and ready way of limiting events to a fixed
// rate.
//
// A new FpsLimiter can be created with:
//
//	fps := limiter.NewFPSLimiter(60)
//	defer fps.Stop()
//
// Operations can then be stalled with the Wait() function. For example:
//
//	for {
//		fps.Wait()
//		renderFrame()
//	}
package limiter

import (
	"time"
)

// FpsLimiter will trigger every frames per second.
type FpsLimiter struct {
	ticker *time.Ticker
}

// NewFPSLimiter is the preferred method of initialisation for FpsLimiter type.
// A rate of zero or less is treated as one frame per second.
func NewFPSLimiter(framesPerSecond int) *FpsLimiter {
	return &FpsLimiter{
		ticker: time.NewTicker(period(framesPerSecond)),
	}
}

func period(framesPerSecond int) time.Duration {
	return time.Second / time.Duration(max(framesPerSecond, 1))
}

// SetLimit changes the limit at which the FpsLimiter waits.
func (lim *FpsLimiter) SetLimit(framesPerSecond int) {
	lim.ticker.Reset(period(framesPerSecond))
}

// Wait will block until trigger.
func (lim *FpsLimiter) Wait() {
	<-lim.ticker.C
}

// HasWaited will return true if time has already elapsed and false if it is
// still yet to happen.
func (lim *FpsLimiter) HasWaited() bool {
	select {
	case <-lim.ticker.C:
		return true
	default:
		// default case means that the channel receiving case doesn't block
		return false
	}
}

// Stop the limiter. It should not be used after stopping.
func (lim *FpsLimiter) Stop() {
	lim.ticker.Stop()
}
