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


package performance

import (
	"fmt"
	"io"
	"time"

	"github.com/jetsetilly/texcache/performance/limiter"
)

// CalcFPS takes the number of frames and duration (in seconds) and returns
// the frames-per-second.
func CalcFPS(numFrames int, duration float64) float64 {
	if duration <= 0 {
		return 0
	}
	return float64(numFrames) / duration
}

// Check calls frame() the number of times specified. If fps is greater than
// zero the calls are limited to that rate. The frame rate achieved is written
// to output.
func Check(output io.Writer, profile Profile, frames int, fps int, frame func() error) error {
	var lim *limiter.FpsLimiter
	if fps > 0 {
		lim = limiter.NewFPSLimiter(fps)
		defer lim.Stop()
	}

	var numFrames int
	start := time.Now()

	runner := func() error {
		for numFrames < frames {
			if lim != nil {
				lim.Wait()
			}
			if err := frame(); err != nil {
				return err
			}
			numFrames++
		}
		return nil
	}

	err := RunProfiler(profile, "performance", runner)
	if err != nil {
		return fmt.Errorf("performance: %w", err)
	}

	dur := time.Since(start).Seconds()
	fmt.Fprintf(output, "%.2f fps (%d frames in %.2f seconds)\n", CalcFPS(numFrames, dur), numFrames, dur)

	return nil
}
