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

package modalflag_test

import (
	"strings"
	"testing"

	"github.com/jetsetilly/texcache/modalflag"
	"github.com/jetsetilly/texcache/test"
)

func TestNoModesNoFlags(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"foo"})
	r, err := md.Parse()
	test.ExpectEquality(t, r, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, md.Mode(), "")
	test.ExpectEquality(t, md.GetArg(0), "foo")
}

func TestDefaultMode(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"-frames", "10"})
	md.AddSubModes("run", "prefs")
	frames := md.AddInt("frames", 1, "")
	r, err := md.Parse()
	test.ExpectEquality(t, r, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, md.Mode(), "RUN")
	test.ExpectEquality(t, *frames, 10)
}

func TestSubModeLayers(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"Run", "-frames", "20", "extra"})
	md.AddSubModes("RUN", "PREFS", "VERSION")
	_, err := md.Parse()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, md.Mode(), "RUN")
	test.ExpectEquality(t, len(md.RemainingArgs()), 3)

	md.NewMode()
	frames := md.AddInt("frames", 1, "")
	headless := md.AddBool("headless", false, "")
	_, err = md.Parse()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, *frames, 20)
	test.ExpectFailure(t, *headless)
	test.ExpectEquality(t, md.GetArg(0), "extra")
	test.ExpectEquality(t, md.GetArg(1), "")
	test.ExpectEquality(t, md.Path(), "RUN")

	var visited []string
	md.Visit(func(f string) { visited = append(visited, f) })
	test.ExpectEquality(t, strings.Join(visited, ","), "frames")
}

func TestHelp(t *testing.T) {
	w := &test.CompareWriter{}
	md := modalflag.Modes{Output: w}
	md.NewArgs([]string{"-help"})
	md.AddSubModes("RUN", "PREFS")
	r, err := md.Parse()
	test.ExpectEquality(t, r, modalflag.ParseHelp)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, strings.Contains(w.String(), "available sub-modes: RUN, PREFS"))
	test.ExpectSuccess(t, strings.Contains(w.String(), "default: RUN"))
}

func TestHelpNothingAvailable(t *testing.T) {
	w := &test.CompareWriter{}
	md := modalflag.Modes{Output: w}
	md.NewArgs([]string{"-help"})
	r, _ := md.Parse()
	test.ExpectEquality(t, r, modalflag.ParseHelp)
	test.ExpectSuccess(t, w.Compare("No help available\n"))
}

func TestUnknownFlag(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"-nosuchflag"})
	r, err := md.Parse()
	test.ExpectEquality(t, r, modalflag.ParseError)
	test.ExpectFailure(t, err)
}
