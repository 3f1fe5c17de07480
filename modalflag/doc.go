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

// Package modalflag layers "modes" on top of the standard flag package. A
// mode is a bare word on the command line that selects which set of flags
// applies to the arguments that follow it. For example:
//
//	texcache run -frames 100
//	texcache prefs
//
// Each layer is parsed in turn. The caller declares the sub-modes and flags
// for the layer, calls Parse() and then inspects Mode() to decide how to
// continue:
//
//	md := &modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("RUN", "PREFS", "VERSION")
//	switch r, err := md.Parse(); r {
//	case modalflag.ParseHelp:
//		return
//	case modalflag.ParseError:
//		return err
//	}
//	switch md.Mode() {
//	case "RUN":
//		md.NewMode()
//		frames := md.AddInt("frames", 60, "number of frames")
//		...
//	}
//
// The first sub-mode in a layer is the default and is selected if the next
// argument does not name any of the sub-modes. Sub-mode names are compared
// without regard to case.
package modalflag
