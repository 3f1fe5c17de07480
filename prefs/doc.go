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

// Package prefs facilitates the storing of preference values on disk.
//
// Preference values are typed (Bool, Int, String) and are added to a Disk
// instance under a unique key. Keys are conventionally dot separated, with
// the first part naming the package that owns the value. For example:
//
//	var accurate prefs.Bool
//	dsk, _ := prefs.NewDisk(pth)
//	_ = dsk.Add("texcache.accurate", &accurate)
//	_ = dsk.Load()
//
// A preferences file can be shared by many Disk instances. Saving a Disk
// only updates the entries that belong to it and leaves other entries in the
// file untouched.
//
// Values can be overridden from the command line with the command line stack.
// See PushCommandLineStack() for details.
package prefs
