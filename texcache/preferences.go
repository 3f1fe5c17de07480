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

package texcache

import (
	"github.com/jetsetilly/texcache/prefs"
	"github.com/jetsetilly/texcache/resources"
)

// Preferences for the texture cache.
type Preferences struct {
	dsk *prefs.Disk

	// round protected ranges to the page exactly. when false an oversized
	// range is first rounded down to a whole number of pages, leaving the
	// tail of the texture unprotected in exchange for fewer protected pages
	Accurate prefs.Bool

	// allow local copies to be made from other local copies
	GPUCopy prefs.Bool

	// log every change of page protection
	LogProtection prefs.Bool
}

func (p *Preferences) String() string {
	if p.dsk == nil {
		return ""
	}
	return p.dsk.String()
}

func newPreferences() *Preferences {
	p := &Preferences{}
	p.SetDefaults()
	return p
}

// NewPreferences creates preferences backed by the named file. An empty
// path means the preferences file in the resources directory. Values are
// loaded from the file if it exists.
func NewPreferences(path string) (*Preferences, error) {
	p := newPreferences()

	if path == "" {
		var err error
		path, err = resources.JoinPath(prefs.DefaultPrefsFile)
		if err != nil {
			return nil, err
		}
	}

	var err error
	p.dsk, err = prefs.NewDisk(path)
	if err != nil {
		return nil, err
	}

	if err := p.dsk.Add("texcache.accurate", &p.Accurate); err != nil {
		return nil, err
	}
	if err := p.dsk.Add("texcache.gpucopy", &p.GPUCopy); err != nil {
		return nil, err
	}
	if err := p.dsk.Add("texcache.logProtection", &p.LogProtection); err != nil {
		return nil, err
	}

	if err := p.dsk.Load(); err != nil {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all preferences to their default values.
func (p *Preferences) SetDefaults() {
	p.Accurate.Set(true)
	p.GPUCopy.Set(true)
	p.LogProtection.Set(false)
}

// Load preferences from disk. Does nothing if there is no preferences file.
func (p *Preferences) Load() error {
	if p.dsk == nil {
		return nil
	}
	return p.dsk.Load()
}

// Save preferences to disk. Does nothing if there is no preferences file.
func (p *Preferences) Save() error {
	if p.dsk == nil {
		return nil
	}
	return p.dsk.Save()
}

// AllowLogging implements the logger.Permission interface. Only the more
// verbose log entries are subject to this permission.
func (p *Preferences) AllowLogging() bool {
	return p.LogProtection.Get().(bool)
}

func (p *Preferences) accurate() bool {
	return p.Accurate.Get().(bool)
}

func (p *Preferences) gpuCopy() bool {
	return p.GPUCopy.Get().(bool)
}
