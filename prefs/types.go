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

package prefs

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
)

// Value represents the actual Go preference value.
type Value any

// pref is the interface required by the Disk type.
type pref interface {
	fmt.Stringer
	Set(value Value) error
	Get() Value
	Reset() error
}

// value is the storage shared by every preference type. the zero value holds
// the zero value of T.
type value[T any] struct {
	v        atomic.Pointer[T]
	hookPost func(value Value) error
}

func (p *value[T]) load() T {
	if v := p.v.Load(); v != nil {
		return *v
	}
	var zero T
	return zero
}

func (p *value[T]) store(nv T) error {
	p.v.Store(&nv)
	if p.hookPost != nil {
		return p.hookPost(nv)
	}
	return nil
}

// SetHookPost sets the callback function to be called just after the value
// is updated.
func (p *value[T]) SetHookPost(f func(value Value) error) {
	p.hookPost = f
}

// Bool implements a boolean type in the prefs system.
type Bool struct {
	value[bool]
}

func (p *Bool) String() string {
	return strconv.FormatBool(p.load())
}

// Set new value to Bool type. New value must be of type bool or string. A
// string value of anything other than "true" (case insensitive) will set the
// value to false.
func (p *Bool) Set(v Value) error {
	switch v := v.(type) {
	case bool:
		return p.store(v)
	case string:
		return p.store(strings.EqualFold(strings.TrimSpace(v), "true"))
	}
	return fmt.Errorf("prefs: cannot convert %T to prefs.Bool", v)
}

// Get returns the raw pref value.
func (p *Bool) Get() Value {
	return p.load()
}

// Reset sets the boolean value to false.
func (p *Bool) Reset() error {
	return p.Set(false)
}

// Int implements an integer type in the prefs system.
type Int struct {
	value[int]
}

func (p *Int) String() string {
	return strconv.Itoa(p.load())
}

// Set new value to Int type. New value can be any integer type that fits in
// an int or a string that can be converted with strconv.Atoi().
func (p *Int) Set(v Value) error {
	switch v := v.(type) {
	case int:
		return p.store(v)
	case int32:
		return p.store(int(v))
	case int64:
		return p.store(int(v))
	case uint32:
		return p.store(int(v))
	case string:
		nv, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("prefs: cannot convert %q to prefs.Int: %w", v, err)
		}
		return p.store(nv)
	}
	return fmt.Errorf("prefs: cannot convert %T to prefs.Int", v)
}

// Get returns the raw pref value.
func (p *Int) Get() Value {
	return p.load()
}

// Reset sets the int value to zero.
func (p *Int) Reset() error {
	return p.Set(0)
}

// String implements a string type in the prefs system.
type String struct {
	value[string]
}

func (p *String) String() string {
	return p.load()
}

// Set new value to String type. New value must be of type string or
// fmt.Stringer.
func (p *String) Set(v Value) error {
	switch v := v.(type) {
	case string:
		return p.store(v)
	case fmt.Stringer:
		return p.store(v.String())
	}
	return fmt.Errorf("prefs: cannot convert %T to prefs.String", v)
}

// Get returns the raw pref value.
func (p *String) Get() Value {
	return p.load()
}

// Reset sets the string value to the empty string.
func (p *String) Reset() error {
	return p.Set("")
}
