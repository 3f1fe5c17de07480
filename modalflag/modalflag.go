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

package modalflag

import (
	"errors"
	"flag"
	"io"
	"strings"
)

const modeSeparator = "/"

// Modes handles the layers of a command line. The Output field should be
// set before calling Parse() otherwise help messages will be lost.
type Modes struct {
	Output io.Writer

	// flags for the current layer. replaced on every call to NewMode()
	flags *flag.FlagSet

	args []string

	// the index into args where the current layer begins
	argsIdx int

	// sub-modes for the current layer. the first entry is the default
	subModes []string

	// every mode selected so far. it is never reset except by NewArgs()
	path []string

	parsed bool

	additionalHelp string
}

func (md *Modes) String() string {
	return md.Path()
}

// Mode returns the most recently selected mode.
func (md *Modes) Mode() string {
	if len(md.path) == 0 {
		return ""
	}
	return md.path[len(md.path)-1]
}

// Path returns every mode selected so far, separated by a forward slash.
func (md *Modes) Path() string {
	return strings.Join(md.path, modeSeparator)
}

// NewArgs resets the argument list and begins the first layer.
func (md *Modes) NewArgs(args []string) {
	md.args = args
	md.argsIdx = 0
	md.path = md.path[:0]
	md.flags = nil
	md.NewMode()
}

// NewMode begins a new layer. Arguments consumed by the previous call to
// Parse() are not seen again.
func (md *Modes) NewMode() {
	if md.flags != nil && md.parsed {
		md.argsIdx = len(md.args) - md.flags.NArg()
		if md.consumedSubMode() {
			md.argsIdx++
		}
	}
	md.subModes = md.subModes[:0]
	md.flags = flag.NewFlagSet("", flag.ContinueOnError)
	md.parsed = false
	md.additionalHelp = ""
}

// consumedSubMode returns true if the first non-flag argument of the
// current layer was taken as a sub-mode.
func (md *Modes) consumedSubMode() bool {
	if !md.parsed || len(md.subModes) == 0 || md.flags.NArg() == 0 {
		return false
	}
	arg := strings.ToUpper(md.flags.Arg(0))
	for _, m := range md.subModes {
		if m == arg {
			return true
		}
	}
	return false
}

// AdditionalHelp sets text to be printed after the flag summary when help
// is requested for the current layer.
func (md *Modes) AdditionalHelp(help string) {
	md.additionalHelp = help
}

// Parsed returns true if Parse() has been called for the current layer,
// regardless of whether it succeeded.
func (md *Modes) Parsed() bool {
	return md.parsed
}

// ParseResult is returned by Parse().
type ParseResult int

// List of valid ParseResult values.
const (
	// command line processing can continue. if sub-modes were declared then
	// Mode() says which one was selected
	ParseContinue ParseResult = iota

	// help was requested and has already been printed to Output
	ParseHelp

	// the error value returned by Parse() says what went wrong
	ParseError
)

// Parse the current layer.
func (md *Modes) Parse() (ParseResult, error) {
	md.parsed = true

	hw := &helpWriter{}
	md.flags.SetOutput(hw)

	err := md.flags.Parse(md.args[md.argsIdx:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			if md.Output != nil {
				hw.help(md.Output, md.Path(), md.subModes, md.additionalHelp)
			}
			return ParseHelp, nil
		}
		return ParseError, err
	}

	if len(md.subModes) == 0 {
		return ParseContinue, nil
	}

	mode := md.subModes[0]
	if md.consumedSubMode() {
		mode = strings.ToUpper(md.flags.Arg(0))
	}
	md.path = append(md.path, mode)

	return ParseContinue, nil
}

// RemainingArgs returns the arguments of the current layer that are neither
// flags nor a sub-mode.
func (md *Modes) RemainingArgs() []string {
	args := md.flags.Args()
	if md.consumedSubMode() {
		return args[1:]
	}
	return args
}

// GetArg returns the numbered entry of RemainingArgs() or the empty string
// if there is no such argument.
func (md *Modes) GetArg(i int) string {
	args := md.RemainingArgs()
	if i < 0 || i >= len(args) {
		return ""
	}
	return args[i]
}

// AddSubModes adds to the list of sub-modes for the current layer. The first
// sub-mode ever added is the default.
func (md *Modes) AddSubModes(subModes ...string) {
	for _, m := range subModes {
		md.subModes = append(md.subModes, strings.ToUpper(m))
	}
}

// AddBool flag for the current layer.
func (md *Modes) AddBool(name string, value bool, usage string) *bool {
	return md.flags.Bool(name, value, usage)
}

// AddInt flag for the current layer.
func (md *Modes) AddInt(name string, value int, usage string) *int {
	return md.flags.Int(name, value, usage)
}

// AddString flag for the current layer.
func (md *Modes) AddString(name string, value string, usage string) *string {
	return md.flags.String(name, value, usage)
}

// Visit calls fn for every flag in the current layer that has been set.
func (md *Modes) Visit(fn func(flag string)) {
	md.flags.Visit(func(f *flag.Flag) {
		fn(f.Name)
	})
}
