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


// Package sdlwindows provides an OpenGL 3.2 core context by way of a hidden
// SDL window. The window is never shown. It exists so that the gl32 device
// has a context to work with.
//
// SDL requires that windows are created and serviced on the main thread and
// an OpenGL context can only be used by the thread it is current on. Work
// that uses the context is therefore passed to the window with Do() and run
// the next time the main thread calls Service().
package sdlwindows

import (
	"fmt"
	"io"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/jetsetilly/texcache/assert"
	"github.com/jetsetilly/texcache/gpu/gl32"
	"github.com/jetsetilly/texcache/logger"
	"github.com/jetsetilly/texcache/version"
)

// SdlWindows is a hidden window with an OpenGL context.
//
// MUST ONLY be created and serviced from the #mainthread
type SdlWindows struct {
	window  *sdl.Window
	context sdl.GLContext
	dev     *gl32.Device

	// functions to run on the main thread
	work chan func()

	// the goroutine that created the window
	owner uint64
}

// NewSdlWindows is the preferred method of initialisation for type
// SdlWindows.
//
// MUST ONLY be called from the #mainthread
func NewSdlWindows() (*SdlWindows, error) {
	// the SDL package calls LockOSThread() but we call it here too. we never
	// unlock it in any case
	runtime.LockOSThread()

	err := sdl.Init(sdl.INIT_VIDEO)
	if err != nil {
		return nil, fmt.Errorf("sdl: %w", err)
	}

	err = sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 3)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("sdl: %w", err)
	}
	err = sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 2)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("sdl: %w", err)
	}
	err = sdl.GLSetAttribute(sdl.GL_CONTEXT_FLAGS, sdl.GL_CONTEXT_FORWARD_COMPATIBLE_FLAG)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("sdl: %w", err)
	}
	err = sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("sdl: %w", err)
	}

	var sdlVersion sdl.Version
	sdl.VERSION(&sdlVersion)
	logger.Logf(logger.Allow, "sdl", "version %d.%d.%d", sdlVersion.Major, sdlVersion.Minor, sdlVersion.Patch)

	wnd := &SdlWindows{
		work:  make(chan func()),
		owner: assert.GetGoRoutineID(),
	}

	wnd.window, err = sdl.CreateWindow(version.String(),
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED, 64, 64,
		sdl.WINDOW_OPENGL|sdl.WINDOW_HIDDEN)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("sdl: %w", err)
	}

	wnd.context, err = wnd.window.GLCreateContext()
	if err != nil {
		_ = wnd.destroy()
		return nil, fmt.Errorf("sdl: %w", err)
	}
	err = wnd.window.GLMakeCurrent(wnd.context)
	if err != nil {
		_ = wnd.destroy()
		return nil, fmt.Errorf("sdl: %w", err)
	}

	wnd.dev, err = gl32.NewDevice()
	if err != nil {
		_ = wnd.destroy()
		return nil, err
	}

	return wnd, nil
}

// Device returns the OpenGL device for the window's context. The device must
// only be used inside a function passed to Do().
func (wnd *SdlWindows) Device() *gl32.Device {
	return wnd.dev
}

// Do runs fn on the main thread with the OpenGL context current and waits
// for it to complete.
//
// MUST NOT be called from the #mainthread
func (wnd *SdlWindows) Do(fn func()) {
	assert.NotOnGoRoutine(wnd.owner, "sdlwindows: Do()")
	done := make(chan bool)
	wnd.work <- func() {
		fn()
		done <- true
	}
	<-done
}

// Service implements the GuiCreator interface.
//
// MUST ONLY be called from the #mainthread
func (wnd *SdlWindows) Service() {
	select {
	case fn := <-wnd.work:
		fn()
	default:
	}

	// the window is hidden but SDL still expects the event queue to be
	// drained
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
	}
}

// Destroy implements the GuiCreator interface.
//
// MUST ONLY be called from the #mainthread
func (wnd *SdlWindows) Destroy(output io.Writer) {
	if err := wnd.destroy(); err != nil && output != nil {
		fmt.Fprintln(output, err)
	}
}

func (wnd *SdlWindows) destroy() error {
	if wnd.dev != nil {
		wnd.dev.Destroy()
		wnd.dev = nil
	}
	if wnd.context != nil {
		sdl.GLDeleteContext(wnd.context)
		wnd.context = nil
	}
	if wnd.window != nil {
		err := wnd.window.Destroy()
		if err != nil {
			return fmt.Errorf("sdl: %w", err)
		}
		wnd.window = nil
	}
	sdl.Quit()
	return nil
}
