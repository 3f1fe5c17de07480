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


package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/bradleyjkemp/memviz"

	"github.com/jetsetilly/texcache/digest"
	"github.com/jetsetilly/texcache/gpu"
	"github.com/jetsetilly/texcache/gpu/software"
	"github.com/jetsetilly/texcache/logger"
	"github.com/jetsetilly/texcache/memory/host"
	"github.com/jetsetilly/texcache/modalflag"
	"github.com/jetsetilly/texcache/performance"
	"github.com/jetsetilly/texcache/prefs"
	"github.com/jetsetilly/texcache/rsx/gcm"
	"github.com/jetsetilly/texcache/sdlwindows"
	"github.com/jetsetilly/texcache/statsview"
	"github.com/jetsetilly/texcache/texcache"
	"github.com/jetsetilly/texcache/thumbnailer"
	"github.com/jetsetilly/texcache/version"
	"github.com/jetsetilly/texcache/workload"
)

type stateReq = string

const (
	// main thread should end as soon as possible.
	//
	// takes optional int argument, indicating the status code.
	reqQuit stateReq = "QUIT"
)

type stateRequest struct {
	req  stateReq
	args any
}

// GuiCreator facilitates the creation, servicing and destruction of
// anything that needs to be run in the main thread.
type GuiCreator interface {
	// cleanup resources
	Destroy(io.Writer)

	// Service() should not pause or loop longer than necessary. It MUST ONLY
	// be called as part of a larger loop from the main thread.
	Service()
}

// communication between the main() function and the launch() function. this is
// required because SDL requires window creation and event handling to occur
// on the main thread. the OpenGL context belongs to the same thread.
type mainSync struct {
	state   chan stateRequest
	creator chan func() (GuiCreator, error)

	// the result of creator will be returned on either of these two channels.
	creation      chan GuiCreator
	creationError chan error
}

// #mainthread
func main() {
	sync := &mainSync{
		state:         make(chan stateRequest),
		creator:       make(chan func() (GuiCreator, error)),
		creation:      make(chan GuiCreator),
		creationError: make(chan error),
	}

	// the value to use with os.Exit(). can be changed with reqQuit
	// stateRequest
	exitVal := 0

	// #ctrlc default handler
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	// launch program as a go routine. further communication is through
	// the mainSync instance
	go launch(sync)

	done := false
	var gui GuiCreator
	for !done {
		select {
		case <-intChan:
			fmt.Println("\r")
			done = true

		case creator := <-sync.creator:
			var err error

			if gui != nil {
				gui.Destroy(os.Stderr)
			}

			gui, err = creator()
			if err != nil {
				sync.creationError <- err
				gui = nil
			} else {
				sync.creation <- gui
			}

		case state := <-sync.state:
			switch state.req {
			case reqQuit:
				done = true
				if gui != nil {
					gui.Destroy(os.Stderr)
				}

				if state.args != nil {
					if v, ok := state.args.(int); ok {
						exitVal = v
					} else {
						panic(fmt.Sprintf("cannot convert %s arguments into int", reqQuit))
					}
				}
			}

		default:
			if gui != nil {
				gui.Service()
			}
		}
	}

	os.Exit(exitVal)
}

// launch is called from main() as a goroutine. uses mainSync instance to
// indicate gui creation and to quit.
func launch(sync *mainSync) {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("RUN", "PREFS", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		sync.state <- stateRequest{req: reqQuit}
		return

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		sync.state <- stateRequest{req: reqQuit, args: 10}
		return
	}

	switch md.Mode() {
	case "RUN":
		err = run(md, sync)

	case "PREFS":
		err = editPrefs(md)

	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		sync.state <- stateRequest{req: reqQuit, args: 20}
		return
	}

	sync.state <- stateRequest{req: reqQuit}
}

// options for the run mode that are passed to the exercise() function
type runOptions struct {
	frames  int
	fps     int
	profile performance.Profile
	memviz  string
	dump    string
	scale   int
	digest  bool
}

func run(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()

	headless := md.AddBool("headless", false, "use the software device rather than OpenGL")
	frames := md.AddInt("frames", 60, "number of frames to run")
	fps := md.AddInt("fps", 0, "limit the frame rate. zero is unlimited")
	log := md.AddBool("log", false, "echo debugging log to stdout")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))
	profile := md.AddString("profile", "none", "run with profiling: CPU, MEM, TRACE, ALL (comma separated)")
	viz := md.AddString("memviz", "", "write a graphviz file of the cache state to the named file when done")
	dump := md.AddString("dump", "", "write thumbnails of textures to the named directory when done")
	scale := md.AddInt("scale", 4, "scaling of thumbnails")
	dig := md.AddBool("digest", false, "run a repeatable workload and print a digest of host memory")
	prefsArg := md.AddString("prefs", "", "preferences for this run. eg. texcache.accurate::false")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	// set debugging log echo
	if *log {
		logger.SetEcho(os.Stdout, false)
	} else {
		logger.SetEcho(nil, false)
	}

	if *prefsArg != "" {
		prefs.PushCommandLineStack(*prefsArg)
	}

	if *stats {
		if !statsview.Available() {
			return fmt.Errorf("statsview is not available in this build")
		}
		statsview.Launch(os.Stdout)
	}

	opts := runOptions{
		frames: *frames,
		fps:    *fps,
		memviz: *viz,
		dump:   *dump,
		scale:  *scale,
		digest: *dig,
	}
	opts.profile, err = performance.ParseProfile(*profile)
	if err != nil {
		return err
	}

	if *headless {
		return exercise(software.NewDevice(), opts)
	}

	sync.creator <- func() (GuiCreator, error) {
		wnd, err := sdlwindows.NewSdlWindows()
		if err != nil {
			return nil, err
		}
		return wnd, nil
	}

	var wnd *sdlwindows.SdlWindows
	select {
	case g := <-sync.creation:
		wnd = g.(*sdlwindows.SdlWindows)
	case err := <-sync.creationError:
		return err
	}

	// the OpenGL device can only be used on the main thread
	wnd.Do(func() {
		err = exercise(wnd.Device(), opts)
	})

	return err
}

// exercise the texture cache with the workload scene.
func exercise(dev gpu.Device, opts runOptions) (rerr error) {
	arena, err := host.NewArena(workload.MemorySize)
	if err != nil {
		return err
	}
	defer func() {
		if err := arena.Close(); err != nil && rerr == nil {
			rerr = err
		}
	}()

	pr, err := texcache.NewPreferences("")
	if err != nil {
		return err
	}

	cache := texcache.NewCache(dev, arena, arena, gcm.Mapper{}, pr)
	defer func() {
		if err := cache.Clear(); err != nil && rerr == nil {
			rerr = err
		}
	}()

	if unused := prefs.PopCommandLineStack(); unused != "" {
		logger.Logf(logger.Allow, "texcache", "unused preferences: %s", unused)
	}

	sc, err := workload.NewScene(arena, dev, cache, opts.digest)
	if err != nil {
		return err
	}

	var dig *digest.Memory
	if opts.digest {
		dig = digest.NewMemory(arena, workload.MemorySize)
	}

	frame := func() error {
		if err := sc.Step(); err != nil {
			return err
		}
		if dig != nil {
			return dig.NewFrame()
		}
		return nil
	}

	err = performance.Check(os.Stdout, opts.profile, opts.frames, opts.fps, frame)
	if err != nil {
		return err
	}

	fmt.Println(cache.Stats())
	if dig != nil {
		fmt.Printf("digest: %s\n", dig.Hash())
	}

	// host memory must be current before it is examined
	if err := cache.FlushAll(); err != nil {
		return err
	}

	if opts.memviz != "" {
		if err := writeMemviz(opts.memviz, cache.Snapshot()); err != nil {
			return err
		}
	}

	if opts.dump != "" {
		n, err := thumbnailer.Save(opts.dump, arena, cache.Snapshot(), opts.scale)
		if err != nil {
			return err
		}
		fmt.Printf("%d thumbnails written to %s\n", n, opts.dump)
	}

	return nil
}

func writeMemviz(filename string, snapshot []texcache.RegionInfo) (rerr error) {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("memviz: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("memviz: %w", err)
		}
	}()
	memviz.Map(f, &snapshot)
	return nil
}

func editPrefs(md *modalflag.Modes) error {
	md.NewMode()

	defaults := md.AddBool("defaults", false, "revert preferences to their default values")
	md.AdditionalHelp("preferences can be changed with arguments of the form key::value")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	// remaining arguments are applied to the preferences as they are loaded
	for _, a := range md.RemainingArgs() {
		prefs.PushCommandLineStack(a)
	}

	pr, err := texcache.NewPreferences("")
	if err != nil {
		return err
	}

	if *defaults {
		pr.SetDefaults()
	}

	if *defaults || len(md.RemainingArgs()) > 0 {
		if err := pr.Save(); err != nil {
			return err
		}
	}

	fmt.Print(pr)
	return nil
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()

	revision := md.AddBool("revision", false, "display revision information from version control system")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *revision {
		v, r, _ := version.Version()
		fmt.Printf("%s %s\n", v, r)
		return nil
	}

	fmt.Println(version.String())
	return nil
}
