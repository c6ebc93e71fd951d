// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

// Package armhost is the arm.Host implementation used outside of tests: it
// owns the SDL event loop the execution thread runs alongside, and turns an
// SDL quit event or a ctrl-c into the same RequestQuit signal the CPU's own
// Panic path uses.
package armhost

import (
	"os"
	"os/signal"
	"sync"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/jetsetilly/armvm/errors"
	"github.com/jetsetilly/armvm/logger"
)

// Host owns one hidden SDL window purely so that the process has an SDL
// event queue to wait on; armvm has no display of its own, but SDL's
// lifecycle (and quit-event delivery) is otherwise the same shape the
// teacher's windowed front-ends use.
type Host struct {
	window *sdl.Window

	quitOnce sync.Once
	quit     chan struct{}
}

// New creates a Host and initializes SDL. Call Close when done.
func New() (*Host, error) {
	if err := sdl.Init(sdl.INIT_EVENTS); err != nil {
		return nil, errors.Errorf(errors.HostError, err)
	}

	w, err := sdl.CreateWindow("armvm", sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		1, 1, sdl.WINDOW_HIDDEN)
	if err != nil {
		sdl.Quit()
		return nil, errors.Errorf(errors.HostError, err)
	}

	h := &Host{
		window: w,
		quit:   make(chan struct{}),
	}

	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	go func() {
		<-intChan
		logger.Log("armhost", "interrupt received")
		h.RequestQuit()
	}()

	go h.eventLoop()

	return h, nil
}

// Spawn runs fn on a new goroutine, logging its name for diagnostics. It is
// arm.CPU's execution thread launcher; nothing about SDL is involved here,
// the window exists only to drive the event loop below.
func (h *Host) Spawn(name string, fn func()) {
	logger.Logf("armhost", "spawning %s", name)
	go fn()
}

// RequestQuit closes the quit channel exactly once, for any caller --
// the SDL event loop, the interrupt handler, or arm.CPU.Panic -- to
// observe via Done.
func (h *Host) RequestQuit() {
	h.quitOnce.Do(func() {
		close(h.quit)
	})
}

// Done returns a channel that is closed once a quit has been requested.
func (h *Host) Done() <-chan struct{} {
	return h.quit
}

// eventLoop waits for SDL events and turns a window-close into RequestQuit.
// Grounded on the teacher's gui/sdl guiLoop, trimmed to the one event this
// host cares about.
func (h *Host) eventLoop() {
	for {
		select {
		case <-h.quit:
			return
		default:
		}

		ev := sdl.WaitEventTimeout(250)
		if ev == nil {
			continue
		}
		if _, ok := ev.(*sdl.QuitEvent); ok {
			logger.Log("armhost", "sdl quit event")
			h.RequestQuit()
			return
		}
	}
}

// Close tears down the SDL window and subsystem.
func (h *Host) Close() {
	if h.window != nil {
		h.window.Destroy()
	}
	sdl.Quit()
}
