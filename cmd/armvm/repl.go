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

package main

import (
	"bufio"
	"fmt"
	"os"
	"syscall"

	"github.com/pkg/term/termios"

	"github.com/jetsetilly/armvm/hardware/arm"
	"github.com/jetsetilly/armvm/hardware/armhost"
	"github.com/jetsetilly/armvm/logger"
)

// rawTerm puts stdin into cbreak mode (one keystroke at a time, no local
// echo of control characters) and restores the original settings on
// Restore. Modelled on the teacher's easyterm helper, trimmed to the one
// mode this front-end needs.
type rawTerm struct {
	fd      uintptr
	canAttr syscall.Termios
}

func newRawTerm(f *os.File) (*rawTerm, error) {
	if !isatty(f) {
		return nil, fmt.Errorf("not a terminal")
	}

	rt := &rawTerm{fd: f.Fd()}
	termios.Tcgetattr(rt.fd, &rt.canAttr)

	cbreak := rt.canAttr
	termios.Cfmakecbreak(&cbreak)
	termios.Tcsetattr(rt.fd, termios.TCIFLUSH, &cbreak)

	return rt, nil
}

func (rt *rawTerm) Restore() {
	termios.Tcsetattr(rt.fd, termios.TCIFLUSH, &rt.canAttr)
}

func isatty(f *os.File) bool {
	var t syscall.Termios
	return termios.Tcgetattr(f.Fd(), &t) == nil
}

// runREPL reads single keystrokes from stdin and maps them onto the CPU's
// C4 signal interface, until 'q' is pressed or the host requests quit.
//
//	i / I  raise / lower IRQ
//	f / F  raise / lower FIQ
//	u      signal undefined instruction
//	s      signal SWI
//	d      dump CPU state
//	r      schedule a reset
//	q      quit
func runREPL(cpu *arm.CPU, host *armhost.Host) {
	rt, err := newRawTerm(os.Stdin)
	if err != nil {
		// not an interactive terminal (e.g. piped stdin): just wait for
		// the execution thread or an interrupt to end the session.
		logger.Logf("armvm", "raw terminal unavailable: %v", err)
		<-host.Done()
		return
	}
	defer rt.Restore()

	fmt.Println("armvm: i/I irq  f/F fiq  u undefined  s swi  r reset  d dump  q quit")

	in := bufio.NewReader(os.Stdin)
	for {
		select {
		case <-host.Done():
			return
		default:
		}

		b, err := in.ReadByte()
		if err != nil {
			return
		}

		switch b {
		case 'i':
			cpu.RaiseIRQ()
		case 'I':
			cpu.LowerIRQ()
		case 'f':
			cpu.RaiseFIQ()
		case 'F':
			cpu.LowerFIQ()
		case 'u':
			cpu.SignalUndefined()
		case 's':
			cpu.SignalSWI()
		case 'r':
			cpu.ResetCPU()
		case 'd':
			fmt.Println(cpu.DumpCPU())
		case 'q':
			host.RequestQuit()
			return
		}
	}
}
