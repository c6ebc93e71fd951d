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

// Command armvm boots an ARM CPU core with a minimal reference decoder and
// a raw-mode terminal front-end for poking at it interactively: raising
// IRQ/FIQ, dumping state, and quitting cleanly.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jetsetilly/armvm/errors"
	"github.com/jetsetilly/armvm/hardware/arm"
	"github.com/jetsetilly/armvm/hardware/armcp15"
	"github.com/jetsetilly/armvm/hardware/armdecoder"
	"github.com/jetsetilly/armvm/hardware/armhost"
	"github.com/jetsetilly/armvm/hardware/armmmu"
	"github.com/jetsetilly/armvm/hardware/armprefs"
	"github.com/jetsetilly/armvm/hardware/armtelemetry"
	"github.com/jetsetilly/armvm/logger"
)

func main() {
	cpuType := flag.String("cpu", "arm7tdmi", "cpu type (armv4, arm7tdmi, armv5, arm9, armv5e, arm926ejs, armv6, ...)")
	memSize := flag.Int("mem", 1024*1024, "flat memory size in bytes")
	telemetryAddr := flag.String("telemetry", "", "statsview dashboard address, e.g. :18066 (disabled if empty)")
	prefsPath := flag.String("prefs", "armvm.prefs", "preferences file")
	flag.Parse()

	p, err := armprefs.Load(*prefsPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	host, err := armhost.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, errors.Errorf(errors.HostError, err))
		os.Exit(1)
	}
	defer host.Close()

	cpu := arm.InitializeCPU(*cpuType, arm.Config{
		Host:                 host,
		HighVectors:          p.HighVectors.Get(),
		BankFIQRegisters:     p.BankFIQRegisters.Get(),
		ResetRandomizesState: p.ResetRandomizesState.Get(),
	})

	mmu := armmmu.New(cpu)
	cpu.AttachMMU(mmu)
	cpu.AttachCP15(armcp15.New(mmu))

	mem := armdecoder.NewFlatMemory(*memSize)
	cpu.AttachDecoder(armdecoder.New(mem))

	var tm *armtelemetry.Telemetry
	if *telemetryAddr != "" {
		tm = armtelemetry.New(cpu, p.TelemetryHz.Get())
		tm.Start(*telemetryAddr)
	}

	cpu.ResetCPU()
	cpu.StartCPU(0)

	runREPL(cpu, host)

	if tm != nil {
		tm.Stop()
	}
	if err := p.Save(); err != nil {
		logger.Log("armvm", err)
	}
}
