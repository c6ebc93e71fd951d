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

package arm

import (
	"fmt"
	"strings"
)

// flagString renders NZCV the way the status register of the core this
// package is modelled on does: upper-case for a set flag, lower-case for a
// clear one.
func flagString(flags uint8) string {
	s := strings.Builder{}
	for i, r := range [4]rune{'N', 'Z', 'C', 'V'} {
		bit := uint8(0x8) >> i
		if flags&bit != 0 {
			s.WriteRune(r)
		} else {
			s.WriteRune(r + ('a' - 'A'))
		}
	}
	return s.String()
}

// dumper implements fmt.Stringer over a CPU for dump_cpu and for the
// diagnostic text Panic writes to stderr. It is a thin wrapper rather than
// a method directly on CPU so that the memviz-based structural dump in
// package armdump can present an alternative view of the same state
// without competing for the String() method name.
type dumper struct {
	c *CPU
}

func (d dumper) String() string {
	c := d.c
	r := c.regs

	s := strings.Builder{}
	fmt.Fprintf(&s, "arm: %s (%s/%s)\n", c.identity.Name, c.identity.ISA, c.identity.Family)
	fmt.Fprintf(&s, "mode: %s  flags: %s  instructions: %d\n",
		r.Mode(), flagString(flagsFromCPSR(r.CPSR())), c.instructions.Load())

	for i := 0; i < 16; i += 4 {
		fmt.Fprintf(&s, "r%-2d %08x  r%-2d %08x  r%-2d %08x  r%-2d %08x\n",
			i, r.GetReg(i), i+1, r.GetReg(i+1), i+2, r.GetReg(i+2), i+3, r.GetReg(i+3))
	}

	fmt.Fprintf(&s, "cpsr %08x  spsr %08x\n", r.CPSR(), r.SPSR())

	if pend := c.pending.load(); pend != 0 {
		fmt.Fprintf(&s, "pending:")
		for _, k := range priority {
			if pend&k.bit() != 0 {
				fmt.Fprintf(&s, " %s", k)
			}
		}
		fmt.Fprintln(&s)
	}

	if c.currCP != cpAbsent {
		fmt.Fprintf(&s, "active coprocessor: %d", c.currCP)
		if cp := c.coprocessors[c.currCP]; cp != nil {
			fmt.Fprintf(&s, " (%s)", cp.Name())
		}
		fmt.Fprintln(&s)
	}

	return s.String()
}

// StateSnapshot is the exported-field mirror of CPU state, built fresh on each
// call so that callers (package armdump) never hold a reference into the
// live register file. armdump.Graph takes this type directly.
type StateSnapshot struct {
	Identity string
	ISA      string
	Family   string

	Mode  string
	CPSR  uint32
	SPSR  uint32
	Flags string

	Registers [16]uint32

	InstructionCount uint64

	Pending           []string
	ActiveCoprocessor int
}

// Snapshot captures a point-in-time, exported-field view of CPU state
// suitable for structural rendering (see package armdump). Call it from a
// stopped execution thread for a coherent result.
func (c *CPU) Snapshot() StateSnapshot {
	r := c.regs
	var regs [16]uint32
	for i := 0; i < 16; i++ {
		regs[i] = r.GetReg(i)
	}

	var pend []string
	bits := c.pending.load()
	for _, k := range priority {
		if bits&k.bit() != 0 {
			pend = append(pend, k.String())
		}
	}

	return StateSnapshot{
		Identity:          c.identity.Name,
		ISA:               c.identity.ISA.String(),
		Family:            c.identity.Family.String(),
		Mode:              r.Mode().String(),
		CPSR:              r.CPSR(),
		SPSR:              r.SPSR(),
		Flags:             flagString(flagsFromCPSR(r.CPSR())),
		Registers:         regs,
		InstructionCount:  c.instructions.Load(),
		Pending:           pend,
		ActiveCoprocessor: c.currCP,
	}
}

// DumpCPU is dump_cpu: a human-readable snapshot of registers, CPSR/SPSR,
// flags, pending exceptions, and the instruction count. Safe to call from
// any goroutine; the fields it reads that aren't otherwise synchronised
// (everything except the instruction counter and the pending bitmap) are
// only meaningfully consistent when the execution thread is stopped, which
// is the expected calling context (Panic, or a debugger-style inspector).
func (c *CPU) DumpCPU() string {
	return dumper{c}.String()
}
