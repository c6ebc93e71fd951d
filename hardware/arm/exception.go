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
	"sync/atomic"

	"github.com/jetsetilly/armvm/logger"
)

// Kind enumerates the seven architectural exception types, in the bit
// positions they occupy in the pending bitmap.
type Kind int

const (
	Reset Kind = iota
	Undefined
	SWI
	PrefetchAbort
	DataAbort
	IRQ
	FIQ
	numKinds
)

func (k Kind) String() string {
	switch k {
	case Reset:
		return "RESET"
	case Undefined:
		return "UNDEFINED"
	case SWI:
		return "SWI"
	case PrefetchAbort:
		return "PREFETCH_ABT"
	case DataAbort:
		return "DATA_ABT"
	case IRQ:
		return "IRQ"
	case FIQ:
		return "FIQ"
	}
	return "???"
}

func (k Kind) bit() uint32 {
	return 1 << uint(k)
}

// priority is the delivery order, highest priority first, per §4.3.
var priority = [...]Kind{Reset, Undefined, SWI, PrefetchAbort, DataAbort, FIQ, IRQ}

// entryRow is one row of the §4.3 exception-entry table, expressed as data
// so that ProcessPendingExceptions can be a single data-driven loop instead
// of per-kind entry code.
type entryRow struct {
	kind       Kind
	mode       Mode
	vector     uint32
	setI       bool
	setF       bool
	lrAdjustor func(pc uint32, thumb bool) uint32
	// clearMask identifies the bits cleared from the pending bitmap on
	// delivery of this kind, beyond the kind's own bit.
	clearMask uint32
}

func lrNextInstruction(pc uint32, thumb bool) uint32 {
	if thumb {
		return pc + 2
	}
	return pc + 4
}

func lrPlus4(pc uint32, _ bool) uint32 {
	return pc + 4
}

func lrPlus8(pc uint32, _ bool) uint32 {
	return pc + 8
}

var entryTable = map[Kind]entryRow{
	Reset: {
		kind: Reset, mode: ModeSVC, vector: 0x00, setI: true, setF: true,
		lrAdjustor: func(pc uint32, thumb bool) uint32 { return pc },
		clearMask:  Undefined.bit() | SWI.bit() | PrefetchAbort.bit() | DataAbort.bit(),
	},
	Undefined: {
		kind: Undefined, mode: ModeUnd, vector: 0x04, setI: true,
		lrAdjustor: lrNextInstruction,
	},
	SWI: {
		kind: SWI, mode: ModeSVC, vector: 0x08, setI: true,
		lrAdjustor: lrNextInstruction,
	},
	PrefetchAbort: {
		kind: PrefetchAbort, mode: ModeAbt, vector: 0x0C, setI: true,
		lrAdjustor: lrPlus4,
	},
	DataAbort: {
		kind: DataAbort, mode: ModeAbt, vector: 0x10, setI: true,
		lrAdjustor: lrPlus8,
	},
	IRQ: {
		kind: IRQ, mode: ModeIRQ, vector: 0x18, setI: true,
		lrAdjustor: lrPlus4,
	},
	FIQ: {
		kind: FIQ, mode: ModeFIQ, vector: 0x1C, setI: true, setF: true,
		lrAdjustor: lrPlus4,
	},
}

// pending is the atomically-mutated bitmap of exception requests. Raisers
// (any thread) release; the poller (the execution thread) acquires -- the
// ordering contract of sync/atomic on a single word is exactly this.
type pending struct {
	bits atomic.Uint32
}

func (p *pending) set(k Kind) {
	for {
		old := p.bits.Load()
		nu := old | k.bit()
		if p.bits.CompareAndSwap(old, nu) {
			return
		}
	}
}

func (p *pending) clear(mask uint32) {
	for {
		old := p.bits.Load()
		nu := old &^ mask
		if p.bits.CompareAndSwap(old, nu) {
			return
		}
	}
}

func (p *pending) load() uint32 {
	return p.bits.Load()
}

// ProcessPendingExceptions is the sole entry point the external
// decoder/dispatcher calls between instructions. It delivers at most one
// exception, the highest-priority one that is currently deliverable, and
// reports whether it did so. A true return means PC, flags, and mode have
// all changed underneath the caller, which must invalidate any decode
// cache keyed on the old PC.
func (c *CPU) ProcessPendingExceptions() bool {
	bits := c.pending.load()
	if bits == 0 {
		return false
	}

	for _, k := range priority {
		if bits&k.bit() == 0 {
			continue
		}

		if k == IRQ && c.regs.CPSR()&cpsrMaskI != 0 {
			// masked: stays pending, keep looking at lower-priority kinds
			continue
		}
		if k == FIQ && c.regs.CPSR()&cpsrMaskF != 0 {
			continue
		}

		c.deliver(k)
		return true
	}

	return false
}

// deliver performs architectural entry for kind, per the common steps in
// §4.3.
func (c *CPU) deliver(k Kind) {
	row := entryTable[k]

	pc := c.regs.PC()
	thumb := c.regs.CPSR()&cpsrMaskT != 0
	lr := row.lrAdjustor(pc, thumb)

	if k == Reset {
		// RESET forces CPSR directly rather than going through the usual
		// save-SPSR-then-switch dance: there is no meaningful "calling"
		// context to preserve.
		c.regs.cpsr = uint32(ModeSVC) | cpsrMaskI | cpsrMaskF
		c.regs.spsr = 0
		c.regs.SetPC(0)
		c.currCP = cpAbsent
		c.resetGeneralRegisters()
		c.pending.clear(row.clearMask | k.bit())
		logger.Log("arm", "RESET delivered")
		return
	}

	savedCPSR := c.regs.CPSR()
	c.regs.switchMode(row.mode)
	c.regs.WriteSPSR(savedCPSR)
	c.regs.SetReg(rLR, lr)

	mask := cpsrMaskT
	if row.setI {
		mask |= cpsrMaskI
	}
	if row.setF {
		mask |= cpsrMaskF
	}
	var value uint32
	if row.setI {
		value |= cpsrMaskI
	}
	if row.setF {
		value |= cpsrMaskF
	}
	c.regs.WriteCPSRWithMask(value, mask) // clears T, sets I (always) and F (per row)

	if thumb {
		c.currCP = cpAbsent
	}

	c.regs.SetPC(c.vectorBase + row.vector)

	c.pending.clear(k.bit() | row.clearMask)

	logger.Logf("arm", "%s delivered: mode=%s pc=%#08x lr=%#08x", k, row.mode, c.regs.PC(), lr)
}
