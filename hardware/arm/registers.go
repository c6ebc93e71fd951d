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

// register names, for readability at call sites.
const (
	rSP = 13
	rLR = 14
	rPC = 15
)

// bank is the {r13, r14, spsr} record banked per processor mode. it holds
// stale values for its mode between the moment that mode is left and the
// moment it is next entered.
type bank struct {
	r13  uint32
	r14  uint32
	spsr uint32
}

// Registers holds the sixteen general registers and the banked copies that
// switchMode swaps in and out. It is owned exclusively by the execution
// thread; nothing here is safe for concurrent access (see the pending
// exception bitmap in exception.go for the one piece of state that is).
type Registers struct {
	r    [16]uint32
	cpsr uint32

	// the live SPSR. meaningless in user/sys mode, where reads are
	// redirected to cpsr and writes are dropped.
	spsr uint32

	banks [bankCount]bank

	// optional FIQ-private r8..r12, behind a compatibility flag (the
	// source this core is modelled on doesn't bank these; see DESIGN.md).
	// nonFIQPrivate holds the shared (usr/svc/irq/abt/und/sys) view of
	// r8..r12 while FIQ's own view is live in r, and vice versa -- without
	// it, leaving FIQ mode would have nothing to restore into r8..r12.
	bankFIQPrivate bool
	fiqPrivate     [5]uint32
	nonFIQPrivate  [5]uint32
}

// NewRegisters creates a Registers value with every field zeroed, in
// ModeSVC with both interrupt masks set -- the state reset leaves the CPU
// in, per §4.3's RESET entry.
func NewRegisters() *Registers {
	r := &Registers{}
	r.cpsr = uint32(ModeSVC) | cpsrMaskI | cpsrMaskF
	return r
}

// EnableFIQBanking turns on the FIQ r8..r12 banking compatibility flag. It
// must be called before any mode switch into or out of FIQ mode to have a
// well-defined effect.
func (r *Registers) EnableFIQBanking(on bool) {
	r.bankFIQPrivate = on
}

// GetReg reads register i (0..15).
func (r *Registers) GetReg(i int) uint32 {
	return r.r[i&0xf]
}

// SetReg writes register i (0..15).
func (r *Registers) SetReg(i int, v uint32) {
	r.r[i&0xf] = v
}

// PC returns the value of r15.
func (r *Registers) PC() uint32 {
	return r.r[rPC]
}

// SetPC sets r15.
func (r *Registers) SetPC(v uint32) {
	r.r[rPC] = v
}

// Mode returns the mode currently encoded in CPSR.
func (r *Registers) Mode() Mode {
	return Mode(r.cpsr & cpsrMaskMode)
}

// CPSR returns the full current program status register.
func (r *Registers) CPSR() uint32 {
	return r.cpsr
}

// WriteCPSRWithMask updates only the bits of CPSR selected by mask.
func (r *Registers) WriteCPSRWithMask(value, mask uint32) {
	r.cpsr = (r.cpsr &^ mask) | (value & mask)
}

// SPSR returns the saved program status register for the current mode. In
// user/sys mode, where SPSR has no meaning, it returns CPSR instead.
func (r *Registers) SPSR() uint32 {
	switch r.Mode() {
	case ModeUser, ModeSys:
		return r.cpsr
	}
	return r.spsr
}

// WriteSPSR sets the saved program status register for the current mode.
// In user/sys mode the write is silently ignored.
func (r *Registers) WriteSPSR(v uint32) {
	m := r.Mode()
	if m == ModeUser || m == ModeSys {
		return
	}
	r.spsr = v
}

// switchMode implements the §4.2 mode-switch contract: bank out the
// outgoing mode's r13/r14/spsr, bank in the incoming mode's, and update the
// CPSR mode bits. A mode with no associated bank (an unknown/reserved mode
// code) contributes no save or restore step.
func (r *Registers) switchMode(newMode Mode) {
	oldMode := r.Mode()
	if oldMode == newMode {
		return
	}

	outIdx, outOK := bankOf(oldMode)
	inIdx, inOK := bankOf(newMode)

	if outOK {
		r.banks[outIdx].r13 = r.r[rSP]
		r.banks[outIdx].r14 = r.r[rLR]
		r.banks[outIdx].spsr = r.spsr
		if outIdx == bankFIQ && r.bankFIQPrivate {
			copy(r.fiqPrivate[:], r.r[8:13])
			copy(r.r[8:13], r.nonFIQPrivate[:])
		}
	}

	if inOK {
		r.r[rSP] = r.banks[inIdx].r13
		r.r[rLR] = r.banks[inIdx].r14
		r.spsr = r.banks[inIdx].spsr
		if inIdx == bankFIQ && r.bankFIQPrivate {
			copy(r.nonFIQPrivate[:], r.r[8:13])
			copy(r.r[8:13], r.fiqPrivate[:])
		}
	}

	r.cpsr = (r.cpsr &^ cpsrMaskMode) | uint32(newMode)
}
