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

// This file is the asynchronous half of the exception-delivery protocol:
// the raise side. Every function here may be called from any goroutine --
// a peripheral model, the MMU, a watchdog timer, the host event loop on
// SIGINT -- and does nothing more than atomically set (raise, signal) or
// clear (lower) the relevant bit of the pending bitmap. The execution thread is the only reader, via
// ProcessPendingExceptions.
//
// Raising the same kind twice before it is delivered is a no-op: the
// bitmap has no concept of a queue depth, only "at least one is pending".

// RaiseIRQ marks IRQ pending. Typically held asserted by a peripheral
// until the condition that caused it is serviced and LowerIRQ is called;
// the core itself never clears it on delivery of a higher-priority
// exception.
func (c *CPU) RaiseIRQ() {
	c.pending.set(IRQ)
}

// LowerIRQ clears a pending (but not yet delivered) IRQ request. Has no
// effect on an IRQ that has already been delivered.
func (c *CPU) LowerIRQ() {
	c.pending.clear(IRQ.bit())
}

// RaiseFIQ marks FIQ pending.
func (c *CPU) RaiseFIQ() {
	c.pending.set(FIQ)
}

// LowerFIQ clears a pending FIQ request.
func (c *CPU) LowerFIQ() {
	c.pending.clear(FIQ.bit())
}

// SignalUndefined marks an undefined-instruction trap pending. Raised by
// the external decoder when it fails to decode the current instruction
// word.
func (c *CPU) SignalUndefined() {
	c.pending.set(Undefined)
}

// SignalSWI marks a software interrupt pending. Raised by the decoder on
// an SWI instruction.
func (c *CPU) SignalSWI() {
	c.pending.set(SWI)
}

// SignalPrefetchAbort marks a prefetch abort pending. addr is not stored or
// used: the entry procedure computes LR from the PC at delivery time.
func (c *CPU) SignalPrefetchAbort(addr uint32) {
	c.pending.set(PrefetchAbort)
}

// SignalDataAbort marks a data abort pending. As with SignalPrefetchAbort,
// addr is not stored or used.
func (c *CPU) SignalDataAbort(addr uint32) {
	c.pending.set(DataAbort)
}

// SignalReset marks a reset pending. Equivalent to ResetCPU; kept as a
// distinct entry point because, unlike ResetCPU, it is meant to be called
// by an external collaborator (a watchdog, a host-level hard reset
// request) rather than by the front controller itself.
func (c *CPU) SignalReset() {
	c.pending.set(Reset)
}
