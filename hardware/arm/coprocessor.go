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

// Coprocessor is the handle installed into one of the sixteen coprocessor
// slots. The core doesn't know or care what a coprocessor does; it only
// tracks which slots are occupied and which one was last accessed.
type Coprocessor interface {
	// Name identifies the coprocessor for dump output, e.g. "CP15".
	Name() string
}

const numCoprocessorSlots = 16

// cpAbsent is the sentinel "no coprocessor currently accessed" value for
// CPU.currCP. It is distinct from any valid slot index.
const cpAbsent = -1

// InstallCoprocessor installs handle at slot n. n must be in [0,15];
// anything else is a programmer error and is routed to Panic.
func (c *CPU) InstallCoprocessor(n int, handle Coprocessor) {
	if n < 0 || n >= numCoprocessorSlots {
		c.Panic(errBadCoprocessorNum(n))
		return
	}
	c.coprocessors[n] = handle
}

// Coprocessor returns the handle installed at slot n, or nil if the slot is
// empty or out of range.
func (c *CPU) Coprocessor(n int) Coprocessor {
	if n < 0 || n >= numCoprocessorSlots {
		return nil
	}
	return c.coprocessors[n]
}

// CurrentCoprocessor returns the slot index of the last-accessed
// coprocessor, or cpAbsent if none has been accessed since the last RESET
// or the last exception entry taken from Thumb state. Exception entries
// taken from ARM state leave it unchanged.
func (c *CPU) CurrentCoprocessor() int {
	return c.currCP
}

// TouchCoprocessor records n as the most recently accessed coprocessor.
// Called by the (external) coprocessor-instruction decoder.
func (c *CPU) TouchCoprocessor(n int) {
	if n < 0 || n >= numCoprocessorSlots {
		return
	}
	c.currCP = n
}
