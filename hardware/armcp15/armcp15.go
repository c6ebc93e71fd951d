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

// Package armcp15 is the reference system-control coprocessor the front
// controller installs at slot 15 when a CPU identity reports HasCP15. The
// core treats it as an opaque arm.Coprocessor; everything register-15
// actually does (cache control, the MMU enable bit, the vector-base
// select) lives here, decoupled from the architectural state machine.
package armcp15

import "sync"

// MMU is satisfied by armmmu.MMU: the one piece of external state CP15's
// control register actually has to reach into.
type MMU interface {
	Init(enabled bool)
}

// CP15 implements arm.Coprocessor. Registers are addressed by their CRn
// number alone, not by name or opcode -- register 1
// (control) and register 2 (translation table base) are the only two
// modelled here, which is all the core's MMU/vector-base concerns need.
type CP15 struct {
	mu sync.Mutex

	mmu MMU

	control     uint32
	ttBase      uint32
	highVectors bool
}

const (
	controlMMUEnable   uint32 = 1 << 0
	controlHighVectors uint32 = 1 << 13
)

// New creates a CP15 wired to mmu's enable bit.
func New(mmu MMU) *CP15 {
	return &CP15{mmu: mmu}
}

// Name implements arm.Coprocessor.
func (c *CP15) Name() string {
	return "CP15"
}

// ReadRegister implements the MRC side of a coprocessor access.
func (c *CP15) ReadRegister(crn int) uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch crn {
	case 1:
		return c.control
	case 2:
		return c.ttBase
	}
	return 0
}

// WriteRegister implements the MCR side of a coprocessor access.
func (c *CP15) WriteRegister(crn int, value uint32) {
	c.mu.Lock()
	switch crn {
	case 1:
		c.control = value
		c.highVectors = value&controlHighVectors != 0
		if c.mmu != nil {
			c.mmu.Init(value&controlMMUEnable != 0)
		}
	case 2:
		c.ttBase = value
	}
	c.mu.Unlock()
}

// HighVectors reports whether the control register currently selects the
// 0xFFFF0000 exception vector base. The CPU does not call this: its vector
// base is fixed at initialize_cpu from arm.Config.HighVectors, so a CP15
// write changes this register's state but not the CPU's vector base.
func (c *CP15) HighVectors() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.highVectors
}
