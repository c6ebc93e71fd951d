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

// Package armdecoder is a reference implementation of arm.Decoder: the
// micro-op cache and fetch/decode/execute loop are explicitly out of
// scope for the architectural core (see DESIGN.md), so this is the
// simplest thing that can stand in for them in a running system --
// enough to drive ProcessPendingExceptions between "instructions" and
// prove the core's half of the protocol end to end.
package armdecoder

import (
	"encoding/binary"

	"github.com/jetsetilly/armvm/hardware/arm"
	"github.com/jetsetilly/armvm/logger"
)

// Memory is the minimal word-addressable memory a Decoder needs. Read
// returning false models a bus error, delivered as a data/prefetch abort
// exactly as armmmu does.
type Memory interface {
	ReadWord(addr uint32) (uint32, bool)
}

// Decoder implements arm.Decoder with a no-op "execute": every fetched
// instruction word is immediately discarded after incrementing the
// program counter by 4; Thumb state is not distinguished. Its only real job
// is to call ProcessPendingExceptions once per cycle and refetch from the
// CPU's (possibly now-redirected) PC when it does.
type Decoder struct {
	mem Memory
}

// New creates a Decoder reading instruction words from mem.
func New(mem Memory) *Decoder {
	return &Decoder{mem: mem}
}

// Init implements arm.Decoder.
func (d *Decoder) Init() {}

// DispatchLoop implements arm.Decoder. cycleLimit <= 0 runs forever. A
// failed fetch signals a prefetch abort and does not count towards
// cycleLimit.
func (d *Decoder) DispatchLoop(cpu *arm.CPU, cycleLimit int) {
	i := 0
	for cycleLimit <= 0 || i < cycleLimit {
		if cpu.ProcessPendingExceptions() {
			continue
		}

		pc := cpu.GetReg(15)
		word, ok := d.mem.ReadWord(pc)
		if !ok {
			cpu.SignalPrefetchAbort(pc)
			continue
		}

		if !cpu.GetCondition(int(word>>28) & 0xf) {
			cpu.PutReg(15, pc+4)
			cpu.CountInstruction()
			i++
			continue
		}

		// there is no actual decode table here: see package doc.
		cpu.PutReg(15, pc+4)
		cpu.CountInstruction()
		i++
	}

	logger.Logf("armdecoder", "dispatch loop ended after %d cycles", i)
}

// FlatMemory is a Memory backed by a single fixed-size byte slice, useful
// for tests and for loading a flat binary image at address zero.
type FlatMemory struct {
	bytes []byte
}

// NewFlatMemory creates a FlatMemory of the given size, entirely zeroed.
func NewFlatMemory(size int) *FlatMemory {
	return &FlatMemory{bytes: make([]byte, size)}
}

// Load copies img into memory starting at addr.
func (m *FlatMemory) Load(addr uint32, img []byte) {
	copy(m.bytes[addr:], img)
}

// ReadWord implements Memory. An out-of-range or misaligned address is
// reported as a failed read, exactly like a real bus error.
func (m *FlatMemory) ReadWord(addr uint32) (uint32, bool) {
	if addr%4 != 0 || int(addr)+4 > len(m.bytes) {
		return 0, false
	}
	return binary.LittleEndian.Uint32(m.bytes[addr : addr+4]), true
}
