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

package armdecoder_test

import (
	"testing"

	"github.com/jetsetilly/armvm/hardware/arm"
	"github.com/jetsetilly/armvm/hardware/armdecoder"
	"github.com/jetsetilly/armvm/test"
)

func TestFlatMemoryReadWordRoundTrips(t *testing.T) {
	mem := armdecoder.NewFlatMemory(16)
	mem.Load(0, []byte{0x01, 0x02, 0x03, 0x04})

	word, ok := mem.ReadWord(0)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, word, uint32(0x04030201))
}

func TestFlatMemoryReadWordRejectsMisalignedAddress(t *testing.T) {
	mem := armdecoder.NewFlatMemory(16)
	_, ok := mem.ReadWord(1)
	test.ExpectFailure(t, ok)
}

func TestFlatMemoryReadWordRejectsOutOfRangeAddress(t *testing.T) {
	mem := armdecoder.NewFlatMemory(16)
	_, ok := mem.ReadWord(16)
	test.ExpectFailure(t, ok)
}

func TestDispatchLoopAdvancesPCAndCountsInstructions(t *testing.T) {
	mem := armdecoder.NewFlatMemory(64)
	// 0xE0000000 decodes to condition field 0xE (AL): always executes.
	mem.Load(0, []byte{0x00, 0x00, 0x00, 0xE0})
	mem.Load(4, []byte{0x00, 0x00, 0x00, 0xE0})

	cpu := arm.InitializeCPU("arm7tdmi", arm.Config{})
	cpu.AttachDecoder(armdecoder.New(mem))

	cpu.StartCPU(2)

	test.ExpectEquality(t, cpu.GetReg(15), uint32(8))
	test.ExpectEquality(t, cpu.InstructionCount(), uint64(2))
}

func TestDispatchLoopSkipsOnFailedCondition(t *testing.T) {
	mem := armdecoder.NewFlatMemory(64)
	// condition field 0x0 (EQ) with Z clear never passes.
	mem.Load(0, []byte{0x00, 0x00, 0x00, 0x00})

	cpu := arm.InitializeCPU("arm7tdmi", arm.Config{})
	cpu.AttachDecoder(armdecoder.New(mem))
	cpu.SetCondition(0x0) // N=0 Z=0 C=0 V=0, so EQ fails

	cpu.StartCPU(1)

	test.ExpectEquality(t, cpu.GetReg(15), uint32(4))
	test.ExpectEquality(t, cpu.InstructionCount(), uint64(1))
}

func TestDispatchLoopSignalsPrefetchAbortOnBadFetch(t *testing.T) {
	// sized to cover the prefetch abort vector (0x0C) but not the
	// starting PC, so the abort is delivered exactly once and execution
	// resumes cleanly at the vector rather than re-aborting forever.
	mem := armdecoder.NewFlatMemory(16)

	cpu := arm.InitializeCPU("arm7tdmi", arm.Config{})
	cpu.AttachDecoder(armdecoder.New(mem))
	cpu.PutReg(15, 0x1000)

	cpu.StartCPU(1)

	test.ExpectEquality(t, cpu.Identity().Name != "", true)
	test.ExpectEquality(t, cpu.InstructionCount(), uint64(1))
	test.ExpectEquality(t, cpu.Registers().Mode(), arm.ModeAbt)
}
