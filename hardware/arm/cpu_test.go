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
	"strings"
	"sync"
	"testing"

	"github.com/jetsetilly/armvm/test"
)

func TestInitializeCPUResolvesKnownType(t *testing.T) {
	c := InitializeCPU("arm926ejs", Config{})
	test.ExpectEquality(t, c.Identity().ISA, ISAv5e)
	test.ExpectEquality(t, c.Identity().HasCP15, true)
	test.ExpectEquality(t, c.Identity().HasMMU, true)
}

// TestInitializeCPUFallsBackOnUnknownType is the §7 class-3 scenario: an
// unrecognised type name is a non-fatal initialization error, not a panic.
func TestInitializeCPUFallsBackOnUnknownType(t *testing.T) {
	c := InitializeCPU("not-a-real-cpu", Config{})
	test.ExpectEquality(t, c.Identity(), defaultIdentity)
}

func TestInitializeCPUHighVectors(t *testing.T) {
	c := InitializeCPU("arm7", Config{HighVectors: true})
	test.ExpectEquality(t, c.vectorBase, uint32(0xFFFF0000))
}

func TestResetCPUSchedulesReset(t *testing.T) {
	c := newTestCPU()
	c.regs.SetPC(0x1234)
	c.ResetCPU()
	test.ExpectEquality(t, c.ProcessPendingExceptions(), true)
	test.ExpectEquality(t, c.regs.PC(), uint32(0))
}

func TestSetCPUModeValid(t *testing.T) {
	c := newTestCPU()
	c.SetCPUMode(ModeIRQ)
	test.ExpectEquality(t, c.regs.Mode(), ModeIRQ)
}

func TestSetCPUModeInvalidPanics(t *testing.T) {
	c := newTestCPU()
	exited := false
	c.exitFunc = func(code int) { exited = true }
	c.SetCPUMode(Mode(0b00001))
	test.ExpectEquality(t, exited, true)
}

func TestGetRegOutOfRangePanics(t *testing.T) {
	c := newTestCPU()
	exited := false
	c.exitFunc = func(code int) { exited = true }
	c.GetReg(16)
	test.ExpectEquality(t, exited, true)
}

func TestPutRegOutOfRangePanics(t *testing.T) {
	c := newTestCPU()
	exited := false
	c.exitFunc = func(code int) { exited = true }
	c.PutReg(-1, 0)
	test.ExpectEquality(t, exited, true)
}

func TestGetSetCondition(t *testing.T) {
	c := newTestCPU()
	c.SetCondition(0x9) // N=1, V=1
	test.ExpectEquality(t, c.GetCondition(CondGE), true)
	test.ExpectEquality(t, c.GetCondition(CondLT), false)
}

func TestCountInstruction(t *testing.T) {
	c := newTestCPU()
	test.ExpectEquality(t, c.InstructionCount(), uint64(0))
	c.CountInstruction()
	c.CountInstruction()
	test.ExpectEquality(t, c.InstructionCount(), uint64(2))
}

type stubDecoder struct {
	ran bool
	mu  sync.Mutex
}

func (d *stubDecoder) Init() {}

func (d *stubDecoder) DispatchLoop(cpu *CPU, cycleLimit int) {
	d.mu.Lock()
	d.ran = true
	d.mu.Unlock()
	for i := 0; i < cycleLimit; i++ {
		cpu.CountInstruction()
		cpu.ProcessPendingExceptions()
	}
}

func (d *stubDecoder) hasRun() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ran
}

type stubHost struct {
	mu        sync.Mutex
	quit      bool
	wg        sync.WaitGroup
}

func (h *stubHost) Spawn(name string, fn func()) {
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		fn()
	}()
}

func (h *stubHost) RequestQuit() {
	h.mu.Lock()
	h.quit = true
	h.mu.Unlock()
}

func TestStartCPURunsDispatchLoopWithoutHost(t *testing.T) {
	d := &stubDecoder{}
	c := InitializeCPU("arm7", Config{Decoder: d})
	c.StartCPU(10)
	test.ExpectEquality(t, d.hasRun(), true)
	test.ExpectEquality(t, c.InstructionCount(), uint64(10))
}

func TestStartCPUSpawnsOnHostAndRequestsQuitWhenDone(t *testing.T) {
	d := &stubDecoder{}
	h := &stubHost{}
	c := InitializeCPU("arm7", Config{Decoder: d, Host: h})
	c.StartCPU(5)
	h.wg.Wait()
	test.ExpectEquality(t, d.hasRun(), true)
	h.mu.Lock()
	quit := h.quit
	h.mu.Unlock()
	test.ExpectEquality(t, quit, true)
}

func TestStartCPUWithoutDecoderIsNoOp(t *testing.T) {
	c := newTestCPU()
	c.StartCPU(100) // must not block or panic
}

func TestDumpCPUIncludesModeAndFlags(t *testing.T) {
	c := newTestCPU()
	out := c.DumpCPU()
	test.ExpectInequality(t, out, "")
	test.ExpectEquality(t, strings.Contains(out, "mode: svc"), true)
	test.ExpectEquality(t, strings.Contains(out, "flags: nzcv"), true)
}
