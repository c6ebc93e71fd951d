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
	"os"
	"sync/atomic"

	"github.com/jetsetilly/armvm/errors"
	"github.com/jetsetilly/armvm/logger"
	"github.com/jetsetilly/armvm/random"
)

// MMU is the external memory-management-unit collaborator. The core only
// needs to be able to tell it whether address translation is active; MMU
// itself raises aborts through the CPU's signal interface (signal.go), not
// through a return value here.
type MMU interface {
	Init(enabled bool)
}

// Decoder is the external micro-op decoder/dispatcher. Between dispatched
// instructions it must call CPU.ProcessPendingExceptions and, on a true
// result, refetch from the (possibly changed) PC.
type Decoder interface {
	Init()
	DispatchLoop(cpu *CPU, cycleLimit int)
}

// Host is the external event-loop/thread-spawn collaborator (see package
// armhost). PanicCPU uses it to request that the host event loop quit.
type Host interface {
	Spawn(name string, fn func())
	RequestQuit()
}

// Config carries the external collaborators and options initialize_cpu
// wires together. All fields are optional; a CPU with none of them set is
// still fully able to exercise condition evaluation, register banking, and
// exception delivery on its own, which is what the unit tests in this
// package do.
type Config struct {
	MMU     MMU
	Decoder Decoder
	CP15    Coprocessor
	Host    Host

	// HighVectors selects the 0xFFFF0000 vector base instead of 0x00000000.
	HighVectors bool

	// BankFIQRegisters turns on the FIQ r8..r12 banking compatibility flag
	// (see DESIGN.md for why the teacher core this is modelled on omits
	// it by default).
	BankFIQRegisters bool

	// ResetRandomizesState has reset fill r0..r12 with pseudo-random
	// content instead of zeroing them, mirroring the teacher's
	// RandomState preference on the 6507 core's Reset.
	ResetRandomizesState bool
}

// CPU is the architectural core: registers, condition evaluation, pending
// exceptions, and the coprocessor slot array. Everything here is owned by
// whichever goroutine is currently the execution thread, except for
// pending, which is safe to touch from any goroutine (see exception.go).
type CPU struct {
	identity  Identity
	condition conditionTable
	regs      *Registers
	pending   pending

	coprocessors [numCoprocessorSlots]Coprocessor
	currCP       int
	vectorBase   uint32

	mmu     MMU
	decoder Decoder
	host    Host

	// resetRandomizes and rnd implement Config.ResetRandomizesState; rnd
	// is nil unless the flag is set, since it has no use otherwise.
	resetRandomizes bool
	rnd             *random.Random

	// instructions is advanced by the execution thread (through
	// CountInstruction) and read with relaxed ordering by telemetry and
	// dump_cpu; torn reads are tolerated for display, per §5.
	instructions atomic.Uint64

	cycleLimit int

	// exitFunc is called by Panic after state has been dumped. Tests
	// override it so that a panic_cpu scenario doesn't kill the test
	// binary.
	exitFunc func(code int)
}

// InitializeCPU is initialize_cpu: build the condition table, resolve the
// named CPU type (or fall back to defaults if the name is empty or
// unrecognised -- a non-fatal initialization error, §7 class 3), install
// CP15 and the MMU if the resolved identity calls for them, and leave the
// CPU in its post-reset state.
func InitializeCPU(typeName string, cfg Config) *CPU {
	c := &CPU{
		condition:       buildConditionTable(),
		regs:            NewRegisters(),
		currCP:          cpAbsent,
		vectorBase:      0x00000000,
		mmu:             cfg.MMU,
		decoder:         cfg.Decoder,
		host:            cfg.Host,
		exitFunc:        os.Exit,
		resetRandomizes: cfg.ResetRandomizesState,
	}

	if c.resetRandomizes {
		c.rnd = random.NewRandom(c)
	}

	c.regs.EnableFIQBanking(cfg.BankFIQRegisters)
	if cfg.HighVectors {
		c.vectorBase = 0xFFFF0000
	}

	id, ok := lookupIdentity(typeName)
	if !ok {
		// non-fatal: log and continue with the default identity
		logger.Logf("arm", errors.UnknownCPUType, typeName)
		id = defaultIdentity
	}
	c.identity = id

	if id.HasCP15 && cfg.CP15 != nil {
		c.coprocessors[15] = cfg.CP15
	}
	if c.mmu != nil {
		c.mmu.Init(id.HasMMU)
	}
	if c.decoder != nil {
		c.decoder.Init()
	}

	logger.Logf("arm", "initialized %s (%s/%s, cp15=%v mmu=%v)", id.Name, id.ISA, id.Family, id.HasCP15, id.HasMMU)

	return c
}

// AttachMMU wires m in after construction, for the common case where the
// MMU collaborator itself needs a reference back to the CPU (to raise
// aborts) and so can't be built before InitializeCPU returns. Init(m's
// enabled argument) is called immediately with the resolved identity's
// HasMMU flag, exactly as it would have been had m been supplied via
// Config at construction time.
func (c *CPU) AttachMMU(m MMU) {
	c.mmu = m
	if c.mmu != nil {
		c.mmu.Init(c.identity.HasMMU)
	}
}

// AttachCP15 installs cp at coprocessor slot 15, for the same
// construction-order reason as AttachMMU. A no-op if the resolved identity
// doesn't call for CP15.
func (c *CPU) AttachCP15(cp Coprocessor) {
	if c.identity.HasCP15 {
		c.coprocessors[15] = cp
	}
}

// AttachDecoder and AttachHost complete the set, for collaborators built
// after InitializeCPU for whatever reason (commonly: they all need each
// other, and something has to go first).
func (c *CPU) AttachDecoder(d Decoder) {
	c.decoder = d
	if c.decoder != nil {
		c.decoder.Init()
	}
}

func (c *CPU) AttachHost(h Host) {
	c.host = h
}

// Identity returns the resolved CPU identity.
func (c *CPU) Identity() Identity {
	return c.identity
}

// Registers exposes the register file for direct use by the external
// decoder. The decoder is expected to call GetReg/SetReg/PC/SetPC and the
// CPSR/SPSR accessors directly; there is no instruction-level API here.
func (c *CPU) Registers() *Registers {
	return c.regs
}

// GetReg is get_reg. i must be in [0,15]; anything else is a programmer
// error and is routed to Panic.
func (c *CPU) GetReg(i int) uint32 {
	if i < 0 || i > 15 {
		c.Panic(errBadRegisterIndex(i))
		return 0
	}
	return c.regs.GetReg(i)
}

// PutReg is put_reg. i must be in [0,15]; anything else is a programmer
// error and is routed to Panic.
func (c *CPU) PutReg(i int, v uint32) {
	if i < 0 || i > 15 {
		c.Panic(errBadRegisterIndex(i))
		return
	}
	c.regs.SetReg(i, v)
}

// SetCPUMode is set_cpu_mode. Unlike the internal switchMode used during
// exception entry, this validates that m is one of the seven architectural
// modes: an external caller asking to switch to a reserved mode code is a
// programmer error.
func (c *CPU) SetCPUMode(m Mode) {
	if _, ok := bankOf(m); !ok {
		c.Panic(errors.Errorf(errors.UnknownMode, uint32(m)))
		return
	}
	c.regs.switchMode(m)
}

// GetCondition is get_condition: evaluates cond against the CPU's current
// flags.
func (c *CPU) GetCondition(cond int) bool {
	return c.condition.passes(flagsFromCPSR(c.regs.CPSR()), cond)
}

// SetCondition is set_condition: forces NZCV to the given 4-bit pattern.
// Exposed for test harnesses and for the decoder's flag-setting
// instructions.
func (c *CPU) SetCondition(flags uint8) {
	var v uint32
	if flags&0x8 != 0 {
		v |= cpsrMaskN
	}
	if flags&0x4 != 0 {
		v |= cpsrMaskZ
	}
	if flags&0x2 != 0 {
		v |= cpsrMaskC
	}
	if flags&0x1 != 0 {
		v |= cpsrMaskV
	}
	c.regs.WriteCPSRWithMask(v, cpsrMaskN|cpsrMaskZ|cpsrMaskC|cpsrMaskV)
}

// CountInstruction advances the instruction counter. Called by the
// external decoder once per retired instruction.
func (c *CPU) CountInstruction() {
	c.instructions.Add(1)
}

// InstructionCount reads the instruction counter. Safe to call from any
// goroutine (telemetry, dump_cpu); ordering is relaxed.
func (c *CPU) InstructionCount() uint64 {
	return c.instructions.Load()
}

// ResetCPU is reset_cpu: asynchronously schedules a reset. Like the other
// C4 signal entry points this is just an atomic OR on the pending bitmap;
// the reset doesn't take effect until the execution thread next calls
// ProcessPendingExceptions.
func (c *CPU) ResetCPU() {
	c.pending.set(Reset)
}

// StartCPU is start_cpu: records the stop condition (a cycle limit of zero
// or less means "run forever") and runs the external dispatch loop. If a
// Host collaborator was configured the loop runs on a goroutine launched
// through Host.Spawn and StartCPU returns at once; otherwise the loop runs
// on the calling goroutine. StartCPU does not start any telemetry: package
// armtelemetry is started separately by the embedder.
func (c *CPU) StartCPU(cycleLimit int) {
	c.cycleLimit = cycleLimit

	if c.decoder == nil {
		return
	}

	runLoop := func() {
		c.decoder.DispatchLoop(c, c.cycleLimit)
		if c.host != nil {
			c.host.RequestQuit()
		}
	}

	if c.host != nil {
		c.host.Spawn("arm-execution", runLoop)
		return
	}

	runLoop()
}

// resetGeneralRegisters fills r0..r12 per Config.ResetRandomizesState:
// pseudo-random content if set, zero otherwise. Called from the RESET
// entry path in exception.go.
func (c *CPU) resetGeneralRegisters() {
	for i := 0; i <= 12; i++ {
		if c.resetRandomizes && c.rnd != nil {
			c.regs.SetReg(i, uint32(c.rnd.NoRewind(1<<32)))
		} else {
			c.regs.SetReg(i, 0)
		}
	}
}

// errBadCoprocessorNum is a convenience wrapper kept next to the single
// call site that needs it (InstallCoprocessor), so the error text and the
// bounds check live side by side.
func errBadCoprocessorNum(n int) error {
	return errors.Errorf(errors.BadCoprocessorNum, n)
}

// errBadRegisterIndex is the equivalent wrapper for GetReg/PutReg's bounds
// check.
func errBadRegisterIndex(i int) error {
	return errors.Errorf(errors.BadRegisterIndex, i)
}

// Panic is panic_cpu: the class-2 (§7) programmer-error path. It dumps
// CPU state, asks the host event loop to quit (if one was configured), and
// terminates the process.
func (c *CPU) Panic(err error) {
	fmt.Fprintln(os.Stderr, c.DumpCPU())
	logger.Log("arm", errors.Errorf(errors.PanicError, err))

	if c.host != nil {
		c.host.RequestQuit()
	}

	if c.exitFunc != nil {
		c.exitFunc(1)
	}
}
