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

package errors

// error messages, grouped loosely by the component that raises them.
//
// architectural exceptions (reset, undefined, swi, the aborts, irq, fiq) are
// never represented as errors: they are normal, expected control flow,
// delivered by the exception controller rather than reported here.
const (
	// panics: routed to cpu.Panic, never recovered from
	PanicError        = "panic: %v"
	BadCoprocessorNum = "bad coprocessor number (%d)"
	UnknownMode       = "unknown processor mode (%#02x)"
	BadRegisterIndex  = "bad register index (%d)"

	// initialization: non-fatal, front controller falls back to defaults
	UnknownCPUType = "unknown cpu type (%q)"

	// host integration
	HostError = "host error: %v"

	// prefs
	Prefs = "prefs: %v"
)
