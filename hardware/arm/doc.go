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

// Package arm implements the architectural core of an ARMv4-ARMv6 CPU: mode
// switching and banked registers, condition code evaluation, and the
// asynchronous exception-delivery protocol. It does not decode or execute
// instructions; an external decoder drives the CPU by calling
// ProcessPendingExceptions between instructions and reading/writing
// registers directly.
package arm
